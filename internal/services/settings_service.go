package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/islandlog/islandlog/internal/errors"
	"github.com/islandlog/islandlog/internal/logger"
	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/sanitize"
	"github.com/islandlog/islandlog/internal/store"
)

// SettingsService reads and replaces the settings blob.
type SettingsService interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, raw json.RawMessage) (models.Settings, error)
}

type settingsService struct {
	store *store.Store
	mu    *sync.Mutex
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(st *store.Store, mu *sync.Mutex) SettingsService {
	return &settingsService{store: st, mu: mu}
}

func (s *settingsService) Get(ctx context.Context) (models.Settings, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return models.Settings{}, errors.NewInternalError(err)
	}
	return snap.Settings, nil
}

// Update sanitizes the incoming settings the same way a load would, so a
// client can never persist an empty level ladder or reward catalog.
func (s *settingsService) Update(ctx context.Context, raw json.RawMessage) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := sanitize.SettingsJSON(raw)
	if settings.PassingScore < 0 || settings.PassingScore > 100 {
		return models.Settings{}, errors.NewValidationError("passingScore", "must be between 0 and 100")
	}

	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return models.Settings{}, errors.NewInternalError(err)
	}
	logger.FromContext(ctx).Info("settings updated: passing_score=%d auto_sync=%t", settings.PassingScore, settings.AutoCloudSave)
	return settings, nil
}
