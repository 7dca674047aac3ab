package services

import (
	"context"
	"sync"

	"github.com/islandlog/islandlog/internal/errors"
	"github.com/islandlog/islandlog/internal/logger"
	"github.com/islandlog/islandlog/internal/merge"
	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/remote"
	"github.com/islandlog/islandlog/internal/store"
)

// SyncService moves state between the local store and the learner's remote
// endpoint. Save is one-way local to remote; Load merges the remote
// snapshot into local state with credentials resolving local-first.
type SyncService interface {
	Save(ctx context.Context) error
	Load(ctx context.Context) (models.Snapshot, bool, error)
	Enabled(ctx context.Context) (bool, error)
}

type syncService struct {
	store  *store.Store
	client remote.API
	mu     *sync.Mutex
}

// NewSyncService creates a new SyncService.
func NewSyncService(st *store.Store, client remote.API, mu *sync.Mutex) SyncService {
	return &syncService{store: st, client: client, mu: mu}
}

// Enabled reports whether auto cloud save is switched on and a remote URL
// is configured.
func (s *syncService) Enabled(ctx context.Context) (bool, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return false, errors.NewInternalError(err)
	}
	return snap.Settings.AutoCloudSave && snap.Settings.RemoteURL != "", nil
}

func (s *syncService) Save(ctx context.Context) error {
	log := logger.FromContext(ctx)

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if snap.Settings.RemoteURL == "" {
		return errors.NewValidationError("remoteUrl", "no remote endpoint configured")
	}

	if err := s.client.Save(ctx, snap.Settings.RemoteURL, snap); err != nil {
		return errors.NewRemoteError(err)
	}
	log.Info("snapshot pushed to remote")
	return nil
}

// Load pulls the remote snapshot and applies it locally. The second return
// is false when the remote store has never been written; local state is
// untouched in that case.
func (s *syncService) Load(ctx context.Context) (models.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	local, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return models.Snapshot{}, false, errors.NewInternalError(err)
	}
	if local.Settings.RemoteURL == "" {
		return models.Snapshot{}, false, errors.NewValidationError("remoteUrl", "no remote endpoint configured")
	}

	data, err := s.client.Load(ctx, local.Settings.RemoteURL)
	if err != nil {
		return models.Snapshot{}, false, errors.NewRemoteError(err)
	}

	merged, applied, err := merge.ApplyRemote(local, data)
	if err != nil {
		return models.Snapshot{}, false, err
	}
	if !applied {
		log.Info("remote store is empty, keeping local state")
		return local, false, nil
	}

	if err := s.store.SaveSnapshot(ctx, merged); err != nil {
		return models.Snapshot{}, false, errors.NewInternalError(err)
	}
	log.Info("remote snapshot applied: %d grades", len(merged.Grades))
	return merged, true, nil
}
