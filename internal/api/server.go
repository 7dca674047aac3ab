package api

import (
	"net/http"

	"github.com/islandlog/islandlog/internal/logger"
	"github.com/islandlog/islandlog/internal/services"
	"github.com/islandlog/islandlog/internal/store"
	"github.com/islandlog/islandlog/internal/worker"
)

type Server struct {
	Store           *store.Store
	ProgressService services.ProgressService
	ImportService   services.ImportService
	SyncService     services.SyncService
	RewardService   services.RewardService
	StatsService    services.StatsService
	LibraryService  services.LibraryService
	SettingsService services.SettingsService
	SyncPool        *worker.Pool
}

// queueAutoSave schedules a background cloud save after a mutation when the
// learner has auto cloud save switched on. Dropped silently when the queue
// is full; the periodic ticker will catch up.
func (s *Server) queueAutoSave(r *http.Request) {
	enabled, err := s.SyncService.Enabled(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Warn("auto save check failed: %v", err)
		return
	}
	if !enabled {
		return
	}
	s.SyncPool.TrySubmit(&worker.CloudSaveJob{Sync: s.SyncService})
}
