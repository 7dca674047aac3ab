package worker

import (
	"context"

	"github.com/islandlog/islandlog/internal/logger"
)

// CloudSaveJob pushes the current local snapshot to the remote store.
// Submitted by the auto-sync ticker and by explicit save requests that opt
// into background delivery.
type CloudSaveJob struct {
	Sync SyncServiceInterface
}

func (j *CloudSaveJob) Name() string { return "cloud_save" }

func (j *CloudSaveJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	err := j.Sync.Save(ctx)
	if err != nil {
		log.Error("cloud save failed: %v", err)
		return err
	}
	return nil
}
