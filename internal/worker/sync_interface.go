package worker

import "context"

// SyncServiceInterface defines the interface for cloud sync
// This avoids import cycles by not importing the services package
type SyncServiceInterface interface {
	Save(ctx context.Context) error
}
