package remote

import (
	"context"
	"encoding/json"

	"github.com/islandlog/islandlog/internal/models"
)

// API defines the remote sync operations. This interface enables
// testability by allowing mock implementations.
type API interface {
	Save(ctx context.Context, url string, snap models.Snapshot) error
	Load(ctx context.Context, url string) (json.RawMessage, error)
}

// Ensure Client implements the interface
var _ API = (*Client)(nil)
