package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/islandlog/islandlog/internal/models"
)

// MockRemoteAPI is a mock implementation of remote.API
type MockRemoteAPI struct {
	mock.Mock
}

func (m *MockRemoteAPI) Save(ctx context.Context, url string, snap models.Snapshot) error {
	args := m.Called(ctx, url, snap)
	return args.Error(0)
}

func (m *MockRemoteAPI) Load(ctx context.Context, url string) (json.RawMessage, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
