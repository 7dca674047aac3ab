package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/services"
	"github.com/islandlog/islandlog/internal/store"
	"github.com/islandlog/islandlog/internal/testutil"
	"github.com/islandlog/islandlog/internal/testutil/mocks"
)

func syncedStore(t *testing.T) *store.Store {
	t.Helper()

	st := testutil.NewTestStore(t)
	snap := models.DefaultSnapshot()
	snap.Settings.RemoteURL = "https://sheet.example/exec"
	snap.Settings.AutoCloudSave = true
	require.NoError(t, st.SaveSnapshot(context.Background(), snap))
	return st
}

func TestSyncSave(t *testing.T) {
	st := syncedStore(t)
	api := new(mocks.MockRemoteAPI)
	api.On("Save", mock.Anything, "https://sheet.example/exec", mock.AnythingOfType("models.Snapshot")).Return(nil)

	svc := services.NewSyncService(st, api, &sync.Mutex{})
	require.NoError(t, svc.Save(context.Background()))
	api.AssertExpectations(t)
}

func TestSyncSave_NoRemoteConfigured(t *testing.T) {
	st := testutil.NewTestStore(t)
	api := new(mocks.MockRemoteAPI)

	svc := services.NewSyncService(st, api, &sync.Mutex{})
	err := svc.Save(context.Background())
	require.Error(t, err)
	api.AssertNotCalled(t, "Save")
}

func TestSyncLoad_EmptyRemoteKeepsLocal(t *testing.T) {
	st := syncedStore(t)
	api := new(mocks.MockRemoteAPI)
	api.On("Load", mock.Anything, "https://sheet.example/exec").Return(json.RawMessage("null"), nil)

	svc := services.NewSyncService(st, api, &sync.Mutex{})
	snap, applied, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, models.DefaultGrades(), snap.Grades)
}

func TestSyncLoad_AppliesRemoteSnapshot(t *testing.T) {
	st := syncedStore(t)
	api := new(mocks.MockRemoteAPI)
	api.On("Load", mock.Anything, "https://sheet.example/exec").Return(json.RawMessage(`{
		"grades": [{"id": "g9", "name": "Remote", "subjects": []}],
		"userData": {"exp": 77, "coins": 10, "logs": {}},
		"settings": {"passingScore": 75, "remoteUrl": "https://other.example"}
	}`), nil)

	svc := services.NewSyncService(st, api, &sync.Mutex{})
	snap, applied, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "Remote", snap.Grades[0].Name)
	assert.Equal(t, 77, snap.UserData.Exp)
	assert.Equal(t, "https://sheet.example/exec", snap.Settings.RemoteURL, "local credentials win")

	persisted, err := st.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap, persisted)
}

func TestSyncLoad_BadRemotePayloadLeavesLocalAlone(t *testing.T) {
	st := syncedStore(t)
	api := new(mocks.MockRemoteAPI)
	api.On("Load", mock.Anything, "https://sheet.example/exec").Return(json.RawMessage(`{"noGrades": true}`), nil)

	svc := services.NewSyncService(st, api, &sync.Mutex{})
	_, _, err := svc.Load(context.Background())
	require.Error(t, err)

	snap, lerr := st.LoadSnapshot(context.Background())
	require.NoError(t, lerr)
	assert.Equal(t, models.DefaultGrades(), snap.Grades)
}

func TestSyncEnabled(t *testing.T) {
	st := syncedStore(t)
	svc := services.NewSyncService(st, new(mocks.MockRemoteAPI), &sync.Mutex{})

	on, err := svc.Enabled(context.Background())
	require.NoError(t, err)
	assert.True(t, on)

	bare := testutil.NewTestStore(t)
	svc = services.NewSyncService(bare, new(mocks.MockRemoteAPI), &sync.Mutex{})
	on, err = svc.Enabled(context.Background())
	require.NoError(t, err)
	assert.False(t, on)
}
