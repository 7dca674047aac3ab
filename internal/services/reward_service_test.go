package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/services"
	"github.com/islandlog/islandlog/internal/store"
	"github.com/islandlog/islandlog/internal/testutil"
)

func walletStore(t *testing.T, coins int) *store.Store {
	t.Helper()

	st := testutil.NewTestStore(t)
	snap := models.DefaultSnapshot()
	snap.UserData.Coins = coins
	require.NoError(t, st.SaveSnapshot(context.Background(), snap))
	return st
}

func TestRedeem(t *testing.T) {
	st := walletStore(t, 25)
	svc := services.NewRewardService(st, &sync.Mutex{})
	ctx := context.Background()

	// r_break costs 20 in the default catalog
	updated, err := svc.Redeem(ctx, "r_break")
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Coins)

	snap, err := st.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.UserData.Coins)
}

func TestRedeem_InsufficientCoins(t *testing.T) {
	st := walletStore(t, 3)
	svc := services.NewRewardService(st, &sync.Mutex{})
	ctx := context.Background()

	_, err := svc.Redeem(ctx, "r_break")
	require.Error(t, err)

	snap, lerr := st.LoadSnapshot(ctx)
	require.NoError(t, lerr)
	assert.Equal(t, 3, snap.UserData.Coins, "rejected redemption must not touch the wallet")
}

func TestRedeem_UnknownReward(t *testing.T) {
	st := walletStore(t, 100)
	svc := services.NewRewardService(st, &sync.Mutex{})

	_, err := svc.Redeem(context.Background(), "r_missing")
	assert.Error(t, err)
}

func TestCompletePomodoro(t *testing.T) {
	st := walletStore(t, 0)
	svc := services.NewRewardService(st, &sync.Mutex{})
	ctx := context.Background()

	updated, delta, err := svc.CompletePomodoro(ctx)
	require.NoError(t, err)
	assert.Equal(t, delta.Exp, updated.Exp)
	assert.Equal(t, delta.Coins, updated.Coins)
	assert.NotZero(t, delta.Exp)

	total := 0
	for _, n := range updated.Logs {
		total += n
	}
	assert.Equal(t, 1, total)
}

func TestLevel(t *testing.T) {
	st := walletStore(t, 0)
	svc := services.NewRewardService(st, &sync.Mutex{})
	ctx := context.Background()

	info, err := svc.Level(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Level.Level)
	require.NotNil(t, info.Next)
	assert.Equal(t, 2, info.Next.Level)
	assert.Equal(t, float64(0), info.Progress)

	snap, err := st.LoadSnapshot(ctx)
	require.NoError(t, err)
	snap.UserData.Exp = 150
	require.NoError(t, st.SaveUserData(ctx, snap.UserData))

	info, err = svc.Level(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Level.Level)
	assert.Equal(t, 150, info.Exp)
	assert.InDelta(t, 25.0, info.Progress, 0.01, "150 exp is a quarter of the way from 100 to 300")
}
