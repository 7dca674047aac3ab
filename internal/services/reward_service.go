package services

import (
	"context"
	"sync"
	"time"

	"github.com/islandlog/islandlog/internal/errors"
	"github.com/islandlog/islandlog/internal/logger"
	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/reward"
	"github.com/islandlog/islandlog/internal/store"
)

// LevelInfo is the learner's current standing on the island ladder.
type LevelInfo struct {
	Exp      int                 `json:"exp"`
	Coins    int                 `json:"coins"`
	Level    models.IslandLevel  `json:"level"`
	Next     *models.IslandLevel `json:"next,omitempty"`
	Progress float64             `json:"progress"`
}

// RewardService handles the wallet: redemptions, pomodoro awards and the
// level ladder.
type RewardService interface {
	Redeem(ctx context.Context, rewardID string) (models.UserData, error)
	CompletePomodoro(ctx context.Context) (models.UserData, reward.Delta, error)
	Level(ctx context.Context) (LevelInfo, error)
}

type rewardService struct {
	store *store.Store
	mu    *sync.Mutex
	now   func() time.Time
}

// NewRewardService creates a new RewardService.
func NewRewardService(st *store.Store, mu *sync.Mutex) RewardService {
	return &rewardService{store: st, mu: mu, now: time.Now}
}

func (s *rewardService) Redeem(ctx context.Context, rewardID string) (models.UserData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return models.UserData{}, errors.NewInternalError(err)
	}

	var prize *models.Reward
	for i := range snap.Settings.Rewards {
		if snap.Settings.Rewards[i].ID == rewardID {
			prize = &snap.Settings.Rewards[i]
			break
		}
	}
	if prize == nil {
		return models.UserData{}, errors.NewNotFoundError("reward", rewardID)
	}

	updated, err := reward.Redeem(snap.UserData, *prize)
	if err != nil {
		log.Warn("redemption rejected: %v", err)
		return models.UserData{}, err
	}

	if err := s.store.SaveUserData(ctx, updated); err != nil {
		return models.UserData{}, errors.NewInternalError(err)
	}
	log.Info("redeemed %q for %d coins, %d left", prize.Name, prize.Cost, updated.Coins)
	return updated, nil
}

func (s *rewardService) CompletePomodoro(ctx context.Context) (models.UserData, reward.Delta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return models.UserData{}, reward.Delta{}, errors.NewInternalError(err)
	}

	delta := reward.PomodoroDelta(snap.Settings)
	updated := reward.Apply(snap.UserData, delta, s.now())

	if err := s.store.SaveUserData(ctx, updated); err != nil {
		return models.UserData{}, reward.Delta{}, errors.NewInternalError(err)
	}
	logger.FromContext(ctx).Info("pomodoro completed: exp=%+d coins=%+d", delta.Exp, delta.Coins)
	return updated, delta, nil
}

func (s *rewardService) Level(ctx context.Context) (LevelInfo, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return LevelInfo{}, errors.NewInternalError(err)
	}

	info := LevelInfo{
		Exp:      snap.UserData.Exp,
		Coins:    snap.UserData.Coins,
		Level:    reward.LevelFor(snap.UserData.Exp, snap.Settings.IslandLevels),
		Progress: reward.ProgressToNext(snap.UserData.Exp, snap.Settings.IslandLevels),
	}
	if next, ok := reward.NextLevel(snap.UserData.Exp, snap.Settings.IslandLevels); ok {
		info.Next = &next
	}
	return info, nil
}
