package reward_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/reward"
)

func ladder() []models.IslandLevel {
	return []models.IslandLevel{
		{Level: 1, MinExp: 0, Title: "Raft"},
		{Level: 2, MinExp: 100, Title: "Shore"},
		{Level: 3, MinExp: 300, Title: "Grove"},
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name string
		exp  int
		want int
	}{
		{name: "zero exp", exp: 0, want: 1},
		{name: "just below a threshold", exp: 99, want: 1},
		{name: "exact threshold", exp: 100, want: 2},
		{name: "between thresholds", exp: 200, want: 2},
		{name: "beyond the top", exp: 9999, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reward.LevelFor(tt.exp, ladder()).Level)
		})
	}
}

func TestLevelFor_UnsortedLadder(t *testing.T) {
	shuffled := []models.IslandLevel{
		{Level: 3, MinExp: 300},
		{Level: 1, MinExp: 0},
		{Level: 2, MinExp: 100},
	}
	assert.Equal(t, 2, reward.LevelFor(150, shuffled).Level)
}

func TestLevelFor_FallbackLevel(t *testing.T) {
	got := reward.LevelFor(50, nil)
	assert.Equal(t, 1, got.Level)
	assert.Equal(t, 0, got.MinExp)

	// A ladder starting above the learner's EXP also falls back.
	high := []models.IslandLevel{{Level: 5, MinExp: 1000}}
	assert.Equal(t, 1, reward.LevelFor(50, high).Level)
}

func TestNextLevel(t *testing.T) {
	next, ok := reward.NextLevel(150, ladder())
	assert.True(t, ok)
	assert.Equal(t, 3, next.Level)

	_, ok = reward.NextLevel(500, ladder())
	assert.False(t, ok, "no next level at the top")
}

func TestProgressToNext(t *testing.T) {
	tests := []struct {
		name string
		exp  int
		want float64
	}{
		{name: "start of a level", exp: 100, want: 0},
		{name: "halfway", exp: 200, want: 50},
		{name: "top of the ladder", exp: 300, want: 100},
		{name: "beyond the top", exp: 1000, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, reward.ProgressToNext(tt.exp, ladder()), 0.001)
		})
	}
}

func TestProgressToNext_EmptyLadder(t *testing.T) {
	assert.InDelta(t, 100, reward.ProgressToNext(42, nil), 0.001)
}
