package reward

import (
	"sort"

	"github.com/islandlog/islandlog/internal/models"
)

// fallbackLevel stands in when the settings ladder is empty or starts
// above the learner's EXP.
var fallbackLevel = models.IslandLevel{Level: 1, MinExp: 0, Title: "Getting Started", Icon: "🌱"}

func sortedLevels(levels []models.IslandLevel) []models.IslandLevel {
	out := make([]models.IslandLevel, len(levels))
	copy(out, levels)
	sort.Slice(out, func(i, j int) bool { return out[i].MinExp < out[j].MinExp })
	return out
}

// LevelFor returns the highest ladder entry whose threshold the EXP total
// has reached.
func LevelFor(exp int, levels []models.IslandLevel) models.IslandLevel {
	current := fallbackLevel
	for _, lvl := range sortedLevels(levels) {
		if lvl.MinExp <= exp {
			current = lvl
		}
	}
	return current
}

// NextLevel returns the first ladder entry still above the EXP total, or
// false at the top of the ladder.
func NextLevel(exp int, levels []models.IslandLevel) (models.IslandLevel, bool) {
	for _, lvl := range sortedLevels(levels) {
		if lvl.MinExp > exp {
			return lvl, true
		}
	}
	return models.IslandLevel{}, false
}

// ProgressToNext is the percentage of the way from the current threshold
// to the next, clamped to [0, 100]. At the top of the ladder it is 100.
func ProgressToNext(exp int, levels []models.IslandLevel) float64 {
	current := LevelFor(exp, levels)
	next, ok := NextLevel(exp, levels)
	if !ok {
		return 100
	}
	span := next.MinExp - current.MinExp
	if span <= 0 {
		return 100
	}
	pct := float64(exp-current.MinExp) / float64(span) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
