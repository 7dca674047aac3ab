package services

import (
	"context"
	"time"

	"github.com/islandlog/islandlog/internal/errors"
	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/schedule"
	"github.com/islandlog/islandlog/internal/status"
	"github.com/islandlog/islandlog/internal/store"
)

// Overview summarizes study progress across the whole hierarchy.
type Overview struct {
	Total    int  `json:"total"`
	Passed   int  `json:"passed"`
	Warning  int  `json:"warning"`
	Urgent   int  `json:"urgent"`
	DaysLeft *int `json:"daysLeft,omitempty"`
}

// WeakRow is a row flagged for remediation, flattened with the names of
// its grade and subject for display.
type WeakRow struct {
	models.Row
	GradeID     string `json:"gradeId"`
	GradeName   string `json:"gradeName"`
	SubjectID   string `json:"subjectId"`
	SubjectName string `json:"subjectName"`
}

// StatsService computes dashboard numbers. Everything is derived on read;
// nothing here writes state.
type StatsService interface {
	Overview(ctx context.Context) (Overview, error)
	WeakRows(ctx context.Context, gradeID string) ([]WeakRow, error)
	Heatmap(ctx context.Context) (map[string]int, error)
}

type statsService struct {
	store *store.Store
	now   func() time.Time
}

// NewStatsService creates a new StatsService.
func NewStatsService(st *store.Store) StatsService {
	return &statsService{store: st, now: time.Now}
}

func (s *statsService) Overview(ctx context.Context) (Overview, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return Overview{}, errors.NewInternalError(err)
	}

	now := s.now()
	var out Overview
	for _, g := range snap.Grades {
		for _, sub := range g.Subjects {
			for _, row := range sub.Rows {
				out.Total++
				if status.Passed(row, snap.Settings.PassingScore) {
					out.Passed++
				}
				if isWarning(row, snap.Settings.PassingScore) {
					out.Warning++
				}
				if rowUrgent(row, now) {
					out.Urgent++
				}
			}
		}
	}

	if days, ok := schedule.DaysUntil(snap.TargetDate, now); ok {
		out.DaysLeft = &days
	}
	return out, nil
}

// WeakRows lists rows whose first round failed and was never recovered.
// An empty gradeID widens the scope to every grade.
func (s *statsService) WeakRows(ctx context.Context, gradeID string) ([]WeakRow, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	out := []WeakRow{}
	for _, g := range snap.Grades {
		if gradeID != "" && g.ID != gradeID {
			continue
		}
		for _, sub := range g.Subjects {
			for _, row := range sub.Rows {
				if !isWeak(row, snap.Settings.PassingScore) {
					continue
				}
				out = append(out, WeakRow{
					Row:         row,
					GradeID:     g.ID,
					GradeName:   g.Name,
					SubjectID:   sub.ID,
					SubjectName: sub.Name,
				})
			}
		}
	}
	return out, nil
}

func (s *statsService) Heatmap(ctx context.Context) (map[string]int, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return snap.UserData.Logs, nil
}

// isWarning: round 1 failed and nothing else has been attempted yet.
func isWarning(row models.Row, passingScore int) bool {
	s1, ok := schedule.ParseScore(row.Score1)
	if !ok || s1 >= passingScore {
		return false
	}
	_, has2 := schedule.ParseScore(row.Score2)
	_, has3 := schedule.ParseScore(row.Score3)
	return !has2 && !has3
}

// isWeak: round 1 failed and no second round pass has recovered it.
func isWeak(row models.Row, passingScore int) bool {
	s1, ok := schedule.ParseScore(row.Score1)
	if !ok || s1 >= passingScore {
		return false
	}
	s2, has2 := schedule.ParseScore(row.Score2)
	return !has2 || s2 < passingScore
}

func rowUrgent(row models.Row, now time.Time) bool {
	for _, d := range []string{row.SuggestedDate2, row.SuggestedDate3} {
		if u, ok := schedule.Classify(d, now); ok && u != schedule.None {
			return true
		}
	}
	return false
}
