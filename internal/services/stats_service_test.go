package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/schedule"
	"github.com/islandlog/islandlog/internal/services"
	"github.com/islandlog/islandlog/internal/store"
	"github.com/islandlog/islandlog/internal/testutil"
)

func statsStore(t *testing.T) *store.Store {
	t.Helper()

	yesterday := time.Now().AddDate(0, 0, -1).Format(schedule.DateLayout)

	st := testutil.NewTestStore(t)
	snap := models.DefaultSnapshot()
	snap.Grades = []models.Grade{
		{
			ID:   "g1",
			Name: "Grade 6",
			Subjects: []models.Subject{
				{ID: "s1", Name: "Math", Rows: []models.Row{
					{ID: "r1", Topic: "Fractions", Score1: "90"},
					{ID: "r2", Topic: "Decimals", Score1: "50", SuggestedDate2: yesterday},
					{ID: "r3", Topic: "Ratios"},
				}},
			},
		},
		{
			ID:   "g2",
			Name: "Grade 7",
			Subjects: []models.Subject{
				{ID: "s2", Name: "Science", Rows: []models.Row{
					{ID: "r4", Topic: "Atoms", Score1: "40", Score2: "85"},
				}},
			},
		},
	}
	snap.UserData.Logs = map[string]int{"2025-01-10": 3, "2025-01-11": 1}
	snap.TargetDate = time.Now().AddDate(0, 0, 10).Format(schedule.DateLayout)
	require.NoError(t, st.SaveSnapshot(context.Background(), snap))
	return st
}

func TestOverview(t *testing.T) {
	st := statsStore(t)
	svc := services.NewStatsService(st)

	out, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 2, out.Passed, "the 90 and the 40 recovered by the 85")
	assert.Equal(t, 1, out.Warning, "the 50 with no later rounds")
	assert.Equal(t, 1, out.Urgent, "overdue second round")
	require.NotNil(t, out.DaysLeft)
	assert.Equal(t, 10, *out.DaysLeft)
}

func TestWeakRows(t *testing.T) {
	st := statsStore(t)
	svc := services.NewStatsService(st)
	ctx := context.Background()

	all, err := svc.WeakRows(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1, "r4 recovered in round two, r2 did not")
	assert.Equal(t, "r2", all[0].ID)
	assert.Equal(t, "Grade 6", all[0].GradeName)
	assert.Equal(t, "Math", all[0].SubjectName)

	scoped, err := svc.WeakRows(ctx, "g2")
	require.NoError(t, err)
	assert.Empty(t, scoped)
}

func TestHeatmap(t *testing.T) {
	st := statsStore(t)
	svc := services.NewStatsService(st)

	logs, err := svc.Heatmap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2025-01-10": 3, "2025-01-11": 1}, logs)
}
