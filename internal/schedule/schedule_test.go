package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandlog/islandlog/internal/schedule"
)

func day(s string) time.Time {
	t, err := time.Parse(schedule.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNextReview(t *testing.T) {
	tests := []struct {
		name         string
		round        int
		score        int
		passingScore int
		entered      string
		want         string
		wantOK       bool
	}{
		{name: "round 1 pass", round: 1, score: 85, passingScore: 80, entered: "2024-01-01", want: "2024-01-04", wantOK: true},
		{name: "round 1 fail", round: 1, score: 60, passingScore: 80, entered: "2024-01-01", want: "2024-01-02", wantOK: true},
		{name: "round 1 exact passing score passes", round: 1, score: 80, passingScore: 80, entered: "2024-01-01", want: "2024-01-04", wantOK: true},
		{name: "round 2 pass", round: 2, score: 90, passingScore: 80, entered: "2024-01-10", want: "2024-01-17", wantOK: true},
		{name: "round 2 fail", round: 2, score: 79, passingScore: 80, entered: "2024-01-10", want: "2024-01-13", wantOK: true},
		{name: "round 1 crosses month boundary", round: 1, score: 90, passingScore: 80, entered: "2024-01-30", want: "2024-02-02", wantOK: true},
		{name: "round 3 never schedules", round: 3, score: 100, passingScore: 80, entered: "2024-01-01", wantOK: false},
		{name: "round 0 never schedules", round: 0, score: 100, passingScore: 80, entered: "2024-01-01", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := schedule.NextReview(tt.round, tt.score, tt.passingScore, day(tt.entered))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNextReview_Deterministic(t *testing.T) {
	ref := day("2024-03-15")
	a, okA := schedule.NextReview(1, 85, 80, ref)
	b, okB := schedule.NextReview(1, 85, 80, ref)
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, a, b)
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{in: "80", want: 80, wantOK: true},
		{in: " 95 ", want: 95, wantOK: true},
		{in: "0", want: 0, wantOK: true},
		{in: "", wantOK: false},
		{in: "abc", wantOK: false},
		{in: "8o", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := schedule.ParseScore(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := day("2024-05-10")

	tests := []struct {
		name   string
		date   string
		want   int
		wantOK bool
	}{
		{name: "past", date: "2024-05-08", want: -2, wantOK: true},
		{name: "today", date: "2024-05-10", want: 0, wantOK: true},
		{name: "tomorrow", date: "2024-05-11", want: 1, wantOK: true},
		{name: "next week", date: "2024-05-17", want: 7, wantOK: true},
		{name: "garbage", date: "soon", wantOK: false},
		{name: "empty", date: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := schedule.DaysUntil(tt.date, now)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	now := day("2024-05-10")

	tests := []struct {
		name      string
		suggested string
		want      schedule.Urgency
		wantOK    bool
	}{
		{name: "overdue", suggested: "2024-05-01", want: schedule.Overdue, wantOK: true},
		{name: "due today", suggested: "2024-05-10", want: schedule.DueToday, wantOK: true},
		{name: "due tomorrow", suggested: "2024-05-11", want: schedule.DueTomorrow, wantOK: true},
		{name: "far future is calm", suggested: "2024-06-01", want: schedule.None, wantOK: true},
		{name: "empty date", suggested: "", want: schedule.None, wantOK: false},
		{name: "malformed date", suggested: "5/10", want: schedule.None, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := schedule.Classify(tt.suggested, now)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
