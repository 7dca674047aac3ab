// Package schedule computes spaced follow-up review dates from round
// outcomes. All functions are pure; callers pass the reference time.
package schedule

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO calendar-date form used for every stored date.
const DateLayout = "2006-01-02"

// Review intervals in days, keyed by whether the round was passed.
// A failed round comes back sooner.
var intervals = map[int]struct{ pass, fail int }{
	1: {pass: 3, fail: 1},
	2: {pass: 7, fail: 3},
}

// NextReview returns the suggested date for the round after this one,
// anchored to the day the score was entered. Only rounds 1 and 2 schedule
// a follow-up; anything else returns false.
func NextReview(round, score, passingScore int, entered time.Time) (string, bool) {
	iv, ok := intervals[round]
	if !ok {
		return "", false
	}
	days := iv.fail
	if score >= passingScore {
		days = iv.pass
	}
	return entered.AddDate(0, 0, days).Format(DateLayout), true
}

// ParseScore interprets a stored score string. Empty or non-numeric text
// means the round has not been scored; it is never treated as zero.
func ParseScore(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DaysUntil returns the whole calendar days from now until date, negative
// when the date is in the past. False when the date string is malformed.
func DaysUntil(date string, now time.Time) (int, bool) {
	target, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today).Hours() / 24), true
}

// Urgency classifies how pressing a suggested review date is.
type Urgency int

const (
	None Urgency = iota
	Overdue
	DueToday
	DueTomorrow
)

func (u Urgency) String() string {
	switch u {
	case Overdue:
		return "overdue"
	case DueToday:
		return "due-today"
	case DueTomorrow:
		return "due-tomorrow"
	default:
		return "none"
	}
}

// Classify maps a suggested date to its urgency. The second return is
// false when the date is empty or unparseable.
func Classify(suggested string, now time.Time) (Urgency, bool) {
	if strings.TrimSpace(suggested) == "" {
		return None, false
	}
	days, ok := DaysUntil(suggested, now)
	if !ok {
		return None, false
	}
	switch {
	case days < 0:
		return Overdue, true
	case days == 0:
		return DueToday, true
	case days == 1:
		return DueTomorrow, true
	default:
		return None, true
	}
}
