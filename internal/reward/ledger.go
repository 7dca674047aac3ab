// Package reward turns study actions into EXP and coin awards. The ledger
// is pure: it computes the updated row and the wallet delta, and the
// caller decides where both land.
package reward

import (
	"fmt"
	"time"

	"github.com/islandlog/islandlog/internal/errors"
	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/schedule"
)

// Delta is the wallet movement produced by one action.
type Delta struct {
	Exp   int `json:"exp"`
	Coins int `json:"coins"`
}

func (d Delta) add(exp, coins int) Delta {
	return Delta{Exp: d.Exp + exp, Coins: d.Coins + coins}
}

// ApplyFieldChange writes one field of a row and computes the award it
// earns. Flag awards fire only on false to true transitions and score
// entry awards only when a round goes from unscored to scored, so toggling
// or re-editing never double-pays. Scoring a round also stamps the entry
// date and, for rounds 1 and 2, caches the next suggested review date.
func ApplyFieldChange(row models.Row, field string, value any, s models.Settings, now time.Time) (models.Row, Delta, error) {
	var delta Delta
	today := now.Format(schedule.DateLayout)

	switch field {
	case "topic":
		v, ok := value.(string)
		if !ok {
			return row, delta, errors.NewValidationError(field, "expected a string")
		}
		row.Topic = v

	case "dueDate":
		v, ok := value.(string)
		if !ok {
			return row, delta, errors.NewValidationError(field, "expected a string")
		}
		row.DueDate = v

	case "memo", "link":
		v, ok := value.(string)
		if !ok {
			return row, delta, errors.NewValidationError(field, "expected a string")
		}
		if field == "memo" {
			row.Memo = v
		} else {
			row.Link = v
		}
		// A note exists while either memo or link has content. The memo
		// bonus pays out once, when the note first appears.
		hasContent := row.Memo != "" || row.Link != ""
		if hasContent && !row.Note {
			row.Note = true
			delta = delta.add(s.ExpMemo, s.CoinMemo)
		} else if !hasContent {
			row.Note = false
		}

	case "note":
		v, ok := value.(bool)
		if !ok {
			return row, delta, errors.NewValidationError(field, "expected a boolean")
		}
		if v && !row.Note {
			delta = delta.add(s.ExpMemo, s.CoinMemo)
		}
		row.Note = v

	case "practice1", "practice2", "practice3":
		round := int(field[len(field)-1] - '0')
		v, ok := value.(bool)
		if !ok {
			return row, delta, errors.NewValidationError(field, "expected a boolean")
		}
		if v && !row.Practice(round) {
			delta = delta.add(s.ExpPractice, s.CoinPractice)
		}
		setPractice(&row, round, v)

	case "correct1", "correct2", "correct3":
		round := int(field[len(field)-1] - '0')
		v, ok := value.(bool)
		if !ok {
			return row, delta, errors.NewValidationError(field, "expected a boolean")
		}
		if v && !row.Correct(round) {
			delta = delta.add(s.ExpCorrect, s.CoinCorrect)
		}
		setCorrect(&row, round, v)

	case "score1", "score2", "score3":
		round := int(field[len(field)-1] - '0')
		v, ok := value.(string)
		if !ok {
			return row, delta, errors.NewValidationError(field, "expected a string")
		}
		old := row.Score(round)
		setScore(&row, round, v)

		if v == "" {
			// Clearing a score retracts the stamp and the cached follow-up.
			setScoreDate(&row, round, "")
			setSuggested(&row, round, "")
			break
		}

		setScoreDate(&row, round, today)

		_, wasSet := schedule.ParseScore(old)
		if !wasSet {
			delta = delta.add(s.ExpScoreEntry, s.CoinScoreEntry)
			if n, ok := schedule.ParseScore(v); ok {
				if next, ok := schedule.NextReview(round, n, s.PassingScore, now); ok {
					setSuggested(&row, round, next)
				}
			}
		}
		oldN, oldOK := schedule.ParseScore(old)
		newN, newOK := schedule.ParseScore(v)
		if newOK && newN >= s.PassingScore && !(oldOK && oldN >= s.PassingScore) {
			delta = delta.add(s.ExpPass, s.CoinPass)
		}

	default:
		return row, delta, errors.NewValidationError("field", fmt.Sprintf("unknown field %q", field))
	}

	return row, delta, nil
}

// PomodoroDelta is the award for finishing a focus session.
func PomodoroDelta(s models.Settings) Delta {
	return Delta{Exp: s.ExpPomodoro, Coins: s.CoinPomodoro}
}

// Apply credits a delta to the wallet and bumps today's activity count.
// The count moves exactly once per call, even when the delta is zero, so
// the heatmap reflects every change and not just the rewarded ones.
func Apply(u models.UserData, d Delta, now time.Time) models.UserData {
	out := u.Clone()
	out.Exp += d.Exp
	out.Coins += d.Coins
	if out.Logs == nil {
		out.Logs = map[string]int{}
	}
	out.Logs[now.Format(schedule.DateLayout)]++
	return out
}

// Redeem spends coins on a catalog reward. An unaffordable redemption is
// rejected without touching the wallet.
func Redeem(u models.UserData, r models.Reward) (models.UserData, error) {
	if u.Coins < r.Cost {
		return u, errors.NewInsufficientCoinsError(r.Cost, u.Coins)
	}
	out := u.Clone()
	out.Coins -= r.Cost
	return out, nil
}

func setPractice(r *models.Row, round int, v bool) {
	switch round {
	case 1:
		r.Practice1 = v
	case 2:
		r.Practice2 = v
	case 3:
		r.Practice3 = v
	}
}

func setCorrect(r *models.Row, round int, v bool) {
	switch round {
	case 1:
		r.Correct1 = v
	case 2:
		r.Correct2 = v
	case 3:
		r.Correct3 = v
	}
}

func setScore(r *models.Row, round int, v string) {
	switch round {
	case 1:
		r.Score1 = v
	case 2:
		r.Score2 = v
	case 3:
		r.Score3 = v
	}
}

func setScoreDate(r *models.Row, round int, v string) {
	switch round {
	case 1:
		r.Score1Date = v
	case 2:
		r.Score2Date = v
	case 3:
		r.Score3Date = v
	}
}

// setSuggested caches the follow-up date the round schedules: round 1
// drives the round 2 suggestion, round 2 the round 3 suggestion.
func setSuggested(r *models.Row, round int, v string) {
	switch round {
	case 1:
		r.SuggestedDate2 = v
	case 2:
		r.SuggestedDate3 = v
	}
}
