// Package status derives a study unit's progress state from its round
// scores. The state is computed on every read and never stored.
package status

import (
	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/schedule"
)

// Status is one of ten mutually exclusive progress states.
type Status int

const (
	// Preparing means round 1 has not been scored yet.
	Preparing Status = iota
	// NeedsSecondPass means round 1 failed and round 2 is still unscored.
	NeedsSecondPass
	// RemediationSuccess means a failed round 1 was recovered in round 2.
	RemediationSuccess
	// PursuingExcellence means the learner kept going after recovering in
	// round 2.
	PursuingExcellence
	// NeedsThirdPass means rounds 1 and 2 both failed and round 3 is open.
	NeedsThirdPass
	// RevivedAtThirdAttempt means only round 3 cleared the bar.
	RevivedAtThirdAttempt
	// Stuck means all three rounds were scored and none passed after R1.
	Stuck
	// Perfect means round 1 passed with no further rounds attempted.
	Perfect
	// EliteChallenge means round 1 passed and round 2 was attempted.
	EliteChallenge
	// StudyMaster means round 1 passed and all three rounds were attempted.
	StudyMaster
)

// Derive walks the decision table top to bottom and returns the first
// matching state. An empty or non-numeric score string counts as unscored,
// never as zero; passing is score >= passingScore.
func Derive(row models.Row, passingScore int) Status {
	s1, has1 := schedule.ParseScore(row.Score1)
	if !has1 {
		return Preparing
	}

	s2, has2 := schedule.ParseScore(row.Score2)
	s3, has3 := schedule.ParseScore(row.Score3)

	if s1 < passingScore {
		if !has2 {
			return NeedsSecondPass
		}
		if s2 >= passingScore {
			if has3 {
				return PursuingExcellence
			}
			return RemediationSuccess
		}
		if !has3 {
			return NeedsThirdPass
		}
		if s3 >= passingScore {
			return RevivedAtThirdAttempt
		}
		return Stuck
	}

	if has2 {
		if has3 {
			return StudyMaster
		}
		return EliteChallenge
	}
	return Perfect
}

// Urgent reports whether the state calls for prompt attention.
func (s Status) Urgent() bool {
	return s == NeedsSecondPass || s == NeedsThirdPass
}

// Label is the badge text shown in the dashboard.
func (s Status) Label() string {
	switch s {
	case Preparing:
		return "Preparing"
	case NeedsSecondPass:
		return "Needs 2nd Pass"
	case RemediationSuccess:
		return "Remediation Success"
	case PursuingExcellence:
		return "Pursuing Excellence"
	case NeedsThirdPass:
		return "Needs 3rd Pass"
	case RevivedAtThirdAttempt:
		return "Revived at R3"
	case Stuck:
		return "Stuck"
	case Perfect:
		return "Perfect!"
	case EliteChallenge:
		return "Elite Challenge"
	case StudyMaster:
		return "Study Master"
	default:
		return "Unknown"
	}
}

func (s Status) String() string {
	return s.Label()
}

// Passed reports whether any round of the row met the passing score.
func Passed(row models.Row, passingScore int) bool {
	for round := 1; round <= 3; round++ {
		if n, ok := schedule.ParseScore(row.Score(round)); ok && n >= passingScore {
			return true
		}
	}
	return false
}
