package merge

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/islandlog/islandlog/internal/errors"
	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/sanitize"
)

// ReplaceAll swaps in a full hierarchy. The first grade becomes active; an
// empty payload falls back to the starter data so the app never ends up
// with no grades at all.
func ReplaceAll(grades []models.Grade) (clean []models.Grade, activeGradeID string) {
	if len(grades) == 0 {
		grades = models.DefaultGrades()
	}
	return grades, grades[0].ID
}

// MergeSubjects folds incoming subjects into the active grade. A subject
// whose name matches one in the grade (case sensitively) has its rows
// appended to the existing subject, duplicates and all; anything else is
// appended as a new subject. Other grades are left untouched.
func MergeSubjects(grades []models.Grade, activeGradeID string, incoming []models.Subject) ([]models.Grade, error) {
	idx := gradeIndex(grades, activeGradeID)
	if idx < 0 {
		return grades, errors.NewNotFoundError("grade", activeGradeID)
	}

	out := make([]models.Grade, len(grades))
	copy(out, grades)
	g := out[idx].Clone()

	for _, in := range incoming {
		merged := false
		for i := range g.Subjects {
			if g.Subjects[i].Name == in.Name {
				g.Subjects[i].Rows = append(g.Subjects[i].Rows, in.Rows...)
				merged = true
				break
			}
		}
		if !merged {
			g.Subjects = append(g.Subjects, in)
		}
	}

	out[idx] = g
	return out, nil
}

// ImportText turns line-oriented text into rows in the active grade.
// A line starting with "# " switches the target subject, creating it if
// needed; every other non-blank line becomes a row under the current
// target. Before the first marker, rows land in the selected subject or
// the grade's first subject; when neither exists, lines are dropped
// until a marker names a subject.
func ImportText(grades []models.Grade, activeGradeID, selectedSubjectID, text string) ([]models.Grade, int, error) {
	idx := gradeIndex(grades, activeGradeID)
	if idx < 0 {
		return grades, 0, errors.NewNotFoundError("grade", activeGradeID)
	}

	out := make([]models.Grade, len(grades))
	copy(out, grades)
	g := out[idx].Clone()

	target := -1
	for i := range g.Subjects {
		if g.Subjects[i].ID == selectedSubjectID {
			target = i
			break
		}
	}
	if target < 0 && len(g.Subjects) > 0 {
		target = 0
	}

	imported := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if name, ok := strings.CutPrefix(line, "#"); ok {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			target = -1
			for i := range g.Subjects {
				if g.Subjects[i].Name == name {
					target = i
					break
				}
			}
			if target < 0 {
				g.Subjects = append(g.Subjects, newSubject(name))
				target = len(g.Subjects) - 1
			}
			continue
		}

		if target < 0 {
			continue
		}
		g.Subjects[target].Rows = append(g.Subjects[target].Rows, models.Row{
			ID:    uuid.NewString(),
			Topic: line,
		})
		imported++
	}

	if imported == 0 && gradeEqual(out[idx], g) {
		// Nothing changed; hand back the original slice untouched.
		return grades, 0, nil
	}

	out[idx] = g
	return out, imported, nil
}

// ApplyRemote merges a remote load result into the local snapshot. A null
// data field means the remote store has never been written and is not an
// error; the caller is told nothing was applied. A payload without a valid
// grades array is rejected wholesale. Sync credentials resolve local-first
// so a stale remote snapshot cannot overwrite the URL that fetched it.
func ApplyRemote(local models.Snapshot, data json.RawMessage) (models.Snapshot, bool, error) {
	if len(data) == 0 || string(data) == "null" {
		return local, false, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return local, false, errors.NewFormatMismatchError("remote payload is not an object")
	}

	gradesRaw, ok := fields["grades"]
	if !ok || !isJSONArray(gradesRaw) {
		return local, false, errors.NewFormatMismatchError("remote payload has no grades array")
	}

	merged := sanitize.Snapshot(sanitize.RawSnapshot{
		Grades:     gradesRaw,
		UserData:   fields["userData"],
		Library:    fields["library"],
		Categories: fields["libraryCategories"],
		Settings:   fields["settings"],
		TargetDate: fields["targetDate"],
	})

	if local.Settings.RemoteURL != "" {
		merged.Settings.RemoteURL = local.Settings.RemoteURL
	}
	if local.Settings.APIKey != "" {
		merged.Settings.APIKey = local.Settings.APIKey
	}

	return merged, true, nil
}

func gradeIndex(grades []models.Grade, id string) int {
	for i := range grades {
		if grades[i].ID == id {
			return i
		}
	}
	return -1
}

func newSubject(name string) models.Subject {
	return models.Subject{
		ID:   "s_" + uuid.NewString(),
		Name: name,
		Rows: []models.Row{},
	}
}

func gradeEqual(a, b models.Grade) bool {
	ra, _ := json.Marshal(a)
	rb, _ := json.Marshal(b)
	return string(ra) == string(rb)
}

func isJSONArray(raw json.RawMessage) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
