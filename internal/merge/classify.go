// Package merge reconciles imported and remote data with the local
// hierarchy. Classification is explicit: every payload is tagged with the
// one strategy that will handle it before anything is applied.
package merge

import (
	"encoding/json"
	"strings"

	"github.com/islandlog/islandlog/internal/models"
	"github.com/islandlog/islandlog/internal/sanitize"
)

// Kind tags the shape of a pasted or imported payload.
type Kind int

const (
	// Unrecognized parses as JSON but matches no known shape. Nothing is
	// ever applied from it.
	Unrecognized Kind = iota
	// FullHierarchy is a complete grades array and replaces everything.
	FullHierarchy
	// SubjectList is an array of subjects merged into the active grade.
	SubjectList
	// PlainText is line-oriented topic text with optional # subject markers.
	PlainText
)

func (k Kind) String() string {
	switch k {
	case FullHierarchy:
		return "full-hierarchy"
	case SubjectList:
		return "subject-list"
	case PlainText:
		return "plain-text"
	default:
		return "unrecognized"
	}
}

// Payload is a classified import. Exactly one of Grades, Subjects or Text
// is meaningful, according to Kind.
type Payload struct {
	Kind     Kind
	Grades   []models.Grade
	Subjects []models.Subject
	Text     string
}

// Classify decides which merge strategy a pasted payload gets. Valid JSON
// that matches no shape is Unrecognized rather than being guessed at;
// anything that does not parse as JSON is treated as plain topic text.
func Classify(text string) Payload {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Payload{Kind: Unrecognized}
	}

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return Payload{Kind: PlainText, Text: text}
	}

	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return Payload{Kind: Unrecognized}
	}
	first, ok := arr[0].(map[string]any)
	if !ok {
		return Payload{Kind: Unrecognized}
	}

	_, hasSubjects := first["subjects"]
	_, hasID := first["id"]
	_, hasRows := first["rows"]
	_, hasName := first["name"]

	if hasSubjects || (hasID && !hasRows) {
		return Payload{Kind: FullHierarchy, Grades: sanitize.Grades(v)}
	}
	if hasRows && hasName {
		return Payload{Kind: SubjectList, Subjects: subjects(arr)}
	}
	return Payload{Kind: Unrecognized}
}

// subjects sanitizes a bare subject array by wrapping it in a throwaway
// grade, reusing the hierarchy sanitizer's row repair.
func subjects(arr []any) []models.Subject {
	wrapped := sanitize.Grades([]any{
		map[string]any{"id": "g_tmp", "name": "tmp", "subjects": arr},
	})
	if len(wrapped) == 0 {
		return []models.Subject{}
	}
	return wrapped[0].Subjects
}
