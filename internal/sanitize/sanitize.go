// Package sanitize repairs untrusted persisted state. Every function is
// total: malformed input degrades to defaults instead of failing, and
// sanitizing already-clean data returns it unchanged.
package sanitize

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/islandlog/islandlog/internal/models"
)

// Grades repairs a decoded hierarchy. A nil or non-array top level yields
// the bundled starter data; an array that is present but holds no valid
// grade objects yields an empty list, which is a deliberate state.
func Grades(v any) []models.Grade {
	arr, ok := asArray(v)
	if !ok {
		return models.DefaultGrades()
	}
	out := make([]models.Grade, 0, len(arr))
	for _, el := range arr {
		if g, ok := grade(el); ok {
			out = append(out, g)
		}
	}
	return out
}

// GradesJSON decodes and repairs a raw grades blob.
func GradesJSON(raw []byte) []models.Grade {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return models.DefaultGrades()
	}
	return Grades(v)
}

func grade(v any) (models.Grade, bool) {
	obj, ok := asObject(v)
	if !ok {
		return models.Grade{}, false
	}
	g := models.Grade{
		ID:       idOr(obj["id"], "g_"),
		Name:     strOr(obj["name"], "Untitled"),
		Color:    strOr(obj["color"], ""),
		Subjects: []models.Subject{},
	}
	if children, ok := asArray(obj["subjects"]); ok {
		for _, el := range children {
			if s, ok := subject(el); ok {
				g.Subjects = append(g.Subjects, s)
			}
		}
	}
	return g, true
}

func subject(v any) (models.Subject, bool) {
	obj, ok := asObject(v)
	if !ok {
		return models.Subject{}, false
	}
	s := models.Subject{
		ID:    idOr(obj["id"], "s_"),
		Name:  strOr(obj["name"], "Untitled"),
		Color: strOr(obj["color"], ""),
		Rows:  []models.Row{},
	}
	if children, ok := asArray(obj["rows"]); ok {
		for _, el := range children {
			if r, ok := row(el); ok {
				s.Rows = append(s.Rows, r)
			}
		}
	}
	return s, true
}

func row(v any) (models.Row, bool) {
	obj, ok := asObject(v)
	if !ok {
		return models.Row{}, false
	}
	return models.Row{
		ID:      idOr(obj["id"], ""),
		Topic:   strOr(obj["topic"], ""),
		Note:    boolOr(obj["note"]),
		Memo:    strOr(obj["memo"], ""),
		Link:    strOr(obj["link"], ""),
		DueDate: strOr(obj["dueDate"], ""),

		Practice1:  boolOr(obj["practice1"]),
		Correct1:   boolOr(obj["correct1"]),
		Score1:     scoreString(obj["score1"]),
		Score1Date: strOr(obj["score1Date"], ""),

		Practice2:  boolOr(obj["practice2"]),
		Correct2:   boolOr(obj["correct2"]),
		Score2:     scoreString(obj["score2"]),
		Score2Date: strOr(obj["score2Date"], ""),

		Practice3:  boolOr(obj["practice3"]),
		Correct3:   boolOr(obj["correct3"]),
		Score3:     scoreString(obj["score3"]),
		Score3Date: strOr(obj["score3Date"], ""),

		SuggestedDate2: strOr(obj["suggestedDate2"], ""),
		SuggestedDate3: strOr(obj["suggestedDate3"], ""),
	}, true
}

// UserDataJSON repairs the wallet blob. A missing coins field is backfilled
// from exp so wallets created before coins existed keep their balance.
func UserDataJSON(raw []byte) models.UserData {
	var obj map[string]any
	if len(raw) == 0 || json.Unmarshal(raw, &obj) != nil || obj == nil {
		return models.DefaultUserData()
	}

	u := models.UserData{
		Exp:  intOr(obj["exp"], 0),
		Logs: map[string]int{},
	}
	if _, present := obj["coins"]; present {
		u.Coins = intOr(obj["coins"], 0)
	} else {
		u.Coins = u.Exp
	}
	if logs, ok := asObject(obj["logs"]); ok {
		for k, v := range logs {
			if n := intOr(v, 0); n > 0 {
				u.Logs[k] = n
			}
		}
	}
	return u
}

// SettingsJSON decodes settings on top of the factory defaults so any
// missing field keeps its default. An empty level ladder or reward catalog
// is restored to the factory table.
func SettingsJSON(raw []byte) models.Settings {
	s := models.DefaultSettings()
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return models.DefaultSettings()
	}
	if len(s.IslandLevels) == 0 {
		s.IslandLevels = models.DefaultIslandLevels()
	}
	if len(s.Rewards) == 0 {
		s.Rewards = models.DefaultRewards()
	}
	return s
}

func LibraryJSON(raw []byte) []models.LibraryItem {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return models.DefaultLibrary()
	}
	arr, ok := asArray(v)
	if !ok {
		return models.DefaultLibrary()
	}
	out := make([]models.LibraryItem, 0, len(arr))
	for _, el := range arr {
		obj, ok := asObject(el)
		if !ok {
			continue
		}
		item := models.LibraryItem{
			ID:       idOr(obj["id"], "l_"),
			Title:    strOr(obj["title"], ""),
			URL:      strOr(obj["url"], ""),
			Category: strOr(obj["category"], ""),
		}
		if item.Title == "" && item.URL == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func CategoriesJSON(raw []byte) []string {
	var v []string
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return models.DefaultCategories()
	}
	out := make([]string, 0, len(v))
	for _, c := range v {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return models.DefaultCategories()
	}
	return out
}

// TargetDateJSON accepts either a JSON string or bare text; anything that
// is not a plausible date becomes empty.
func TargetDateJSON(raw []byte) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		s = string(raw)
	}
	return strings.TrimSpace(strings.Trim(s, `"`))
}

// RawSnapshot carries the six persisted blobs exactly as stored.
type RawSnapshot struct {
	Grades     json.RawMessage
	UserData   json.RawMessage
	Library    json.RawMessage
	Categories json.RawMessage
	Settings   json.RawMessage
	TargetDate json.RawMessage
}

// Snapshot repairs all six blobs independently: a corrupt key falls back
// to its own default without touching the others.
func Snapshot(raw RawSnapshot) models.Snapshot {
	return models.Snapshot{
		Grades:            GradesJSON(raw.Grades),
		UserData:          UserDataJSON(raw.UserData),
		Library:           LibraryJSON(raw.Library),
		LibraryCategories: CategoriesJSON(raw.Categories),
		Settings:          SettingsJSON(raw.Settings),
		TargetDate:        TargetDateJSON(raw.TargetDate),
	}
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func strOr(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func boolOr(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func intOr(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return def
}

// idOr keeps an existing id, coercing numeric ids from older data to their
// decimal string. Ids are generated only when absent.
func idOr(v any, prefix string) string {
	switch id := v.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	}
	return prefix + uuid.NewString()
}

// scoreString coerces a stored score to string-or-empty. Numbers from
// older data become their decimal text; anything unparseable is unset.
func scoreString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	}
	return ""
}
