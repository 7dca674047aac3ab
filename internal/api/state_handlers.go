package api

import (
	"net/http"
	"time"

	"github.com/islandlog/islandlog/internal/errors"
	"github.com/islandlog/islandlog/internal/logger"
	"github.com/islandlog/islandlog/internal/schedule"
	"github.com/islandlog/islandlog/internal/status"
)

// handleState returns the full application snapshot plus the derived status
// of every row, so a client never has to re-implement the decision table.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.ProgressService.Snapshot(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	statuses := map[string]string{}
	for _, g := range snap.Grades {
		for _, sub := range g.Subjects {
			for _, row := range sub.Rows {
				statuses[row.ID] = status.Derive(row, snap.Settings.PassingScore).Label()
			}
		}
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"grades":            snap.Grades,
		"userData":          snap.UserData,
		"library":           snap.Library,
		"libraryCategories": snap.LibraryCategories,
		"settings":          snap.Settings,
		"targetDate":        snap.TargetDate,
		"rowStatuses":       statuses,
	})
}

func (s *Server) handleSetTargetDate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Date != "" {
		if _, ok := schedule.DaysUntil(req.Date, time.Now()); !ok {
			handleError(w, r, errors.NewValidationError("date", "must be YYYY-MM-DD"))
			return
		}
	}

	if err := s.ProgressService.SetTargetDate(r.Context(), req.Date); err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	writeJSON(w, r, http.StatusOK, map[string]any{"targetDate": req.Date})
}

func (s *Server) handleFactoryReset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := s.ProgressService.FactoryReset(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	log.Warn("all local data wiped")

	snap, err := s.ProgressService.Snapshot(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}
