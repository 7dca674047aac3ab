package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/islandlog/islandlog/internal/errors"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.SettingsService.Get(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}

// handleUpdateSettings replaces the settings blob wholesale. The body is
// passed through the same sanitizer a load uses, so missing keys fall back
// to defaults instead of zeroing reward amounts.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		handleError(w, r, errors.NewValidationError("body", "unreadable request body"))
		return
	}
	if !json.Valid(body) {
		handleError(w, r, errors.NewValidationError("body", "invalid JSON"))
		return
	}

	settings, err := s.SettingsService.Update(r.Context(), body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	writeJSON(w, r, http.StatusOK, settings)
}
