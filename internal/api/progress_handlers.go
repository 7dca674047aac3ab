package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/islandlog/islandlog/internal/errors"
	"github.com/islandlog/islandlog/internal/logger"
)

func (s *Server) handleCreateGrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	g, err := s.ProgressService.CreateGrade(r.Context(), req.Name, req.Color)
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	writeJSON(w, r, http.StatusCreated, g)
}

func (s *Server) handleUpdateGrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ProgressService.UpdateGrade(r.Context(), chi.URLParam(r, "gradeID"), req.Name, req.Color); err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteGrade(w http.ResponseWriter, r *http.Request) {
	if err := s.ProgressService.DeleteGrade(r.Context(), chi.URLParam(r, "gradeID")); err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReorderGrades(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Order []string `json:"order"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ProgressService.ReorderGrades(r.Context(), req.Order); err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReorderSubjects(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Order []string `json:"order"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ProgressService.ReorderSubjects(r.Context(), chi.URLParam(r, "gradeID"), req.Order); err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	sub, err := s.ProgressService.CreateSubject(r.Context(), chi.URLParam(r, "gradeID"), req.Name, req.Color)
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	writeJSON(w, r, http.StatusCreated, sub)
}

func (s *Server) handleUpdateSubject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	err := s.ProgressService.UpdateSubject(r.Context(), chi.URLParam(r, "gradeID"), chi.URLParam(r, "subjectID"), req.Name, req.Color)
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	err := s.ProgressService.DeleteSubject(r.Context(), chi.URLParam(r, "gradeID"), chi.URLParam(r, "subjectID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	row, err := s.ProgressService.AddRow(r.Context(), chi.URLParam(r, "gradeID"), chi.URLParam(r, "subjectID"), req.Topic)
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	writeJSON(w, r, http.StatusCreated, row)
}

func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	err := s.ProgressService.DeleteRow(r.Context(), chi.URLParam(r, "gradeID"), chi.URLParam(r, "subjectID"), chi.URLParam(r, "rowID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReorderRows(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Order []string `json:"order"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	err := s.ProgressService.ReorderRows(r.Context(), chi.URLParam(r, "gradeID"), chi.URLParam(r, "subjectID"), req.Order)
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateRowField applies one field change to one row and returns the
// updated row together with the reward it earned. The value type depends on
// the field: checkboxes are booleans, everything else is a string.
func (s *Server) handleUpdateRowField(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field string          `json:"field"`
		Value json.RawMessage `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Field == "" {
		handleError(w, r, errors.NewValidationError("field", "cannot be empty"))
		return
	}

	var value any
	if err := json.Unmarshal(req.Value, &value); err != nil {
		handleError(w, r, errors.NewValidationError("value", "invalid JSON value"))
		return
	}

	row, delta, err := s.ProgressService.UpdateRowField(r.Context(),
		chi.URLParam(r, "gradeID"), chi.URLParam(r, "subjectID"), chi.URLParam(r, "rowID"),
		req.Field, value)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Debug("row field updated: %s", req.Field)
	s.queueAutoSave(r)
	writeJSON(w, r, http.StatusOK, map[string]any{
		"row":   row,
		"delta": delta,
	})
}
