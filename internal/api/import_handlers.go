package api

import (
	"net/http"
)

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GradeID   string `json:"gradeId"`
		SubjectID string `json:"subjectId"`
		Text      string `json:"text"`
		Confirmed bool   `json:"confirmed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.ImportService.Import(r.Context(), req.GradeID, req.SubjectID, req.Text, req.Confirmed)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if !res.RequiresConfirm {
		s.queueAutoSave(r)
	}
	writeJSON(w, r, http.StatusOK, res)
}
