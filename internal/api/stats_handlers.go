package api

import (
	"net/http"
)

func (s *Server) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.StatsService.Overview(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, overview)
}

func (s *Server) handleWeakRows(w http.ResponseWriter, r *http.Request) {
	rows, err := s.StatsService.WeakRows(r.Context(), r.URL.Query().Get("grade"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rows)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	logs, err := s.StatsService.Heatmap(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, logs)
}
