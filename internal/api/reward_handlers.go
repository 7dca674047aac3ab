package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	info, err := s.RewardService.Level(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, info)
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	userData, err := s.RewardService.Redeem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	writeJSON(w, r, http.StatusOK, userData)
}

func (s *Server) handleCompletePomodoro(w http.ResponseWriter, r *http.Request) {
	userData, delta, err := s.RewardService.CompletePomodoro(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	writeJSON(w, r, http.StatusOK, map[string]any{
		"userData": userData,
		"delta":    delta,
	})
}
