package api

import (
	"net/http"
)

func (s *Server) handleCloudSave(w http.ResponseWriter, r *http.Request) {
	if err := s.SyncService.Save(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"saved": true})
}

// handleCloudLoad pulls the remote snapshot and merges it into local state.
// A remote store that has never been written is not an error; the response
// says so and the local state comes back unchanged.
func (s *Server) handleCloudLoad(w http.ResponseWriter, r *http.Request) {
	snap, applied, err := s.SyncService.Load(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"applied":  applied,
		"snapshot": snap,
	})
}
