package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	items, categories, err := s.LibraryService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"items":      items,
		"categories": categories,
	})
}

func (s *Server) handleAddLibraryItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title"`
		URL      string `json:"url"`
		Category string `json:"category"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	item, err := s.LibraryService.Add(r.Context(), req.Title, req.URL, req.Category)
	if err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	writeJSON(w, r, http.StatusCreated, item)
}

func (s *Server) handleUpdateLibraryItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title"`
		URL      string `json:"url"`
		Category string `json:"category"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.LibraryService.Update(r.Context(), chi.URLParam(r, "id"), req.Title, req.URL, req.Category); err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteLibraryItem(w http.ResponseWriter, r *http.Request) {
	if err := s.LibraryService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.LibraryService.AddCategory(r.Context(), req.Name); err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.LibraryService.DeleteCategory(r.Context(), chi.URLParam(r, "name")); err != nil {
		handleError(w, r, err)
		return
	}
	s.queueAutoSave(r)
	w.WriteHeader(http.StatusNoContent)
}
