package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func (s *Server) Routes(corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	}).Handler)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/state/reset", s.handleFactoryReset)
		r.Put("/target-date", s.handleSetTargetDate)

		r.Post("/grades", s.handleCreateGrade)
		r.Put("/grades/order", s.handleReorderGrades)
		r.Patch("/grades/{gradeID}", s.handleUpdateGrade)
		r.Delete("/grades/{gradeID}", s.handleDeleteGrade)

		r.Post("/grades/{gradeID}/subjects", s.handleCreateSubject)
		r.Put("/grades/{gradeID}/subjects/order", s.handleReorderSubjects)
		r.Patch("/grades/{gradeID}/subjects/{subjectID}", s.handleUpdateSubject)
		r.Delete("/grades/{gradeID}/subjects/{subjectID}", s.handleDeleteSubject)

		r.Post("/grades/{gradeID}/subjects/{subjectID}/rows", s.handleAddRow)
		r.Put("/grades/{gradeID}/subjects/{subjectID}/rows/order", s.handleReorderRows)
		r.Patch("/grades/{gradeID}/subjects/{subjectID}/rows/{rowID}", s.handleUpdateRowField)
		r.Delete("/grades/{gradeID}/subjects/{subjectID}/rows/{rowID}", s.handleDeleteRow)

		r.Post("/import", s.handleImport)

		r.Post("/sync/save", s.handleCloudSave)
		r.Post("/sync/load", s.handleCloudLoad)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)

		r.Get("/library", s.handleListLibrary)
		r.Post("/library", s.handleAddLibraryItem)
		r.Patch("/library/{id}", s.handleUpdateLibraryItem)
		r.Delete("/library/{id}", s.handleDeleteLibraryItem)
		r.Post("/library/categories", s.handleAddCategory)
		r.Delete("/library/categories/{name}", s.handleDeleteCategory)

		r.Get("/level", s.handleLevel)
		r.Post("/rewards/{id}/redeem", s.handleRedeem)
		r.Post("/pomodoro/complete", s.handleCompletePomodoro)

		r.Get("/stats/overview", s.handleStatsOverview)
		r.Get("/stats/weak-rows", s.handleWeakRows)
		r.Get("/stats/heatmap", s.handleHeatmap)
	})

	return r
}
