package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/handlers"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/middleware"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
)

func InterviewRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler, reportHandler *handlers.ReportHandler, jwtSecret string) {
	router.Route("/api/v1/interviews", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))

		r.With(middleware.ValidateRequest[*models.CreateSessionRequest]()).Post("/", sessionHandler.Create)
		r.Get("/{session_id}", sessionHandler.Status)
		r.Post("/{session_id}/start", sessionHandler.Start)
		r.Get("/{session_id}/question", sessionHandler.NextQuestion)
		r.With(middleware.ValidateRequest[*models.SubmitAnswerRequest]()).Post("/{session_id}/answer", sessionHandler.SubmitAnswer)
		r.Post("/{session_id}/pause", sessionHandler.Pause)
		r.Post("/{session_id}/resume", sessionHandler.Resume)
		r.Post("/{session_id}/abandon", sessionHandler.Abandon)
		r.Get("/{session_id}/report", reportHandler.Get)
	})
}
