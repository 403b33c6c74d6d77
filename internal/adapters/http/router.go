package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/training-service/internal/application"
)

// Handler is the HTTP adapter entrypoint for the training use-cases.
// Keeping only the application dependency here preserves clean adapter
// boundaries.
type Handler struct {
	service *application.Service
}

// NewHandler constructs an HTTP handler bound to the application service.
func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

// NewRouter registers routes and the middleware stack. CORS wraps
// everything so the legacy OTP endpoints and the callable endpoints share
// one origin policy.
func NewRouter(handler *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware(allowedOrigins))

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/otp/send", handler.otpSend)
		r.Post("/otp/verify", handler.otpVerify)
		r.Get("/leaderboard", handler.leaderboard)

		r.Group(func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Post("/levels/can-start", handler.canStartLevel)
			r.Post("/levels/complete", handler.completeLevel)
			r.Get("/progress", handler.progress)
			r.Delete("/account", handler.deleteAccount)
		})
	})

	return r
}
