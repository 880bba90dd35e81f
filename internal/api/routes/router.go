package routes

import (
	"net/http"

	"github.com/zatekoja/careassist/internal/api/handlers"
	"github.com/zatekoja/careassist/internal/api/middleware"
	"github.com/zatekoja/careassist/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	sessionHandler *handlers.SessionHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	sessionHandler *handlers.SessionHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		sessionHandler: sessionHandler,
		allowedOrigins: allowedOrigins,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	r.mux.HandleFunc("GET /api/prompts", r.sessionHandler.ListQuickPrompts)

	// Session endpoints
	r.mux.HandleFunc("POST /api/sessions", r.sessionHandler.CreateSession)
	r.mux.HandleFunc("GET /api/sessions/{id}", r.sessionHandler.GetSession)
	r.mux.HandleFunc("DELETE /api/sessions/{id}", r.sessionHandler.DeleteSession)
	r.mux.HandleFunc("POST /api/sessions/{id}/messages", r.sessionHandler.SendMessage)
	r.mux.HandleFunc("POST /api/sessions/{id}/prompts/{index}", r.sessionHandler.UseQuickPrompt)
	r.mux.HandleFunc("PUT /api/sessions/{id}/patient", r.sessionHandler.SetPatient)
	r.mux.HandleFunc("PUT /api/sessions/{id}/filter", r.sessionHandler.SetFilter)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so preflight requests short-circuit before logging
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
