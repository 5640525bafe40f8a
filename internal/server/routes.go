package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the public handler: every path, any method, goes to
// app once it has passed the middleware chain. Methods chi does not route
// reach app too, so every 405 carries the same Allow header. A nil
// instrument is skipped.
func NewRouter(logger *slog.Logger, app http.Handler, instrument func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newStructuredLogger(logger))
	if instrument != nil {
		r.Use(instrument)
	}
	r.Use(cors)
	r.Use(middleware.Recoverer)

	r.Handle("/*", app)
	r.MethodNotAllowed(app.ServeHTTP)
	return r
}
