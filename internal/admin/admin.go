// Package admin is the operator-facing listener: health, metrics and API
// documentation. It runs on its own address so none of its routes can
// shadow a client-side route of the application.
package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/spaserve/internal/handler/health"
)

func NewRouter(logger *slog.Logger, checks map[string]health.Checker, metrics http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Mount("/healthz", health.NewHandler(logger, checks).Routes())
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("spaserve", "/openapi.json", "/docs"))

	return r
}
