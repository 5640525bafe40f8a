package spa

import (
	"io/fs"
	"log/slog"
	"net/http"
)

const allowedMethods = "GET, HEAD, OPTIONS"

type Option func(*Handler)

// WithFallbackHook registers fn to run whenever a request is answered with
// the entry document instead of the file it named.
func WithFallbackHook(fn func(r *http.Request)) Option {
	return func(h *Handler) { h.onFallback = fn }
}

// Handler answers requests from a static root with SPA fallback.
type Handler struct {
	resolver   *Resolver
	responder  *Responder
	logger     *slog.Logger
	onFallback func(r *http.Request)
}

func NewHandler(fsys fs.FS, index string, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		resolver:  NewResolver(fsys, index),
		responder: NewResponder(fsys, logger),
		logger:    logger,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	default:
		w.Header().Set("Allow", allowedMethods)
		http.Error(w, "405 Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	target := r.RequestURI
	if target == "" {
		target = r.URL.RequestURI()
	}

	rel, found := h.resolver.Lookup(target)
	if !found {
		h.logger.Debug("spa fallback", "path", r.URL.Path, "file", rel)
		if h.onFallback != nil {
			h.onFallback(r)
		}
	}
	h.responder.Serve(w, r, rel)
}
