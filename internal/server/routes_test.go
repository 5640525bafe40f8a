package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/playperu/spaserve/internal/metrics"
	"github.com/playperu/spaserve/internal/spa"
)

var wantCORS = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
}

func corsOf(h http.Header) map[string]string {
	got := make(map[string]string, len(wantCORS))
	for k := range wantCORS {
		got[k] = h.Get(k)
	}
	return got
}

func testRouter(fsys fstest.MapFS) http.Handler {
	logger := slog.New(slog.DiscardHandler)
	return NewRouter(logger, spa.NewHandler(fsys, "index.html", logger), nil)
}

func TestRouter(t *testing.T) {
	index := bytes.Repeat([]byte("<"), 500)
	mainJS := bytes.Repeat([]byte("j"), 1200)
	r := testRouter(fstest.MapFS{
		"index.html": {Data: index},
		"main.js":    {Data: mainJS},
	})

	tests := []struct {
		name       string
		method     string
		target     string
		origin     string
		wantStatus int
		wantBody   []byte
		wantAllow  string
	}{
		{name: "asset", method: http.MethodGet, target: "/main.js", wantStatus: http.StatusOK, wantBody: mainJS},
		{name: "client route", method: http.MethodGet, target: "/dashboard/settings", wantStatus: http.StatusOK, wantBody: index},
		{name: "root", method: http.MethodGet, target: "/", wantStatus: http.StatusOK, wantBody: index},
		{name: "entry document", method: http.MethodGet, target: "/index.html", wantStatus: http.StatusOK, wantBody: index},
		{name: "cross origin", method: http.MethodGet, target: "/main.js", origin: "http://example.com", wantStatus: http.StatusOK, wantBody: mainJS},
		{name: "head", method: http.MethodHead, target: "/main.js", wantStatus: http.StatusOK, wantBody: []byte{}},
		{name: "preflight", method: http.MethodOptions, target: "/api/x", origin: "http://example.com", wantStatus: http.StatusNoContent, wantBody: []byte{}},
		{name: "post", method: http.MethodPost, target: "/", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET, HEAD, OPTIONS"},
		{name: "unknown method", method: "PROPFIND", target: "/", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET, HEAD, OPTIONS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if diff := cmp.Diff(wantCORS, corsOf(rec.Header())); diff != "" {
				t.Errorf("CORS headers (-want +got):\n%s", diff)
			}
			if got := rec.Header().Get("Allow"); got != tt.wantAllow {
				t.Errorf("Allow = %q, want %q", got, tt.wantAllow)
			}
			if tt.wantBody != nil && !bytes.Equal(rec.Body.Bytes(), tt.wantBody) {
				t.Errorf("body is %d bytes, want %d", rec.Body.Len(), len(tt.wantBody))
			}
			if tt.wantStatus == http.StatusOK && tt.method == http.MethodGet {
				if got := rec.Header().Get("Content-Length"); got != strconv.Itoa(rec.Body.Len()) {
					t.Errorf("Content-Length = %q, body is %d bytes", got, rec.Body.Len())
				}
			}
		})
	}
}

func TestRouterMissingEntryDocument(t *testing.T) {
	r := testRouter(fstest.MapFS{"main.js": {Data: []byte("x")}})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if diff := cmp.Diff(wantCORS, corsOf(rec.Header())); diff != "" {
		t.Errorf("CORS headers (-want +got):\n%s", diff)
	}
}

func TestRouterRecoversPanics(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	r := NewRouter(logger, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if diff := cmp.Diff(wantCORS, corsOf(rec.Header())); diff != "" {
		t.Errorf("CORS headers (-want +got):\n%s", diff)
	}
}

func TestRouterInstrument(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	m := metrics.New()
	app := spa.NewHandler(fstest.MapFS{"index.html": {Data: []byte("app")}}, "index.html", logger,
		spa.WithFallbackHook(m.ObserveFallback))
	r := NewRouter(logger, app, m.Middleware)

	for _, p := range []string{"/", "/a", "/b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		"spaserve_spa_fallbacks_total 2",
		`spaserve_http_requests_total{code="200",method="GET"} 3`,
	} {
		if !bytes.Contains([]byte(body), []byte(want)) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
