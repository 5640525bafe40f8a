package admin

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/spaserve/internal/handler/health"
)

// AssetRequest describes the public catch-all route.
type AssetRequest struct {
	Path string `path:"path" description:"File under the static root, or any client-side route."`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "spaserve"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Static server for a single-page application with entry-document fallback. " +
		"Every public response carries Access-Control-Allow-Origin: *.")

	// GET /{path}
	getAsset, _ := r.NewOperationContext(http.MethodGet, "/{path}")
	getAsset.SetSummary("Serve asset")
	getAsset.SetDescription("Returns the named file when it exists under the static root, " +
		"the entry document otherwise.")
	getAsset.AddReqStructure(AssetRequest{})
	getAsset.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("application/octet-stream"))
	getAsset.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNotFound),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getAsset)

	// HEAD /{path}
	headAsset, _ := r.NewOperationContext(http.MethodHead, "/{path}")
	headAsset.SetSummary("Asset headers")
	headAsset.SetDescription("Same headers as GET, without a body.")
	headAsset.AddReqStructure(AssetRequest{})
	headAsset.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(headAsset)

	// OPTIONS /{path}
	optAsset, _ := r.NewOperationContext(http.MethodOptions, "/{path}")
	optAsset.SetSummary("CORS preflight")
	optAsset.AddReqStructure(AssetRequest{})
	optAsset.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	_ = r.AddOperation(optAsset)

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Admin listener. Reports whether the entry document is servable.")
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /metrics
	getMetrics, _ := r.NewOperationContext(http.MethodGet, "/metrics")
	getMetrics.SetSummary("Prometheus metrics")
	getMetrics.SetDescription("Admin listener. Prometheus text exposition format.")
	getMetrics.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getMetrics)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
