// Package http provides the HTTP transport for the MCP weather server: the
// router with correlation, metrics, CORS, and rate-limit middleware, plus the
// health and metrics endpoints alongside the streamable MCP handler.
package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/forgeworks/weather-mcp/internal/observability"
)

const serviceName = "weather-mcp"

// Handler holds dependencies for the non-MCP HTTP endpoints.
type Handler struct {
	version string
	logger  *zap.Logger
}

// NewHandler returns a new Handler.
func NewHandler(version string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{version: version, logger: logger}
}

// GetHealth handles GET /health. The server holds no connections or state of
// its own, so health is a simple liveness probe.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   serviceName,
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NewRouter assembles the full HTTP surface: the MCP handler at /mcp plus
// health and metrics endpoints, wrapped in the middleware chain. The rate
// limiter applies to the MCP route only; probes and scrapes stay exempt.
func NewRouter(h *Handler, mcpHandler http.Handler, limiter *rate.Limiter, logger *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(CorrelationIDMiddleware(logger))
	r.Use(MetricsMiddleware)
	r.Use(CORSMiddleware)

	r.HandleFunc("/health", h.GetHealth).Methods(http.MethodGet)
	r.Handle("/metrics", observability.MetricsHandler()).Methods(http.MethodGet)

	mcpRoute := r.PathPrefix("/mcp").Subrouter()
	mcpRoute.Use(RateLimitMiddleware(limiter))
	mcpRoute.NewRoute().Handler(mcpHandler)

	return r
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
