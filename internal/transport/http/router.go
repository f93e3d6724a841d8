// Package http assembles the API router from the per-module handlers and the
// platform middleware stack.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vokasia/internal/platform/metrics"
	"vokasia/internal/platform/middleware"
	"vokasia/internal/transport/http/shared"
)

// Registrar is implemented by every module handler.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig carries the cross-cutting pieces the router wires in front of
// the handlers.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	RequestTimeout time.Duration
	Handlers       []Registrar
}

// NewRouter builds the chi router with the platform middleware stack and
// mounts every handler plus the health and metrics endpoints.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.ContentTypeJSON)
	if cfg.Metrics != nil {
		r.Use(middleware.LatencyMiddleware(cfg.Metrics))
	}

	r.Get("/healthz", handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range cfg.Handlers {
		h.Register(r)
	}
	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, "")
}
