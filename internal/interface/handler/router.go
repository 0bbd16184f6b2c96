package handler

import (
	"net/http"
	"strconv"
	"time"

	"pilotbase-logbook/pkg/logger"
	"pilotbase-logbook/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// persistStatus is implemented by stores that report their last write-through
type persistStatus interface {
	LastPersistError() error
}

// NewRouter builds the HTTP API. m may be nil; gatherer serves /metrics.
func NewRouter(flights *FlightHandler, log logger.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log, m))
	r.Use(middleware.Recoverer)

	r.Get("/health", health(flights))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Route("/api/v1/flights", flights.Routes)

	return r
}

func health(flights *FlightHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{"status": "ok"}
		if ps, ok := flights.store.(persistStatus); ok {
			if err := ps.LastPersistError(); err != nil {
				body["status"] = "degraded"
				body["lastPersistError"] = err.Error()
			}
		}
		writeJSON(w, http.StatusOK, body)
	}
}

// requestLogger logs each request and counts it by route pattern and status
func requestLogger(log logger.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				route := "unmatched"
				if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
					route = rctx.RoutePattern()
				}
				if m != nil {
					m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
				}
				log.Debug("HTTP request",
					"method", r.Method,
					"route", route,
					"status", status,
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
