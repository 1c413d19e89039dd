package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"payment-reminder/internal/common/logger"
)

// NewRouter routes every path and method to the reminder handler.
func NewRouter(reminder http.Handler, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.Recoverer)
	r.Use(Metrics)
	r.Use(AccessLog(log))

	r.Handle("/", reminder)
	r.Handle("/*", reminder)
	// chi answers methods outside its method table itself; hand them over.
	r.MethodNotAllowed(reminder.ServeHTTP)
	r.NotFound(reminder.ServeHTTP)
	return r
}

// ReadinessCheck reports whether a dependency is reachable.
type ReadinessCheck func(ctx context.Context) error

// NewAdminRouter serves /health, /ready and /metrics.
func NewAdminRouter(ready ReadinessCheck) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", "")
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				writeStatus(w, http.StatusServiceUnavailable, "not ready", err.Error())
				return
			}
		}
		writeStatus(w, http.StatusOK, "ready", "")
	})

	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeStatus(w http.ResponseWriter, code int, status, detail string) {
	body := map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if detail != "" {
		body["error"] = detail
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
