// Package kernel assembles the HTTP stack: global middleware, application
// routes and the operational endpoints.
package kernel

import (
	"net/http"
	"time"

	"github.com/careerloft/careerloft/app/routes"
	"github.com/careerloft/careerloft/pkg/cache"
	"github.com/careerloft/careerloft/pkg/database"
	"github.com/careerloft/careerloft/pkg/metrics"
	"github.com/careerloft/careerloft/pkg/middleware"
	"github.com/careerloft/careerloft/pkg/reqid"
	"github.com/careerloft/careerloft/pkg/response"
	"github.com/careerloft/careerloft/pkg/router"
	"github.com/careerloft/careerloft/pkg/session"
)

// NewRouter builds the fully wired router.
func NewRouter() *router.Router {
	r := router.New()

	// Order matters: metrics wraps everything, recovery catches panics from
	// the layers below it, and the session must be loaded before auth runs.
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		session.Middleware(session.DefaultOptions()),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", healthz)

	routes.Register(r)

	return r
}

// healthz reports whether the database and Redis are reachable.
func healthz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok", "redis": "ok"}
	healthy := true

	if database.DB == nil {
		checks["database"] = "not connected"
		healthy = false
	} else if sqlDB, err := database.DB.DB(); err != nil || sqlDB.PingContext(r.Context()) != nil {
		checks["database"] = "unreachable"
		healthy = false
	}

	if cache.RDB == nil {
		checks["redis"] = "not connected"
		healthy = false
	} else if err := cache.RDB.Ping(r.Context()).Err(); err != nil {
		checks["redis"] = "unreachable"
		healthy = false
	}

	if !healthy {
		response.Error(w, http.StatusServiceUnavailable, "degraded")
		return
	}
	response.Success(w, checks)
}
