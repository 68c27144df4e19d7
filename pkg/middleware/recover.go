// Package middleware carries the HTTP middleware shared by every
// route: auth, logging, panic recovery, CORS and rate limiting.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/careerloft/careerloft/pkg/logger"
	"github.com/careerloft/careerloft/pkg/response"
)

// Recovery turns a downstream panic into a logged 500. It sits near
// the top of the chain so nothing escapes it.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("panic recovered",
					"panic", v,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
