// Package rbac gates routes by the role claim carried in the JWT.
package rbac

import (
	"net/http"

	"github.com/careerloft/careerloft/pkg/middleware"
	"github.com/careerloft/careerloft/pkg/response"
)

// HasRole allows the request through only when the authenticated user
// holds one of the given roles. It must run after middleware.Auth,
// which puts the role in the request context.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok {
				response.Forbidden(w)
				return
			}
			for _, want := range roles {
				if role == want {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w)
		})
	}
}
