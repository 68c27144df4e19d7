package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/careerloft/careerloft/pkg/auth"
	"github.com/careerloft/careerloft/pkg/response"
	"github.com/careerloft/careerloft/pkg/session"
)

type userIDKey struct{}
type roleKey struct{}

// WithIdentity stores the authenticated user id and role in ctx.
func WithIdentity(ctx context.Context, userID uint, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey{}, userID)
	return context.WithValue(ctx, roleKey{}, role)
}

// UserIDFromCtx returns the authenticated user's id.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(userIDKey{}).(uint)
	return id, ok
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey{}).(string)
	return role, ok
}

// Auth requires an authenticated caller. Identity comes from the session
// cookie (browser clients) or, failing that, a Bearer JWT (API clients).
// Unauthenticated requests get a 401 and never reach the handler.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, role, ok := identityFromSession(r); ok {
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), userID, role)))
			return
		}

		if userID, role, ok := identityFromBearer(r); ok {
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), userID, role)))
			return
		}

		response.Unauthorized(w)
	})
}

func identityFromSession(r *http.Request) (uint, string, bool) {
	sess := session.FromCtx(r)
	if sess == nil {
		return 0, "", false
	}

	userID, ok := sess.GetUint("user_id")
	if !ok || userID == 0 {
		return 0, "", false
	}

	role, _ := sess.GetString("role")
	return userID, role, true
}

func identityFromBearer(r *http.Request) (uint, string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, "", false
	}

	claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return 0, "", false
	}

	return claims.UserID, claims.Role, true
}
