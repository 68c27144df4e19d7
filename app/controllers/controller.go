// Package controllers holds the HTTP handlers. A controller decodes the
// request, calls one service method and writes the envelope; business rules
// live one layer down.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/app/services"
	"github.com/careerloft/careerloft/pkg/logger"
	"github.com/careerloft/careerloft/pkg/middleware"
	"github.com/careerloft/careerloft/pkg/response"
	"github.com/go-chi/chi/v5"
)

// uintParam parses a numeric URL parameter.
func uintParam(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// identity pulls the authenticated user out of the request context. The Auth
// middleware guarantees both values are present on protected routes.
func identity(r *http.Request) (uint, models.Role, bool) {
	id, ok := middleware.UserIDFromCtx(r)
	if !ok {
		return 0, "", false
	}
	role, ok := middleware.RoleFromCtx(r)
	if !ok {
		return 0, "", false
	}
	return id, models.Role(role), true
}

// fail maps a service error onto the response taxonomy.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		response.BadRequest(w, err.Error())
	case services.IsValidation(err):
		response.BadRequest(w, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		response.ServerError(w)
	}
}

// page reads ?page= and ?limit= with sane defaults.
func page(r *http.Request) (int, int) {
	p, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if p < 1 {
		p = 1
	}
	l, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if l < 1 || l > 100 {
		l = 20
	}
	return p, l
}
