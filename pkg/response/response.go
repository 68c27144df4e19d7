// Package response writes the JSON envelope every API endpoint
// returns: {"status":..., "message":..., "data":..., "errors":...}.
//
// Error statuses follow a fixed taxonomy: 400 validation, 401
// authentication, 403 authorization, 404 not found, 500 for anything
// unexpected.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/careerloft/careerloft/pkg/orm"
)

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func send(w http.ResponseWriter, e envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	json.NewEncoder(w).Encode(e) //nolint:errcheck
}

// Success answers 200 with data in the envelope.
func Success(w http.ResponseWriter, data any) {
	send(w, envelope{Status: http.StatusOK, Data: data})
}

// Created answers 201 with data in the envelope.
func Created(w http.ResponseWriter, data any) {
	send(w, envelope{Status: http.StatusCreated, Data: data})
}

// Paginated answers 200 with items plus page metadata under data.
func Paginated(w http.ResponseWriter, data any, p orm.Pagination) {
	send(w, envelope{Status: http.StatusOK, Data: map[string]any{
		"items":      data,
		"pagination": p,
	}})
}

// Error answers with an arbitrary status and message.
func Error(w http.ResponseWriter, status int, message string) {
	send(w, envelope{Status: status, Message: message})
}

// ValidationError answers 400 with a field-to-message map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	send(w, envelope{
		Status:  http.StatusBadRequest,
		Message: "Validation failed",
		Errors:  errs,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

// ServerError answers a generic 500. Details stay in the logs.
func ServerError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal Server Error")
}
