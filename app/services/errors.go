// Package services holds the business rules between controllers and
// repositories. Controllers translate the sentinel errors defined here into
// HTTP responses; services never touch the ResponseWriter.
package services

import "errors"

var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is authenticated but not allowed to act
	// on this entity.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized means the caller could not be authenticated.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned for any login failure, whether the
	// account is missing or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidTransition means a status change is outside the allowed
	// transition graph.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError carries a client-facing message for a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
