// Package apperror defines the error taxonomy shared by all handlers and maps
// each category to its HTTP status code.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes application errors.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the storage layer.
	DatabaseError
	// AuthError represents an authentication failure (missing or invalid token, bad credentials).
	AuthError
	// UnauthorizedError represents an ownership failure: a valid identity acting on someone else's resource.
	UnauthorizedError
	// NotFoundError represents a referenced entity that does not exist.
	NotFoundError
	// ValidationError represents malformed or missing input.
	ValidationError
	// ConflictError represents a uniqueness violation.
	ConflictError
	// InternalError represents a generic internal server error.
	InternalError
)

// AppError carries a public message and an optional underlying cause.
// Only Message is ever rendered to clients; the cause goes to the log.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is / errors.As chains.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
// Ownership failures are reported as 401 here, matching the API contract.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError, UnauthorizedError:
		return http.StatusUnauthorized
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates an AppError of an arbitrary type.
func NewAppError(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{Type: errType, Message: message, Err: underlying}
}

// NewDatabaseError creates a DatabaseError.
func NewDatabaseError(message string, underlying error) *AppError {
	return NewAppError(DatabaseError, message, underlying)
}

// NewAuthError creates an AuthError.
func NewAuthError(message string, underlying error) *AppError {
	return NewAppError(AuthError, message, underlying)
}

// NewUnauthorizedError creates an UnauthorizedError.
func NewUnauthorizedError(message string) *AppError {
	return NewAppError(UnauthorizedError, message, nil)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(message string) *AppError {
	return NewAppError(NotFoundError, message, nil)
}

// NewValidationError creates a ValidationError.
func NewValidationError(message string) *AppError {
	return NewAppError(ValidationError, message, nil)
}

// NewConflictError creates a ConflictError.
func NewConflictError(message string) *AppError {
	return NewAppError(ConflictError, message, nil)
}

// NewInternalError creates an InternalError.
func NewInternalError(message string, underlying error) *AppError {
	return NewAppError(InternalError, message, underlying)
}

// FromError attempts to convert a generic error to an *AppError.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Type == NotFoundError
}

// IsUnauthorized reports whether err is an UnauthorizedError.
func IsUnauthorized(err error) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Type == UnauthorizedError
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Type == ConflictError
}
