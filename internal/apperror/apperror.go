// Package apperror defines the application's error taxonomy.
//
// Every failure that should reach a client as something other than a 500
// is an *AppError wrapping one of the sentinel errors below. The HTTP layer
// inspects the sentinel with errors.Is and never looks at driver errors.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
)

// InvalidInputMessage is the generic 400 message used when no more specific
// wording applies (store-level type mismatches, missing columns, ...).
const InvalidInputMessage = "Bad Request: Invalid input"

// AppError carries the (kind, resource, identifier) triple of a failure.
type AppError struct {
	Err      error  // sentinel: ErrNotFound, ErrValidation, ErrConflict
	Message  string // Human-readable error message
	Field    string // Optional: field causing the error
	Resource string // Optional: "article", "topic", ...
	ID       string // Optional: identifier of the missing/conflicting entity
	Cause    error  // Optional: underlying store error, for logs only
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing entity, e.g. "Not Found: Article 7 does not exist".
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:      ErrNotFound,
		Message:  fmt.Sprintf("Not Found: %s %s does not exist", capitalize(resource), id),
		Resource: resource,
		ID:       id,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// MissingField reports a required body field that was absent or blank.
func MissingField(field string) *AppError {
	return ValidationFailed(field, "Bad Request: missing required field "+field)
}

// InvalidInput is a ValidationFailed with the generic message.
func InvalidInput(field string) *AppError {
	return ValidationFailed(field, InvalidInputMessage)
}

// InvalidID is returned when a path identifier is not a positive integer.
func InvalidID(resource string) *AppError {
	return &AppError{
		Err:      ErrValidation,
		Message:  fmt.Sprintf("Bad Request: %s ID must be a number!", capitalize(resource)),
		Field:    "id",
		Resource: resource,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:      ErrConflict,
		Message:  fmt.Sprintf("Conflict: %s %s already exists", capitalize(resource), id),
		Resource: resource,
		ID:       id,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
