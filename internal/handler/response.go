package handler

// Every response body is JSON, written through go-chi/render. Errors share
// one shape:
//
//	{"error": "not_found", "message": "Not Found: Article 7 does not exist"}
//
// writeError is the single place failures are logged, so a failing request
// produces exactly one error line (plus the access log line).

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/middleware"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable kind, e.g. "not_found"
	Message string `json:"message"` // human-readable description
}

const (
	internalMessage = "Internal Server Error"
	timeoutMessage  = "Gateway Timeout: request timed out"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

// classify maps an error onto a status code, an error kind and the message
// the client may see. Messages of unclassified errors are never exposed.
func classify(err error) (int, string, string) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation):
			return http.StatusBadRequest, "validation_error", appErr.Message
		case errors.Is(err, apperror.ErrNotFound):
			return http.StatusNotFound, "not_found", appErr.Message
		case errors.Is(err, apperror.ErrConflict):
			return http.StatusConflict, "conflict", appErr.Message
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "timeout", timeoutMessage
	}
	return http.StatusInternalServerError, "internal_error", internalMessage
}

// writeError logs err and sends the matching error response. Client errors
// are logged at Warn, server errors at Error with the full error chain.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, kind, message := classify(err)

	attrs := []any{
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Cause != nil {
		attrs = append(attrs, slog.String("cause", appErr.Cause.Error()))
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
	} else {
		logger.Warn("request rejected", attrs...)
	}

	writeJSON(w, r, status, ErrorResponse{Error: kind, Message: message})
}

// bindError turns a render.Bind failure into an AppError. Validation errors
// from the Bind methods pass through; decoding errors (malformed JSON, wrong
// types, empty body) become the generic invalid input error.
func bindError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return &apperror.AppError{
		Err:     apperror.ErrValidation,
		Message: apperror.InvalidInputMessage,
		Cause:   err,
	}
}

// NotFound answers requests for routes that do not exist.
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, logger, &apperror.AppError{
			Err:     apperror.ErrNotFound,
			Message: "Not Found: " + r.Method + " " + r.URL.Path + " is not a route",
		})
	}
}

// MethodNotAllowed answers requests whose path exists but not for the method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusMethodNotAllowed, ErrorResponse{
		Error:   "method_not_allowed",
		Message: "Method Not Allowed",
	})
}
