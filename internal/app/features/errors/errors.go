// internal/app/features/errors/errors.go
//
// JSON error envelope shared by all feature handlers. Authorization and
// schema failures surface as one uniform permission-denied response so
// the API does not leak which rule rejected a request.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/feedbacksapp/feedbacks/internal/ai"
	"github.com/feedbacksapp/feedbacks/internal/app/policy/accesspolicy"
	"go.uber.org/zap"
)

type envelope struct {
	Error body `json:"error"`
}

type body struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes an error envelope with the given status, code, and message.
func JSON(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: body{Code: code, Message: message}})
}

// OK writes v as a JSON response with the given status.
func OK(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// PermissionDenied is the single rejection shape for both authorization
// and document-shape failures.
func PermissionDenied(w http.ResponseWriter) {
	JSON(w, http.StatusForbidden, "permission-denied", "Missing or insufficient permissions.")
}

// Unauthorized reports a request with no signed-in session.
func Unauthorized(w http.ResponseWriter) {
	JSON(w, http.StatusUnauthorized, "unauthenticated", "Sign in required.")
}

// BadRequest reports a malformed request body or parameter.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, "bad-request", message)
}

// NotFound reports a missing document.
func NotFound(w http.ResponseWriter) {
	JSON(w, http.StatusNotFound, "not-found", "Not found.")
}

// Unavailable reports a hard dependency failure.
func Unavailable(w http.ResponseWriter, message string) {
	JSON(w, http.StatusServiceUnavailable, "unavailable", message)
}

// Internal logs err and reports a generic server error.
func Internal(w http.ResponseWriter, log *zap.Logger, err error) {
	if log != nil {
		log.Error("internal error", zap.Error(err))
	}
	JSON(w, http.StatusInternalServerError, "internal", "Something went wrong.")
}

// FromError maps a store or service error onto the right envelope.
// notFound lists sentinel errors that should surface as 404.
func FromError(w http.ResponseWriter, log *zap.Logger, err error, notFound ...error) {
	switch {
	case errors.Is(err, accesspolicy.ErrPermissionDenied):
		PermissionDenied(w)
	case errors.Is(err, ai.ErrUnavailable):
		Unavailable(w, "AI service unavailable.")
	default:
		for _, sentinel := range notFound {
			if errors.Is(err, sentinel) {
				NotFound(w)
				return
			}
		}
		Internal(w, log, err)
	}
}
