package controller

import (
	"errors"
	"net/http"

	"github.com/openlearnlab/practice-engine/internal/model"
)

// statusFor maps the engine's error taxonomy onto HTTP codes. Everything in
// the taxonomy is recoverable for the client; only unexpected persistence
// failures surface as 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidKey):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrActorMismatch), errors.Is(err, model.ErrRevealNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, model.ErrUnknownTopic),
		errors.Is(err, model.ErrInstanceNotFound),
		errors.Is(err, model.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrUnknownHandler), errors.Is(err, model.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrAttemptsExhausted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
