package handler

import (
	"errors"
	"net/http"

	"github.com/ceptevar-api/internal/domain"
)

// httpError translates a service error into an HTTP response. The wrong-code
// case carries the remaining attempt count so clients can show it.
func httpError(w http.ResponseWriter, err error) {
	var mismatch *domain.CodeMismatchError
	if errors.As(err, &mismatch) {
		writeJSON(w, http.StatusBadRequest, MessageEnvelope{
			Error:     "wrong verification code",
			Remaining: &mismatch.Remaining,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrAlreadyVerified),
		errors.Is(err, domain.ErrCodeExpired),
		errors.Is(err, domain.ErrTooManyAttempts),
		errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
