package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// Verification lifecycle errors.
	ErrInvalidFormat     = errors.New("invalid identifier format")
	ErrAlreadyRegistered = errors.New("identifier already registered to another account")
	ErrAlreadyVerified   = errors.New("identifier already verified")
	ErrCodeExpired       = errors.New("verification code expired")
	ErrTooManyAttempts   = errors.New("too many verification attempts")
	ErrCodeMismatch      = errors.New("verification code mismatch")

	// ErrStorage marks persistence failures that abort the whole operation.
	ErrStorage = errors.New("storage failure")
)

// CodeMismatchError carries how many attempts the caller has left before
// the record locks out.
type CodeMismatchError struct {
	Remaining int
}

func (e *CodeMismatchError) Error() string {
	return fmt.Sprintf("wrong code, %d attempts remaining", e.Remaining)
}

func (e *CodeMismatchError) Unwrap() error { return ErrCodeMismatch }
