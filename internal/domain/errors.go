package domain

import (
	"errors"
	"fmt"
)

// ─── Error Kinds ────────────────────────────────────────────────────────────
// Every failure surfaced by the domain or the orchestration layer wraps one
// of these sentinels, so callers classify with errors.Is and still get a
// human-readable reason.

var (
	// ErrValidation marks malformed input: blank names, out-of-range
	// years/prices/amounts, malformed currency codes.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound marks a missing account, car, listing, payment or user.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a well-formed request against an illegal state:
	// duplicate active listing, insufficient funds, transfer to self,
	// forbidden state transition.
	ErrConflict = errors.New("conflict")

	// ErrGateway marks a payment provider failure, including unknown
	// provider handles.
	ErrGateway = errors.New("payment gateway error")

	// ErrUnauthorized marks a failed login attempt.
	ErrUnauthorized = errors.New("invalid credentials")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

func conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}
