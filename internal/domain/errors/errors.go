package errors

import "errors"

var (
	// ErrValidation marks malformed or incomplete checkout input. Never retried.
	ErrValidation = errors.New("validation failed")
	// ErrConfiguration marks absent or placeholder provider credentials.
	// Permanent until an operator fixes configuration.
	ErrConfiguration = errors.New("gateway not configured")
	// ErrProvider marks a transient gateway failure (network, timeout, 5xx).
	// Safe for the caller to retry the checkout.
	ErrProvider = errors.New("provider unavailable")
	// ErrAuthentication marks a webhook signature mismatch.
	ErrAuthentication = errors.New("signature verification failed")
	// ErrFraudBlocked marks a checkout rejected by fraud screening.
	ErrFraudBlocked = errors.New("blocked by fraud screening")

	ErrNotFound = errors.New("not found")
)
