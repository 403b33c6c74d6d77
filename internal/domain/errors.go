package domain

import "errors"

var (
	// ErrUnauthenticated is returned when the caller carries no verifiable identity.
	// Gate decisions and account operations always require one.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidArgument covers malformed input: unknown level names,
	// bad email shapes, codes that are not six digits.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when no OTP record exists for the (email, purpose) key.
	ErrNotFound = errors.New("resource not found")
	// ErrExpired signals a code past its validity window.
	// Expiry is checked on read, so a stale record never validates even if the sweeper lags.
	ErrExpired = errors.New("code expired")
	// ErrAlreadyUsed enforces single-use semantics: a consumed code never validates again.
	ErrAlreadyUsed = errors.New("code already used")
	// ErrInvalidCode is a hash mismatch. The record stays verifiable until expiry.
	ErrInvalidCode = errors.New("invalid code")
	ErrRateLimited = errors.New("rate limited")
	// ErrUnavailable marks transient backing-store failures. Callers may retry;
	// the gate evaluator maps it to deny, never to allow.
	ErrUnavailable = errors.New("backing store unavailable")
	// ErrEmailDeliveryFailed surfaces sender failures to the caller.
	// The stored OTP record remains valid regardless.
	ErrEmailDeliveryFailed = errors.New("email delivery failed")
)
