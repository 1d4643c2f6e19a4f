package twofactor

import "errors"

var (
	// ErrNotConfigured is returned by Verify when no credential row exists
	// for the user. Distinguishable from ErrInvalidCode so the caller knows
	// to run Setup first.
	ErrNotConfigured = errors.New("two-factor authentication is not configured")

	// ErrMalformedCode rejects input that is neither a 6-digit TOTP code nor
	// an 8-character backup code, before any storage access.
	ErrMalformedCode = errors.New("malformed verification code")

	// ErrInvalidCode is the single generic failure for well-formed codes
	// that match neither verification path. It deliberately does not reveal
	// which path almost succeeded.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrUnknownAction rejects action values outside the closed set.
	ErrUnknownAction = errors.New("unknown verification action")

	// ErrInvalidTransition rejects an action not allowed from the
	// credential's current state, e.g. disabling a pending credential.
	ErrInvalidTransition = errors.New("action not allowed in current state")

	// ErrStorageFailure wraps persistence errors. Callers should treat a
	// storage failure during Verify as indeterminate, not as a rejection:
	// a backup code may or may not have been consumed.
	ErrStorageFailure = errors.New("two-factor storage failure")

	// ErrFailedToProvision wraps failures while generating enrollment
	// material (secret, URI, backup codes).
	ErrFailedToProvision = errors.New("failed to provision two-factor credential")

	// ErrMissingUserID rejects calls without a resolved user identity.
	ErrMissingUserID = errors.New("missing user id")

	// Storage-level sentinels implementations must return so the service can
	// map them to the caller-facing taxonomy above.

	// ErrCredentialNotFound indicates no row exists for the user.
	ErrCredentialNotFound = errors.New("two-factor credential not found")

	// ErrBackupCodeNotFound indicates the conditional update found no
	// matching backup code hash: never issued, or already consumed. Under
	// concurrent consumption of the same code exactly one caller avoids it.
	ErrBackupCodeNotFound = errors.New("backup code not found or already used")

	// ErrStaleCredential indicates the credential changed between the
	// service's read and its guarded write (e.g. disabled concurrently).
	ErrStaleCredential = errors.New("credential changed concurrently")
)
