// Package twofactor implements TOTP-based two-factor authentication for user
// accounts: provisioning a shared secret with single-use backup codes,
// verifying submitted codes against a clock-drift window, and moving a
// credential between the NotConfigured, PendingVerification, Enabled, and
// Disabled states.
//
// # Architecture
//
// The package composes the pure crypto packages with a persistence contract:
//
//   • otp        – code generation and window validation (pkg/otp)
//   • backupcode – recovery code generation and hashing (pkg/backupcode)
//   • Storage    – the persistence interface; every method is one atomic
//     conditional write, so races like two requests spending the same backup
//     code are resolved by the store, not by read-modify-write in the service
//   • Service    – the orchestrator: Setup provisions, Verify challenges and
//     applies lifecycle actions
//
// State transitions form a closed machine: Setup always moves to
// PendingVerification (overwriting any prior secret, including an enabled
// one — that overwrite is deliberate, doubles as re-enrollment, and is
// logged at WARN because it bypasses the enable gate); a successful Verify
// with ActionEnable moves PendingVerification to Enabled; ActionDisable
// moves Enabled to Disabled and clears the secret and backup codes in the
// same write. Disabled is a steady state, not a deletion.
//
// # Verification
//
// Verify classifies the candidate by shape before touching storage: 6 digits
// is a TOTP code, 8 hex characters is a backup code, anything else fails
// with ErrMalformedCode. TOTP codes are checked against the previous,
// current, and next 30-second steps; backup codes are spent through the
// store's conditional removal. A well-formed code matching neither path
// fails with the generic ErrInvalidCode, which intentionally does not
// reveal which path nearly matched.
//
// # Security notes
//
// The TOTP secret is persisted in clear text; only backup codes are hashed
// (SHA-256). All secret and code generation uses crypto/rand. Code
// comparisons are constant-time.
//
// # Usage
//
//	svc := twofactor.NewService(storage, "MyApp",
//		twofactor.WithLogger(log),
//	)
//
//	enrollment, err := svc.Setup(ctx, userID, "user@example.com")
//	// show enrollment.QRCode / enrollment.Secret / enrollment.BackupCodes once
//
//	result, err := svc.Verify(ctx, userID, submitted, twofactor.ActionEnable)
package twofactor
