package twofactor

import (
	"time"

	"github.com/google/uuid"
)

// Credential is the per-user two-factor authentication row. The user id is
// owned by the identity system; this package only references it.
//
// The TOTP secret is stored in clear text. Only backup codes are hashed.
// Encrypting the secret with a server-held key is a known hardening gap that
// callers with stricter requirements should address at the storage layer.
type Credential struct {
	UserID      uuid.UUID
	TOTPSecret  string   // Base32 secret; empty means absent
	TOTPEnabled bool     // true only in StateEnabled
	BackupCodes []string // SHA-256 digests, never plaintext
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// State derives the lifecycle state from the stored fields. A nil credential
// (no row) is NotConfigured; a row with the flag set is Enabled; a row with a
// secret but no flag is awaiting its first successful verification; a row
// with neither is Disabled, which is a valid steady state rather than a
// deletion.
func (c *Credential) State() State {
	switch {
	case c == nil:
		return StateNotConfigured
	case c.TOTPEnabled:
		return StateEnabled
	case c.TOTPSecret != "":
		return StatePendingVerification
	default:
		return StateDisabled
	}
}
