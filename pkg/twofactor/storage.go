package twofactor

import (
	"context"

	"github.com/google/uuid"
)

// Storage persists two-factor credentials. Implementations must make every
// method a single atomic state-affecting write: the verification path never
// issues more than one of these per call, and relies on the conditional
// semantics below to resolve races instead of read-modify-write cycles.
//
// Guarded writes distinguish three failure sentinels: ErrCredentialNotFound
// when no row exists for the user, ErrStaleCredential when the row exists
// but no longer satisfies the method's lifecycle guard (secret cleared,
// already disabled), and ErrBackupCodeNotFound when the guard holds but the
// code hash is gone from the list.
type Storage interface {
	// UpsertCredential creates or overwrites the user's credential row,
	// refreshing UpdatedAt and preserving CreatedAt on overwrite. Setup is
	// idempotent through this call: retries simply overwrite again.
	UpsertCredential(ctx context.Context, cred *Credential) error

	// GetCredential returns the credential row for the user, or
	// ErrCredentialNotFound when none exists.
	GetCredential(ctx context.Context, userID uuid.UUID) (*Credential, error)

	// ConsumeBackupCode atomically removes codeHash from the stored list and
	// returns the number of codes remaining. The removal is conditional on
	// the hash being present: when it is not (never issued, already spent,
	// or spent by a concurrent request) the list is untouched and
	// ErrBackupCodeNotFound is returned. Two concurrent calls with the same
	// hash therefore succeed at most once.
	ConsumeBackupCode(ctx context.Context, userID uuid.UUID, codeHash string) (remaining int, err error)

	// EnableTOTP sets the enabled flag, conditional on a secret being
	// present. A non-empty spentCodeHash is removed in the same write under
	// the same conditional rules as ConsumeBackupCode. Returns the number of
	// backup codes remaining after the write.
	EnableTOTP(ctx context.Context, userID uuid.UUID, spentCodeHash string) (remaining int, err error)

	// DisableTOTP clears the secret, empties the backup code list, and
	// lowers the enabled flag in one write, conditional on the credential
	// being enabled. A non-empty spentCodeHash must be present for the
	// write to apply (it is cleared along with the rest of the list).
	DisableTOTP(ctx context.Context, userID uuid.UUID, spentCodeHash string) error
}
