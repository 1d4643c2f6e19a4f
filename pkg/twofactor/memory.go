package twofactor

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is a mutex-guarded in-memory Storage implementation with the
// same conditional-write semantics as the Postgres one. Intended for tests
// and local development; state is lost on restart and not shared across
// instances.
type MemoryStorage struct {
	mu    sync.Mutex
	creds map[uuid.UUID]*Credential
	now   func() time.Time
}

// NewMemoryStorage creates an empty in-memory credential store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		creds: make(map[uuid.UUID]*Credential),
		now:   time.Now,
	}
}

func (ms *MemoryStorage) UpsertCredential(ctx context.Context, cred *Credential) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	stored := &Credential{
		UserID:      cred.UserID,
		TOTPSecret:  cred.TOTPSecret,
		TOTPEnabled: cred.TOTPEnabled,
		BackupCodes: slices.Clone(cred.BackupCodes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if existing, ok := ms.creds[cred.UserID]; ok {
		stored.CreatedAt = existing.CreatedAt
	}
	ms.creds[cred.UserID] = stored
	return nil
}

func (ms *MemoryStorage) GetCredential(ctx context.Context, userID uuid.UUID) (*Credential, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	cred, ok := ms.creds[userID]
	if !ok {
		return nil, ErrCredentialNotFound
	}
	// Copy out so callers cannot mutate stored state without going through
	// the write methods.
	out := *cred
	out.BackupCodes = slices.Clone(cred.BackupCodes)
	return &out, nil
}

func (ms *MemoryStorage) ConsumeBackupCode(ctx context.Context, userID uuid.UUID, codeHash string) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	cred, ok := ms.creds[userID]
	if !ok {
		return 0, ErrCredentialNotFound
	}
	if err := ms.removeHash(cred, codeHash); err != nil {
		return 0, err
	}
	cred.UpdatedAt = ms.now()
	return len(cred.BackupCodes), nil
}

func (ms *MemoryStorage) EnableTOTP(ctx context.Context, userID uuid.UUID, spentCodeHash string) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	cred, ok := ms.creds[userID]
	if !ok {
		return 0, ErrCredentialNotFound
	}
	if cred.TOTPSecret == "" {
		return 0, ErrStaleCredential
	}
	if spentCodeHash != "" {
		if err := ms.removeHash(cred, spentCodeHash); err != nil {
			return 0, err
		}
	}
	cred.TOTPEnabled = true
	cred.UpdatedAt = ms.now()
	return len(cred.BackupCodes), nil
}

func (ms *MemoryStorage) DisableTOTP(ctx context.Context, userID uuid.UUID, spentCodeHash string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	cred, ok := ms.creds[userID]
	if !ok {
		return ErrCredentialNotFound
	}
	if !cred.TOTPEnabled {
		return ErrStaleCredential
	}
	if spentCodeHash != "" && !slices.Contains(cred.BackupCodes, spentCodeHash) {
		return ErrBackupCodeNotFound
	}
	cred.TOTPSecret = ""
	cred.TOTPEnabled = false
	cred.BackupCodes = nil
	cred.UpdatedAt = ms.now()
	return nil
}

// removeHash deletes a single occurrence of codeHash; caller holds the lock.
func (ms *MemoryStorage) removeHash(cred *Credential, codeHash string) error {
	idx := slices.Index(cred.BackupCodes, codeHash)
	if idx < 0 {
		return ErrBackupCodeNotFound
	}
	cred.BackupCodes = slices.Delete(slices.Clone(cred.BackupCodes), idx, idx+1)
	return nil
}

var _ Storage = (*MemoryStorage)(nil)
