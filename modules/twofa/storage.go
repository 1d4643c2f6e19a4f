package twofa

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfakit/mfakit/pkg/pg"
	"github.com/mfakit/mfakit/pkg/twofactor"
)

// PostgresStorage implements twofactor.Storage on a pgx connection pool.
// Every mutation is a single conditional UPDATE so concurrent requests are
// serialized by the database: a backup code hash is removed only if it is
// still present, and two racing removals of the same hash succeed at most
// once.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) UpsertCredential(ctx context.Context, cred *twofactor.Credential) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO two_factor_credentials (user_id, totp_secret, totp_enabled, backup_codes, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, now(), now())
		ON CONFLICT (user_id) DO UPDATE SET
			totp_secret  = EXCLUDED.totp_secret,
			totp_enabled = EXCLUDED.totp_enabled,
			backup_codes = EXCLUDED.backup_codes,
			updated_at   = now()`,
		cred.UserID, cred.TOTPSecret, cred.TOTPEnabled, cred.BackupCodes)
	return err
}

func (s *PostgresStorage) GetCredential(ctx context.Context, userID uuid.UUID) (*twofactor.Credential, error) {
	cred := &twofactor.Credential{UserID: userID}
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(totp_secret, ''), totp_enabled, backup_codes, created_at, updated_at
		FROM two_factor_credentials
		WHERE user_id = $1`,
		userID).Scan(&cred.TOTPSecret, &cred.TOTPEnabled, &cred.BackupCodes, &cred.CreatedAt, &cred.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, twofactor.ErrCredentialNotFound
		}
		return nil, err
	}
	return cred, nil
}

func (s *PostgresStorage) ConsumeBackupCode(ctx context.Context, userID uuid.UUID, codeHash string) (int, error) {
	var remaining int
	err := s.pool.QueryRow(ctx, `
		UPDATE two_factor_credentials
		SET backup_codes = array_remove(backup_codes, $2), updated_at = now()
		WHERE user_id = $1 AND $2 = ANY(backup_codes)
		RETURNING cardinality(backup_codes)`,
		userID, codeHash).Scan(&remaining)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return 0, s.classifyMiss(ctx, userID, codeHash, false, false)
		}
		return 0, err
	}
	return remaining, nil
}

func (s *PostgresStorage) EnableTOTP(ctx context.Context, userID uuid.UUID, spentCodeHash string) (int, error) {
	var (
		remaining int
		err       error
	)
	if spentCodeHash != "" {
		err = s.pool.QueryRow(ctx, `
			UPDATE two_factor_credentials
			SET totp_enabled = true, backup_codes = array_remove(backup_codes, $2), updated_at = now()
			WHERE user_id = $1 AND totp_secret IS NOT NULL AND $2 = ANY(backup_codes)
			RETURNING cardinality(backup_codes)`,
			userID, spentCodeHash).Scan(&remaining)
	} else {
		err = s.pool.QueryRow(ctx, `
			UPDATE two_factor_credentials
			SET totp_enabled = true, updated_at = now()
			WHERE user_id = $1 AND totp_secret IS NOT NULL
			RETURNING cardinality(backup_codes)`,
			userID).Scan(&remaining)
	}
	if err != nil {
		if pg.IsNotFoundError(err) {
			return 0, s.classifyMiss(ctx, userID, spentCodeHash, true, false)
		}
		return 0, err
	}
	return remaining, nil
}

func (s *PostgresStorage) DisableTOTP(ctx context.Context, userID uuid.UUID, spentCodeHash string) error {
	var (
		tag pgconn.CommandTag
		err error
	)
	if spentCodeHash != "" {
		tag, err = s.pool.Exec(ctx, `
			UPDATE two_factor_credentials
			SET totp_secret = NULL, totp_enabled = false, backup_codes = '{}', updated_at = now()
			WHERE user_id = $1 AND totp_enabled AND $2 = ANY(backup_codes)`,
			userID, spentCodeHash)
	} else {
		tag, err = s.pool.Exec(ctx, `
			UPDATE two_factor_credentials
			SET totp_secret = NULL, totp_enabled = false, backup_codes = '{}', updated_at = now()
			WHERE user_id = $1 AND totp_enabled`,
			userID)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.classifyMiss(ctx, userID, spentCodeHash, false, true)
	}
	return nil
}

// classifyMiss explains why a guarded update matched no row. The write has
// already not happened, so this read is diagnostic only: a missing row, a
// row that no longer satisfies the lifecycle guard, and a backup code hash
// that is no longer present each map to their own sentinel, mirroring
// MemoryStorage.
func (s *PostgresStorage) classifyMiss(ctx context.Context, userID uuid.UUID, codeHash string, needSecret, needEnabled bool) error {
	var hasSecret, enabled, hasCode bool
	err := s.pool.QueryRow(ctx, `
		SELECT totp_secret IS NOT NULL, totp_enabled, $2 = ANY(backup_codes)
		FROM two_factor_credentials
		WHERE user_id = $1`,
		userID, codeHash).Scan(&hasSecret, &enabled, &hasCode)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return twofactor.ErrCredentialNotFound
		}
		return err
	}
	if (needSecret && !hasSecret) || (needEnabled && !enabled) {
		return twofactor.ErrStaleCredential
	}
	if codeHash != "" && !hasCode {
		return twofactor.ErrBackupCodeNotFound
	}
	return twofactor.ErrStaleCredential
}

var _ twofactor.Storage = (*PostgresStorage)(nil)
