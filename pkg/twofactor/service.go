package twofactor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mfakit/mfakit/pkg/backupcode"
	"github.com/mfakit/mfakit/pkg/otp"
	"github.com/mfakit/mfakit/pkg/qrcode"
)

// Enrollment is the result of provisioning a new credential. Secret and
// BackupCodes are the only place plaintext enrollment material ever appears;
// nothing here is persisted as-is.
type Enrollment struct {
	Secret      string   // Base32 secret for manual entry
	OTPAuthURI  string   // otpauth://totp URI for authenticator apps
	BackupCodes []string // plaintext single-use recovery codes
	QRCode      string   // image reference: data URI or external render URL; empty if rendering failed
}

// Verification is the result of a successful Verify call.
// RemainingBackupCodes is meaningful only when UsedBackupCode is true.
type Verification struct {
	Verified             bool
	UsedBackupCode       bool
	RemainingBackupCodes int
	State                State // credential state after the call
}

// Service orchestrates provisioning, verification, and lifecycle transitions
// over a Storage backend. It trusts the caller-supplied user id blindly;
// session and identity verification happen upstream.
type Service struct {
	storage     Storage
	issuer      string
	backupCount int
	qrEndpoint  string
	qrSize      int
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithBackupCodeCount overrides the number of backup codes issued per
// enrollment. Values below 1 are ignored.
func WithBackupCodeCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.backupCount = count
		}
	}
}

// WithQRCodeEndpoint routes QR rendering to an external image endpoint
// instead of embedding a data URI. The endpoint receives the otpauth URI as
// a query parameter and serves the image itself.
func WithQRCodeEndpoint(endpoint string) Option {
	return func(s *Service) {
		s.qrEndpoint = endpoint
	}
}

// WithQRCodeSize sets the rendered QR image size in pixels.
func WithQRCodeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.qrSize = size
		}
	}
}

// WithClock overrides the time source, primarily for window tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a two-factor service. The issuer is the label shown in
// authenticator apps next to the account name.
func NewService(storage Storage, issuer string, opts ...Option) *Service {
	s := &Service{
		storage:     storage,
		issuer:      issuer,
		backupCount: backupcode.DefaultCount,
		qrSize:      256,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Setup provisions a fresh credential for the user: new secret, new backup
// codes, enabled flag lowered. It always overwrites any existing row, even
// an enabled one, which doubles as the re-enrollment flow; overwriting an
// enabled credential is logged at WARN because it bypasses the enable gate.
// Setup is idempotent in the sense that a retry simply provisions again.
func (s *Service) Setup(ctx context.Context, userID uuid.UUID, accountName string) (*Enrollment, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUserID
	}
	if accountName == "" {
		accountName = userID.String()
	}

	secret, err := otp.GenerateSecretKey()
	if err != nil {
		return nil, errors.Join(ErrFailedToProvision, err)
	}

	uri, err := otp.GetTOTPURI(otp.TOTPParams{
		Secret:      secret,
		AccountName: accountName,
		Issuer:      s.issuer,
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToProvision, err)
	}

	codes, err := backupcode.Generate(s.backupCount)
	if err != nil {
		return nil, errors.Join(ErrFailedToProvision, err)
	}
	hashes := make([]string, len(codes))
	for i, code := range codes {
		hashes[i] = backupcode.Hash(code)
	}

	switch existing, err := s.storage.GetCredential(ctx, userID); {
	case err == nil && existing.TOTPEnabled:
		s.logger.WarnContext(ctx, "overwriting enabled two-factor credential",
			slog.String("user_id", userID.String()))
	case err != nil && !errors.Is(err, ErrCredentialNotFound):
		return nil, errors.Join(ErrStorageFailure, err)
	}

	if err := s.storage.UpsertCredential(ctx, &Credential{
		UserID:      userID,
		TOTPSecret:  secret,
		TOTPEnabled: false,
		BackupCodes: hashes,
	}); err != nil {
		return nil, errors.Join(ErrStorageFailure, err)
	}

	return &Enrollment{
		Secret:      secret,
		OTPAuthURI:  uri,
		BackupCodes: codes,
		QRCode:      s.qrRef(ctx, uri),
	}, nil
}

// qrRef builds the QR image reference for the enrollment response. Rendering
// is best-effort: the secret and URI are returned either way for manual
// entry, so a failure degrades to an empty reference instead of an error.
func (s *Service) qrRef(ctx context.Context, uri string) string {
	var (
		ref string
		err error
	)
	if s.qrEndpoint != "" {
		ref, err = qrcode.ExternalURL(s.qrEndpoint, uri, s.qrSize)
	} else {
		ref, err = qrcode.GenerateBase64Image(uri, s.qrSize)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to build QR code reference", slog.Any("error", err))
		return ""
	}
	return ref
}

// codeKind classifies candidate input by shape. Backup codes and TOTP codes
// are disambiguated purely by length (8 hex chars vs 6 digits); this holds
// only as long as the generation parameters never change independently of
// this classification.
type codeKind int

const (
	codeMalformed codeKind = iota
	codeTOTP
	codeBackup
)

var (
	totpShape   = regexp.MustCompile(`^\d{6}$`)
	backupShape = regexp.MustCompile(`^[0-9a-fA-F]{8}$`)
)

func classifyCode(code string) codeKind {
	switch {
	case totpShape.MatchString(code):
		return codeTOTP
	case backupShape.MatchString(code):
		return codeBackup
	default:
		return codeMalformed
	}
}

// Verify checks a submitted code for the user and applies the requested
// lifecycle action on success. The TOTP path is tried first across a
// ±1-step drift window; 8-character candidates fall back to the backup code
// list. A well-formed code that matches neither path fails with the generic
// ErrInvalidCode regardless of which path nearly matched.
//
// At most one state-affecting write happens per call: the backup-code
// removal, the enable flip (optionally spending a backup code in the same
// write), or the disable clear.
func (s *Service) Verify(ctx context.Context, userID uuid.UUID, code string, action Action) (*Verification, error) {
	code = strings.TrimSpace(code)
	kind := classifyCode(code)
	if kind == codeMalformed {
		return nil, ErrMalformedCode
	}

	cred, err := s.storage.GetCredential(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return nil, ErrNotConfigured
		}
		return nil, errors.Join(ErrStorageFailure, err)
	}

	// Reject impossible transitions before any code work so a valid backup
	// code is not burned on a request that cannot succeed.
	next, err := NextState(cred.State(), action)
	if err != nil {
		return nil, err
	}

	switch kind {
	case codeTOTP:
		if cred.TOTPSecret == "" {
			return nil, ErrInvalidCode
		}
		ok, err := otp.Validate(cred.TOTPSecret, code, s.now())
		if err != nil || !ok {
			return nil, ErrInvalidCode
		}
		return s.commit(ctx, cred, action, next, "")
	case codeBackup:
		if len(cred.BackupCodes) == 0 {
			return nil, ErrInvalidCode
		}
		// Match and consumption are a single conditional write in commit;
		// the storage layer reports whether the hash was actually present.
		return s.commit(ctx, cred, action, next, backupcode.Hash(code))
	default:
		return nil, ErrMalformedCode
	}
}

// commit performs the single persistence write for a successful match.
// A non-empty spentHash marks the backup-code path; the write both proves
// the code was still unspent and removes it.
func (s *Service) commit(ctx context.Context, cred *Credential, action Action, next State, spentHash string) (*Verification, error) {
	v := &Verification{
		Verified:       true,
		UsedBackupCode: spentHash != "",
		State:          next,
	}

	switch action {
	case ActionEnable:
		remaining, err := s.storage.EnableTOTP(ctx, cred.UserID, spentHash)
		if err != nil {
			return nil, s.writeError(err)
		}
		v.RemainingBackupCodes = remaining
		s.logger.InfoContext(ctx, "two-factor authentication enabled",
			slog.String("user_id", cred.UserID.String()))
	case ActionDisable:
		if err := s.storage.DisableTOTP(ctx, cred.UserID, spentHash); err != nil {
			return nil, s.writeError(err)
		}
		v.RemainingBackupCodes = 0
		s.logger.InfoContext(ctx, "two-factor authentication disabled",
			slog.String("user_id", cred.UserID.String()))
	case ActionNone:
		if spentHash == "" {
			// Plain TOTP challenge: nothing to persist.
			break
		}
		remaining, err := s.storage.ConsumeBackupCode(ctx, cred.UserID, spentHash)
		if err != nil {
			return nil, s.writeError(err)
		}
		v.RemainingBackupCodes = remaining
	default:
		return nil, ErrUnknownAction
	}

	return v, nil
}

// writeError maps storage sentinels to the caller-facing taxonomy. A missing
// backup code hash means the code was never issued or was spent (possibly by
// a concurrent request); both collapse into the generic invalid-code failure.
func (s *Service) writeError(err error) error {
	switch {
	case errors.Is(err, ErrBackupCodeNotFound):
		return ErrInvalidCode
	case errors.Is(err, ErrCredentialNotFound):
		return ErrNotConfigured
	case errors.Is(err, ErrStaleCredential):
		return err
	default:
		return errors.Join(ErrStorageFailure, err)
	}
}
