package twofa

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfakit/mfakit/pkg/logger"
	"github.com/mfakit/mfakit/pkg/ratelimiter"
	"github.com/mfakit/mfakit/pkg/twofactor"
)

// Service exposes two-factor enrollment and verification as a JSON API.
// It wraps the core twofactor.Service with identity resolution and
// per-user, per-action rate limiting.
type Service struct {
	cfg           Config
	core          *twofactor.Service
	identity      IdentityResolver
	setupLimiter  *ratelimiter.Limiter
	verifyLimiter *ratelimiter.Limiter
	log           *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates the module service. A non-nil store enables rate
// limiting for setup and verification, keyed per user and action; pass nil
// to disable limiting (tests, internal tooling).
func NewService(cfg Config, core *twofactor.Service, identity IdentityResolver, store ratelimiter.Store, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:      cfg,
		core:     core,
		identity: identity,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	if store != nil {
		var err error
		s.setupLimiter, err = ratelimiter.New(store, ratelimiter.Config{
			Limit:  cfg.SetupRateLimit,
			Window: cfg.RateLimitWindow,
		})
		if err != nil {
			return nil, err
		}
		s.verifyLimiter, err = ratelimiter.New(store, ratelimiter.Config{
			Limit:  cfg.VerifyRateLimit,
			Window: cfg.RateLimitWindow,
		})
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Handle returns the HTTP handler for mounting.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.With(s.limit(s.setupLimiter, "twofa_setup")).Post("/setup", s.handleSetup)
	r.With(s.limit(s.verifyLimiter, "twofa_verify")).Post("/verify", s.handleVerify)

	return r
}

// limit builds per-route rate limit middleware keyed by action and user id.
// Unauthenticated requests pass through unkeyed; the handler rejects them
// with 401 before touching any state.
func (s *Service) limit(l *ratelimiter.Limiter, action string) func(http.Handler) http.Handler {
	if l == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return ratelimiter.Middleware(l, func(r *http.Request) string {
		identity, err := s.identity(r)
		if err != nil {
			return ""
		}
		return ratelimiter.Key(action, identity.ID.String())
	})
}

type setupResponse struct {
	Secret      string   `json:"secret"`
	OTPAuthURI  string   `json:"otp_auth_uri"`
	BackupCodes []string `json:"backup_codes"`
	QRCodeURL   string   `json:"qr_code_url,omitempty"`
}

func (s *Service) handleSetup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := s.identity(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	enrollment, err := s.core.Setup(ctx, identity.ID, identity.Email)
	if err != nil {
		s.log.ErrorContext(ctx, "two-factor setup failed",
			logger.UserID(identity.ID.String()), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to provision two-factor authentication")
		return
	}

	writeJSON(w, http.StatusOK, setupResponse{
		Secret:      enrollment.Secret,
		OTPAuthURI:  enrollment.OTPAuthURI,
		BackupCodes: enrollment.BackupCodes,
		QRCodeURL:   enrollment.QRCode,
	})
}

type verifyRequest struct {
	Code   string `json:"code"`
	Action string `json:"action"`
}

type verifyResponse struct {
	Verified             bool   `json:"verified"`
	UsedBackupCode       bool   `json:"used_backup_code"`
	RemainingBackupCodes *int   `json:"remaining_backup_codes,omitempty"`
	State                string `json:"state"`
}

func (s *Service) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := s.identity(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	action, err := twofactor.ParseAction(req.Action)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}

	verification, err := s.core.Verify(ctx, identity.ID, req.Code, action)
	if err != nil {
		s.verifyError(w, r, identity, err)
		return
	}

	resp := verifyResponse{
		Verified:       true,
		UsedBackupCode: verification.UsedBackupCode,
		State:          string(verification.State),
	}
	if verification.UsedBackupCode {
		remaining := verification.RemainingBackupCodes
		resp.RemainingBackupCodes = &remaining
	}
	writeJSON(w, http.StatusOK, resp)
}

// verifyError maps core verification failures to HTTP responses. Expected
// rejections (bad code, bad state) are client errors; anything else is a
// storage-side failure worth logging.
func (s *Service) verifyError(w http.ResponseWriter, r *http.Request, identity Identity, err error) {
	switch {
	case errors.Is(err, twofactor.ErrMalformedCode):
		writeError(w, http.StatusBadRequest, "malformed code")
	case errors.Is(err, twofactor.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, "invalid code")
	case errors.Is(err, twofactor.ErrNotConfigured):
		writeError(w, http.StatusBadRequest, "two-factor authentication is not configured")
	case errors.Is(err, twofactor.ErrInvalidTransition):
		writeError(w, http.StatusBadRequest, "action is not valid for the current state")
	default:
		s.log.ErrorContext(r.Context(), "two-factor verification failed",
			logger.UserID(identity.ID.String()), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "verification failed")
	}
}

type errorResponse struct {
	Error    string `json:"error"`
	Verified bool   `json:"verified"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
