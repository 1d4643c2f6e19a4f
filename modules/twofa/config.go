package twofa

import "time"

type Config struct {
	Issuer          string `env:"TWOFA_ISSUER,required"`                // Issuer is the service name shown in authenticator apps.
	BackupCodeCount int    `env:"TWOFA_BACKUP_CODE_COUNT" envDefault:"10"` // BackupCodeCount is the number of recovery codes issued per enrollment.
	QRCodeEndpoint  string `env:"TWOFA_QR_ENDPOINT"`                    // QRCodeEndpoint is an external QR render service; empty means inline data URIs.
	QRCodeSize      int    `env:"TWOFA_QR_SIZE" envDefault:"256"`       // QRCodeSize is the QR image edge length in pixels.

	SetupRateLimit  int           `env:"TWOFA_SETUP_RATE_LIMIT" envDefault:"5"`   // SetupRateLimit caps enrollment calls per user per window.
	VerifyRateLimit int           `env:"TWOFA_VERIFY_RATE_LIMIT" envDefault:"10"` // VerifyRateLimit caps verification attempts per user per window.
	RateLimitWindow time.Duration `env:"TWOFA_RATE_LIMIT_WINDOW" envDefault:"1m"` // RateLimitWindow is the fixed window length for both limits.
}
