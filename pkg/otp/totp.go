package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultDigits    = 6      // Standard 6-digit TOTP codes
	DefaultPeriod    = 30     // 30-second validity window (RFC 6238 standard)
	DefaultAlgorithm = "SHA1" // HMAC-SHA1 algorithm (RFC 6238 standard)

	// DefaultSkew is the number of time steps accepted on either side of the
	// current one, covering clock drift between client and server. A skew of
	// 1 yields an acceptance window of roughly 90 seconds.
	DefaultSkew = 1

	// secretLength is the number of random bytes in a generated secret.
	// 160 bits per the RFC 4226 recommendation; encodes to 32 Base32 chars.
	secretLength = 20
)

var (
	// ValidateSecretKeyRegex matches canonical Base32 secrets as produced by
	// GenerateSecretKey: uppercase A-Z, digits 2-7, optional '=' padding.
	ValidateSecretKeyRegex = regexp.MustCompile("^[A-Z2-7]+=*$")

	codeRegex = regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, DefaultDigits))
)

// TOTPParams contains the parameters for TOTP URI generation.
type TOTPParams struct {
	Secret      string // Base32-encoded TOTP secret key (required)
	AccountName string // User identifier like email (required)
	Issuer      string // Service name displayed in authenticator apps (required)
	Algorithm   string // HMAC algorithm (optional, defaults to SHA1)
	Digits      int    // Number of digits in generated codes (optional, defaults to 6)
	Period      int    // Code validity period in seconds (optional, defaults to 30)
}

// Validate ensures all required TOTP parameters are present and valid.
func (p TOTPParams) Validate() error {
	if p.Secret == "" {
		return ErrMissingSecret
	}
	if !ValidateSecretKeyRegex.MatchString(p.Secret) {
		return ErrInvalidSecret
	}
	if p.AccountName == "" {
		return ErrMissingAccountName
	}
	if p.Issuer == "" {
		return ErrMissingIssuer
	}
	return nil
}

// GetDefaults returns a copy with RFC 6238 standard defaults applied to zero-valued fields.
func (p TOTPParams) GetDefaults() TOTPParams {
	if p.Algorithm == "" {
		p.Algorithm = DefaultAlgorithm
	}
	if p.Digits == 0 {
		p.Digits = DefaultDigits
	}
	if p.Period == 0 {
		p.Period = DefaultPeriod
	}
	return p
}

// GenerateSecretKey generates a new Base32-encoded secret key for TOTP.
func GenerateSecretKey() (string, error) {
	secret := make([]byte, secretLength)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return EncodeBase32(secret), nil
}

// GetTOTPURI creates a properly encoded TOTP URI for use with authenticator apps.
// The URI format follows the Key Uri Format specification:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func GetTOTPURI(params TOTPParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	params = params.GetDefaults()

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(params.Issuer),
		url.PathEscape(params.AccountName),
	)

	query := url.Values{}
	query.Set("secret", params.Secret)
	query.Set("issuer", params.Issuer)
	query.Set("algorithm", params.Algorithm)
	query.Set("digits", fmt.Sprintf("%d", params.Digits))
	query.Set("period", fmt.Sprintf("%d", params.Period))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// GenerateCode generates the 6-digit code for the given 30-second time step.
// A secret that decodes to an empty key is a generation failure; the function
// never falls back to a default key.
func GenerateCode(secret string, timeStep int64) (string, error) {
	key := DecodeBase32(secret)
	if len(key) == 0 {
		return "", ErrInvalidSecret
	}
	code := GenerateHOTP(key, uint64(timeStep), DefaultDigits)
	return fmt.Sprintf("%0*d", DefaultDigits, code), nil
}

// GenerateCodeAt generates the code for the 30-second window containing t.
func GenerateCodeAt(secret string, t time.Time) (string, error) {
	return GenerateCode(secret, t.Unix()/DefaultPeriod)
}

// Validate reports whether code is valid for the secret at time t.
// Codes from the previous, current, and next time step are accepted to
// handle clock drift. Comparison is constant-time per candidate step.
func Validate(secret, code string, t time.Time) (bool, error) {
	code = strings.TrimSpace(code)
	if !codeRegex.MatchString(code) {
		return false, ErrInvalidCodeFormat
	}

	key := DecodeBase32(secret)
	if len(key) == 0 {
		return false, ErrInvalidSecret
	}

	step := t.Unix() / DefaultPeriod
	for delta := int64(-DefaultSkew); delta <= DefaultSkew; delta++ {
		generated := fmt.Sprintf("%0*d", DefaultDigits, GenerateHOTP(key, uint64(step+delta), DefaultDigits))
		if subtle.ConstantTimeCompare([]byte(generated), []byte(code)) == 1 {
			return true, nil
		}
	}

	return false, nil
}
