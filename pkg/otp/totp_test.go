package otp_test

import (
	"testing"
	"time"

	"github.com/mfakit/mfakit/pkg/otp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rfc6238Secret is the base32 encoding of the RFC 6238 appendix B shared
// secret "12345678901234567890".
const rfc6238Secret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func TestGenerateSecretKey(t *testing.T) {
	t.Parallel()
	secret, err := otp.GenerateSecretKey()
	require.NoError(t, err)
	assert.Len(t, secret, 32)
	assert.Regexp(t, otp.ValidateSecretKeyRegex, secret)
	assert.Len(t, otp.DecodeBase32(secret), 20)
}

func TestGenerateCodeReferenceVector(t *testing.T) {
	t.Parallel()
	// RFC 6238 appendix B: at Unix time 59 (time step 1) the SHA1 variant
	// produces 94287082; the 6-digit code is the trailing six digits.
	code, err := otp.GenerateCode(rfc6238Secret, 59/otp.DefaultPeriod)
	require.NoError(t, err)
	assert.Equal(t, "287082", code)

	atTime, err := otp.GenerateCodeAt(rfc6238Secret, time.Unix(59, 0))
	require.NoError(t, err)
	assert.Equal(t, "287082", atTime)
}

func TestGenerateCodeDeterministic(t *testing.T) {
	t.Parallel()
	first, err := otp.GenerateCode(rfc6238Secret, 123456)
	require.NoError(t, err)
	for ri := 0; ri < 5; ri++ {
		code, err := otp.GenerateCode(rfc6238Secret, 123456)
		require.NoError(t, err)
		assert.Equal(t, first, code)
	}
}

func TestGenerateCodeInvalidSecret(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		secret string
	}{
		{name: "Empty", secret: ""},
		{name: "No alphabet characters", secret: "!!00--"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, err := otp.GenerateCode(tt.secret, 1)
			assert.ErrorIs(t, err, otp.ErrInvalidSecret)
			assert.Empty(t, code)
		})
	}
}

func TestValidateWindow(t *testing.T) {
	t.Parallel()
	// Code generated for time step N must validate anywhere inside steps
	// N-1..N+1 and nowhere outside.
	const step = int64(1700000000 / otp.DefaultPeriod)
	code, err := otp.GenerateCode(rfc6238Secret, step)
	require.NoError(t, err)

	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{name: "Previous step", at: time.Unix((step-1)*otp.DefaultPeriod, 0), valid: true},
		{name: "Current step start", at: time.Unix(step*otp.DefaultPeriod, 0), valid: true},
		{name: "Current step end", at: time.Unix((step+1)*otp.DefaultPeriod-1, 0), valid: true},
		{name: "Next step", at: time.Unix((step+1)*otp.DefaultPeriod, 0), valid: true},
		{name: "Two steps early", at: time.Unix((step-2)*otp.DefaultPeriod, 0), valid: false},
		{name: "Two steps late", at: time.Unix((step+2)*otp.DefaultPeriod, 0), valid: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, err := otp.Validate(rfc6238Secret, code, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestValidateRejectsMalformedCode(t *testing.T) {
	t.Parallel()
	for _, code := range []string{"", "12345", "1234567", "abcdef", "12 456"} {
		ok, err := otp.Validate(rfc6238Secret, code, time.Now())
		assert.ErrorIs(t, err, otp.ErrInvalidCodeFormat)
		assert.False(t, ok)
	}
}

func TestGetTOTPURI(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		params  otp.TOTPParams
		want    string
		wantErr error
	}{
		{
			name: "Basic URI",
			params: otp.TOTPParams{
				Secret:      "ABCDEFGHIJKLMNOP",
				AccountName: "test@example.com",
				Issuer:      "TestApp",
			},
			want: "otpauth://totp/TestApp:test@example.com?algorithm=SHA1&digits=6&issuer=TestApp&period=30&secret=ABCDEFGHIJKLMNOP",
		},
		{
			name: "URI with special characters",
			params: otp.TOTPParams{
				Secret:      "ABCDEFGHIJKLMNOP",
				AccountName: "test+user@example.com",
				Issuer:      "Test & App",
			},
			want: "otpauth://totp/Test%20&%20App:test+user@example.com?algorithm=SHA1&digits=6&issuer=Test+%26+App&period=30&secret=ABCDEFGHIJKLMNOP",
		},
		{
			name:    "Missing secret",
			params:  otp.TOTPParams{AccountName: "a@b.c", Issuer: "App"},
			wantErr: otp.ErrMissingSecret,
		},
		{
			name:    "Invalid secret",
			params:  otp.TOTPParams{Secret: "not base32!", AccountName: "a@b.c", Issuer: "App"},
			wantErr: otp.ErrInvalidSecret,
		},
		{
			name:    "Missing account name",
			params:  otp.TOTPParams{Secret: "ABCDEFGHIJKLMNOP", Issuer: "App"},
			wantErr: otp.ErrMissingAccountName,
		},
		{
			name:    "Missing issuer",
			params:  otp.TOTPParams{Secret: "ABCDEFGHIJKLMNOP", AccountName: "a@b.c"},
			wantErr: otp.ErrMissingIssuer,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := otp.GetTOTPURI(tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
