// Package otp implements Time-based One-Time Passwords (RFC 6238) and the
// underlying HOTP algorithm (RFC 4226) from cryptographic primitives, with no
// dependency on third-party OTP libraries.
//
// The package is split into three pure, independently testable layers:
//
//   • encoding – DecodeBase32/EncodeBase32 implement the standard 32-character
//     alphabet. Decoding is case-insensitive and skips characters outside the
//     alphabet, so secrets copied out of authenticator apps with spaces,
//     dashes, or padding still decode to the intended key.
//
//   • hotp     – HMACSHA1, DynamicTruncate, and GenerateHOTP implement the
//     RFC 4226 pipeline: 8-byte big-endian counter, HMAC-SHA1 digest,
//     offset-based truncation with the sign bit cleared, modulo reduction.
//
//   • totp     – GenerateSecretKey creates 160-bit secrets, GetTOTPURI builds
//     otpauth:// URIs for onboarding to Google Authenticator and compatible
//     apps, GenerateCode/GenerateCodeAt derive the 6-digit code for a time
//     step, and Validate checks a submitted code against a ±1-step clock
//     drift window.
//
// All functions are deterministic given their inputs (GenerateSecretKey
// excepted) and perform no I/O.
//
// # Usage
//
//	secret, err := otp.GenerateSecretKey()
//	if err != nil {
//		// handle error
//	}
//
//	uri, err := otp.GetTOTPURI(otp.TOTPParams{
//		Secret:      secret,
//		AccountName: "user@example.com",
//		Issuer:      "MyApp",
//	})
//
//	ok, err := otp.Validate(secret, submittedCode, time.Now())
//
// # Error Handling
//
// Errors are declared as package-level sentinel variables in errors.go and
// can be compared with errors.Is. A secret that decodes to an empty key
// yields ErrInvalidSecret rather than silently producing codes from an
// empty key.
package otp
