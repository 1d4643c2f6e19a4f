// Package qrcode provides helpers for turning enrollment content (such as
// otpauth:// URIs) into QR code references: raw PNG bytes, a data-URI string
// embeddable in HTML, or a URL pointing at an external rendering endpoint.
//
// The package is a thin wrapper around github.com/skip2/go-qrcode that adds
// sensible defaults and input validation.
//
//   • Generate validates the input and returns a PNG image in a byte slice.
//   • GenerateBase64Image builds upon Generate and returns a data-URI
//     (base64-encoded PNG) which can be used inside an <img> tag.
//   • ExternalURL builds a request URL for a third-party image rendering
//     service without making any network call itself.
//
// Errors are declared as package-level variables so they can be compared
// with errors.Is.
//
// # Usage
//
//	img, err := qrcode.Generate("otpauth://totp/...", 256)
//	dataURI, err := qrcode.GenerateBase64Image("otpauth://totp/...", 256)
//	imgURL, err := qrcode.ExternalURL("https://qr.example.com/render", uri, 256)
package qrcode
