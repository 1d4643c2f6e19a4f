package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrFailedToGenerateQRCode = errors.New("failed to generate QR code")
	// ErrMissingEndpoint is returned when no render endpoint is configured.
	ErrMissingEndpoint = errors.New("render endpoint cannot be empty")
)

// defaultSize is the size in pixels used when no size is specified
const defaultSize = 256

// Generate creates a QR code image in PNG format with the given content.
// Returns the image as a byte slice or an error if generation fails.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}

// GenerateBase64Image creates a data-URI string (base64-encoded PNG) for the
// given content, suitable for embedding directly into an <img> tag. Used as
// the default QR reference in enrollment responses when no external render
// endpoint is configured.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}

// ExternalURL builds a request URL for an external QR rendering endpoint that
// accepts the content as a `data` query parameter and serves the image
// itself. No request is made here: the caller (typically a browser) fetches
// the image, so a rendering outage never blocks the flow that produced the
// URL.
func ExternalURL(endpoint, content string, size int) (string, error) {
	if strings.TrimSpace(endpoint) == "" {
		return "", ErrMissingEndpoint
	}
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateQRCode, err)
	}
	query := u.Query()
	query.Set("data", content)
	query.Set("size", fmt.Sprintf("%dx%d", size, size))
	u.RawQuery = query.Encode()

	return u.String(), nil
}
