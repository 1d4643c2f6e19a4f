package qrcode_test

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/mfakit/mfakit/pkg/qrcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("returns error when content is empty", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.Generate("", 256)
		require.Nil(t, result)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})

	t.Run("returns error when content is whitespace only", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.Generate("   \t\n", 256)
		require.Nil(t, result)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})

	t.Run("generates valid PNG with requested size", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.Generate("otpauth://totp/App:user?secret=ABC", 256)
		require.NoError(t, err)
		require.NotEmpty(t, result)

		img, err := png.Decode(bytes.NewReader(result))
		require.NoError(t, err)
		assert.Equal(t, 256, img.Bounds().Dx())
		assert.Equal(t, 256, img.Bounds().Dy())
	})

	t.Run("applies default size when size is not positive", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.Generate("https://example.com", 0)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(result))
		require.NoError(t, err)
		assert.Equal(t, 256, img.Bounds().Dx())
	})
}

func TestGenerateBase64Image(t *testing.T) {
	t.Parallel()

	t.Run("returns data URI", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.GenerateBase64Image("https://example.com", 128)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(result, "data:image/png;base64,"))
	})

	t.Run("propagates empty content error", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.GenerateBase64Image("", 128)
		assert.Empty(t, result)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})
}

func TestExternalURL(t *testing.T) {
	t.Parallel()

	t.Run("builds URL with encoded content", func(t *testing.T) {
		t.Parallel()
		got, err := qrcode.ExternalURL("https://qr.example.com/render", "otpauth://totp/App:user@example.com?secret=ABC", 256)
		require.NoError(t, err)
		assert.Equal(t, "https://qr.example.com/render?data=otpauth%3A%2F%2Ftotp%2FApp%3Auser%40example.com%3Fsecret%3DABC&size=256x256", got)
	})

	t.Run("keeps existing query parameters", func(t *testing.T) {
		t.Parallel()
		got, err := qrcode.ExternalURL("https://qr.example.com/render?fmt=png", "hello", 64)
		require.NoError(t, err)
		assert.Contains(t, got, "fmt=png")
		assert.Contains(t, got, "data=hello")
		assert.Contains(t, got, "size=64x64")
	})

	t.Run("rejects empty endpoint", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.ExternalURL("", "hello", 64)
		assert.ErrorIs(t, err, qrcode.ErrMissingEndpoint)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.ExternalURL("https://qr.example.com", "", 64)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})
}
