package backupcode

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultCount is the number of backup codes issued per enrollment.
	DefaultCount = 10

	// codeBytes is the entropy per code: 4 random bytes rendered as 8
	// uppercase hex characters.
	codeBytes = 4

	// CodeLength is the length of a plaintext backup code. Verification
	// paths disambiguate backup codes from 6-digit TOTP codes by length,
	// so this must never collide with the TOTP digit count.
	CodeLength = codeBytes * 2
)

// Generate creates count cryptographically secure single-use backup codes.
// Codes are pairwise distinct 8-character uppercase hex strings.
func Generate(count int) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}

	codes := make([]string, 0, count)
	seen := make(map[string]struct{}, count)
	for len(codes) < count {
		buf := make([]byte, codeBytes)
		if _, err := rand.Read(buf); err != nil {
			return nil, errors.Join(ErrFailedToGenerate, err)
		}
		code := fmt.Sprintf("%X", buf)
		// 32 bits of entropy makes collisions within one batch unlikely but
		// not impossible; regenerate rather than hand out a duplicate.
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

// Hash creates the SHA-256 digest stored in place of a plaintext code.
// The candidate is normalized (trimmed, uppercased) first so user input with
// stray whitespace or lowercase hex still matches.
func Hash(code string) string {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	digest := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(digest[:])
}

// Verify performs a constant-time comparison of a candidate code against a
// stored hash to prevent timing-based side channels.
func Verify(code, hashedCode string) bool {
	return subtle.ConstantTimeCompare(
		[]byte(Hash(code)),
		[]byte(hashedCode),
	) == 1
}

// Consume attempts to spend candidate against the stored hashes. On a match
// it returns the list with that single entry removed (remaining entries keep
// their order) and true; otherwise the original list and false. Every stored
// hash is compared in constant time, and the scan always visits the full
// list so a match position is not observable from timing.
func Consume(hashes []string, candidate string) ([]string, bool) {
	candidateHash := Hash(candidate)

	matched := -1
	for i, h := range hashes {
		if subtle.ConstantTimeCompare([]byte(candidateHash), []byte(h)) == 1 && matched < 0 {
			matched = i
		}
	}
	if matched < 0 {
		return hashes, false
	}

	remaining := make([]string, 0, len(hashes)-1)
	remaining = append(remaining, hashes[:matched]...)
	remaining = append(remaining, hashes[matched+1:]...)
	return remaining, true
}
