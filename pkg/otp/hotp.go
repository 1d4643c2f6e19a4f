package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"math"
)

// HMACSHA1 computes the HMAC-SHA1 digest of message under key and returns the
// 20-byte result. SHA-1 is obsolete for signatures but remains the mandatory
// pseudorandom function for RFC 6238 interoperability.
func HMACSHA1(key, message []byte) []byte {
	mac := hmac.New(sha1.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// DynamicTruncate extracts a 31-bit integer from an HMAC digest as defined by
// RFC 4226 section 5.3: the low nibble of the final byte selects an offset,
// four bytes starting there are read big-endian, and the sign bit is cleared.
func DynamicTruncate(digest []byte) uint32 {
	offset := digest[len(digest)-1] & 0x0f
	return uint32(digest[offset]&0x7f)<<24 |
		uint32(digest[offset+1])<<16 |
		uint32(digest[offset+2])<<8 |
		uint32(digest[offset+3])
}

// GenerateHOTP implements the RFC 4226 HMAC-based One-Time Password algorithm:
// the counter is encoded as an 8-byte big-endian integer, hashed with
// HMAC-SHA1, dynamically truncated, and reduced modulo 10^digits.
func GenerateHOTP(key []byte, counter uint64, digits int) int {
	var counterBytes [8]byte
	binary.BigEndian.PutUint64(counterBytes[:], counter)

	code := DynamicTruncate(HMACSHA1(key, counterBytes[:]))

	return int(code) % int(math.Pow10(digits))
}
