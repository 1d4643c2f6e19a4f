package otp

import "strings"

// base32Alphabet is the standard RFC 4648 alphabet used for TOTP secrets.
const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// DecodeBase32 decodes a Base32 string into raw bytes. Decoding is
// case-insensitive and tolerant: characters outside the alphabet (including
// '=' padding, spaces, and dashes that authenticator apps often insert) carry
// no data and are skipped. Decoded 5-bit groups are packed into bytes;
// trailing bits that do not fill a full byte are discarded.
func DecodeBase32(s string) []byte {
	var (
		buf  uint32
		bits uint
		out  []byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		var v byte
		switch {
		case c >= 'A' && c <= 'Z':
			v = c - 'A'
		case c >= '2' && c <= '7':
			v = c - '2' + 26
		default:
			continue
		}
		buf = buf<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buf>>bits))
		}
	}
	return out
}

// EncodeBase32 encodes raw bytes as an unpadded uppercase Base32 string.
// Each 5-bit group maps to one alphabet character, so 20 random bytes produce
// a 32-character secret. Round-trips with DecodeBase32.
func EncodeBase32(b []byte) string {
	var (
		buf  uint32
		bits uint
		sb   strings.Builder
	)
	sb.Grow((len(b)*8 + 4) / 5)
	for _, c := range b {
		buf = buf<<8 | uint32(c)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(base32Alphabet[buf>>bits&0x1f])
		}
	}
	if bits > 0 {
		sb.WriteByte(base32Alphabet[buf<<(5-bits)&0x1f])
	}
	return sb.String()
}
