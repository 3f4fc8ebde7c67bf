// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package otp

// alphabet is the digit alphabet used by the radix formatter. It is
// indexed 0..35; a formatter for radix r uses only its first r symbols.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	minLength = 1
	maxLength = 10
	minRadix  = 2
	maxRadix  = 36
)

// truncate applies the RFC 4226 §5.3 dynamic truncation procedure to an
// HMAC digest and returns the resulting 31-bit unsigned integer. It is
// identical regardless of digest length; only the last byte's low nibble
// selects the 4-byte window.
func truncate(digest []byte) uint32 {
	offset := digest[len(digest)-1] & 0x0f
	return (uint32(digest[offset]&0x7f) << 24) |
		(uint32(digest[offset+1]) << 16) |
		(uint32(digest[offset+2]) << 8) |
		uint32(digest[offset+3])
}

// formatRadix renders code as a fixed-length string of length digits in the
// given radix, left-padded with the zero symbol, most-significant digit
// first. radix must already be validated to lie in [2, 36] and
// length in [1, 10]; its caller, HotpConfig.Generate, relies on the
// validating constructors in hotp.go and totp.go for that.
func formatRadix(code uint32, length, radix int) string {
	out := make([]byte, length)
	r := uint32(radix)
	v := code
	for i := length - 1; i >= 0; i-- {
		out[i] = alphabet[v%r]
		v /= r
	}
	return string(out)
}
