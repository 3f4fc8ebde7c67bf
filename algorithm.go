// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
)

// Algorithm identifies the keyed-hash function used to derive an OTP. It is
// resolved once, at config construction, from one of the string labels
// accepted by ParseAlgorithm; the rest of the core never deals in strings.
type Algorithm int

const (
	// SHA1 selects HMAC-SHA1, the algorithm assumed by most authenticator
	// apps when none is specified in a provisioning URI.
	SHA1 Algorithm = iota
	// SHA256 selects HMAC-SHA256.
	SHA256
	// SHA512 selects HMAC-SHA512.
	SHA512
)

// String returns the canonical label for a, as used in otpauth:// URIs.
func (a Algorithm) String() string {
	switch a {
	case SHA1:
		return "SHA1"
	case SHA256:
		return "SHA256"
	case SHA512:
		return "SHA512"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm resolves a case-sensitive string label into an Algorithm.
// It returns ErrUnsupportedAlgorithm for any label outside {SHA1, SHA256,
// SHA512}.
func ParseAlgorithm(label string) (Algorithm, error) {
	switch label {
	case "SHA1":
		return SHA1, nil
	case "SHA256":
		return SHA256, nil
	case "SHA512":
		return SHA512, nil
	default:
		return 0, fmt.Errorf("algorithm %q: %w", label, ErrUnsupportedAlgorithm)
	}
}

// hashNew returns the constructor for the underlying hash.Hash.
func (a Algorithm) hashNew() func() hash.Hash {
	switch a {
	case SHA256:
		return sha256.New
	case SHA512:
		return sha512.New
	default:
		return sha1.New
	}
}

// newHMAC returns a keyed HMAC primitive for a and the given secret.
func (a Algorithm) newHMAC(secret []byte) hash.Hash {
	return hmac.New(a.hashNew(), secret)
}
