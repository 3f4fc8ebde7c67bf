// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package otp

import (
	"encoding/base32"
	"fmt"
	"strings"
)

// EncodeSecret renders key as unpadded, upper-case base32 text, the
// canonical secret encoding used inside otpauth:// URIs.
func EncodeSecret(key []byte) string {
	return strings.TrimRight(base32.StdEncoding.EncodeToString(key), "=")
}

// DecodeSecret parses s as unpadded, upper-case base32 text. Any character
// outside the RFC 4648 §6 alphabet, including lower case and padding,
// yields ErrInvalidSecretEncoding.
func DecodeSecret(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("decode secret: %w", ErrEmptySecret)
	}
	for _, c := range s {
		if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ234567", c) {
			return nil, fmt.Errorf("decode secret: %w", ErrInvalidSecretEncoding)
		}
	}
	padded := s
	if n := len(padded) % 8; n != 0 {
		padded += "========"[:8-n]
	}
	dec, err := base32.StdEncoding.DecodeString(padded)
	if err != nil {
		return nil, fmt.Errorf("decode secret: %v: %w", err, ErrInvalidSecretEncoding)
	}
	return dec, nil
}

// ParseKeyLenient parses a key encoded as base32, the format typically
// presented by two-factor setup tools: whitespace is ignored, case is
// normalized, and padding is added if required. It is deliberately more
// forgiving than DecodeSecret and is meant for keys a human has copied by
// hand, such as the otpcmd demo's command-line arguments.
func ParseKeyLenient(s string) ([]byte, error) {
	clean := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	if clean == "" {
		return nil, fmt.Errorf("parse key: %w", ErrEmptySecret)
	}
	if n := len(clean) % 8; n != 0 {
		clean += "========"[:8-n]
	}
	dec, err := base32.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("parse key: %v: %w", err, ErrInvalidSecretEncoding)
	}
	return dec, nil
}
