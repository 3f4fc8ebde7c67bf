// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package otp

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"
)

// HotpConfig holds the settings that control generation and verification of
// HMAC-based one-time passwords (RFC 4226). Values are immutable once
// constructed; OTP derivation is a pure function of (config, counter).
type HotpConfig struct {
	algorithm Algorithm
	secret    []byte
	length    int
	radix     int
}

// NewHotpConfig validates its arguments and constructs a HotpConfig.
// secret is copied; the caller's slice may be reused or zeroed afterward.
func NewHotpConfig(algorithm Algorithm, secret []byte, length, radix int) (*HotpConfig, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("new hotp config: %w", ErrEmptySecret)
	}
	if length < minLength || length > maxLength {
		return nil, fmt.Errorf("new hotp config: length %d: %w", length, ErrInvalidLength)
	}
	if radix < minRadix || radix > maxRadix {
		return nil, fmt.Errorf("new hotp config: radix %d: %w", radix, ErrInvalidRadix)
	}
	cp := make([]byte, len(secret))
	copy(cp, secret)
	return &HotpConfig{algorithm: algorithm, secret: cp, length: length, radix: radix}, nil
}

// Algorithm returns the configured HMAC algorithm.
func (c *HotpConfig) Algorithm() Algorithm { return c.algorithm }

// Length returns the configured OTP digit count.
func (c *HotpConfig) Length() int { return c.length }

// Radix returns the configured OTP radix.
func (c *HotpConfig) Radix() int { return c.radix }

// Secret returns a copy of the shared secret bytes.
func (c *HotpConfig) Secret() []byte {
	cp := make([]byte, len(c.secret))
	copy(cp, c.secret)
	return cp
}

// Generate returns the HOTP string for the given counter value.
func (c *HotpConfig) Generate(counter uint64) string {
	return formatRadix(truncate(c.hmac(counter)), c.length, c.radix)
}

// Verify reports whether otp matches the HOTP generated for any counter
// value in the closed interval [counter, counter+retries]. An otp whose
// length does not equal c.Length() is rejected without computing any HMAC.
func (c *HotpConfig) Verify(otp string, counter, retries uint64) bool {
	if len(otp) != c.length {
		return false
	}
	for n := uint64(0); n <= retries; n++ {
		candidate := c.Generate(counter + n)
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(otp)) == 1 {
			return true
		}
		if counter+n == ^uint64(0) {
			break // counter would wrap
		}
	}
	return false
}

func (c *HotpConfig) hmac(counter uint64) []byte {
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], counter)
	h := c.algorithm.newHMAC(c.secret)
	h.Write(ctr[:])
	return h.Sum(nil)
}
