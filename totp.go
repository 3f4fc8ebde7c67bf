// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package otp

import "fmt"

// TotpConfig holds the settings that control generation and verification of
// time-based one-time passwords (RFC 6238). It embeds the same four fields
// as HotpConfig plus the step interval; values are immutable once
// constructed.
type TotpConfig struct {
	hotp     HotpConfig
	interval uint64

	// Clock supplies "now" for Generate and Verify. It defaults to
	// SystemClock and is the only injection point for tests.
	Clock Clock
}

// NewTotpConfig validates its arguments and constructs a TotpConfig.
func NewTotpConfig(algorithm Algorithm, secret []byte, length, radix int, interval uint64) (*TotpConfig, error) {
	h, err := NewHotpConfig(algorithm, secret, length, radix)
	if err != nil {
		return nil, err
	}
	if interval == 0 {
		return nil, fmt.Errorf("new totp config: %w", ErrIntervalZero)
	}
	return &TotpConfig{hotp: *h, interval: interval, Clock: SystemClock}, nil
}

// Algorithm returns the configured HMAC algorithm.
func (c *TotpConfig) Algorithm() Algorithm { return c.hotp.Algorithm() }

// Length returns the configured OTP digit count.
func (c *TotpConfig) Length() int { return c.hotp.Length() }

// Radix returns the configured OTP radix.
func (c *TotpConfig) Radix() int { return c.hotp.Radix() }

// Secret returns a copy of the shared secret bytes.
func (c *TotpConfig) Secret() []byte { return c.hotp.Secret() }

// Interval returns the configured step interval, in seconds.
func (c *TotpConfig) Interval() uint64 { return c.interval }

// TimeStep returns T(timestamp, interval) = floor(timestamp / interval).
func (c *TotpConfig) TimeStep(timestamp uint64) uint64 {
	return timestamp / c.interval
}

func (c *TotpConfig) clock() Clock {
	if c.Clock != nil {
		return c.Clock
	}
	return SystemClock
}

// Generate returns the TOTP string for the current time step, using Clock
// (or SystemClock, if unset) to determine "now".
func (c *TotpConfig) Generate() string {
	return c.GenerateAt(c.clock()())
}

// GenerateAt returns the TOTP string for the time step containing
// timestamp.
func (c *TotpConfig) GenerateAt(timestamp uint64) string {
	return c.hotp.Generate(c.TimeStep(timestamp))
}

// Verify reports whether otp is valid for the current time, per VerifyAt.
func (c *TotpConfig) Verify(otp string, after, driftAhead, driftBehind uint64) bool {
	return c.VerifyAt(otp, c.clock()(), after, driftAhead, driftBehind)
}

// VerifyAt reports whether otp matches a TOTP candidate within the drift
// window around timestamp.
//
//   - after is a lower bound: candidates strictly earlier than
//     T(after, interval) are rejected. after == 0 means no floor applies.
//   - driftBehind prior steps and driftAhead later steps are also accepted.
//
// If the resulting window is empty (in particular when after places the
// lower bound beyond the upper bound), VerifyAt returns false.
func (c *TotpConfig) VerifyAt(otp string, timestamp, after, driftAhead, driftBehind uint64) bool {
	if len(otp) != c.Length() {
		return false
	}
	t0 := c.TimeStep(timestamp)

	lo := uint64(0)
	if t0 > driftBehind {
		lo = t0 - driftBehind
	}
	if after > 0 {
		floor := c.TimeStep(after)
		if floor > lo {
			lo = floor
		}
	}
	hi := t0 + driftAhead

	if lo > hi {
		return false
	}
	for step := lo; step <= hi; step++ {
		if c.hotp.Verify(otp, step, 0) {
			return true
		}
		if step == ^uint64(0) {
			break // step would wrap
		}
	}
	return false
}
