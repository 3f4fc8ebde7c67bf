// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package otp

import "errors"

// Error kinds returned by construction, URI parsing, and codec operations.
// Verification of a malformed OTP is not an error condition: Verify and
// VerifyAt report it by returning false.
var (
	// ErrUnsupportedAlgorithm reports an algorithm label outside
	// {SHA1, SHA256, SHA512}.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrInvalidLength reports an OTP length outside [1, 10].
	ErrInvalidLength = errors.New("invalid otp length")

	// ErrInvalidRadix reports a radix outside [2, 36].
	ErrInvalidRadix = errors.New("invalid radix")

	// ErrEmptySecret reports a zero-length shared secret.
	ErrEmptySecret = errors.New("empty secret")

	// ErrIntervalZero reports a TOTP interval of zero seconds.
	ErrIntervalZero = errors.New("interval must be at least 1 second")

	// ErrInvalidSecretEncoding reports a base32 decode failure, including
	// lower-case input and padding characters.
	ErrInvalidSecretEncoding = errors.New("invalid secret encoding")

	// ErrInvalidURI reports any structural or semantic failure parsing an
	// otpauth:// URI.
	ErrInvalidURI = errors.New("invalid otpauth uri")

	// ErrMissingArgument reports an empty required string argument at an API
	// boundary: the issuer or user passed to HotpURI/TotpURI. An empty otp
	// passed to Verify or VerifyAt is not reported this way; it fails the
	// length check and verification returns false.
	ErrMissingArgument = errors.New("missing argument")
)
