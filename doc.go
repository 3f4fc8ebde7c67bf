// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

// Package otp generates and verifies single-use authenticator codes using
// the HOTP and TOTP algorithms specified in RFC 4226 and RFC 6238
// respectively, generalized so the OTP alphabet may be any integer radix
// from 2 to 36 rather than only base 10.
//
// See https://tools.ietf.org/html/rfc4226, https://tools.ietf.org/html/rfc6238
package otp
