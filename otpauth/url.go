// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

// Package otpauth handles the URL format used to specify OTP parameters.
//
// This package conforms to the specification at:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
//
// The general form of an OTP URL is:
//
//	otpauth://TYPE/LABEL?PARAMETERS
//
// In addition to the parameters defined by that specification, this package
// supports a non-standard "radix" parameter generalizing the OTP digit
// alphabet beyond decimal (see the package-level HotpURI/TotpURI/
// HotpFromURI/TotpFromURI functions for the strict, radix-aware codec used
// by this module's HOTP/TOTP configs).
package otpauth

import (
	"encoding/base32"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultAlgorithm = "SHA1"
	defaultDigits    = 6
	defaultPeriod    = 30
	defaultRadix     = 10
)

// escapeValue percent-encodes s so that only the RFC 3986 unreserved
// characters (ALPHA / DIGIT / "-" / "." / "_" / "~") pass through
// unescaped. url.PathEscape leaves "@" and a few other reserved characters
// untouched, which otpauth:// labels and parameter values do not tolerate
// (an account name like "user@email.mail" must render as "user%40email.mail").
func escapeValue(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, "%%%02X", c)
		}
	}
	return sb.String()
}

// A URL contains the parsed representation of an otpauth URL. It is a
// general-purpose container: fields absent from a parsed URL are populated
// with the same defaults Google Authenticator assumes, so this type remains
// useful for reading URLs this module did not itself produce (e.g. from a
// human-maintained config file). Code that needs the stricter guarantees
// the radix extension requires should use HotpFromURI / TotpFromURI below.
type URL struct {
	Type      string // normalized to lowercase, e.g., "totp"
	Issuer    string // also called "provider" in some docs
	Account   string // without provider prefix
	RawSecret string // base32-encoded, no padding
	Algorithm string // normalized to uppercase; default is "SHA1"
	Digits    int    // default is 6
	Radix     int    // non-standard extension; default is 10
	Period    int    // in seconds; default is 30
	Counter   uint64
}

// Secret decodes the contents of the RawSecret field as base32.
func (u *URL) Secret() ([]byte, error) {
	clean := strings.ToUpper(strings.Join(strings.Fields(u.RawSecret), ""))
	if n := len(clean) % 8; n != 0 {
		clean += "========"[:8-n]
	}
	return base32.StdEncoding.DecodeString(clean)
}

// SetSecret encodes key as base32 and updates the RawSecret field.
func (u *URL) SetSecret(key []byte) {
	enc := base32.StdEncoding.EncodeToString(key)
	u.RawSecret = strings.TrimRight(enc, "=")
}

// String converts u to a URL in the standard encoding. Parameters are
// written in the canonical order: secret, issuer, algorithm, digits,
// radix, counter|period.
func (u *URL) String() string {
	var sb strings.Builder
	sb.WriteString("otpauth://")
	typ := strings.ToLower(u.Type)
	sb.WriteString(typ)
	sb.WriteByte('/')
	sb.WriteString(u.labelString())

	var params []string
	if s := u.RawSecret; s != "" {
		enc := strings.ToUpper(strings.Join(strings.Fields(strings.TrimRight(s, "=")), ""))
		params = append(params, "secret="+escapeValue(enc))
	}
	if o := u.Issuer; o != "" {
		params = append(params, "issuer="+escapeValue(o))
	}
	if a := strings.ToUpper(u.Algorithm); a != "" && a != defaultAlgorithm {
		params = append(params, "algorithm="+escapeValue(a))
	}
	if d := u.Digits; d > 0 && d != defaultDigits {
		params = append(params, "digits="+strconv.Itoa(d))
	}
	if r := u.Radix; r > 0 && r != defaultRadix {
		params = append(params, "radix="+strconv.Itoa(r))
	}
	if typ == "hotp" {
		params = append(params, "counter="+strconv.FormatUint(u.Counter, 10))
	} else if p := u.Period; p > 0 && p != defaultPeriod {
		params = append(params, "period="+strconv.Itoa(p))
	}
	if len(params) != 0 {
		sb.WriteByte('?')
		sb.WriteString(strings.Join(params, "&"))
	}
	return sb.String()
}

// strictString renders u with every canonical parameter present
// (secret, issuer, algorithm, digits, radix, counter|period), regardless of
// whether a value matches its Google-Authenticator default. It is used by
// HotpURI/TotpURI, which always round-trip through HotpFromURI/TotpFromURI
// and therefore cannot rely on defaulting.
func (u *URL) strictString() string {
	var sb strings.Builder
	sb.WriteString("otpauth://")
	typ := strings.ToLower(u.Type)
	sb.WriteString(typ)
	sb.WriteByte('/')
	sb.WriteString(u.labelString())

	enc := strings.ToUpper(strings.Join(strings.Fields(strings.TrimRight(u.RawSecret, "=")), ""))
	params := []string{
		"secret=" + escapeValue(enc),
		"issuer=" + escapeValue(u.Issuer),
		"algorithm=" + escapeValue(strings.ToUpper(u.Algorithm)),
		"digits=" + strconv.Itoa(u.Digits),
		"radix=" + strconv.Itoa(u.Radix),
	}
	if typ == "hotp" {
		params = append(params, "counter="+strconv.FormatUint(u.Counter, 10))
	} else {
		params = append(params, "period="+strconv.Itoa(u.Period))
	}
	sb.WriteByte('?')
	sb.WriteString(strings.Join(params, "&"))
	return sb.String()
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (u *URL) UnmarshalText(data []byte) error {
	p, err := ParseURL(string(data))
	if err != nil {
		return err
	}
	*u = *p
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface.
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *URL) labelString() string {
	label := escapeValue(u.Account)
	if u.Issuer != "" {
		return escapeValue(u.Issuer) + ":" + label
	}
	return label
}

func (u *URL) parseLabel(s string) error {
	account, err := url.PathUnescape(s)
	if err != nil {
		return err
	}
	if i := strings.Index(account, ":"); i >= 0 {
		u.Issuer = strings.TrimSpace(account[:i])
		if u.Issuer == "" {
			return errors.New("empty issuer")
		}
		account = account[i+1:]
	}
	u.Account = strings.TrimSpace(account)
	if u.Account == "" {
		return errors.New("empty account name")
	}
	return nil
}

// splitTypeLabelParams breaks a raw otpauth URL (with or without scheme)
// into its lowercased type segment, raw (still percent-encoded) label, and
// raw query string. It is shared by ParseURL and the stricter
// Hotp/TotpFromURI codec in hotpuri.go and totpuri.go.
func splitTypeLabelParams(s string) (typ, rawLabel, params string, err error) {
	if ps := strings.SplitN(s, "://", 2); len(ps) == 2 {
		if ps[0] != "otpauth" {
			return "", "", "", fmt.Errorf("invalid scheme %q", ps[0])
		}
		s = ps[1]
	}

	var typeLabel string
	if ps := strings.SplitN(s, "?", 2); len(ps) == 2 {
		typeLabel, params = ps[0], ps[1]
	} else {
		typeLabel = ps[0]
	}

	ps := strings.SplitN(strings.TrimPrefix(typeLabel, "//"), "/", 2)
	if len(ps) != 2 || ps[0] == "" || ps[1] == "" {
		return "", "", "", errors.New("invalid type/label")
	}
	return strings.ToLower(ps[0]), ps[1], params, nil
}

// ParseURL parses s as a URL in the otpauth scheme.
//
// The input may omit a scheme, but if present the scheme must be otpauth://.
// The parser reports an error for invalid syntax, including unknown URL
// parameters, but does not otherwise validate the results: the Type and
// Algorithm fields are not checked against any closed set.
//
// Fields corresponding to unset parameters are populated with Google
// Authenticator's default values. If a different issuer is set on the
// label and in the parameters, the parameter takes priority.
func ParseURL(s string) (*URL, error) {
	typ, rawLabel, params, err := splitTypeLabelParams(s)
	if err != nil {
		return nil, err
	}

	out := &URL{
		Type:      typ,
		Algorithm: defaultAlgorithm,
		Digits:    defaultDigits,
		Radix:     defaultRadix,
		Period:    defaultPeriod,
	}
	if err := out.parseLabel(rawLabel); err != nil {
		return nil, fmt.Errorf("invalid label: %v", err)
	}
	if params == "" {
		return out, nil
	}

	for _, param := range strings.Split(params, "&") {
		ps := strings.SplitN(param, "=", 2)
		if len(ps) == 1 {
			ps = append(ps, "")
		}
		value, err := url.PathUnescape(ps[1])
		if err != nil {
			return nil, fmt.Errorf("invalid value: %v", err)
		}

		if ps[0] == "algorithm" {
			out.Algorithm = strings.ToUpper(value)
			continue
		} else if ps[0] == "issuer" {
			out.Issuer = value
			continue
		} else if ps[0] == "secret" {
			out.RawSecret = value
			continue
		}

		n, err := strconv.ParseUint(value, 10, 64)
		switch ps[0] {
		case "counter":
			out.Counter = n
		case "digits":
			out.Digits = int(n)
		case "radix":
			out.Radix = int(n)
		case "period":
			out.Period = int(n)
		default:
			return nil, fmt.Errorf("invalid parameter %q", ps[0])
		}
		if err != nil {
			return nil, fmt.Errorf("invalid integer value %q", value)
		}
	}
	return out, nil
}
