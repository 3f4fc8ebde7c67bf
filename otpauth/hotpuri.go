// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package otpauth

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	rusotp "github.com/dnrvs/rusotp-go"
)

// HotpURI renders the otpauth://hotp provisioning URI for cfg. issuer and
// user must both be non-empty.
func HotpURI(cfg *rusotp.HotpConfig, issuer, user string, counter uint64) (string, error) {
	if issuer == "" || user == "" {
		return "", fmt.Errorf("hotp uri: %w", rusotp.ErrMissingArgument)
	}
	u := &URL{
		Type:      "hotp",
		Issuer:    issuer,
		Account:   user,
		RawSecret: rusotp.EncodeSecret(cfg.Secret()),
		Algorithm: cfg.Algorithm().String(),
		Digits:    cfg.Length(),
		Radix:     cfg.Radix(),
		Counter:   counter,
	}
	return u.strictString(), nil
}

// HotpFromURI parses a hotp:// provisioning URI and reconstructs the config
// it describes, along with the counter, issuer, and account name carried in
// the URI (the counter is not part of HotpConfig's own immutable fields).
//
// Unlike the lenient ParseURL, HotpFromURI requires every canonical
// parameter (secret, issuer, algorithm, digits, radix, counter) to be
// present, requires the label's issuer and the issuer parameter to agree,
// and requires the type segment to be exactly "hotp".
func HotpFromURI(uri string) (cfg *rusotp.HotpConfig, counter uint64, issuer, user string, err error) {
	typ, rawLabel, rawParams, err := splitTypeLabelParams(uri)
	if err != nil {
		return nil, 0, "", "", fmt.Errorf("hotp from uri: %v: %w", err, rusotp.ErrInvalidURI)
	}
	if typ != "hotp" {
		return nil, 0, "", "", fmt.Errorf("hotp from uri: type %q: %w", typ, rusotp.ErrInvalidURI)
	}

	labelIssuer, account, err := parseStrictLabel(rawLabel)
	if err != nil {
		return nil, 0, "", "", fmt.Errorf("hotp from uri: %v: %w", err, rusotp.ErrInvalidURI)
	}

	p, err := parseStrictParams(rawParams)
	if err != nil {
		return nil, 0, "", "", fmt.Errorf("hotp from uri: %v: %w", err, rusotp.ErrInvalidURI)
	}
	if err := requireFields(p, "secret", "issuer", "algorithm", "digits", "radix", "counter"); err != nil {
		return nil, 0, "", "", fmt.Errorf("hotp from uri: %w", err)
	}
	if p.issuer != labelIssuer {
		return nil, 0, "", "", fmt.Errorf("hotp from uri: label issuer %q does not match query issuer %q: %w", labelIssuer, p.issuer, rusotp.ErrInvalidURI)
	}

	alg, err := rusotp.ParseAlgorithm(p.algorithm)
	if err != nil {
		return nil, 0, "", "", fmt.Errorf("hotp from uri: %w", err)
	}
	secret, err := rusotp.DecodeSecret(p.secret)
	if err != nil {
		return nil, 0, "", "", fmt.Errorf("hotp from uri: %w", err)
	}
	cfg, err = rusotp.NewHotpConfig(alg, secret, p.digits, p.radix)
	if err != nil {
		return nil, 0, "", "", fmt.Errorf("hotp from uri: %w", err)
	}
	return cfg, p.counter, p.issuer, account, nil
}

// strictParams holds the parameters recognized by HotpFromURI/TotpFromURI,
// along with which of them were actually present in the query string.
type strictParams struct {
	seen      map[string]bool
	secret    string
	issuer    string
	algorithm string
	digits    int
	radix     int
	period    int
	counter   uint64
}

func parseStrictParams(raw string) (*strictParams, error) {
	p := &strictParams{seen: map[string]bool{}}
	if raw == "" {
		return p, nil
	}
	for _, param := range strings.Split(raw, "&") {
		kv := strings.SplitN(param, "=", 2)
		if len(kv) == 1 {
			kv = append(kv, "")
		}
		value, err := url.PathUnescape(kv[1])
		if err != nil {
			return nil, err
		}
		p.seen[kv[0]] = true
		switch kv[0] {
		case "secret":
			p.secret = value
		case "issuer":
			p.issuer = value
		case "algorithm":
			p.algorithm = strings.ToUpper(value)
		case "digits":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid integer value %q", value)
			}
			p.digits = n
		case "radix":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid integer value %q", value)
			}
			p.radix = n
		case "period":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid integer value %q", value)
			}
			p.period = n
		case "counter":
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid integer value %q", value)
			}
			p.counter = n
		default:
			return nil, fmt.Errorf("invalid parameter %q", kv[0])
		}
	}
	return p, nil
}

func requireFields(p *strictParams, names ...string) error {
	for _, name := range names {
		if !p.seen[name] {
			return fmt.Errorf("missing parameter %q: %w", name, rusotp.ErrInvalidURI)
		}
	}
	return nil
}

// parseStrictLabel splits a raw (percent-encoded) label into its issuer and
// account parts, requiring both to be present and non-empty.
func parseStrictLabel(rawLabel string) (issuer, account string, err error) {
	label, err := url.PathUnescape(rawLabel)
	if err != nil {
		return "", "", err
	}
	i := strings.Index(label, ":")
	if i < 0 {
		return "", "", fmt.Errorf("missing issuer in label %q", label)
	}
	issuer = strings.TrimSpace(label[:i])
	account = strings.TrimSpace(label[i+1:])
	if issuer == "" {
		return "", "", fmt.Errorf("empty issuer")
	}
	if account == "" {
		return "", "", fmt.Errorf("empty account name")
	}
	return issuer, account, nil
}
