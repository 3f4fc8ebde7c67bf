// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package otpauth

import (
	"fmt"

	rusotp "github.com/dnrvs/rusotp-go"
)

// TotpURI renders the otpauth://totp provisioning URI for cfg. issuer and
// user must both be non-empty.
func TotpURI(cfg *rusotp.TotpConfig, issuer, user string) (string, error) {
	if issuer == "" || user == "" {
		return "", fmt.Errorf("totp uri: %w", rusotp.ErrMissingArgument)
	}
	u := &URL{
		Type:      "totp",
		Issuer:    issuer,
		Account:   user,
		RawSecret: rusotp.EncodeSecret(cfg.Secret()),
		Algorithm: cfg.Algorithm().String(),
		Digits:    cfg.Length(),
		Radix:     cfg.Radix(),
		Period:    int(cfg.Interval()),
	}
	return u.strictString(), nil
}

// TotpFromURI parses a totp:// provisioning URI and reconstructs the config
// it describes, along with the issuer and account name carried in the URI.
//
// It applies the same strict presence and issuer-agreement rules as
// HotpFromURI, substituting the required "period" parameter for "counter".
func TotpFromURI(uri string) (cfg *rusotp.TotpConfig, issuer, user string, err error) {
	typ, rawLabel, rawParams, err := splitTypeLabelParams(uri)
	if err != nil {
		return nil, "", "", fmt.Errorf("totp from uri: %v: %w", err, rusotp.ErrInvalidURI)
	}
	if typ != "totp" {
		return nil, "", "", fmt.Errorf("totp from uri: type %q: %w", typ, rusotp.ErrInvalidURI)
	}

	labelIssuer, account, err := parseStrictLabel(rawLabel)
	if err != nil {
		return nil, "", "", fmt.Errorf("totp from uri: %v: %w", err, rusotp.ErrInvalidURI)
	}

	p, err := parseStrictParams(rawParams)
	if err != nil {
		return nil, "", "", fmt.Errorf("totp from uri: %v: %w", err, rusotp.ErrInvalidURI)
	}
	if err := requireFields(p, "secret", "issuer", "algorithm", "digits", "radix", "period"); err != nil {
		return nil, "", "", fmt.Errorf("totp from uri: %w", err)
	}
	if p.issuer != labelIssuer {
		return nil, "", "", fmt.Errorf("totp from uri: label issuer %q does not match query issuer %q: %w", labelIssuer, p.issuer, rusotp.ErrInvalidURI)
	}

	alg, err := rusotp.ParseAlgorithm(p.algorithm)
	if err != nil {
		return nil, "", "", fmt.Errorf("totp from uri: %w", err)
	}
	secret, err := rusotp.DecodeSecret(p.secret)
	if err != nil {
		return nil, "", "", fmt.Errorf("totp from uri: %w", err)
	}
	cfg, err = rusotp.NewTotpConfig(alg, secret, p.digits, p.radix, uint64(p.period))
	if err != nil {
		return nil, "", "", fmt.Errorf("totp from uri: %w", err)
	}
	return cfg, p.issuer, account, nil
}
