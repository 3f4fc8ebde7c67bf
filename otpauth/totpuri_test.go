// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package otpauth_test

import (
	"errors"
	"strings"
	"testing"

	rusotp "github.com/dnrvs/rusotp-go"
	"github.com/dnrvs/rusotp-go/otpauth"
)

// TestTotpURIScenario reproduces the URI scenario from the spec's worked
// example: totp_uri({SHA1, secret, 6, 10, 30}, "rusotp", "user@email.mail").
func TestTotpURIScenario(t *testing.T) {
	cfg, err := rusotp.NewTotpConfig(rusotp.SHA1, []byte("12345678901234567890"), 6, 10, 30)
	if err != nil {
		t.Fatalf("NewTotpConfig: %v", err)
	}
	uri, err := otpauth.TotpURI(cfg, "rusotp", "user@email.mail")
	if err != nil {
		t.Fatalf("TotpURI: %v", err)
	}
	if !strings.HasPrefix(uri, "otpauth://totp/rusotp:user%40email.mail?") {
		t.Fatalf("TotpURI = %q, wrong prefix", uri)
	}
	for _, want := range []string{"secret=GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", "issuer=rusotp", "algorithm=SHA1", "digits=6", "period=30"} {
		if !strings.Contains(uri, want) {
			t.Errorf("TotpURI = %q, missing %q", uri, want)
		}
	}

	got, issuer, user, err := otpauth.TotpFromURI(uri)
	if err != nil {
		t.Fatalf("TotpFromURI(%q): %v", uri, err)
	}
	if issuer != "rusotp" || user != "user@email.mail" {
		t.Errorf("TotpFromURI(%q) = issuer=%q user=%q, want rusotp, user@email.mail", uri, issuer, user)
	}
	if got.GenerateAt(10000) != cfg.GenerateAt(10000) {
		t.Errorf("TotpFromURI round-trip mismatch: GenerateAt(10000) = %q, want %q", got.GenerateAt(10000), cfg.GenerateAt(10000))
	}
}

// TestTotpURIRoundTripRadix covers P7 for a non-decimal radix.
func TestTotpURIRoundTripRadix(t *testing.T) {
	cfg, err := rusotp.NewTotpConfig(rusotp.SHA512, []byte("12345678901234567890"), 8, 36, 45)
	if err != nil {
		t.Fatalf("NewTotpConfig: %v", err)
	}
	uri, err := otpauth.TotpURI(cfg, "ACME Co", "jane.doe@example.com")
	if err != nil {
		t.Fatalf("TotpURI: %v", err)
	}
	got, issuer, user, err := otpauth.TotpFromURI(uri)
	if err != nil {
		t.Fatalf("TotpFromURI(%q): %v", uri, err)
	}
	if issuer != "ACME Co" || user != "jane.doe@example.com" {
		t.Errorf("TotpFromURI(%q) = issuer=%q user=%q, want ACME Co, jane.doe@example.com", uri, issuer, user)
	}
	if got.Algorithm() != cfg.Algorithm() || got.Length() != cfg.Length() || got.Radix() != cfg.Radix() || got.Interval() != cfg.Interval() {
		t.Errorf("TotpFromURI(%q) config mismatch: got %+v", uri, got)
	}
}

func TestTotpFromURIMissingPeriod(t *testing.T) {
	const uri = "otpauth://totp/acme:bob?secret=GEZDGNBV&issuer=acme&algorithm=SHA1&digits=6&radix=10"
	_, _, _, err := otpauth.TotpFromURI(uri)
	if err == nil {
		t.Fatal("TotpFromURI: got nil error, want failure for missing period")
	}
	if !errors.Is(err, rusotp.ErrInvalidURI) {
		t.Errorf("TotpFromURI: got error %v, want wrapping ErrInvalidURI", err)
	}
}

func TestTotpURIRequiresIssuerAndUser(t *testing.T) {
	cfg, err := rusotp.NewTotpConfig(rusotp.SHA1, []byte("12345678901234567890"), 6, 10, 30)
	if err != nil {
		t.Fatalf("NewTotpConfig: %v", err)
	}
	if _, err := otpauth.TotpURI(cfg, "", "user"); err == nil {
		t.Error("TotpURI with empty issuer: got nil error")
	}
	if _, err := otpauth.TotpURI(cfg, "issuer", ""); err == nil {
		t.Error("TotpURI with empty user: got nil error")
	}
}
