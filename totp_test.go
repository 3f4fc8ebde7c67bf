// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package otp

import "testing"

// RFC 6238 Appendix B test vectors: HMAC-SHA1, 8 decimal digits, 30-second
// step. The config uses length 8, so each generated code is compared against
// the full published 8-digit value.
func TestTotpGenerateAtRFC6238(t *testing.T) {
	cfg, err := NewTotpConfig(SHA1, []byte(rfcSecret), 8, 10, 30)
	if err != nil {
		t.Fatalf("NewTotpConfig: %v", err)
	}
	tests := []struct {
		ts   uint64
		want string
	}{
		{59, "94287082"},
		{1111111109, "07081804"},
		{1111111111, "14050471"},
		{1234567890, "89005924"},
		{2000000000, "69279037"},
		{20000000000, "65353130"},
	}
	for _, test := range tests {
		if got := cfg.GenerateAt(test.ts); got != test.want {
			t.Errorf("GenerateAt(%d) = %q, want %q", test.ts, got, test.want)
		}
	}
}

// Concrete vectors from the spec's end-to-end table (SHA256, various radix).
func TestTotpGenerateAtRadixVectors(t *testing.T) {
	tests := []struct {
		length, radix int
		interval, ts  uint64
		want          string
	}{
		{6, 10, 30, 10000, "474706"},
		{6, 16, 1, 10000, "A4AC65"},
		{8, 36, 100, 10000, "009TEJXX"},
		{4, 36, 200, 10000, "GZ11"},
	}
	for _, test := range tests {
		cfg, err := NewTotpConfig(SHA256, []byte(rfcSecret), test.length, test.radix, test.interval)
		if err != nil {
			t.Fatalf("NewTotpConfig: %v", err)
		}
		got := cfg.GenerateAt(test.ts)
		if got != test.want {
			t.Errorf("GenerateAt(%d) interval=%d radix=%d = %q, want %q", test.ts, test.interval, test.radix, got, test.want)
		}
		if !cfg.VerifyAt(got, test.ts, 0, 0, 0) {
			t.Errorf("VerifyAt(%q, %d, 0,0,0) = false, want true", got, test.ts)
		}
		mutated := mutateLastRune(got)
		if cfg.VerifyAt(mutated, test.ts, 0, 0, 0) {
			t.Errorf("VerifyAt(%q, %d, 0,0,0) = true for mutated otp, want false", mutated, test.ts)
		}
	}
}

func TestTotpGenerateUsesClock(t *testing.T) {
	var now uint64 = 10000
	cfg, err := NewTotpConfig(SHA256, []byte(rfcSecret), 6, 10, 30)
	if err != nil {
		t.Fatalf("NewTotpConfig: %v", err)
	}
	cfg.Clock = func() uint64 { return now }
	if got, want := cfg.Generate(), cfg.GenerateAt(now); got != want {
		t.Errorf("Generate() = %q, want %q (GenerateAt(now))", got, want)
	}
}

func TestTotpVerifyDriftWindow(t *testing.T) {
	cfg, err := NewTotpConfig(SHA1, []byte(rfcSecret), 6, 10, 30)
	if err != nil {
		t.Fatalf("NewTotpConfig: %v", err)
	}
	const ts = 10000
	ahead := cfg.GenerateAt(ts + 2*30) // two steps in the future
	if cfg.VerifyAt(ahead, ts, 0, 1, 0) {
		t.Error("VerifyAt accepted an otp two steps ahead with drift_ahead=1")
	}
	if !cfg.VerifyAt(ahead, ts, 0, 2, 0) {
		t.Error("VerifyAt rejected an otp two steps ahead with drift_ahead=2")
	}

	behind := cfg.GenerateAt(ts - 30)
	if cfg.VerifyAt(behind, ts, 0, 0, 0) {
		t.Error("VerifyAt accepted an otp one step behind with drift_behind=0")
	}
	if !cfg.VerifyAt(behind, ts, 0, 0, 1) {
		t.Error("VerifyAt rejected an otp one step behind with drift_behind=1")
	}
}

func TestTotpVerifyAfterBound(t *testing.T) {
	cfg, err := NewTotpConfig(SHA1, []byte(rfcSecret), 6, 10, 30)
	if err != nil {
		t.Fatalf("NewTotpConfig: %v", err)
	}
	const ts = 10000
	otp := cfg.GenerateAt(ts - 30) // one step behind "now"

	// Without an after bound, drift_behind=1 accepts the prior step.
	if !cfg.VerifyAt(otp, ts, 0, 0, 1) {
		t.Fatal("expected VerifyAt to accept prior-step otp without an after bound")
	}
	// With after set to the current timestamp, the prior step is excluded
	// even though drift_behind would otherwise allow it.
	if cfg.VerifyAt(otp, ts, ts, 0, 1) {
		t.Error("expected VerifyAt to reject prior-step otp once after excludes it")
	}
}

func TestTotpVerifyAfterBeyondWindowIsEmpty(t *testing.T) {
	// Open question (a): when T(after) lies beyond t0+drift_ahead the window
	// is empty and nothing can match.
	cfg, err := NewTotpConfig(SHA1, []byte(rfcSecret), 6, 10, 30)
	if err != nil {
		t.Fatalf("NewTotpConfig: %v", err)
	}
	const ts = 10000
	otp := cfg.GenerateAt(ts)
	if cfg.VerifyAt(otp, ts, ts+3000, 5, 5) {
		t.Error("expected empty window when after is far beyond timestamp+drift_ahead")
	}
}

func TestTotpVerifyLengthMismatch(t *testing.T) {
	cfg, err := NewTotpConfig(SHA1, []byte(rfcSecret), 6, 10, 30)
	if err != nil {
		t.Fatalf("NewTotpConfig: %v", err)
	}
	if cfg.VerifyAt("1", 10000, 0, 0, 0) {
		t.Error("VerifyAt with wrong-length otp returned true")
	}
}

func TestNewTotpConfigValidation(t *testing.T) {
	if _, err := NewTotpConfig(SHA1, []byte(rfcSecret), 6, 10, 0); !errorsIs(err, ErrIntervalZero) {
		t.Errorf("NewTotpConfig(interval=0): got %v, want wrapping ErrIntervalZero", err)
	}
	if _, err := NewTotpConfig(SHA1, nil, 6, 10, 30); !errorsIs(err, ErrEmptySecret) {
		t.Errorf("NewTotpConfig(secret=nil): got %v, want wrapping ErrEmptySecret", err)
	}
}

func TestTotpRadixCoverage(t *testing.T) {
	for r := minRadix; r <= maxRadix; r++ {
		cfg, err := NewTotpConfig(SHA1, []byte(rfcSecret), 6, r, 30)
		if err != nil {
			t.Fatalf("NewTotpConfig(radix=%d): %v", r, err)
		}
		if got := len(cfg.GenerateAt(10000)); got != 6 {
			t.Errorf("radix %d: GenerateAt length %d, want 6", r, got)
		}
	}
}
