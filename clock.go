// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package otp

import "time"

// Clock reports the current time as integer seconds since the Unix epoch.
// It is the single indirection over wall-clock time; TOTP generation
// and verification entry points that do not take an explicit timestamp call
// Clock to obtain "now". Tests substitute a deterministic Clock rather than
// relying on a process-wide singleton.
type Clock func() uint64

// SystemClock is the default Clock, backed by time.Now.
func SystemClock() uint64 { return uint64(time.Now().Unix()) }
