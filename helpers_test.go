// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package otp

import (
	"encoding/hex"
	"errors"
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func errorsIs(err, target error) bool { return errors.Is(err, target) }
