// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package idgen makes short identifiers for correlating log entries.
package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

const entropyBytes = 3

// Make makes a short ID from a wall-clock timestamp and a few bytes of
// entropy, e.g. "142301xQ-w".
func Make() string {
	var entropy [entropyBytes]byte

	// rand.Read never fails on supported platforms.
	_, _ = rand.Read(entropy[:])

	return maketime(time.Now()) + base64.RawURLEncoding.EncodeToString(entropy[:])
}

func maketime(t time.Time) string {
	return t.Format("150405")
}
