// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package idgen derives short, stable message IDs from message content.

An ID is the first six characters of the standard base64 encoding of
SHA-256(message + U+001F + context). Identical (message, context) pairs always
produce identical IDs, so catalogues built by different tool versions agree.
*/
package idgen

import (
	"crypto/sha256"
	"encoding/base64"
)

const (
	// unitSeparator joins message and context before hashing.
	unitSeparator = "\x1f"

	// Length is the number of characters in a message ID.
	Length = 6
)

// MessageID returns the ID for message under the given disambiguation context.
// An empty context is hashed as-is; it is not the same as omitting the separator.
func MessageID(message, context string) string {
	sum := sha256.Sum256([]byte(message + unitSeparator + context))

	return base64.StdEncoding.EncodeToString(sum[:])[:Length]
}
