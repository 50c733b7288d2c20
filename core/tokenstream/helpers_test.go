// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tokenstream

import (
	"testing"

	"github.com/tidwall/gjson"
)

func parse(t *testing.T, raw string) gjson.Result {
	t.Helper()

	if !gjson.Valid(raw) {
		t.Fatalf("invalid test JSON: %s", raw)
	}

	return gjson.Parse(raw)
}
