// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package whitespace

import (
	"strings"
)

// CleanMarkupText cleans a raw text child of a markup element the way markup
// compilers render it.
//
// Tabs become spaces. Whitespace touching a line break is dropped, lines that
// end up empty are skipped, and the remaining lines are joined by one space.
func CleanMarkupText(value string) string {
	lines := strings.Split(value, "\n")

	lastNonEmpty := 0

	for i, line := range lines {
		if strings.ContainsFunc(line, func(r rune) bool { return r != ' ' && r != '\t' }) {
			lastNonEmpty = i
		}
	}

	var b strings.Builder

	for i, line := range lines {
		line = strings.ReplaceAll(line, "\t", " ")

		if i != 0 {
			line = strings.TrimLeft(line, " ")
		}

		if i != len(lines)-1 {
			line = strings.TrimRight(line, " ")
		}

		if line == "" {
			continue
		}

		b.WriteString(line)

		if i != lastNonEmpty {
			b.WriteByte(' ')
		}
	}

	return b.String()
}
