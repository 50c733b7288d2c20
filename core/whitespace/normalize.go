// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package whitespace

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// space matches Unicode White_Space, not just the ASCII set matched by \s.
const space = `[\t\n\v\f\r\x{85}\p{Z}]`

const newline = `(?:\r\n|\r|\n)`

var (
	// JS template mode.
	jsContinuationRegexp = regexp.MustCompile(`(?:\\` + newline + `)+` + space + `+`)
	jsNewlineRegexp      = regexp.MustCompile(newline + `+` + space + `+`)

	// Markup mode.
	markupAroundTagsRegexp = regexp.MustCompile(`([>}])` + newline + `+` + space + `*|` + newline + `+` + space + `*([<{])`)
	markupNewlineRegexp    = regexp.MustCompile(space + `*` + newline + `+` + space + `*`)
	markupEscapedNewline   = regexp.MustCompile(`\\n`)
	markupTrailingInBraces = regexp.MustCompile(space + `+}`)
	markupLeadingInBraces  = regexp.MustCompile(`\{` + space + `+`)
)

// ErrUnknownMode is returned by ParseMode for unrecognised names.
var ErrUnknownMode = errors.New("unknown whitespace mode")

// Mode selects a normaliser.
type Mode string

// Possible values for Mode.
const (
	None   Mode = "none"
	JS     Mode = "js"
	Markup Mode = "markup"
)

// ParseMode parses a mode name. The empty string is None.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", None:
		return None, nil
	case JS:
		return JS, nil
	case Markup:
		return Markup, nil
	}

	return None, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Apply normalises s according to m. None returns s unchanged.
func (m Mode) Apply(s string) string {
	switch m {
	case JS:
		return NormalizeJS(s)
	case Markup:
		return NormalizeMarkup(s)
	default:
		return s
	}
}

// NormalizeJS collapses template literal whitespace.
//
// A run of backslash line continuations followed by indentation becomes one
// space. A run of newlines followed by indentation becomes one newline. The
// result is trimmed.
func NormalizeJS(s string) string {
	s = jsContinuationRegexp.ReplaceAllLiteralString(s, " ")
	s = jsNewlineRegexp.ReplaceAllLiteralString(s, "\n")

	return strings.TrimSpace(s)
}

// NormalizeMarkup collapses whitespace in text taken from markup.
//
// Line breaks and indentation next to '>' or '}' on the left, or '<' or '{' on
// the right, are removed. Other line breaks with surrounding whitespace become a
// single space. The two-character sequence `\n` becomes a real newline.
// Whitespace right before '}' and right after '{' is removed, which cleans choice
// case bodies. The result is trimmed.
func NormalizeMarkup(s string) string {
	s = markupAroundTagsRegexp.ReplaceAllString(s, "${1}${2}")
	s = markupNewlineRegexp.ReplaceAllLiteralString(s, " ")
	s = markupEscapedNewline.ReplaceAllLiteralString(s, "\n")
	s = markupTrailingInBraces.ReplaceAllLiteralString(s, "}")
	s = markupLeadingInBraces.ReplaceAllLiteralString(s, "{")

	return strings.TrimSpace(s)
}
