// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package choice resolves the case keys of ICU choice constructs
(plural, select and selectordinal).

Keys coming from object literals pass through unchanged unless they are
numbers, which become exact-match cases:

	one    -> one
	0      -> =0

Keys coming from markup attributes must also pass an allow-list of plural
categories and underscore-prefixed forms, which are rewritten:

	_0     -> =0
	_male  -> male
	value  -> (dropped)

An attribute named "offset" is the offset directive, except in select choices,
which have no offset.
*/
package choice

import (
	"regexp"
	"strconv"
	"strings"
)

// Format is the ICU format keyword of a choice.
type Format = string

// Possible values for Format.
const (
	Plural        Format = "plural"
	Select        Format = "select"
	SelectOrdinal Format = "selectordinal"
)

// offsetName is the key that introduces an offset directive.
const offsetName = "offset"

// KeyKind records where a raw case key came from.
type KeyKind int

// Possible values for KeyKind.
const (
	// KeyIdent is an identifier key in an object literal, for example {one: ...}.
	KeyIdent KeyKind = iota
	// KeyString is a string key in an object literal, for example {"one": ...}.
	KeyString
	// KeyNumber is a numeric key in an object literal, for example {0: ...}.
	KeyNumber
	// KeyAttribute is an attribute name on a markup choice element.
	KeyAttribute
)

// Key is a raw case key as found in source.
type Key struct {
	Kind  KeyKind
	Value string
}

// Ident returns an identifier key.
func Ident(name string) Key { return Key{Kind: KeyIdent, Value: name} }

// String returns a quoted string key.
func String(s string) Key { return Key{Kind: KeyString, Value: s} }

// Number returns a numeric key.
func Number(n float64) Key { return Key{Kind: KeyNumber, Value: formatNumber(n)} }

// Attribute returns a markup attribute key.
func Attribute(name string) Key { return Key{Kind: KeyAttribute, Value: name} }

var (
	// Unicode-aware \d and \w.
	pluralOptionRegexp = regexp.MustCompile(`(_[\p{Nd}\p{L}\p{M}\p{Pc}]+|zero|one|two|few|many|other)`)
	numOptionRegexp    = regexp.MustCompile(`_(\p{Nd}+)`)
	wordOptionRegexp   = regexp.MustCompile(`_([\p{Nd}\p{L}\p{M}\p{Pc}]+)`)
)

// ParseFormat normalises a format name to its ICU keyword.
// Unknown names are lower-cased and returned as-is; the builder emits them
// verbatim.
func ParseFormat(name string) Format {
	return strings.ToLower(name)
}

// Resolve renders k as ICU case syntax.
//
// The second result is false when k is an attribute key rejected by
// [MarkupOption]; such cases are dropped from the choice.
func Resolve(k Key) (string, bool) {
	switch k.Kind {
	case KeyNumber:
		if n, err := strconv.ParseFloat(k.Value, 64); err == nil {
			return "=" + formatNumber(n), true
		}

		return "=" + k.Value, true
	case KeyAttribute:
		return MarkupOption(k.Value)
	default:
		return k.Value, true
	}
}

// MarkupOption reports whether an attribute name is a valid choice case and
// returns it rewritten to ICU syntax.
//
// Accepted names contain a plural category word or an underscore-prefixed
// word. The first "_N" becomes "=N", otherwise the first "_word" becomes "word".
func MarkupOption(name string) (string, bool) {
	if !pluralOptionRegexp.MatchString(name) {
		return "", false
	}

	name = replaceFirst(numOptionRegexp, name, "=")
	name = replaceFirst(wordOptionRegexp, name, "")

	return name, true
}

// IsOffset reports whether a key named name is an offset directive in a
// choice of the given format.
func IsOffset(name string, format Format) bool {
	return name == offsetName && format != Select
}

// OffsetValue validates the value of an offset directive and returns it
// formatted for ICU. Values that are not numbers are rejected.
func OffsetValue(raw string) (string, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || n < 0 {
		return "", false
	}

	return formatNumber(n), true
}

// replaceFirst replaces the first match of re in s with prefix followed by the
// first capture group.
func replaceFirst(re *regexp.Regexp, s, prefix string) string {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}

	return s[:loc[0]] + prefix + s[loc[2]:loc[3]] + s[loc[1]:]
}

// formatNumber prints n the shortest way that round-trips, without exponent.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
