// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package msgbuilder compiles a stream of message tokens into an ICU MessageFormat
string, a map of interpolated values and a map of markup components.

# Tokens

A front-end walks source code and emits [Token] values in order: literal
[Text], interpolated [Expression] values, [TagOpen] and [TagClose] pairs for
markup elements, and [Choice] tokens for plural, select and selectordinal
constructs. Choice case bodies are token streams themselves.

# Output

	tokens := []msgbuilder.Token{
		msgbuilder.Text("Hello "),
		msgbuilder.Expression{Expr: msgbuilder.Ident("name", nil)},
		msgbuilder.TagOpen{SelfClosing: true},
	}
	res := msgbuilder.Parse(tokens)
	// res.Message == "Hello {name}<0/>"

Placeholders are chosen as follows:

  - a bare identifier uses its own name,
  - a single-entry object such as {count} or {count: n} uses the declared name,
  - anything else gets the next positional index, starting at 0.

Markup elements are numbered in the order they are opened, across choice
branches. The exact text produced is a compatibility contract with
translation tooling and must not change.

# Tolerated input

Compilation never fails. Unclassifiable expressions get positional
placeholders and a [TagClose] without a matching open tag is ignored.
*/
package msgbuilder
