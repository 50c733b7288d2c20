// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package msgbuilder

import "codeberg.org/pixivfe/msgc/core/choice"

// Token is one element of a message token stream.
// The set of implementations is closed: [Text], [Expression], [TagOpen],
// [TagClose] and [Choice].
type Token interface {
	isToken()
}

// Text is a literal text segment, appended verbatim.
type Text string

// Expression is an interpolated value.
type Expression struct {
	Expr *Expr
}

// TagOpen opens a markup element. Payload is forwarded into the components map
// without inspection.
type TagOpen struct {
	SelfClosing bool
	Payload     any
}

// TagClose closes the innermost open element.
type TagClose struct{}

// Choice is an ICU plural, select or selectordinal construct.
type Choice struct {
	Value  *Expr
	Format choice.Format
	Cases  []CaseOrOffset
}

func (Text) isToken()       {}
func (Expression) isToken() {}
func (TagOpen) isToken()    {}
func (TagClose) isToken()   {}
func (Choice) isToken()     {}

// CaseOrOffset is an entry of a [Choice]: either a [Case] or an [Offset].
type CaseOrOffset interface {
	isCaseOrOffset()
}

// Case is a labelled branch of a choice. Key is resolved with [choice.Resolve]
// at compile time; cases whose key is rejected are dropped.
type Case struct {
	Key    choice.Key
	Tokens []Token
}

// Offset is the ICU offset directive, rendered as "offset:N".
type Offset string

func (Case) isCaseOrOffset()   {}
func (Offset) isCaseOrOffset() {}
