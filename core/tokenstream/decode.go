// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tokenstream

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"

	"codeberg.org/pixivfe/msgc/core/choice"
	"codeberg.org/pixivfe/msgc/core/descriptor"
	"codeberg.org/pixivfe/msgc/core/msgbuilder"
	"codeberg.org/pixivfe/msgc/core/whitespace"
)

var (
	// ErrInvalidDocument is returned when the input is not JSON or has neither a
	// top-level array nor a "messages" array.
	ErrInvalidDocument = errors.New("invalid token stream document")
	// ErrInvalidToken is returned for a token object with no recognised member.
	ErrInvalidToken = errors.New("invalid token")
)

// Message is one decoded message.
type Message struct {
	Source descriptor.Source
	Origin string
	// Whitespace is empty when the message does not choose a mode.
	Whitespace whitespace.Mode
	Tokens     []msgbuilder.Token

	// RawTokens is the JSON text of the token array as found in the document.
	RawTokens string
}

// Compile compiles m into a descriptor.
func (m Message) Compile(opts descriptor.Options) descriptor.Descriptor {
	return descriptor.Compile(m.Tokens, m.Source, opts, msgbuilder.WithWhitespace(m.Whitespace))
}

// Decode decodes a token stream document.
func Decode(data []byte) ([]Message, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}

	doc := gjson.ParseBytes(data)
	if doc.IsObject() {
		doc = doc.Get("messages")
	}

	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: expected an array of messages", ErrInvalidDocument)
	}

	var messages []Message

	for i, raw := range doc.Array() {
		msg, err := decodeMessage(raw)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}

		messages = append(messages, msg)
	}

	return messages, nil
}

func decodeMessage(r gjson.Result) (Message, error) {
	if !r.IsObject() {
		return Message{}, fmt.Errorf("%w: message is not an object", ErrInvalidDocument)
	}

	var mode whitespace.Mode

	if v := r.Get("whitespace"); v.Exists() {
		var err error

		if mode, err = whitespace.ParseMode(v.String()); err != nil {
			return Message{}, err
		}
	}

	rawTokens := r.Get("tokens")

	tokens, err := DecodeTokens(rawTokens)
	if err != nil {
		return Message{}, err
	}

	return Message{
		Source: descriptor.Source{
			ID:      r.Get("id").String(),
			Context: r.Get("context").String(),
			Comment: r.Get("comment").String(),
		},
		Origin:     decodeOrigin(r.Get("origin")),
		Whitespace: mode,
		Tokens:     tokens,
		RawTokens:  rawTokens.Raw,
	}, nil
}

// decodeOrigin accepts "file:line" or ["file", line].
func decodeOrigin(r gjson.Result) string {
	if !r.IsArray() {
		return r.String()
	}

	parts := r.Array()
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0].String()
	default:
		return parts[0].String() + ":" + parts[1].String()
	}
}

// DecodeTokens decodes a JSON array of tokens. A missing array is an empty
// token list.
func DecodeTokens(r gjson.Result) ([]msgbuilder.Token, error) {
	if !r.Exists() {
		return nil, nil
	}

	if !r.IsArray() {
		return nil, fmt.Errorf("%w: tokens must be an array", ErrInvalidToken)
	}

	items := r.Array()
	tokens := make([]msgbuilder.Token, 0, len(items))

	for i, item := range items {
		token, err := decodeToken(item)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}

		tokens = append(tokens, token)
	}

	return tokens, nil
}

func decodeToken(r gjson.Result) (msgbuilder.Token, error) {
	if v := r.Get("text"); v.Exists() {
		return msgbuilder.Text(v.String()), nil
	}

	if v := r.Get("markupText"); v.Exists() {
		return msgbuilder.Text(whitespace.CleanMarkupText(v.String())), nil
	}

	if v := r.Get("expr"); v.Exists() {
		return msgbuilder.Expression{Expr: decodeExpr(v)}, nil
	}

	if v := r.Get("open"); v.Exists() {
		return msgbuilder.TagOpen{
			SelfClosing: v.Get("selfClosing").Bool(),
			Payload:     materialize(v.Get("payload")),
		}, nil
	}

	if v := r.Get("close"); v.Exists() {
		return msgbuilder.TagClose{}, nil
	}

	if v := r.Get("choice"); v.Exists() {
		return decodeChoice(v)
	}

	return nil, fmt.Errorf("%w: %s", ErrInvalidToken, truncate(r.Raw, 64))
}

func decodeChoice(r gjson.Result) (msgbuilder.Token, error) {
	format := choice.ParseFormat(r.Get("format").String())

	var cases []msgbuilder.CaseOrOffset

	for i, c := range r.Get("cases").Array() {
		entry, err := decodeCase(c, format)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}

		if entry != nil {
			cases = append(cases, entry)
		}
	}

	return msgbuilder.Choice{
		Value:  decodeExpr(r.Get("value")),
		Format: format,
		Cases:  cases,
	}, nil
}

// decodeCase returns a nil entry for offsets that cannot be emitted: any
// offset in a select, and offsets whose value is not a number.
func decodeCase(r gjson.Result, format choice.Format) (msgbuilder.CaseOrOffset, error) {
	if v := r.Get("offset"); v.Exists() {
		if format == choice.Select || v.Type != gjson.Number {
			return nil, nil
		}

		return offset(v.Raw), nil
	}

	var key choice.Key

	switch ident, attr, k := r.Get("ident"), r.Get("attr"), r.Get("key"); {
	case ident.Exists():
		key = choice.Ident(ident.String())
	case attr.Exists():
		key = choice.Attribute(attr.String())
	case k.Type == gjson.Number:
		key = choice.Number(k.Float())
	case k.Exists():
		key = choice.String(k.String())
	default:
		return nil, fmt.Errorf("%w: case has no key", ErrInvalidToken)
	}

	if key.Kind != choice.KeyNumber && choice.IsOffset(key.Value, format) {
		return offset(textOf(r.Get("tokens"))), nil
	}

	tokens, err := DecodeTokens(r.Get("tokens"))
	if err != nil {
		return nil, err
	}

	return msgbuilder.Case{Key: key, Tokens: tokens}, nil
}

// offset returns an Offset for a numeric value, or nil.
func offset(raw string) msgbuilder.CaseOrOffset {
	value, ok := choice.OffsetValue(raw)
	if !ok {
		return nil
	}

	return msgbuilder.Offset(value)
}

// textOf concatenates the text tokens of an array.
func textOf(r gjson.Result) string {
	var sb strings.Builder

	r.ForEach(func(_, token gjson.Result) bool {
		sb.WriteString(token.Get("text").String())

		return true
	})

	return strings.TrimSpace(sb.String())
}

func decodeExpr(r gjson.Result) *msgbuilder.Expr {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}

	payload := payloadOf(r)

	switch r.Get("type").String() {
	case "Identifier":
		if name := r.Get("name").String(); name != "" {
			return msgbuilder.Ident(name, payload)
		}
	case "ObjectExpression":
		var props []msgbuilder.Prop

		r.Get("properties").ForEach(func(_, p gjson.Result) bool {
			props = append(props, decodeProp(p))

			return true
		})

		return msgbuilder.Object(payload, props...)
	case "TSAsExpression":
		return &msgbuilder.Expr{
			Kind:    msgbuilder.ExprTypeAssertion,
			Inner:   decodeExpr(r.Get("expression")),
			Payload: payload,
		}
	}

	return msgbuilder.Other(payload)
}

func decodeProp(r gjson.Result) msgbuilder.Prop {
	if v := r.Get("shorthand"); v.Exists() {
		value := decodeExpr(r.Get("value"))
		if value == nil {
			value = msgbuilder.Ident(v.String(), v.String())
		}

		return msgbuilder.Prop{Kind: msgbuilder.PropShorthand, Key: v.String(), Value: value}
	}

	if v := r.Get("spread"); v.Exists() {
		return msgbuilder.Prop{Kind: msgbuilder.PropSpread, Value: decodeExpr(v)}
	}

	if v := r.Get("computed"); v.Exists() {
		return msgbuilder.Prop{Kind: msgbuilder.PropOther, Value: decodeExpr(r.Get("value"))}
	}

	if k := r.Get("key"); k.Type == gjson.String {
		return msgbuilder.Prop{Kind: msgbuilder.PropKeyValue, Key: k.String(), Value: decodeExpr(r.Get("value"))}
	}

	// Numeric or otherwise unusual keys never label.
	return msgbuilder.Prop{Kind: msgbuilder.PropOther, Key: r.Get("key").String(), Value: decodeExpr(r.Get("value"))}
}

func payloadOf(r gjson.Result) any {
	if p := r.Get("payload"); p.Exists() {
		return materialize(p)
	}

	return materialize(r)
}

// materialize converts a JSON value to Go values the way the YAML decoder
// does, so that payloads read back from the compilation cache are identical.
// Objects become [yaml.MapSlice] so that key order survives re-encoding.
func materialize(r gjson.Result) any {
	if !r.Exists() {
		return nil
	}

	var v any
	if err := yaml.UnmarshalWithOptions([]byte(gjson.Get(r.Raw, "@pretty").Raw), &v, yaml.UseOrderedMap()); err != nil {
		return r.Value()
	}

	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
