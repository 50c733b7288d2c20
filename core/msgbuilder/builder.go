// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package msgbuilder

import (
	"strconv"
	"strings"

	"codeberg.org/pixivfe/msgc/core/choice"
	"codeberg.org/pixivfe/msgc/core/whitespace"
)

// ValueWithPlaceholder binds a value to the placeholder that refers to it.
// Two bindings are the same binding when their placeholders are equal.
type ValueWithPlaceholder struct {
	Placeholder string
	Value       any
}

// Result is the output of a compilation.
type Result struct {
	// Message is the ICU MessageFormat string.
	Message string
	// Values maps placeholders to interpolated values, or is nil if there are none.
	Values OrderedMap
	// Components maps element indices to tag payloads, or is nil if there are none.
	Components OrderedMap
}

// Option configures [Parse].
type Option func(*MessageBuilder)

// WithWhitespace normalises the final message string with mode.
func WithWhitespace(mode whitespace.Mode) Option {
	return func(b *MessageBuilder) {
		b.whitespace = mode
	}
}

// MessageBuilder accumulates the state of a single compilation.
// Use [Parse]; a MessageBuilder is not reusable.
type MessageBuilder struct {
	message strings.Builder

	componentsStack []int
	components      []ValueWithPlaceholder

	// values holds identifier-named bindings, valuesIndexed everything else.
	values        []ValueWithPlaceholder
	valuesIndexed []ValueWithPlaceholder

	whitespace whitespace.Mode
}

// Parse compiles tokens into a [Result].
func Parse(tokens []Token, opts ...Option) Result {
	b := &MessageBuilder{whitespace: whitespace.None}
	for _, opt := range opts {
		opt(b)
	}

	b.fromTokens(tokens)

	return b.result()
}

// result reduces the builder into a Result. Named values come first, then
// indexed ones; only the first binding of each placeholder is kept.
func (b *MessageBuilder) result() Result {
	all := make([]ValueWithPlaceholder, 0, len(b.values)+len(b.valuesIndexed))
	all = append(all, b.values...)
	all = append(all, b.valuesIndexed...)

	return Result{
		Message:    b.whitespace.Apply(b.message.String()),
		Values:     toOrderedMap(dedupValues(all)),
		Components: toOrderedMap(b.components),
	}
}

func dedupValues(items []ValueWithPlaceholder) []ValueWithPlaceholder {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]

	for _, item := range items {
		if _, ok := seen[item.Placeholder]; ok {
			continue
		}

		seen[item.Placeholder] = struct{}{}

		out = append(out, item)
	}

	return out
}

func (b *MessageBuilder) fromTokens(tokens []Token) {
	for _, token := range tokens {
		switch t := token.(type) {
		case Text:
			b.message.WriteString(string(t))
		case Expression:
			b.message.WriteString("{" + b.pushExpr(t.Expr) + "}")
		case TagOpen:
			b.pushTagOpening(t)
		case TagClose:
			b.pushTagClosing()
		case Choice:
			b.pushChoice(t)
		}
	}
}

func (b *MessageBuilder) pushTagOpening(t TagOpen) {
	current := strconv.Itoa(len(b.components))

	if t.SelfClosing {
		b.message.WriteString("<" + current + "/>")
	} else {
		b.componentsStack = append(b.componentsStack, len(b.components))
		b.message.WriteString("<" + current + ">")
	}

	b.components = append(b.components, ValueWithPlaceholder{
		Placeholder: current,
		Value:       t.Payload,
	})
}

// pushTagClosing closes the innermost element. Unbalanced closing tags are
// ignored.
func (b *MessageBuilder) pushTagClosing() {
	n := len(b.componentsStack)
	if n == 0 {
		return
	}

	index := b.componentsStack[n-1]
	b.componentsStack = b.componentsStack[:n-1]

	b.message.WriteString("</" + strconv.Itoa(index) + ">")
}

// pushChoice writes {value, format, case {...} ...}. Case bodies are written
// inline into the same message.
func (b *MessageBuilder) pushChoice(c Choice) {
	placeholder := b.pushExpr(c.Value)

	b.message.WriteString("{" + placeholder + ", " + c.Format + ",")

	for _, entry := range c.Cases {
		switch e := entry.(type) {
		case Offset:
			b.message.WriteString(" offset:" + string(e))
		case Case:
			key, ok := choice.Resolve(e.Key)
			if !ok {
				continue
			}

			b.message.WriteString(" " + key + " {")
			b.fromTokens(e.Tokens)
			b.message.WriteString("}")
		}
	}

	b.message.WriteString("}")
}
