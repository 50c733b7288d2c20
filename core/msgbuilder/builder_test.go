// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package msgbuilder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"codeberg.org/pixivfe/msgc/core/choice"
	"codeberg.org/pixivfe/msgc/core/whitespace"
)

// Payloads in these tests are the source text of the expression.

func expr(e *Expr) Expression { return Expression{Expr: e} }

func ident(name string) Expression { return expr(Ident(name, name)) }

func other(src string) Expression { return expr(Other(src)) }

func open(tag string) TagOpen { return TagOpen{Payload: "<" + tag + ">"} }

func selfClosing(tag string) TagOpen { return TagOpen{SelfClosing: true, Payload: "<" + tag + " />"} }

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		tokens         []Token
		wantMessage    string
		wantValues     OrderedMap
		wantComponents OrderedMap
	}{
		{
			name:        "empty",
			tokens:      nil,
			wantMessage: "",
		},
		{
			name:        "text only",
			tokens:      []Token{Text("Hello "), Text("World")},
			wantMessage: "Hello World",
		},
		{
			name:        "repeated identifier is deduplicated",
			tokens:      []Token{Text("Refresh "), ident("foo"), Text(" inbox "), ident("foo")},
			wantMessage: "Refresh {foo} inbox {foo}",
			wantValues:  OrderedMap{{Key: "foo", Value: "foo"}},
		},
		{
			name:        "positional placeholders follow traversal order",
			tokens:      []Token{other("props.name"), Text(" "), other("getName()")},
			wantMessage: "{0} {1}",
			wantValues:  OrderedMap{{Key: "0", Value: "props.name"}, {Key: "1", Value: "getName()"}},
		},
		{
			name: "labels consume an index slot but not its name",
			tokens: []Token{
				expr(Object("{name}", Prop{Kind: PropShorthand, Key: "name", Value: Ident("name", "name")})),
				other("a.b"),
				expr(Object("{x: c.d}", Prop{Kind: PropKeyValue, Key: "x", Value: Other("c.d")})),
				ident("who"),
			},
			wantMessage: "{name}{1}{x}{who}",
			wantValues: OrderedMap{
				{Key: "who", Value: "who"},
				{Key: "name", Value: "name"},
				{Key: "1", Value: "a.b"},
				{Key: "x", Value: "c.d"},
			},
		},
		{
			name: "named binding wins over an indexed one with the same placeholder",
			tokens: []Token{
				expr(Object("{foo: bar}", Prop{Kind: PropKeyValue, Key: "foo", Value: Other("bar")})),
				ident("foo"),
			},
			wantMessage: "{foo}{foo}",
			wantValues:  OrderedMap{{Key: "foo", Value: "foo"}},
		},
		{
			name: "objects that are not labels are positional",
			tokens: []Token{
				expr(Object("{}")),
				expr(Object("{a, b}",
					Prop{Kind: PropShorthand, Key: "a", Value: Ident("a", "a")},
					Prop{Kind: PropShorthand, Key: "b", Value: Ident("b", "b")},
				)),
				expr(Object("{...rest}", Prop{Kind: PropSpread, Value: Ident("rest", "rest")})),
				expr(Object(`{"k": v}`, Prop{Kind: PropOther, Key: "k", Value: Ident("v", "v")})),
			},
			wantMessage: "{0}{1}{2}{3}",
			wantValues: OrderedMap{
				{Key: "0", Value: "{}"},
				{Key: "1", Value: "{a, b}"},
				{Key: "2", Value: "{...rest}"},
				{Key: "3", Value: `{"k": v}`},
			},
		},
		{
			name:        "type assertions are unwrapped",
			tokens:      []Token{expr(&Expr{Kind: ExprTypeAssertion, Inner: Ident("foo", "foo"), Payload: "foo as string"})},
			wantMessage: "{foo}",
			wantValues:  OrderedMap{{Key: "foo", Value: "foo"}},
		},
		{
			name:        "nil expression is positional",
			tokens:      []Token{Expression{}},
			wantMessage: "{0}",
			wantValues:  OrderedMap{{Key: "0", Value: nil}},
		},
		{
			name: "tags are numbered in opening order",
			tokens: []Token{
				Text("Hello "), open("strong"), Text("World!"), TagClose{}, selfClosing("br"),
				open("p"), Text("My name is "), open("a"), open("em"), ident("name"), TagClose{}, TagClose{}, TagClose{},
			},
			wantMessage: "Hello <0>World!</0><1/><2>My name is <3><4>{name}</4></3></2>",
			wantValues:  OrderedMap{{Key: "name", Value: "name"}},
			wantComponents: OrderedMap{
				{Key: "0", Value: "<strong>"},
				{Key: "1", Value: "<br />"},
				{Key: "2", Value: "<p>"},
				{Key: "3", Value: "<a>"},
				{Key: "4", Value: "<em>"},
			},
		},
		{
			name: "plural cases share the component counter",
			tokens: []Token{
				Choice{
					Value:  Ident("count", "count"),
					Format: choice.Plural,
					Cases: []CaseOrOffset{
						Case{Key: choice.Ident("one"), Tokens: []Token{open("strong"), Text("#"), TagClose{}, Text(" slot added")}},
						Case{Key: choice.Ident("other"), Tokens: []Token{open("strong"), Text("#"), TagClose{}, Text(" slots added")}},
					},
				},
			},
			wantMessage: "{count, plural, one {<0>#</0> slot added} other {<1>#</1> slots added}}",
			wantValues:  OrderedMap{{Key: "count", Value: "count"}},
			wantComponents: OrderedMap{
				{Key: "0", Value: "<strong>"},
				{Key: "1", Value: "<strong>"},
			},
		},
		{
			name: "components opened before a choice are counted",
			tokens: []Token{
				open("b"), Text("x"), TagClose{},
				Choice{
					Value:  Ident("n", "n"),
					Format: choice.Plural,
					Cases:  []CaseOrOffset{Case{Key: choice.Ident("other"), Tokens: []Token{selfClosing("hr")}}},
				},
			},
			wantMessage:    "<0>x</0>{n, plural, other {<1/>}}",
			wantValues:     OrderedMap{{Key: "n", Value: "n"}},
			wantComponents: OrderedMap{{Key: "0", Value: "<b>"}, {Key: "1", Value: "<hr />"}},
		},
		{
			name: "offset and exact matches",
			tokens: []Token{
				Choice{
					Value:  Other("users.length"),
					Format: choice.Plural,
					Cases: []CaseOrOffset{
						Offset("1"),
						Case{Key: choice.Number(0), Tokens: []Token{Text("Nobody")}},
						Case{Key: choice.Ident("other"), Tokens: []Token{Text("# others")}},
					},
				},
			},
			wantMessage: "{0, plural, offset:1 =0 {Nobody} other {# others}}",
			wantValues:  OrderedMap{{Key: "0", Value: "users.length"}},
		},
		{
			name: "choice cases may contain expressions",
			tokens: []Token{
				Choice{
					Value:  Ident("gender", "gender"),
					Format: choice.Select,
					Cases: []CaseOrOffset{
						Case{Key: choice.Ident("male"), Tokens: []Token{Text("he")}},
						Case{Key: choice.Ident("female"), Tokens: []Token{ident("variable")}},
						Case{Key: choice.Ident("third"), Tokens: []Token{other("fn()")}},
						Case{Key: choice.Ident("other"), Tokens: []Token{other("foo.bar")}},
					},
				},
			},
			wantMessage: "{gender, select, male {he} female {{variable}} third {{0}} other {{1}}}",
			wantValues: OrderedMap{
				{Key: "gender", Value: "gender"},
				{Key: "variable", Value: "variable"},
				{Key: "0", Value: "fn()"},
				{Key: "1", Value: "foo.bar"},
			},
		},
		{
			name: "offset key in select is an ordinary case",
			tokens: []Token{
				Choice{
					Value:  Ident("kind", "kind"),
					Format: choice.Select,
					Cases: []CaseOrOffset{
						Case{Key: choice.Ident("offset"), Tokens: []Token{Text("shifted")}},
						Case{Key: choice.Ident("other"), Tokens: []Token{Text("plain")}},
					},
				},
			},
			wantMessage: "{kind, select, offset {shifted} other {plain}}",
			wantValues:  OrderedMap{{Key: "kind", Value: "kind"}},
		},
		{
			name: "nested choices",
			tokens: []Token{
				Choice{
					Value:  Ident("count", "count"),
					Format: choice.Plural,
					Cases: []CaseOrOffset{
						Case{Key: choice.Ident("one"), Tokens: []Token{
							Choice{
								Value:  Ident("count2", "count2"),
								Format: choice.SelectOrdinal,
								Cases: []CaseOrOffset{
									Case{Key: choice.Ident("one"), Tokens: []Token{Text("#st")}},
									Case{Key: choice.Ident("other"), Tokens: []Token{Text("#th")}},
								},
							},
						}},
						Case{Key: choice.Ident("other"), Tokens: []Token{Text("many")}},
					},
				},
			},
			wantMessage: "{count, plural, one {{count2, selectordinal, one {#st} other {#th}}} other {many}}",
			wantValues:  OrderedMap{{Key: "count", Value: "count"}, {Key: "count2", Value: "count2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Parse(tt.tokens)

			assert.Equal(t, tt.wantMessage, got.Message)

			if diff := cmp.Diff(tt.wantValues, got.Values); diff != "" {
				t.Errorf("Values mismatch (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(tt.wantComponents, got.Components); diff != "" {
				t.Errorf("Components mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Unbalanced markup is tolerated rather than rejected. These cases pin the
// lenient behaviour so that a change to it is deliberate.
func TestParseToleratesMismatchedTags(t *testing.T) {
	t.Parallel()

	t.Run("close without open is dropped", func(t *testing.T) {
		t.Parallel()

		got := Parse([]Token{TagClose{}, Text("a"), open("b"), Text("c"), TagClose{}, TagClose{}})
		assert.Equal(t, "a<0>c</0>", got.Message)
		assert.Equal(t, []string{"0"}, got.Components.Keys())
	})

	t.Run("unclosed open stays open", func(t *testing.T) {
		t.Parallel()

		got := Parse([]Token{open("b"), Text("c")})
		assert.Equal(t, "<0>c", got.Message)
		assert.Equal(t, 1, got.Components.Len())
	})
}

// Case keys rejected by the markup allow-list are dropped silently.
func TestParseDropsRejectedCaseKeys(t *testing.T) {
	t.Parallel()

	got := Parse([]Token{
		Choice{
			Value:  Ident("count", "count"),
			Format: choice.Plural,
			Cases: []CaseOrOffset{
				Case{Key: choice.Attribute("value"), Tokens: []Token{Text("ignored")}},
				Case{Key: choice.Attribute("_0"), Tokens: []Token{Text("none")}},
				Case{Key: choice.Attribute("one"), Tokens: []Token{Text("one")}},
			},
		},
	})

	assert.Equal(t, "{count, plural, =0 {none} one {one}}", got.Message)
}

func TestParseIsDeterministic(t *testing.T) {
	t.Parallel()

	tokens := []Token{
		Text("Hi "), ident("name"), Text(", "), open("a"), other("x.y"), TagClose{},
		Choice{
			Value:  Other("n"),
			Format: choice.Plural,
			Cases:  []CaseOrOffset{Offset("2"), Case{Key: choice.Ident("other"), Tokens: []Token{selfClosing("i")}}},
		},
	}

	first := Parse(tokens)
	second := Parse(tokens)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("recompilation differs (-first +second):\n%s", diff)
	}

	assert.Equal(t, "Hi {name}, <0>{0}</0>{1, plural, offset:2 other {<1/>}}", first.Message)
}

func TestParseWithWhitespace(t *testing.T) {
	t.Parallel()

	tokens := []Token{Text("\n    Hello "), open("b"), Text("World"), TagClose{}, Text("\n  ")}

	assert.Equal(t, "\n    Hello <0>World</0>\n  ", Parse(tokens).Message)
	assert.Equal(t, "Hello <0>World</0>", Parse(tokens, WithWhitespace(whitespace.Markup)).Message)
	assert.Equal(t, "Hello <0>World</0>", Parse(tokens, WithWhitespace(whitespace.JS)).Message)
}

func TestOrderedMap(t *testing.T) {
	t.Parallel()

	m := OrderedMap{{Key: "b", Value: 1}, {Key: "a", Value: 2}}

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = m.Get("c")
	assert.False(t, ok)

	assert.Equal(t, []string{"b", "a"}, m.Keys())

	var empty OrderedMap
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Keys())
}
