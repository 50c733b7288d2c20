// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package descriptor

import (
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/msgc/core/choice"
	"codeberg.org/pixivfe/msgc/core/msgbuilder"
	"codeberg.org/pixivfe/msgc/core/whitespace"
)

func booksTokens() []msgbuilder.Token {
	return []msgbuilder.Token{
		msgbuilder.Choice{
			Value:  msgbuilder.Ident("count", "count"),
			Format: choice.Plural,
			Cases: []msgbuilder.CaseOrOffset{
				msgbuilder.Case{Key: choice.Ident("one"), Tokens: []msgbuilder.Token{msgbuilder.Text("# Book")}},
				msgbuilder.Case{Key: choice.Ident("other"), Tokens: []msgbuilder.Token{msgbuilder.Text("# Books")}},
			},
		},
	}
}

func TestCompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  Source
		opts Options
		want Descriptor
	}{
		{
			name: "hashed id",
			want: Descriptor{
				ID:      "V/M0Vc",
				Message: "{count, plural, one {# Book} other {# Books}}",
				Values:  msgbuilder.OrderedMap{{Key: "count", Value: "count"}},
			},
		},
		{
			name: "explicit id bypasses hashing",
			src:  Source{ID: "books.count", Comment: "Shelf size"},
			want: Descriptor{
				ID:      "books.count",
				Message: "{count, plural, one {# Book} other {# Books}}",
				Comment: "Shelf size",
				Values:  msgbuilder.OrderedMap{{Key: "count", Value: "count"}},
			},
		},
		{
			name: "stripped fields",
			src:  Source{Context: "library", Comment: "Shelf size"},
			opts: Options{StripNonEssentialFields: true},
			want: Descriptor{
				ID:     "QCraul",
				Values: msgbuilder.OrderedMap{{Key: "count", Value: "count"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Compile(booksTokens(), tt.src, tt.opts)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// The context participates in the identifier even when it is stripped.
func TestAssembleContextChangesID(t *testing.T) {
	t.Parallel()

	res := msgbuilder.Result{Message: "my message"}

	assert.Equal(t, "vQhkQx", Assemble(res, Source{}, Options{}).ID)
	assert.Equal(t, "gGUeZH", Assemble(res, Source{Context: "custom context"}, Options{}).ID)
	assert.Equal(t, "gGUeZH", Assemble(res, Source{Context: "custom context"}, Options{StripNonEssentialFields: true}).ID)
}

// The identifier is computed after whitespace normalisation.
func TestCompileHashesNormalisedMessage(t *testing.T) {
	t.Parallel()

	tokens := []msgbuilder.Token{msgbuilder.Text("\n  my message\n")}

	got := Compile(tokens, Source{}, Options{}, msgbuilder.WithWhitespace(whitespace.JS))

	assert.Equal(t, "my message", got.Message)
	assert.Equal(t, "vQhkQx", got.ID)
}

func TestDescriptorEncoding(t *testing.T) {
	t.Parallel()

	d := Descriptor{
		ID:      "abc123",
		Message: "Hi {name} {0}",
		Values: msgbuilder.OrderedMap{
			{Key: "name", Value: "name"},
			{Key: "0", Value: "user.id"},
		},
	}

	out, err := yaml.MarshalWithOptions(d, yaml.JSON())
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"abc123","message":"Hi {name} {0}","values":{"name":"name","0":"user.id"}}`, string(out))
	assert.Less(t, strings.Index(string(out), `"name"`), strings.Index(string(out), `"0"`), "values keep insertion order")
}
