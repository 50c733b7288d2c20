// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package descriptor assembles message descriptors, the self-contained records
that runtime lookup functions and catalog tooling consume.

A descriptor is the compiled message plus a stable identifier:

	{
	  "id": "V/M0Vc",
	  "message": "{count, plural, one {# Book} other {# Books}}",
	  "values": {"count": ...}
	}

The identifier is derived from the message and its context with
[idgen.MessageID] unless the source declares one explicitly.
*/
package descriptor

import (
	"codeberg.org/pixivfe/msgc/core/idgen"
	"codeberg.org/pixivfe/msgc/core/msgbuilder"
)

// Source carries what the front-end knows about a message besides its tokens.
type Source struct {
	// ID is an explicit identifier. When empty, one is derived from the message.
	ID      string
	Context string
	Comment string
}

// Options controls which fields end up in a Descriptor.
type Options struct {
	// StripNonEssentialFields drops the message, context and comment, keeping
	// only what a runtime lookup needs.
	StripNonEssentialFields bool
}

// Descriptor is a compiled message.
type Descriptor struct {
	ID         string                `json:"id"                   yaml:"id"`
	Message    string                `json:"message,omitempty"    yaml:"message,omitempty"`
	Context    string                `json:"context,omitempty"    yaml:"context,omitempty"`
	Comment    string                `json:"comment,omitempty"    yaml:"comment,omitempty"`
	Values     msgbuilder.OrderedMap `json:"values,omitempty"     yaml:"values,omitempty"`
	Components msgbuilder.OrderedMap `json:"components,omitempty" yaml:"components,omitempty"`
}

// Assemble combines a builder result with source metadata.
func Assemble(res msgbuilder.Result, src Source, opts Options) Descriptor {
	id := src.ID
	if id == "" {
		id = idgen.MessageID(res.Message, src.Context)
	}

	d := Descriptor{
		ID:         id,
		Message:    res.Message,
		Context:    src.Context,
		Comment:    src.Comment,
		Values:     res.Values,
		Components: res.Components,
	}

	if opts.StripNonEssentialFields {
		return d.Stripped()
	}

	return d
}

// Stripped returns d without the fields a runtime lookup does not need.
func (d Descriptor) Stripped() Descriptor {
	d.Message = ""
	d.Context = ""
	d.Comment = ""

	return d
}

// Compile parses tokens and assembles the result.
func Compile(tokens []msgbuilder.Token, src Source, opts Options, parseOpts ...msgbuilder.Option) Descriptor {
	return Assemble(msgbuilder.Parse(tokens, parseOpts...), src, opts)
}

// IsExplicit reports whether src names its own identifier.
func (src Source) IsExplicit() bool {
	return src.ID != ""
}
