// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"codeberg.org/pixivfe/msgc/core/descriptor"
)

// ErrUnknownFormat is returned by ParseFormat for unrecognised names.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an encoding for descriptor files.
type Format string

// Possible values for Format.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. The empty string is JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Descriptors returns the merged descriptors in output order.
func (r *Result) Descriptors(opts descriptor.Options) []descriptor.Descriptor {
	out := make([]descriptor.Descriptor, len(r.Messages))
	for i, m := range r.Messages {
		out[i] = m.Descriptor
		if opts.StripNonEssentialFields {
			out[i] = out[i].Stripped()
		}
	}

	return out
}

// WriteDescriptors encodes the descriptors as a mapping from identifier to
// descriptor.
func (r *Result) WriteDescriptors(w io.Writer, format Format, opts descriptor.Options) error {
	doc := make(yaml.MapSlice, 0, len(r.Messages))
	for _, d := range r.Descriptors(opts) {
		doc = append(doc, yaml.MapItem{Key: d.ID, Value: d})
	}

	var encodeOpts []yaml.EncodeOption

	switch format {
	case FormatJSON:
		encodeOpts = append(encodeOpts, yaml.JSON())
	case FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	out, err := yaml.MarshalWithOptions(doc, encodeOpts...)
	if err != nil {
		return fmt.Errorf("failed to encode descriptors: %w", err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write descriptors: %w", err)
	}

	return nil
}
