// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package msgbuilder

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// Entry is a key and its opaque value.
type Entry struct {
	Key   string
	Value any
}

// OrderedMap is an insertion-ordered map from placeholder to value.
// A nil OrderedMap means the map is absent.
type OrderedMap []Entry

// Len returns the number of entries.
func (m OrderedMap) Len() int { return len(m) }

// Get returns the value stored under key.
func (m OrderedMap) Get(key string) (any, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}

	return nil, false
}

// Keys returns the keys in order.
func (m OrderedMap) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}

	return keys
}

// MarshalYAML encodes m as a mapping that keeps insertion order.
// It is also used when encoding with [yaml.JSON].
func (m OrderedMap) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, len(m))
	for i, e := range m {
		out[i] = yaml.MapItem{Key: e.Key, Value: e.Value}
	}

	return out, nil
}

// UnmarshalYAML decodes a mapping into m, keeping document order.
func (m *OrderedMap) UnmarshalYAML(unmarshal func(any) error) error {
	var items yaml.MapSlice
	if err := unmarshal(&items); err != nil {
		return err
	}

	if len(items) == 0 {
		*m = nil

		return nil
	}

	out := make(OrderedMap, len(items))
	for i, item := range items {
		out[i] = Entry{Key: fmt.Sprint(item.Key), Value: item.Value}
	}

	*m = out

	return nil
}

// toOrderedMap converts bindings to a map, or nil when there are none.
func toOrderedMap(items []ValueWithPlaceholder) OrderedMap {
	if len(items) == 0 {
		return nil
	}

	m := make(OrderedMap, len(items))
	for i, item := range items {
		m[i] = Entry{Key: item.Placeholder, Value: item.Value}
	}

	return m
}
