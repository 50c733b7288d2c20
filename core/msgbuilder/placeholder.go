// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package msgbuilder

import "strconv"

// pushExpr registers e and returns its placeholder.
//
// Identifiers are named after themselves and go to the named bucket. A
// single-entry object labels its value with the property name and goes to the
// indexed bucket. Everything else takes the next index. Every indexed
// registration advances the index, labelled ones included.
func (b *MessageBuilder) pushExpr(e *Expr) string {
	e = e.unwrap()

	if e != nil {
		switch e.Kind {
		case ExprIdent:
			b.values = append(b.values, ValueWithPlaceholder{
				Placeholder: e.Name,
				Value:       e.Payload,
			})

			return e.Name
		case ExprObject:
			if label, value, ok := labelOf(e); ok {
				b.valuesIndexed = append(b.valuesIndexed, ValueWithPlaceholder{
					Placeholder: label,
					Value:       value,
				})

				return label
			}
		}
	}

	index := strconv.Itoa(len(b.valuesIndexed))

	b.valuesIndexed = append(b.valuesIndexed, ValueWithPlaceholder{
		Placeholder: index,
		Value:       e.payload(),
	})

	return index
}

// labelOf returns the declared name and value of a labelling object: {name}
// or {name: value}. Empty objects, objects with several entries, spreads and
// non-identifier keys are not labels.
func labelOf(e *Expr) (string, any, bool) {
	if len(e.Props) != 1 {
		return "", nil, false
	}

	prop := e.Props[0]
	if prop.Key == "" {
		return "", nil, false
	}

	switch prop.Kind {
	case PropShorthand, PropKeyValue:
		return prop.Key, prop.Value.payload(), true
	default:
		return "", nil, false
	}
}
