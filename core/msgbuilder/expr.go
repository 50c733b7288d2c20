// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package msgbuilder

// ExprKind is the shape of an interpolated expression, as far as placeholder
// naming is concerned.
type ExprKind int

// Possible values for ExprKind.
const (
	// ExprOther is any expression without a special naming rule.
	ExprOther ExprKind = iota
	// ExprIdent is a bare reference to a named binding.
	ExprIdent
	// ExprObject is an object literal, possibly a labelling wrapper.
	ExprObject
	// ExprTypeAssertion is a type assertion such as `x as T`; Inner is classified instead.
	ExprTypeAssertion
)

// PropKind is the shape of an object literal property.
type PropKind int

// Possible values for PropKind.
const (
	// PropOther is a property with a non-identifier key (string, number or computed).
	PropOther PropKind = iota
	// PropShorthand is {name}.
	PropShorthand
	// PropKeyValue is {name: value} with an identifier key.
	PropKeyValue
	// PropSpread is {...value}.
	PropSpread
)

// Expr is an interpolated expression. Payload is the front-end's own
// representation and is moved into the values map without inspection.
type Expr struct {
	Kind    ExprKind
	Name    string
	Props   []Prop
	Inner   *Expr
	Payload any
}

// Prop is a property of an object literal expression.
type Prop struct {
	Kind  PropKind
	Key   string
	Value *Expr
}

// Ident returns an identifier expression.
func Ident(name string, payload any) *Expr {
	return &Expr{Kind: ExprIdent, Name: name, Payload: payload}
}

// Object returns an object literal expression.
func Object(payload any, props ...Prop) *Expr {
	return &Expr{Kind: ExprObject, Props: props, Payload: payload}
}

// Other returns an expression with no naming rule.
func Other(payload any) *Expr {
	return &Expr{Kind: ExprOther, Payload: payload}
}

// unwrap strips type assertions.
func (e *Expr) unwrap() *Expr {
	for e != nil && e.Kind == ExprTypeAssertion && e.Inner != nil {
		e = e.Inner
	}

	return e
}

// payload returns e's payload, tolerating nil.
func (e *Expr) payload() any {
	if e == nil {
		return nil
	}

	return e.Payload
}
