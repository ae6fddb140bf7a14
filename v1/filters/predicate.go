package filters

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/recordatlas/browse/v1/registry"
)

// Predicate is one immutable filter condition: attribute, operator, and a
// value already coerced to the attribute's semantic type. Display is a
// derived, non-authoritative rendering for UI chips.
type Predicate struct {
	ID        string   `json:"id"`
	Attribute string   `json:"attribute"`
	Operator  Operator `json:"operator"`
	Value     Value    `json:"value"`
	Display   string   `json:"display"`
}

// NewPredicate validates the operator against the attribute's discovered type,
// coerces the input once, and returns the immutable predicate. Invalid
// operator/type combinations are rejected here, never at
// query-compile time.
//
// Attributes missing from the registry validate permissively and coerce as
// strings; their real type is learned after the first fetch.
func NewPredicate(reg registry.Registry, attribute string, op Operator, input any) (Predicate, error) {
	if !op.Valid() {
		return Predicate{}, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}

	attrType := TypeAny
	if attr, ok := reg.Lookup(attribute); ok {
		attrType = attr.Type
	}

	if !op.ValidFor(attrType) {
		return Predicate{}, fmt.Errorf("%w: %s on %s %q", ErrOperatorMismatch, op, attrType, attribute)
	}

	var (
		value Value
		err   error
	)
	switch {
	case op.MultiValued():
		value, err = CoerceList(input, attrType.Elem())
	case op.ScalarBound():
		value, err = Coerce(input, attrType.Elem())
	default:
		value, err = Coerce(input, attrType)
	}
	if err != nil {
		return Predicate{}, err
	}

	return Predicate{
		ID:        uuid.NewString(),
		Attribute: attribute,
		Operator:  op,
		Value:     value,
		Display:   value.Display(),
	}, nil
}

// WithValue returns a copy of the predicate carrying a re-coerced value,
// preserving the ID. Used by the update intent so the UI can edit a filter
// chip in place.
func (p Predicate) WithValue(reg registry.Registry, input any) (Predicate, error) {
	next, err := NewPredicate(reg, p.Attribute, p.Operator, input)
	if err != nil {
		return Predicate{}, err
	}
	next.ID = p.ID
	return next, nil
}

// Equal reports whether two predicates express the same condition, ignoring
// the opaque ID.
func (p Predicate) Equal(o Predicate) bool {
	return p.Attribute == o.Attribute && p.Operator == o.Operator && p.Value.Equal(o.Value)
}
