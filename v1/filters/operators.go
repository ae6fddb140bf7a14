package filters

import "github.com/recordatlas/browse/v1/registry"

// Operator is the closed enumeration of predicate operators the UI exposes.
// Each maps to exactly one backend operator token at compile time, except
// equality on array attributes which remaps to containment semantics.
type Operator string

const (
	// Equality
	OpEquals    Operator = "equals"
	OpNotEquals Operator = "not_equals"

	// Ordering
	OpGreater        Operator = "greater"
	OpGreaterOrEqual Operator = "greater_or_equal"
	OpLess           Operator = "less"
	OpLessOrEqual    Operator = "less_or_equal"

	// Set membership
	OpIn    Operator = "in"
	OpNotIn Operator = "not_in"

	// Pattern
	OpContains    Operator = "contains"
	OpMatches     Operator = "matches"
	OpNotMatches  Operator = "not_matches"
	OpIMatches    Operator = "imatches"
	OpNotIMatches Operator = "not_imatches"
	OpRegex       Operator = "regex"

	// Array element comparison
	OpAnyLt  Operator = "any_lt"
	OpAnyLte Operator = "any_lte"
	OpAnyGt  Operator = "any_gt"
	OpAnyGte Operator = "any_gte"

	// Array containment
	OpArrayContains    Operator = "array_contains"
	OpNotArrayContains Operator = "not_array_contains"
	OpContainsAny      Operator = "contains_any"
	OpNotContainsAny   Operator = "not_contains_any"

	// Full-text
	OpContainsAllTokens     Operator = "contains_all_tokens"
	OpContainsTokenSequence Operator = "contains_token_sequence"
)

// operators is the membership set for Valid.
var operators = map[Operator]struct{}{
	OpEquals: {}, OpNotEquals: {},
	OpGreater: {}, OpGreaterOrEqual: {}, OpLess: {}, OpLessOrEqual: {},
	OpIn: {}, OpNotIn: {},
	OpContains: {}, OpMatches: {}, OpNotMatches: {}, OpIMatches: {}, OpNotIMatches: {}, OpRegex: {},
	OpAnyLt: {}, OpAnyLte: {}, OpAnyGt: {}, OpAnyGte: {},
	OpArrayContains: {}, OpNotArrayContains: {}, OpContainsAny: {}, OpNotContainsAny: {},
	OpContainsAllTokens: {}, OpContainsTokenSequence: {},
}

// Valid reports whether op is a member of the closed enumeration.
func (op Operator) Valid() bool {
	_, ok := operators[op]
	return ok
}

// MultiValued reports whether op takes an array of values regardless of the
// attribute's own type. A single scalar input is coerced into a one-element
// array for these operators.
func (op Operator) MultiValued() bool {
	switch op {
	case OpIn, OpNotIn, OpContainsAny, OpNotContainsAny:
		return true
	default:
		return false
	}
}

// ScalarBound reports whether op compares array elements against a single
// scalar bound. The bound coerces to the array's element type, not to an
// array.
func (op Operator) ScalarBound() bool {
	switch op {
	case OpAnyLt, OpAnyLte, OpAnyGt, OpAnyGte:
		return true
	default:
		return false
	}
}

// ArrayOnly reports whether op applies exclusively to array attributes.
func (op Operator) ArrayOnly() bool {
	switch op {
	case OpArrayContains, OpNotArrayContains, OpContainsAny, OpNotContainsAny,
		OpAnyLt, OpAnyLte, OpAnyGt, OpAnyGte:
		return true
	default:
		return false
	}
}

// ValidFor reports whether op may be applied to an attribute of type t.
// Array-only operators are rejected on scalar attributes and vice versa;
// violations are caught here at predicate creation, never at compile time.
func (op Operator) ValidFor(t registry.Type) bool {
	if t == TypeAny {
		return op.Valid()
	}
	switch op {
	case OpEquals, OpNotEquals:
		return t != registry.TypeVector
	case OpGreater, OpGreaterOrEqual, OpLess, OpLessOrEqual:
		return t == registry.TypeString || t == registry.TypeNumber
	case OpIn, OpNotIn:
		return t == registry.TypeString || t == registry.TypeNumber
	case OpContains:
		return t == registry.TypeString || t.IsArray()
	case OpMatches, OpNotMatches, OpIMatches, OpNotIMatches, OpRegex:
		return t == registry.TypeString
	case OpAnyLt, OpAnyLte, OpAnyGt, OpAnyGte:
		return t.IsArray()
	case OpArrayContains, OpNotArrayContains, OpContainsAny, OpNotContainsAny:
		return t.IsArray()
	case OpContainsAllTokens, OpContainsTokenSequence:
		return t == registry.TypeString
	default:
		return false
	}
}

// TypeAny is the permissive stand-in used when an attribute has not been
// discovered yet. Validation against it accepts any well-formed operator;
// coercion falls back to strings.
const TypeAny registry.Type = -1
