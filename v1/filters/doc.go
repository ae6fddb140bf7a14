// Package filters holds the immutable filter model: typed values, the closed
// operator enumeration, and predicate construction.
//
// The central design decision is that all type coercion happens exactly once,
// at predicate creation. [Coerce] converts free-form input (a string, a comma
// list, a raw array) into the tagged-union [Value] implied by the attribute's
// discovered type, and [NewPredicate] rejects operator/type mismatches up
// front. The query compiler downstream only ever sees well-typed predicates
// and never re-inspects raw input.
//
// Example:
//
//	p, err := filters.NewPredicate(reg, "status", filters.OpEquals, "published")
//	if err != nil {
//	    // operator invalid for the attribute's type, or value not coercible
//	}
package filters
