package filters

import "errors"

var (
	// ErrUnknownOperator is returned when an operator is not part of the
	// closed enumeration.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrOperatorMismatch is returned when an operator is not valid for the
	// target attribute's type (e.g. an array containment operator on a
	// scalar attribute).
	ErrOperatorMismatch = errors.New("operator not valid for attribute type")

	// ErrInvalidValue is returned when free-form input cannot be coerced to
	// the attribute's semantic type.
	ErrInvalidValue = errors.New("value cannot be coerced to attribute type")
)
