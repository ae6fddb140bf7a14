package registry

// Type is the semantic type of an attribute as discovered from row data or
// declared by the backend schema.
type Type int

const (
	// TypeUnknown - nothing observed yet for this attribute.
	TypeUnknown Type = iota
	// TypeString - scalar string attribute.
	TypeString
	// TypeNumber - scalar numeric attribute (int or float on the wire).
	TypeNumber
	// TypeBool - scalar boolean attribute.
	TypeBool
	// TypeStringArray - array of strings.
	TypeStringArray
	// TypeNumberArray - array of numbers.
	TypeNumberArray
	// TypeVector - dense embedding; never filterable, only rankable.
	TypeVector
)

// String returns the lowercase name used in logs and display.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "bool"
	case TypeStringArray:
		return "[]string"
	case TypeNumberArray:
		return "[]number"
	case TypeVector:
		return "vector"
	default:
		return "unknown"
	}
}

// IsArray reports whether the type is array-valued.
func (t Type) IsArray() bool {
	return t == TypeStringArray || t == TypeNumberArray
}

// Elem returns the element type for array types; scalar types return
// themselves.
func (t Type) Elem() Type {
	switch t {
	case TypeStringArray:
		return TypeString
	case TypeNumberArray:
		return TypeNumber
	default:
		return t
	}
}

// Attribute describes one attribute of the browsed namespace.
type Attribute struct {
	// Name is the attribute name as it appears in rows and filters.
	Name string

	// Type is the discovered or declared semantic type.
	Type Type

	// FullTextEnabled marks the attribute as eligible for BM25 ranking.
	// This is advisory metadata from the backend schema; the compiler trusts it.
	FullTextEnabled bool
}
