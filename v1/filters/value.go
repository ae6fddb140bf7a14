package filters

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the variants of a Value.
type Kind int

const (
	// KindNull - absent value.
	KindNull Kind = iota
	// KindString - scalar string.
	KindString
	// KindNumber - scalar number (float64 on the wire).
	KindNumber
	// KindBool - scalar boolean.
	KindBool
	// KindArray - ordered list of scalar Values.
	KindArray
)

// Value is the tagged union produced by the coercion layer. A predicate
// stores exactly one Value, already converted to the semantic type of its
// target attribute; the compiler never re-inspects raw input.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	arr  []Value
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Array returns an array Value over the given elements.
func Array(items []Value) Value { return Value{kind: KindArray, arr: items} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload; zero for other kinds.
func (v Value) Str() string { return v.str }

// Num returns the numeric payload; zero for other kinds.
func (v Value) Num() float64 { return v.num }

// Boolean returns the boolean payload; false for other kinds.
func (v Value) Boolean() bool { return v.b }

// Items returns the array elements; nil for scalar kinds.
func (v Value) Items() []Value { return v.arr }

// First returns the first element of an array Value, or the Value itself for
// scalars. Used where the backend expects a single scalar from a possibly
// multi-valued input.
func (v Value) First() Value {
	if v.kind == KindArray {
		if len(v.arr) == 0 {
			return Null()
		}
		return v.arr[0]
	}
	return v
}

// Raw returns the native Go representation used for wire serialization:
// string, float64, bool, []any, or nil.
func (v Value) Raw() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindArray:
		items := make([]any, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Raw()
		}
		return items
	default:
		return nil
	}
}

// Display renders the Value for UI consumption. Numbers are formatted without
// exponent notation so row keys and filter chips stay readable.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, item := range v.arr {
			parts[i] = item.Display()
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// Equal reports deep equality of two Values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// valueJSON is the persisted representation of a Value.
type valueJSON struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON encodes the tagged union as {"type": ..., "value": ...}.
// Array elements keep their own tags so UnmarshalJSON can rebuild them.
func (v Value) MarshalJSON() ([]byte, error) {
	var typ string
	var payload any
	switch v.kind {
	case KindNull:
		return json.Marshal(valueJSON{Type: "null"})
	case KindString:
		typ, payload = "string", v.str
	case KindNumber:
		typ, payload = "number", v.num
	case KindBool:
		typ, payload = "bool", v.b
	case KindArray:
		typ, payload = "array", v.arr
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(valueJSON{Type: typ, Value: raw})
}

// UnmarshalJSON decodes the {"type": ..., "value": ...} representation.
func (v *Value) UnmarshalJSON(data []byte) error {
	var vj valueJSON
	if err := json.Unmarshal(data, &vj); err != nil {
		return err
	}
	switch vj.Type {
	case "null", "":
		*v = Null()
		return nil
	case "string":
		var s string
		if err := json.Unmarshal(vj.Value, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case "number":
		var f float64
		if err := json.Unmarshal(vj.Value, &f); err != nil {
			return err
		}
		*v = Number(f)
		return nil
	case "bool":
		var b bool
		if err := json.Unmarshal(vj.Value, &b); err != nil {
			return err
		}
		*v = Bool(b)
		return nil
	case "array":
		var items []Value
		if err := json.Unmarshal(vj.Value, &items); err != nil {
			return err
		}
		*v = Array(items)
		return nil
	default:
		return fmt.Errorf("unknown value type %q", vj.Type)
	}
}
