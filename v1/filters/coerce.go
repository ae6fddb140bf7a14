package filters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/recordatlas/browse/v1/registry"
)

// Coerce converts free-form input into the Value implied by the target
// attribute type. Accepted inputs are strings (including comma lists for
// array targets), native Go scalars, raw []any slices, and Values that were
// coerced previously.
//
// Coercion happens exactly once, at predicate creation; everything downstream
// operates on the typed Value.
func Coerce(input any, target registry.Type) (Value, error) {
	if target.IsArray() {
		return coerceArray(input, target.Elem())
	}
	return coerceScalar(input, target)
}

// CoerceList forces the input into an array Value with the given element
// type, wrapping a single scalar into a one-element array. Used for the
// multi-valued operators (in, not_in, contains_any, not_contains_any).
func CoerceList(input any, elem registry.Type) (Value, error) {
	return coerceArray(input, elem)
}

func coerceScalar(input any, target registry.Type) (Value, error) {
	if v, ok := input.(Value); ok {
		if v.Kind() == KindArray {
			return v.First(), nil
		}
		return v, nil
	}

	switch target {
	case registry.TypeNumber:
		return coerceNumber(input)
	case registry.TypeBool:
		return coerceBool(input)
	default:
		// Strings and undiscovered attributes stringify.
		return coerceString(input)
	}
}

func coerceArray(input any, elem registry.Type) (Value, error) {
	switch in := input.(type) {
	case Value:
		if in.Kind() == KindArray {
			return in, nil
		}
		return Array([]Value{in}), nil
	case []any:
		items := make([]Value, 0, len(in))
		for _, raw := range in {
			v, err := coerceScalar(raw, elem)
			if err != nil {
				return Null(), err
			}
			items = append(items, v)
		}
		return Array(items), nil
	case []string:
		items := make([]Value, 0, len(in))
		for _, s := range in {
			v, err := coerceScalar(s, elem)
			if err != nil {
				return Null(), err
			}
			items = append(items, v)
		}
		return Array(items), nil
	case string:
		return coerceCommaList(in, elem)
	default:
		v, err := coerceScalar(input, elem)
		if err != nil {
			return Null(), err
		}
		return Array([]Value{v}), nil
	}
}

// coerceCommaList splits "a, b, c" into elements and coerces each. Empty
// segments are dropped so trailing commas from live typing do not produce
// empty values.
func coerceCommaList(s string, elem registry.Type) (Value, error) {
	parts := strings.Split(s, ",")
	items := make([]Value, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := coerceScalar(part, elem)
		if err != nil {
			return Null(), err
		}
		items = append(items, v)
	}
	return Array(items), nil
}

func coerceString(input any) (Value, error) {
	switch in := input.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(in), nil
	case bool:
		return String(strconv.FormatBool(in)), nil
	case float64:
		return String(strconv.FormatFloat(in, 'f', -1, 64)), nil
	case int:
		return String(strconv.Itoa(in)), nil
	case int64:
		return String(strconv.FormatInt(in, 10)), nil
	default:
		return Null(), fmt.Errorf("%w: %T as string", ErrInvalidValue, input)
	}
}

func coerceNumber(input any) (Value, error) {
	switch in := input.(type) {
	case float64:
		return Number(in), nil
	case float32:
		return Number(float64(in)), nil
	case int:
		return Number(float64(in)), nil
	case int64:
		return Number(float64(in)), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(in), 64)
		if err != nil {
			return Null(), fmt.Errorf("%w: %q as number", ErrInvalidValue, in)
		}
		return Number(f), nil
	default:
		return Null(), fmt.Errorf("%w: %T as number", ErrInvalidValue, input)
	}
}

func coerceBool(input any) (Value, error) {
	switch in := input.(type) {
	case bool:
		return Bool(in), nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(in))
		if err != nil {
			return Null(), fmt.Errorf("%w: %q as bool", ErrInvalidValue, in)
		}
		return Bool(b), nil
	default:
		return Null(), fmt.Errorf("%w: %T as bool", ErrInvalidValue, input)
	}
}
