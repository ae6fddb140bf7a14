package filters

import (
	"testing"

	"github.com/recordatlas/browse/v1/registry"
)

func TestCoerce_StringTarget(t *testing.T) {
	v, err := Coerce("published", registry.TypeString)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != KindString || v.Str() != "published" {
		t.Errorf("expected string %q, got %v", "published", v)
	}
}

func TestCoerce_NumberFromString(t *testing.T) {
	v, err := Coerce(" 42.5 ", registry.TypeNumber)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != KindNumber || v.Num() != 42.5 {
		t.Errorf("expected number 42.5, got %v", v)
	}
}

func TestCoerce_NumberFromGarbage(t *testing.T) {
	if _, err := Coerce("not-a-number", registry.TypeNumber); err == nil {
		t.Error("expected coercion error, got nil")
	}
}

func TestCoerce_BoolFromString(t *testing.T) {
	v, err := Coerce("true", registry.TypeBool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != KindBool || !v.Boolean() {
		t.Errorf("expected bool true, got %v", v)
	}
}

func TestCoerce_CommaListToStringArray(t *testing.T) {
	v, err := Coerce("a, b, ,c,", registry.TypeStringArray)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != KindArray {
		t.Fatalf("expected array, got kind %d", v.Kind())
	}
	items := v.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items (empty segments dropped), got %d", len(items))
	}
	for i, want := range []string{"a", "b", "c"} {
		if items[i].Str() != want {
			t.Errorf("item %d: expected %q, got %q", i, want, items[i].Str())
		}
	}
}

func TestCoerce_CommaListToNumberArray(t *testing.T) {
	v, err := Coerce("1,2,3", registry.TypeNumberArray)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := v.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[2].Num() != 3 {
		t.Errorf("expected 3, got %v", items[2].Num())
	}
}

func TestCoerce_RawArray(t *testing.T) {
	v, err := Coerce([]any{"x", "y"}, registry.TypeStringArray)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v.Items()) != 2 {
		t.Errorf("expected 2 items, got %d", len(v.Items()))
	}
}

func TestCoerceList_WrapsScalar(t *testing.T) {
	v, err := CoerceList(7.0, registry.TypeNumber)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != KindArray || len(v.Items()) != 1 {
		t.Fatalf("expected one-element array, got %v", v)
	}
	if v.Items()[0].Num() != 7 {
		t.Errorf("expected 7, got %v", v.Items()[0].Num())
	}
}

func TestValue_RoundTripJSON(t *testing.T) {
	original := Array([]Value{String("a"), Number(2), Bool(true)})
	data, err := original.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Value
	if err := decoded.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !original.Equal(decoded) {
		t.Errorf("round trip mismatch: %v != %v", original, decoded)
	}
}

func TestValue_DisplayNumberWithoutExponent(t *testing.T) {
	if got := Number(1234567890).Display(); got != "1234567890" {
		t.Errorf("expected plain decimal, got %q", got)
	}
}
