package filters

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/recordatlas/browse/v1/registry"
)

func testRegistry() *registry.SchemaRegistry {
	reg := registry.NewSchemaRegistry()
	reg.Declare(registry.Attribute{Name: "status", Type: registry.TypeString})
	reg.Declare(registry.Attribute{Name: "score", Type: registry.TypeNumber})
	reg.Declare(registry.Attribute{Name: "archived", Type: registry.TypeBool})
	reg.Declare(registry.Attribute{Name: "tags", Type: registry.TypeStringArray})
	reg.Declare(registry.Attribute{Name: "ratings", Type: registry.TypeNumberArray})
	reg.Declare(registry.Attribute{Name: "body", Type: registry.TypeString, FullTextEnabled: true})
	return reg
}

func TestNewPredicate_ScalarEquals(t *testing.T) {
	p, err := NewPredicate(testRegistry(), "status", OpEquals, "published")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Error("expected generated ID")
	}
	if p.Value.Kind() != KindString {
		t.Errorf("expected string value, got kind %d", p.Value.Kind())
	}
	if p.Display != "published" {
		t.Errorf("expected display %q, got %q", "published", p.Display)
	}
}

func TestNewPredicate_ArrayOperatorOnScalarRejected(t *testing.T) {
	_, err := NewPredicate(testRegistry(), "status", OpArrayContains, "x")
	if !errors.Is(err, ErrOperatorMismatch) {
		t.Errorf("expected ErrOperatorMismatch, got %v", err)
	}
}

func TestNewPredicate_ScalarOrderingOnArrayRejected(t *testing.T) {
	_, err := NewPredicate(testRegistry(), "tags", OpGreater, "x")
	if !errors.Is(err, ErrOperatorMismatch) {
		t.Errorf("expected ErrOperatorMismatch, got %v", err)
	}
}

func TestNewPredicate_UnknownOperator(t *testing.T) {
	_, err := NewPredicate(testRegistry(), "status", Operator("like"), "x")
	if !errors.Is(err, ErrUnknownOperator) {
		t.Errorf("expected ErrUnknownOperator, got %v", err)
	}
}

func TestNewPredicate_InWrapsScalar(t *testing.T) {
	p, err := NewPredicate(testRegistry(), "score", OpIn, "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Value.Kind() != KindArray {
		t.Fatalf("expected array value for in operator, got kind %d", p.Value.Kind())
	}
	if len(p.Value.Items()) != 1 || p.Value.Items()[0].Num() != 5 {
		t.Errorf("expected [5], got %v", p.Value.Raw())
	}
}

func TestNewPredicate_UnknownAttributeCoercesAsString(t *testing.T) {
	p, err := NewPredicate(testRegistry(), "never_seen", OpEquals, "v")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Value.Kind() != KindString {
		t.Errorf("expected string fallback, got kind %d", p.Value.Kind())
	}
}

func TestNewPredicate_NumberCoercionError(t *testing.T) {
	_, err := NewPredicate(testRegistry(), "score", OpEquals, "abc")
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestPredicate_WithValuePreservesID(t *testing.T) {
	reg := testRegistry()
	p, err := NewPredicate(reg, "score", OpGreater, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updated, err := p.WithValue(reg, "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != p.ID {
		t.Errorf("expected preserved ID %q, got %q", p.ID, updated.ID)
	}
	if updated.Value.Num() != 2 {
		t.Errorf("expected updated value 2, got %v", updated.Value.Num())
	}
}

func TestPredicate_JSONRoundTripWithArrayValue(t *testing.T) {
	reg := testRegistry()
	original, err := NewPredicate(reg, "tags", OpContainsAny, "a, b, c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := json.Marshal([]Predicate{original})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded []Predicate
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 predicate, got %d", len(decoded))
	}
	got := decoded[0]
	if got.ID != original.ID || got.Attribute != "tags" || got.Operator != OpContainsAny {
		t.Errorf("predicate fields lost in round trip: %+v", got)
	}
	if !got.Value.Equal(original.Value) {
		t.Errorf("value mismatch: %v != %v", got.Value, original.Value)
	}
	if got.Value.Kind() != KindArray || len(got.Value.Items()) != 3 {
		t.Errorf("expected 3-element array value, got %+v", got.Value)
	}
}
