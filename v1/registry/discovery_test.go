package registry

import "testing"

func TestDiscoverFromRows_InfersScalars(t *testing.T) {
	reg := NewSchemaRegistry()
	reg.DiscoverFromRows([]map[string]any{
		{"id": "doc-1", "score": 0.5, "archived": false},
	})

	cases := map[string]Type{
		"id":       TypeString,
		"score":    TypeNumber,
		"archived": TypeBool,
	}
	for name, want := range cases {
		attr, ok := reg.Lookup(name)
		if !ok {
			t.Fatalf("attribute %q not discovered", name)
		}
		if attr.Type != want {
			t.Errorf("%s: expected %s, got %s", name, want, attr.Type)
		}
	}
}

func TestDiscoverFromRows_InfersArrays(t *testing.T) {
	reg := NewSchemaRegistry()
	reg.DiscoverFromRows([]map[string]any{
		{"tags": []any{"a", "b"}, "ratings": []any{1.0, 2.0}},
	})

	if attr, _ := reg.Lookup("tags"); attr.Type != TypeStringArray {
		t.Errorf("tags: expected []string, got %s", attr.Type)
	}
	if attr, _ := reg.Lookup("ratings"); attr.Type != TypeNumberArray {
		t.Errorf("ratings: expected []number, got %s", attr.Type)
	}
}

func TestDiscoverFromRows_NeverNarrows(t *testing.T) {
	reg := NewSchemaRegistry()
	reg.DiscoverFromRows([]map[string]any{{"tags": []any{"a"}}})
	reg.DiscoverFromRows([]map[string]any{{"tags": "a"}})

	if attr, _ := reg.Lookup("tags"); attr.Type != TypeStringArray {
		t.Errorf("expected array type to stick, got %s", attr.Type)
	}
}

func TestDiscoverFromRows_WidensScalarToArray(t *testing.T) {
	reg := NewSchemaRegistry()
	reg.DiscoverFromRows([]map[string]any{{"tags": "a"}})
	reg.DiscoverFromRows([]map[string]any{{"tags": []any{"a", "b"}}})

	if attr, _ := reg.Lookup("tags"); attr.Type != TypeStringArray {
		t.Errorf("expected widening to array, got %s", attr.Type)
	}
}

func TestDeclare_KeepsFullTextFlag(t *testing.T) {
	reg := NewSchemaRegistry()
	reg.Declare(Attribute{Name: "body", Type: TypeString, FullTextEnabled: true})
	reg.DiscoverFromRows([]map[string]any{{"body": "hello"}})

	attr, _ := reg.Lookup("body")
	if !attr.FullTextEnabled {
		t.Error("expected full-text flag to survive discovery")
	}
}

func TestFirstFullText_NameOrder(t *testing.T) {
	reg := NewSchemaRegistry()
	reg.Declare(Attribute{Name: "zz", Type: TypeString, FullTextEnabled: true})
	reg.Declare(Attribute{Name: "aa", Type: TypeString, FullTextEnabled: true})

	name, ok := reg.FirstFullText()
	if !ok || name != "aa" {
		t.Errorf("expected aa, got %q (ok=%v)", name, ok)
	}
}

func TestFirstFullText_NoneExists(t *testing.T) {
	reg := NewSchemaRegistry()
	reg.Declare(Attribute{Name: "id", Type: TypeString})

	if _, ok := reg.FirstFullText(); ok {
		t.Error("expected no full-text attribute")
	}
}
