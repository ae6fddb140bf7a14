package registry

import (
	"sort"
	"sync"
)

// Registry is the read-only view consumed by the query compiler and the
// filter model. Implementations must be safe for concurrent use.
type Registry interface {
	// Lookup returns the attribute by name, reporting whether it is known.
	Lookup(name string) (Attribute, bool)

	// Attributes returns all known attributes sorted by name.
	Attributes() []Attribute

	// FirstFullText returns the name of the first full-text-eligible
	// attribute in name order, reporting whether one exists.
	FirstFullText() (string, bool)
}

// SchemaRegistry is the in-memory Registry implementation. Attributes are
// seeded from the backend schema and refined by row discovery after each
// successful query.
type SchemaRegistry struct {
	mu    sync.RWMutex
	attrs map[string]Attribute
}

// NewSchemaRegistry returns an empty SchemaRegistry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{attrs: make(map[string]Attribute)}
}

// Declare records an attribute from an authoritative source (backend schema).
// Declared entries overwrite discovered ones.
func (r *SchemaRegistry) Declare(attr Attribute) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attrs[attr.Name] = attr
}

// Lookup returns the attribute by name, reporting whether it is known.
func (r *SchemaRegistry) Lookup(name string) (Attribute, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	attr, ok := r.attrs[name]
	return attr, ok
}

// Attributes returns all known attributes sorted by name.
func (r *SchemaRegistry) Attributes() []Attribute {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Attribute, 0, len(r.attrs))
	for _, a := range r.attrs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FirstFullText returns the first full-text-eligible attribute in name order.
func (r *SchemaRegistry) FirstFullText() (string, bool) {
	for _, a := range r.Attributes() {
		if a.FullTextEnabled {
			return a.Name, true
		}
	}
	return "", false
}
