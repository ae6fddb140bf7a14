package registry

// DiscoverFromRows infers attribute types from fetched rows and merges them
// into the registry. Discovery only ever widens knowledge: a known type is
// never narrowed, array observations beat scalar ones, and declared entries
// keep their full-text flag.
func (r *SchemaRegistry) DiscoverFromRows(rows []map[string]any) {
	if len(rows) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		for name, value := range row {
			observed := inferType(value)
			if observed == TypeUnknown {
				continue
			}

			current, known := r.attrs[name]
			if !known {
				r.attrs[name] = Attribute{Name: name, Type: observed}
				continue
			}
			if mergeWins(current.Type, observed) {
				current.Type = observed
				r.attrs[name] = current
			}
		}
	}
}

// mergeWins reports whether the observed type should replace the current one.
func mergeWins(current, observed Type) bool {
	if current == TypeUnknown {
		return true
	}
	// Array observations widen a scalar of the same element type.
	if observed.IsArray() && !current.IsArray() && current == observed.Elem() {
		return true
	}
	return false
}

// inferType maps a decoded row value onto a registry Type.
func inferType(v any) Type {
	switch val := v.(type) {
	case string:
		return TypeString
	case bool:
		return TypeBool
	case float64, float32, int, int64, uint64:
		return TypeNumber
	case []string:
		return TypeStringArray
	case []float64, []float32:
		// Long float arrays are embeddings, short ones numeric payloads.
		// Without dimension metadata treat both as number arrays; vector
		// attributes are declared by the schema, not discovered.
		return TypeNumberArray
	case []any:
		return inferArrayType(val)
	default:
		return TypeUnknown
	}
}

// inferArrayType picks the array type from the first typed element.
func inferArrayType(items []any) Type {
	for _, item := range items {
		switch inferType(item) {
		case TypeString:
			return TypeStringArray
		case TypeNumber:
			return TypeNumberArray
		}
	}
	return TypeUnknown
}
