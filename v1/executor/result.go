package executor

import "strconv"

// Row is one returned record: the row key plus whatever attributes the
// query projected. Attribute values keep the loose typing of the wire
// format (string, float64, bool, or a slice of those).
type Row map[string]any

// Key returns the row's unique identifier as a string. Numeric keys are
// rendered without an exponent so that keyset cursors compare the same way
// the backend orders them.
func (r Row) Key() string {
	switch v := r["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// AggregationGroup is one group_by bucket: the grouping attribute values
// plus the aggregate results computed within the bucket.
type AggregationGroup struct {
	Keys       map[string]any `json:"keys"`
	Aggregates map[string]any `json:"aggregates"`
}

// Result is the normalized response of one executed query. Exactly one of
// Rows or Aggregations is populated, mirroring the request's rank_by /
// aggregate_by exclusivity.
type Result struct {
	Rows              []Row              `json:"rows,omitempty"`
	Aggregations      map[string]any     `json:"aggregations,omitempty"`
	AggregationGroups []AggregationGroup `json:"aggregation_groups,omitempty"`
}

// Count extracts the named numeric aggregate, typically the "count"
// sub-query result. It tolerates the integer widths different decoders
// produce.
func (r *Result) Count(name string) (int, bool) {
	if r == nil || r.Aggregations == nil {
		return 0, false
	}
	switch v := r.Aggregations[name].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	default:
		return 0, false
	}
}

// LastKey returns the key of the final row, the keyset boundary for the
// page that follows. Empty results have no boundary.
func (r *Result) LastKey() string {
	if r == nil || len(r.Rows) == 0 {
		return ""
	}
	return r.Rows[len(r.Rows)-1].Key()
}
