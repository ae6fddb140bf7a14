package query

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Expr is a backend expression node: a JSON array whose shape depends on
// position. Filter clauses look like ["status","Eq","published"], logical
// nodes like ["And",[...]], ranking nodes like ["body","BM25","hello"].
type Expr []any

// AggregateBy maps aggregation labels to their expressions. It marshals with
// sorted keys so a compiled query is byte-identical across runs.
type AggregateBy map[string]Expr

// MarshalJSON emits the map with deterministic key order.
func (a AggregateBy) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("null"), nil
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(a[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// BackendQuery is the single well-formed request object sent to the backend
// store. rank_by and include_attributes are mutually exclusive with
// aggregate_by/group_by: the backend rejects requests carrying both, so the
// compiler never emits both.
type BackendQuery struct {
	Filters           Expr        `json:"filters,omitempty"`
	RankBy            Expr        `json:"rank_by,omitempty"`
	TopK              int         `json:"top_k"`
	IncludeAttributes []string    `json:"include_attributes,omitempty"`
	AggregateBy       AggregateBy `json:"aggregate_by,omitempty"`
	GroupBy           []string    `json:"group_by,omitempty"`
}

// Encode serializes the query deterministically. Two Compile calls with the
// same inputs produce byte-identical output.
func (q *BackendQuery) Encode() ([]byte, error) {
	return json.Marshal(q)
}
