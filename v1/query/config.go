package query

import "github.com/recordatlas/browse/v1/filters"

// Mode selects how the result set is produced.
type Mode string

const (
	// ModeBrowse lists rows in key order; free text narrows by identifier glob.
	ModeBrowse Mode = "browse"
	// ModeFullText ranks rows by BM25 relevance of the search text.
	ModeFullText Mode = "fulltext"
	// ModeVector ranks rows by similarity to a query vector.
	ModeVector Mode = "vector"
)

// RankingMode selects between the built-in ranking sources and a custom
// expression tree.
type RankingMode string

const (
	// RankingSimple derives rank_by from the mode (sort, BM25, or ANN).
	RankingSimple RankingMode = "simple"
	// RankingExpression uses the user-supplied expression tree verbatim.
	RankingExpression RankingMode = "expression"
)

// CombineOp merges per-field BM25 scores when several text fields are
// configured.
type CombineOp string

const (
	CombineSum     CombineOp = "sum"
	CombineMax     CombineOp = "max"
	CombineProduct CombineOp = "product"
)

// SortDirection orders lexical sorts.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// FieldWeight is one full-text field with its relevance weight. A zero
// weight means the default weight of 1.
type FieldWeight struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight,omitempty"`
}

// Aggregation is one requested aggregate. Op defaults to Count; Attribute is
// optional and names the aggregated attribute where the op needs one.
type Aggregation struct {
	Name      string `json:"name"`
	Op        string `json:"op,omitempty"`
	Attribute string `json:"attribute,omitempty"`
}

// QueryConfig is the full user-editable query-shaping state. Exactly one of
// {sort, full-text, vector, expression} is the effective ranking source at
// any time, selected by the compiler's priority order.
type QueryConfig struct {
	Predicates []filters.Predicate `json:"predicates,omitempty"`
	SearchText string              `json:"search_text,omitempty"`

	Mode        Mode        `json:"mode,omitempty"`
	RankingMode RankingMode `json:"ranking_mode,omitempty"`

	SortAttribute string        `json:"sort_attribute,omitempty"`
	SortDirection SortDirection `json:"sort_direction,omitempty"`

	VectorField string    `json:"vector_field,omitempty"`
	VectorQuery []float32 `json:"vector_query,omitempty"`

	FullTextFields []FieldWeight `json:"fulltext_fields,omitempty"`
	CombineOp      CombineOp     `json:"combine_op,omitempty"`

	RankingExpr Expr `json:"ranking_expr,omitempty"`

	Aggregations []Aggregation `json:"aggregations,omitempty"`
	GroupBy      []string      `json:"group_by,omitempty"`

	IncludeAttributes []string `json:"include_attributes,omitempty"`
}

// HasAggregations reports whether the config requests the aggregation path.
func (c QueryConfig) HasAggregations() bool {
	return len(c.Aggregations) > 0
}

// PageRequest addresses one page of results. Cursor is the exclusive
// lower-bound row key, empty for page 1.
type PageRequest struct {
	Page     int
	PageSize int
	Cursor   string
}
