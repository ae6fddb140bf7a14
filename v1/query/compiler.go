package query

import (
	"fmt"

	"github.com/recordatlas/browse/v1/filters"
	"github.com/recordatlas/browse/v1/registry"
)

// Backend operator tokens. Each UI operator maps onto exactly one of these;
// the array-attribute remappings happen in clauseFor.
const (
	tokEq                    = "Eq"
	tokNotEq                 = "NotEq"
	tokGt                    = "Gt"
	tokGte                   = "Gte"
	tokLt                    = "Lt"
	tokLte                   = "Lte"
	tokIn                    = "In"
	tokNotIn                 = "NotIn"
	tokGlob                  = "Glob"
	tokNotGlob               = "NotGlob"
	tokIGlob                 = "IGlob"
	tokNotIGlob              = "NotIGlob"
	tokRegex                 = "Regex"
	tokAnyLt                 = "AnyLt"
	tokAnyLte                = "AnyLte"
	tokAnyGt                 = "AnyGt"
	tokAnyGte                = "AnyGte"
	tokContains              = "Contains"
	tokContainsAny           = "ContainsAny"
	tokContainsAllTokens     = "ContainsAllTokens"
	tokContainsTokenSequence = "ContainsTokenSequence"
	tokAnd                   = "And"
	tokNot                   = "Not"
	tokBM25                  = "BM25"
	tokANN                   = "ANN"
	tokSum                   = "Sum"
	tokMax                   = "Max"
	tokProduct               = "Product"
	tokCount                 = "Count"
)

// keyAttribute is the unique, sort-relevant row identifier. Keyset pagination
// boundaries and browse-mode text narrowing both target it.
const keyAttribute = "id"

// Compile translates the query-shaping state and one page request into the
// backend request object. It is pure: no side effects, and identical inputs
// yield byte-identical encoded queries.
//
// The aggregation branch is decided first: a query carrying aggregate_by
// must not carry rank_by or include_attributes, which the backend rejects as
// a hard constraint.
func Compile(cfg QueryConfig, page PageRequest, reg registry.Registry) (*BackendQuery, error) {
	q := &BackendQuery{TopK: page.PageSize}

	clauses, err := filterClauses(cfg, reg)
	if err != nil {
		return nil, err
	}
	if page.Cursor != "" {
		clauses = append(clauses, Expr{keyAttribute, tokGt, page.Cursor})
	}
	q.Filters = combineAnd(clauses)

	if cfg.HasAggregations() {
		q.AggregateBy = aggregateBy(cfg.Aggregations)
		if len(cfg.GroupBy) > 0 {
			q.GroupBy = append([]string(nil), cfg.GroupBy...)
		}
		return q, nil
	}

	rankBy, err := rankingSource(cfg, reg)
	if err != nil {
		return nil, err
	}
	q.RankBy = rankBy
	if len(cfg.IncludeAttributes) > 0 {
		q.IncludeAttributes = append([]string(nil), cfg.IncludeAttributes...)
	}
	return q, nil
}

// CountQuery builds the count sub-query for the same filter state: the
// compiled filter with aggregate_by {count: ["Count","id"]} and no ranking or
// projection.
func CountQuery(cfg QueryConfig, reg registry.Registry) (*BackendQuery, error) {
	clauses, err := filterClauses(cfg, reg)
	if err != nil {
		return nil, err
	}
	return &BackendQuery{
		Filters:     combineAnd(clauses),
		AggregateBy: AggregateBy{"count": Expr{tokCount, keyAttribute}},
	}, nil
}

// filterClauses translates every active predicate plus the implicit
// browse-mode identifier glob. Zero clauses yield an undefined filter
// ("match all").
func filterClauses(cfg QueryConfig, reg registry.Registry) ([]Expr, error) {
	clauses := make([]Expr, 0, len(cfg.Predicates)+1)
	for _, p := range cfg.Predicates {
		clause, err := clauseFor(p, attributeType(reg, p.Attribute))
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}

	// Browse-mode free text is an identifier substring search only;
	// relevance ranking requires full-text mode.
	if cfg.Mode == ModeBrowse && cfg.SearchText != "" {
		clauses = append(clauses, Expr{keyAttribute, tokGlob, glob(cfg.SearchText)})
	}
	return clauses, nil
}

// clauseFor translates one predicate. The attribute's type selects the
// branch: equality and containment remap on array attributes, everything
// else passes its token through with the already-typed value.
func clauseFor(p filters.Predicate, t registry.Type) (Expr, error) {
	// A not-yet-discovered attribute takes the branch the operator's own
	// shape implies, so predicates accepted permissively at creation
	// still compile.
	if t.IsArray() || (t == registry.TypeUnknown && p.Operator.ArrayOnly()) {
		return arrayClause(p)
	}
	return scalarClause(p)
}

func scalarClause(p filters.Predicate) (Expr, error) {
	attr := p.Attribute
	switch p.Operator {
	case filters.OpEquals:
		return Expr{attr, tokEq, p.Value.First().Raw()}, nil
	case filters.OpNotEquals:
		return Expr{attr, tokNotEq, p.Value.First().Raw()}, nil
	case filters.OpGreater:
		return Expr{attr, tokGt, p.Value.Raw()}, nil
	case filters.OpGreaterOrEqual:
		return Expr{attr, tokGte, p.Value.Raw()}, nil
	case filters.OpLess:
		return Expr{attr, tokLt, p.Value.Raw()}, nil
	case filters.OpLessOrEqual:
		return Expr{attr, tokLte, p.Value.Raw()}, nil
	case filters.OpIn:
		return Expr{attr, tokIn, p.Value.Raw()}, nil
	case filters.OpNotIn:
		return Expr{attr, tokNotIn, p.Value.Raw()}, nil
	case filters.OpContains:
		return Expr{attr, tokGlob, glob(p.Value.First().Str())}, nil
	case filters.OpMatches:
		return Expr{attr, tokGlob, p.Value.First().Str()}, nil
	case filters.OpNotMatches:
		return Expr{attr, tokNotGlob, p.Value.First().Str()}, nil
	case filters.OpIMatches:
		return Expr{attr, tokIGlob, p.Value.First().Str()}, nil
	case filters.OpNotIMatches:
		return Expr{attr, tokNotIGlob, p.Value.First().Str()}, nil
	case filters.OpRegex:
		return Expr{attr, tokRegex, p.Value.First().Str()}, nil
	case filters.OpContainsAllTokens:
		return Expr{attr, tokContainsAllTokens, p.Value.First().Str()}, nil
	case filters.OpContainsTokenSequence:
		return Expr{attr, tokContainsTokenSequence, p.Value.First().Str()}, nil
	default:
		return nil, fmt.Errorf("operator %q not applicable to scalar attribute %q", p.Operator, attr)
	}
}

func arrayClause(p filters.Predicate) (Expr, error) {
	attr := p.Attribute
	switch p.Operator {
	case filters.OpEquals:
		// Equality on array attributes means "contains", taking the first
		// element of a multi-valued input.
		return Expr{attr, tokContainsAny, p.Value.First().Raw()}, nil
	case filters.OpNotEquals:
		return Expr{tokNot, Expr{attr, tokContainsAny, p.Value.First().Raw()}}, nil
	case filters.OpContains:
		return Expr{attr, tokContainsAny, p.Value.First().Raw()}, nil
	case filters.OpArrayContains:
		return Expr{attr, tokContains, p.Value.First().Raw()}, nil
	case filters.OpNotArrayContains:
		return Expr{tokNot, Expr{attr, tokContains, p.Value.First().Raw()}}, nil
	case filters.OpContainsAny:
		return Expr{attr, tokContainsAny, p.Value.Raw()}, nil
	case filters.OpNotContainsAny:
		return Expr{tokNot, Expr{attr, tokContainsAny, p.Value.Raw()}}, nil
	case filters.OpAnyLt:
		return Expr{attr, tokAnyLt, p.Value.Raw()}, nil
	case filters.OpAnyLte:
		return Expr{attr, tokAnyLte, p.Value.Raw()}, nil
	case filters.OpAnyGt:
		return Expr{attr, tokAnyGt, p.Value.Raw()}, nil
	case filters.OpAnyGte:
		return Expr{attr, tokAnyGte, p.Value.Raw()}, nil
	default:
		return nil, fmt.Errorf("operator %q not applicable to array attribute %q", p.Operator, attr)
	}
}

// rankingSource picks the single effective rank_by. Priority order: custom
// expression, full-text relevance, vector similarity, lexical sort.
func rankingSource(cfg QueryConfig, reg registry.Registry) (Expr, error) {
	if cfg.RankingMode == RankingExpression && len(cfg.RankingExpr) > 0 {
		return cfg.RankingExpr, nil
	}

	if cfg.Mode == ModeFullText && cfg.SearchText != "" {
		return fullTextRank(cfg, reg)
	}

	if cfg.Mode == ModeVector && len(cfg.VectorQuery) > 0 {
		field := cfg.VectorField
		if field == "" {
			field = "vector"
		}
		return Expr{field, tokANN, cfg.VectorQuery}, nil
	}

	attr := cfg.SortAttribute
	if attr == "" {
		attr = keyAttribute
	}
	dir := cfg.SortDirection
	if dir == "" {
		dir = SortAsc
	}
	return Expr{attr, string(dir)}, nil
}

// fullTextRank compiles BM25 ranking over the configured fields, falling back
// to the first full-text-eligible attribute in the registry when none is
// configured.
func fullTextRank(cfg QueryConfig, reg registry.Registry) (Expr, error) {
	fields := cfg.FullTextFields
	if len(fields) == 0 {
		name, ok := reg.FirstFullText()
		if !ok {
			return nil, ErrNoSearchableFields
		}
		fields = []FieldWeight{{Name: name}}
	}

	perField := make([]any, 0, len(fields))
	for _, f := range fields {
		rank := Expr{f.Name, tokBM25, cfg.SearchText}
		if f.Weight != 0 && f.Weight != 1 {
			rank = Expr{tokProduct, []any{f.Weight, rank}}
		}
		perField = append(perField, rank)
	}

	if len(perField) == 1 {
		return perField[0].(Expr), nil
	}
	return Expr{combineToken(cfg.CombineOp), perField}, nil
}

func combineToken(op CombineOp) string {
	switch op {
	case CombineMax:
		return tokMax
	case CombineProduct:
		return tokProduct
	default:
		return tokSum
	}
}

func aggregateBy(aggs []Aggregation) AggregateBy {
	out := make(AggregateBy, len(aggs))
	for _, a := range aggs {
		op := a.Op
		if op == "" {
			op = tokCount
		}
		expr := Expr{op}
		if a.Attribute != "" {
			expr = append(expr, a.Attribute)
		}
		out[a.Name] = expr
	}
	return out
}

// combineAnd folds clauses under logical AND. Zero clauses yield nil
// ("match all"), a single clause passes through unwrapped.
func combineAnd(clauses []Expr) Expr {
	switch len(clauses) {
	case 0:
		return nil
	case 1:
		return clauses[0]
	default:
		inner := make([]any, len(clauses))
		for i, c := range clauses {
			inner[i] = c
		}
		return Expr{tokAnd, inner}
	}
}

func attributeType(reg registry.Registry, name string) registry.Type {
	if attr, ok := reg.Lookup(name); ok {
		return attr.Type
	}
	return registry.TypeUnknown
}

// glob wraps free text in a substring glob pattern.
func glob(s string) string {
	return "*" + s + "*"
}
