package qdrant

import (
	"fmt"
	"math"
	"strings"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/recordatlas/browse/v1/executor"
	"github.com/recordatlas/browse/v1/query"
)

// keyField is the payload attribute carrying the row identifier. Keyset
// cursor clauses on it are translated into the scroll offset instead of a
// payload condition, since Qdrant scrolls points in id order natively.
const keyField = "id"

// convertFilter translates a compiled filter expression into a Qdrant
// filter plus an optional scroll offset extracted from the keyset cursor
// clause. Expressions using operators Qdrant cannot express return
// executor.ErrUnsupportedQuery.
func convertFilter(expr query.Expr) (*qdrant.Filter, *qdrant.PointId, error) {
	if expr == nil {
		return nil, nil, nil
	}

	filter := &qdrant.Filter{}
	var offset *qdrant.PointId

	clauses := []query.Expr{expr}
	if op, ok := expr[0].(string); ok && op == "And" {
		inner, err := childClauses(expr)
		if err != nil {
			return nil, nil, err
		}
		clauses = inner
	}

	for _, clause := range clauses {
		if key, ok := cursorClause(clause); ok {
			offset = qdrant.NewID(key)
			continue
		}
		if err := appendClause(filter, clause, false); err != nil {
			return nil, nil, err
		}
	}

	if len(filter.Must) == 0 && len(filter.MustNot) == 0 {
		filter = nil
	}
	return filter, offset, nil
}

// childClauses unwraps the clause list of an And/Not combinator.
func childClauses(expr query.Expr) ([]query.Expr, error) {
	if len(expr) != 2 {
		return nil, fmt.Errorf("%w: malformed combinator", executor.ErrUnsupportedQuery)
	}
	switch children := expr[1].(type) {
	case []query.Expr:
		return children, nil
	case []any:
		out := make([]query.Expr, 0, len(children))
		for _, c := range children {
			child, ok := toExpr(c)
			if !ok {
				return nil, fmt.Errorf("%w: malformed clause", executor.ErrUnsupportedQuery)
			}
			out = append(out, child)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: malformed combinator", executor.ErrUnsupportedQuery)
	}
}

func toExpr(v any) (query.Expr, bool) {
	switch e := v.(type) {
	case query.Expr:
		return e, true
	case []any:
		return query.Expr(e), true
	default:
		return nil, false
	}
}

// cursorClause recognizes the keyset boundary clause on the row key.
func cursorClause(expr query.Expr) (string, bool) {
	if len(expr) != 3 {
		return "", false
	}
	field, _ := expr[0].(string)
	op, _ := expr[1].(string)
	key, isString := expr[2].(string)
	if field == keyField && op == "Gt" && isString {
		return key, true
	}
	return "", false
}

// appendClause adds one clause to the filter, recursing through Not and
// nested And combinators. negated tracks whether the clause sits under an
// odd number of Nots.
func appendClause(filter *qdrant.Filter, expr query.Expr, negated bool) error {
	if len(expr) == 0 {
		return fmt.Errorf("%w: empty clause", executor.ErrUnsupportedQuery)
	}

	if op, ok := expr[0].(string); ok {
		switch op {
		case "Not":
			if len(expr) != 2 {
				return fmt.Errorf("%w: malformed Not", executor.ErrUnsupportedQuery)
			}
			child, ok := toExpr(expr[1])
			if !ok {
				return fmt.Errorf("%w: malformed Not", executor.ErrUnsupportedQuery)
			}
			return appendClause(filter, child, !negated)
		case "And":
			children, err := childClauses(expr)
			if err != nil {
				return err
			}
			for _, child := range children {
				if err := appendClause(filter, child, negated); err != nil {
					return err
				}
			}
			return nil
		}
	}

	cond, condNegated, err := fieldCondition(expr)
	if err != nil {
		return err
	}
	if negated != condNegated {
		filter.MustNot = append(filter.MustNot, cond)
	} else {
		filter.Must = append(filter.Must, cond)
	}
	return nil
}

// fieldCondition translates one [field, op, value] clause. The returned
// negated flag moves the condition into must_not, for operators Qdrant
// only has the positive form of.
func fieldCondition(expr query.Expr) (*qdrant.Condition, bool, error) {
	if len(expr) != 3 {
		return nil, false, fmt.Errorf("%w: malformed clause", executor.ErrUnsupportedQuery)
	}
	field, ok := expr[0].(string)
	if !ok {
		return nil, false, fmt.Errorf("%w: malformed clause", executor.ErrUnsupportedQuery)
	}
	op, ok := expr[1].(string)
	if !ok {
		return nil, false, fmt.Errorf("%w: malformed clause", executor.ErrUnsupportedQuery)
	}
	value := expr[2]

	switch op {
	case "Eq":
		cond, err := matchCondition(field, value)
		return cond, false, err
	case "NotEq":
		cond, err := matchCondition(field, value)
		return cond, true, err
	case "Gt", "Gte", "Lt", "Lte":
		cond, err := rangeCondition(field, op, value)
		return cond, false, err
	case "In":
		cond, err := matchAnyCondition(field, value, false)
		return cond, false, err
	case "NotIn":
		cond, err := matchAnyCondition(field, value, true)
		return cond, false, err
	case "Glob":
		cond, err := substringCondition(field, value)
		return cond, false, err
	case "NotGlob":
		cond, err := substringCondition(field, value)
		return cond, true, err
	case "ContainsAny":
		cond, err := containsAnyCondition(field, value)
		return cond, false, err
	case "ContainsAllTokens":
		text, ok := value.(string)
		if !ok {
			return nil, false, fmt.Errorf("%w: %s needs text", executor.ErrUnsupportedQuery, op)
		}
		return qdrant.NewMatchText(field, text), false, nil
	case "ContainsTokenSequence":
		text, ok := value.(string)
		if !ok {
			return nil, false, fmt.Errorf("%w: %s needs text", executor.ErrUnsupportedQuery, op)
		}
		return qdrant.NewMatchPhrase(field, text), false, nil
	case "AnyGt", "AnyGte", "AnyLt", "AnyLte":
		// Qdrant ranges over array payloads match when any element is in
		// range, which is exactly the Any* semantics.
		cond, err := rangeCondition(field, strings.TrimPrefix(op, "Any"), value)
		return cond, false, err
	default:
		return nil, false, fmt.Errorf("%w: operator %q", executor.ErrUnsupportedQuery, op)
	}
}

func matchCondition(field string, value any) (*qdrant.Condition, error) {
	switch v := value.(type) {
	case string:
		return qdrant.NewMatch(field, v), nil
	case bool:
		return qdrant.NewMatchBool(field, v), nil
	case float64:
		if v == math.Trunc(v) {
			return qdrant.NewMatchInt(field, int64(v)), nil
		}
		// Qdrant has no float equality; a degenerate range is the
		// closest expressible condition.
		return qdrant.NewRange(field, &qdrant.Range{Gte: &v, Lte: &v}), nil
	default:
		return nil, fmt.Errorf("%w: match on %T", executor.ErrUnsupportedQuery, value)
	}
}

func rangeCondition(field, op string, value any) (*qdrant.Condition, error) {
	if n, ok := value.(float64); ok {
		r := &qdrant.Range{}
		switch op {
		case "Gt":
			r.Gt = &n
		case "Gte":
			r.Gte = &n
		case "Lt":
			r.Lt = &n
		case "Lte":
			r.Lte = &n
		}
		return qdrant.NewRange(field, r), nil
	}

	if s, ok := value.(string); ok {
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			r := &qdrant.DatetimeRange{}
			stamp := timestamppb.New(ts)
			switch op {
			case "Gt":
				r.Gt = stamp
			case "Gte":
				r.Gte = stamp
			case "Lt":
				r.Lt = stamp
			case "Lte":
				r.Lte = stamp
			}
			return qdrant.NewDatetimeRange(field, r), nil
		}
	}

	return nil, fmt.Errorf("%w: range on %T", executor.ErrUnsupportedQuery, value)
}

func matchAnyCondition(field string, value any, except bool) (*qdrant.Condition, error) {
	items, ok := value.([]any)
	if !ok {
		items = []any{value}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty value list", executor.ErrUnsupportedQuery)
	}

	switch items[0].(type) {
	case string:
		keywords := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: mixed value list", executor.ErrUnsupportedQuery)
			}
			keywords = append(keywords, s)
		}
		if except {
			return qdrant.NewMatchExceptKeywords(field, keywords...), nil
		}
		return qdrant.NewMatchKeywords(field, keywords...), nil
	case float64:
		ints := make([]int64, 0, len(items))
		for _, item := range items {
			n, ok := item.(float64)
			if !ok || n != math.Trunc(n) {
				return nil, fmt.Errorf("%w: non-integer value list", executor.ErrUnsupportedQuery)
			}
			ints = append(ints, int64(n))
		}
		if except {
			return qdrant.NewMatchExceptInts(field, ints...), nil
		}
		return qdrant.NewMatchInts(field, ints...), nil
	default:
		return nil, fmt.Errorf("%w: value list of %T", executor.ErrUnsupportedQuery, items[0])
	}
}

// substringCondition handles the glob patterns the compiler emits.
// "*text*" maps onto Qdrant's full-text match; other patterns have no
// Qdrant equivalent.
func substringCondition(field string, value any) (*qdrant.Condition, error) {
	pattern, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: glob on %T", executor.ErrUnsupportedQuery, value)
	}
	if len(pattern) > 2 && strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		inner := pattern[1 : len(pattern)-1]
		if !strings.ContainsAny(inner, "*?[") {
			return qdrant.NewMatchText(field, inner), nil
		}
	}
	return nil, fmt.Errorf("%w: glob pattern %q", executor.ErrUnsupportedQuery, pattern)
}

func containsAnyCondition(field string, value any) (*qdrant.Condition, error) {
	return matchAnyCondition(field, value, false)
}

// fromQdrantValue converts a Qdrant payload value into the loose typing
// rows carry.
func fromQdrantValue(v *qdrant.Value) any {
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_IntegerValue:
		return float64(kind.IntegerValue)
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_ListValue:
		items := make([]any, 0, len(kind.ListValue.GetValues()))
		for _, item := range kind.ListValue.GetValues() {
			items = append(items, fromQdrantValue(item))
		}
		return items
	case *qdrant.Value_StructValue:
		fields := make(map[string]any, len(kind.StructValue.GetFields()))
		for name, item := range kind.StructValue.GetFields() {
			fields[name] = fromQdrantValue(item)
		}
		return fields
	default:
		return nil
	}
}

// rowFromPayload builds an executor row from a point id and payload.
func rowFromPayload(id string, payload map[string]*qdrant.Value) executor.Row {
	row := make(executor.Row, len(payload)+1)
	for name, value := range payload {
		row[name] = fromQdrantValue(value)
	}
	row[keyField] = id
	return row
}

// pointIDString renders a point id the way rows carry it.
func pointIDString(id *qdrant.PointId) string {
	switch v := id.GetPointIdOptions().(type) {
	case *qdrant.PointId_Num:
		return fmt.Sprintf("%d", v.Num)
	case *qdrant.PointId_Uuid:
		return v.Uuid
	default:
		return ""
	}
}
