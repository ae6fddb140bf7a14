package qdrant

import (
	"context"
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"
	"golang.org/x/sync/errgroup"

	"github.com/recordatlas/browse/v1/executor"
	"github.com/recordatlas/browse/v1/query"
)

// ExecuteQuery runs one compiled query against a Qdrant collection. Sorted
// and browse pages map onto Scroll, vector ranking onto Query, and count
// aggregates onto the Count API. Ranking sources Qdrant cannot express
// (BM25 relevance, score combinators) return executor.ErrUnsupportedQuery.
func (c *Client) ExecuteQuery(ctx context.Context, namespace string, q *query.BackendQuery) (*executor.Result, error) {
	if c == nil || c.api == nil {
		return nil, executor.ErrNotInitialized
	}
	if namespace == "" {
		return nil, fmt.Errorf("%w: empty collection name", executor.ErrInvalidQuerySyntax)
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	filter, offset, err := convertFilter(q.Filters)
	if err != nil {
		return nil, err
	}

	if len(q.AggregateBy) > 0 {
		return c.executeAggregation(ctx, namespace, q, filter)
	}

	if rank := q.RankBy; len(rank) == 3 {
		if op, ok := rank[1].(string); ok && op == "ANN" {
			return c.executeVectorQuery(ctx, namespace, q, filter)
		}
	}
	if len(q.RankBy) == 2 {
		return c.executeScroll(ctx, namespace, q, filter, offset)
	}
	return nil, fmt.Errorf("%w: ranking source %v", executor.ErrUnsupportedQuery, q.RankBy)
}

// executeScroll serves lexically sorted pages. Points scroll in id order
// natively; other sort attributes use order_by, which Qdrant cannot
// combine with an id offset.
func (c *Client) executeScroll(ctx context.Context, namespace string, q *query.BackendQuery, filter *qdrant.Filter, offset *qdrant.PointId) (*executor.Result, error) {
	attr, _ := q.RankBy[0].(string)
	direction, _ := q.RankBy[1].(string)

	req := &qdrant.ScrollPoints{
		CollectionName: namespace,
		Filter:         filter,
		Offset:         offset,
		WithPayload:    payloadSelector(q.IncludeAttributes),
	}
	if q.TopK > 0 {
		limit := uint32(q.TopK)
		req.Limit = &limit
	}

	if attr != keyField || direction != "asc" {
		if offset != nil {
			return nil, fmt.Errorf("%w: cursor pagination over a sorted scroll", executor.ErrUnsupportedQuery)
		}
		dir := qdrant.Direction_Asc
		if direction == "desc" {
			dir = qdrant.Direction_Desc
		}
		req.OrderBy = &qdrant.OrderBy{Key: attr, Direction: &dir}
	}

	points, err := c.api.Scroll(ctx, req)
	if err != nil {
		return nil, executor.Classify(err)
	}

	rows := make([]executor.Row, 0, len(points))
	for _, point := range points {
		rows = append(rows, rowFromPayload(pointIDString(point.Id), point.Payload))
	}
	return &executor.Result{Rows: rows}, nil
}

// executeVectorQuery serves similarity-ranked pages.
func (c *Client) executeVectorQuery(ctx context.Context, namespace string, q *query.BackendQuery, filter *qdrant.Filter) (*executor.Result, error) {
	vector, err := rankVector(q.RankBy[2])
	if err != nil {
		return nil, err
	}

	req := &qdrant.QueryPoints{
		CollectionName: namespace,
		Query:          qdrant.NewQuery(vector...),
		Filter:         filter,
		WithPayload:    payloadSelector(q.IncludeAttributes),
	}
	if q.TopK > 0 {
		limit := uint64(q.TopK)
		req.Limit = &limit
	}

	scored, err := c.api.Query(ctx, req)
	if err != nil {
		return nil, executor.Classify(err)
	}

	rows := make([]executor.Row, 0, len(scored))
	for _, point := range scored {
		row := rowFromPayload(pointIDString(point.Id), point.Payload)
		row["_score"] = float64(point.Score)
		rows = append(rows, row)
	}
	return &executor.Result{Rows: rows}, nil
}

// executeAggregation serves aggregate_by queries. Qdrant exposes exact
// counting only, so every requested aggregate must be a Count and
// group_by has no equivalent.
func (c *Client) executeAggregation(ctx context.Context, namespace string, q *query.BackendQuery, filter *qdrant.Filter) (*executor.Result, error) {
	if len(q.GroupBy) > 0 {
		return nil, fmt.Errorf("%w: group_by", executor.ErrUnsupportedQuery)
	}
	for name, agg := range q.AggregateBy {
		if op, ok := agg[0].(string); !ok || op != "Count" {
			return nil, fmt.Errorf("%w: aggregate %q", executor.ErrUnsupportedQuery, name)
		}
	}

	exact := true
	count, err := c.api.Count(ctx, &qdrant.CountPoints{
		CollectionName: namespace,
		Filter:         filter,
		Exact:          &exact,
	})
	if err != nil {
		return nil, executor.Classify(err)
	}

	aggregations := make(map[string]any, len(q.AggregateBy))
	for name := range q.AggregateBy {
		aggregations[name] = float64(count)
	}
	return &executor.Result{Aggregations: aggregations}, nil
}

// ExecuteBatch runs several compiled queries concurrently, bounded by the
// configured concurrency limit, and returns the results in request order.
// The first failure cancels the remaining queries.
func (c *Client) ExecuteBatch(ctx context.Context, namespace string, queries []*query.BackendQuery) ([]*executor.Result, error) {
	if len(queries) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	if c.cfg.MaxConcurrentQueries > 0 {
		g.SetLimit(c.cfg.MaxConcurrentQueries)
	}

	results := make([]*executor.Result, len(queries))
	for i, q := range queries {
		g.Go(func() error {
			result, err := c.ExecuteQuery(ctx, namespace, q)
			if err != nil {
				return fmt.Errorf("query [%d]: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteRows removes points by id, waiting for the deletion to persist.
func (c *Client) DeleteRows(ctx context.Context, namespace string, keys []string) error {
	if c == nil || c.api == nil {
		return executor.ErrNotInitialized
	}
	if len(keys) == 0 {
		return nil
	}

	ids := make([]*qdrant.PointId, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, qdrant.NewID(key))
	}

	wait := true
	_, err := c.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: namespace,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: ids},
			},
		},
		Wait: &wait,
	})
	if err != nil {
		return executor.Classify(err)
	}
	return nil
}

// rankVector accepts the vector forms the compiler and a JSON round-trip
// produce.
func rankVector(v any) ([]float32, error) {
	switch vec := v.(type) {
	case []float32:
		return vec, nil
	case []float64:
		out := make([]float32, len(vec))
		for i, f := range vec {
			out[i] = float32(f)
		}
		return out, nil
	case []any:
		out := make([]float32, len(vec))
		for i, item := range vec {
			f, ok := item.(float64)
			if !ok {
				return nil, fmt.Errorf("%w: malformed query vector", executor.ErrInvalidQuerySyntax)
			}
			out[i] = float32(f)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: malformed query vector", executor.ErrInvalidQuerySyntax)
	}
}

func payloadSelector(include []string) *qdrant.WithPayloadSelector {
	if len(include) == 0 {
		return qdrant.NewWithPayload(true)
	}
	return qdrant.NewWithPayloadInclude(include...)
}

var (
	_ executor.Executor = (*Client)(nil)
	_ executor.Mutator  = (*Client)(nil)
	_ executor.Pinger   = (*Client)(nil)
)
