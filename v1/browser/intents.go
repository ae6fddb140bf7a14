package browser

import (
	"github.com/recordatlas/browse/v1/filters"
	"github.com/recordatlas/browse/v1/query"
)

// invalidateLocked marks the query shape as changed: recorded keyset
// boundaries are dropped, any in-flight fetch becomes stale, and the view
// returns to the first page. totalChanged additionally forgets the cached
// row count, for edits that change which rows match.
func (s *Store) invalidateLocked(totalChanged bool) {
	s.generation++
	s.tracker.Reset(s.cfg.PageSize)
	s.page = 0
	if totalChanged {
		s.totalKnown = false
	}
}

func (s *Store) notifyChange() {
	if s.onChange != nil {
		s.onChange()
	}
}

// AddPredicate validates, coerces, and activates a new filter predicate,
// returning it with its assigned ID.
func (s *Store) AddPredicate(attribute string, op filters.Operator, input any) (filters.Predicate, error) {
	p, err := filters.NewPredicate(s.reg, attribute, op, input)
	if err != nil {
		return filters.Predicate{}, err
	}
	s.mu.Lock()
	s.queryCfg.Predicates = append(s.queryCfg.Predicates, p)
	s.invalidateLocked(true)
	s.mu.Unlock()
	s.notifyChange()
	return p, nil
}

// UpdatePredicate replaces the value of an active predicate, re-running
// validation and coercion against its operator and attribute type.
func (s *Store) UpdatePredicate(id string, input any) (filters.Predicate, error) {
	s.mu.Lock()
	idx := -1
	for i, p := range s.queryCfg.Predicates {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return filters.Predicate{}, ErrUnknownPredicate
	}
	current := s.queryCfg.Predicates[idx]
	s.mu.Unlock()

	updated, err := current.WithValue(s.reg, input)
	if err != nil {
		return filters.Predicate{}, err
	}

	s.mu.Lock()
	// Re-check under lock; the predicate may have been removed meanwhile.
	replaced := false
	for i, p := range s.queryCfg.Predicates {
		if p.ID == id {
			s.queryCfg.Predicates[i] = updated
			replaced = true
			break
		}
	}
	if !replaced {
		s.mu.Unlock()
		return filters.Predicate{}, ErrUnknownPredicate
	}
	s.invalidateLocked(true)
	s.mu.Unlock()
	s.notifyChange()
	return updated, nil
}

// RemovePredicate deactivates the predicate with the given ID.
func (s *Store) RemovePredicate(id string) error {
	s.mu.Lock()
	kept := s.queryCfg.Predicates[:0]
	removed := false
	for _, p := range s.queryCfg.Predicates {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		s.mu.Unlock()
		return ErrUnknownPredicate
	}
	s.queryCfg.Predicates = kept
	s.invalidateLocked(true)
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

// ClearPredicates deactivates every predicate.
func (s *Store) ClearPredicates() {
	s.mu.Lock()
	s.queryCfg.Predicates = nil
	s.invalidateLocked(true)
	s.mu.Unlock()
	s.notifyChange()
}

// Predicates returns a copy of the active predicates.
func (s *Store) Predicates() []filters.Predicate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]filters.Predicate(nil), s.queryCfg.Predicates...)
}

// SetSearchText updates the search text after the configured debounce
// window, so that a typing burst results in a single state change.
func (s *Store) SetSearchText(text string) {
	s.search.Do(func() {
		s.mu.Lock()
		if s.queryCfg.SearchText == text {
			s.mu.Unlock()
			return
		}
		s.queryCfg.SearchText = text
		s.invalidateLocked(true)
		s.mu.Unlock()
		s.notifyChange()
	})
}

// SetMode switches between browse, full-text, and vector modes.
func (s *Store) SetMode(mode query.Mode) {
	s.mu.Lock()
	if s.queryCfg.Mode == mode {
		s.mu.Unlock()
		return
	}
	s.queryCfg.Mode = mode
	// Browse-mode search text narrows the filter, so the matched set
	// changes with the mode as well as the ranking.
	s.invalidateLocked(s.queryCfg.SearchText != "")
	s.mu.Unlock()
	s.notifyChange()
}

// SetSort selects the lexical sort attribute and direction.
func (s *Store) SetSort(attribute string, direction query.SortDirection) {
	s.mu.Lock()
	s.queryCfg.SortAttribute = attribute
	s.queryCfg.SortDirection = direction
	s.invalidateLocked(false)
	s.mu.Unlock()
	s.notifyChange()
}

// SetVectorQuery selects the vector-similarity ranking input.
func (s *Store) SetVectorQuery(field string, vector []float32) {
	s.mu.Lock()
	s.queryCfg.VectorField = field
	s.queryCfg.VectorQuery = vector
	s.invalidateLocked(false)
	s.mu.Unlock()
	s.notifyChange()
}

// SetFullTextFields selects which fields BM25 ranking spans and how their
// scores combine.
func (s *Store) SetFullTextFields(fields []query.FieldWeight, combine query.CombineOp) {
	s.mu.Lock()
	s.queryCfg.FullTextFields = fields
	s.queryCfg.CombineOp = combine
	s.invalidateLocked(false)
	s.mu.Unlock()
	s.notifyChange()
}

// SetRankingExpr installs a custom ranking expression tree, which takes
// priority over every other ranking source until cleared with a nil expr.
func (s *Store) SetRankingExpr(expr query.Expr) {
	s.mu.Lock()
	if expr == nil {
		s.queryCfg.RankingMode = query.RankingSimple
		s.queryCfg.RankingExpr = nil
	} else {
		s.queryCfg.RankingMode = query.RankingExpression
		s.queryCfg.RankingExpr = expr
	}
	s.invalidateLocked(false)
	s.mu.Unlock()
	s.notifyChange()
}

// SetAggregations switches the store into (or out of) aggregation mode.
func (s *Store) SetAggregations(aggs []query.Aggregation, groupBy []string) {
	s.mu.Lock()
	s.queryCfg.Aggregations = aggs
	s.queryCfg.GroupBy = groupBy
	s.invalidateLocked(false)
	s.mu.Unlock()
	s.notifyChange()
}

// SetIncludeAttributes selects which attributes row queries project.
func (s *Store) SetIncludeAttributes(attrs []string) {
	s.mu.Lock()
	s.queryCfg.IncludeAttributes = attrs
	s.invalidateLocked(false)
	s.mu.Unlock()
	s.notifyChange()
}

// SetPageSize changes the page size; all recorded boundaries were taken
// at the old size and are dropped.
func (s *Store) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	s.cfg.PageSize = n
	s.invalidateLocked(false)
	s.mu.Unlock()
	s.notifyChange()
}
