package browser

import (
	"context"
	"sync"
	"time"

	"github.com/recordatlas/browse/v1/executor"
	"github.com/recordatlas/browse/v1/logger"
	"github.com/recordatlas/browse/v1/observability"
	"github.com/recordatlas/browse/v1/pagination"
	"github.com/recordatlas/browse/v1/query"
	"github.com/recordatlas/browse/v1/registry"
	"github.com/recordatlas/browse/v1/resultcache"
)

// Store orchestrates one browsing session: it holds the editable query
// state, compiles and runs the backend queries for page loads, tracks
// keyset boundaries, serves repeat pages from the result cache, and feeds
// returned rows back into schema discovery.
//
// All exported methods are safe for concurrent use. At most one backend
// fetch runs at a time; a second page load while one is in flight returns
// ErrFetchInFlight instead of queueing.
type Store struct {
	cfg  *Config
	exec executor.Executor

	mutator  executor.Mutator
	cache    *resultcache.Cache
	reg      *registry.SchemaRegistry
	log      *logger.Logger
	observer observability.Observer
	onChange func()

	search    *debouncer
	discovery sync.WaitGroup

	mu         sync.Mutex
	tracker    *pagination.Tracker
	queryCfg   query.QueryConfig
	status     Status
	lastErr    error
	rows       []executor.Row
	total      int
	totalKnown bool
	aggs       map[string]any
	groups     []executor.AggregationGroup
	page       int
	fetching   bool
	// generation counts query-shape edits; a fetch started under an older
	// generation discards its result instead of applying stale rows.
	generation uint64
}

// NewStore builds a store over the given executor. The store starts with
// an empty schema registry and a default result cache; both can be
// replaced before first use via the setters.
func NewStore(cfg *Config, exec executor.Executor) *Store {
	if cfg == nil {
		cfg = DefaultConfig("", "")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	return &Store{
		cfg:     cfg,
		exec:    exec,
		cache:   resultcache.New(nil),
		reg:     registry.NewSchemaRegistry(),
		search:  newDebouncer(cfg.SearchDebounce),
		tracker: pagination.NewTracker(cfg.PageSize),
		status:  StatusIdle,
		queryCfg: query.QueryConfig{
			Mode: query.ModeBrowse,
		},
	}
}

// SetMutator wires the deletion path.
func (s *Store) SetMutator(m executor.Mutator) { s.mutator = m }

// SetCache replaces the result cache. A nil cache disables caching.
func (s *Store) SetCache(c *resultcache.Cache) { s.cache = c }

// SetLogger attaches a logger for fetch lifecycle events.
func (s *Store) SetLogger(l *logger.Logger) { s.log = l }

// SetObserver attaches an observer notified on every backend query.
func (s *Store) SetObserver(o observability.Observer) {
	s.observer = o
	if s.cache != nil {
		s.cache.SetObserver(o)
	}
}

// SetOnChange registers a callback fired after a debounced edit takes
// effect, so callers know to reload the current page.
func (s *Store) SetOnChange(fn func()) { s.onChange = fn }

// Registry exposes the discovered schema for attribute pickers.
func (s *Store) Registry() *registry.SchemaRegistry { return s.reg }

// Snapshot returns a consistent copy of the visible state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Status:            s.status,
		Err:               s.lastErr,
		Rows:              append([]executor.Row(nil), s.rows...),
		Total:             s.total,
		TotalKnown:        s.totalKnown,
		Aggregations:      s.aggs,
		AggregationGroups: s.groups,
		Page:              s.page,
		PageSize:          s.cfg.PageSize,
		Query:             s.queryCfg,
	}
	if s.fetching {
		snap.Status = StatusLoading
	}
	return snap
}

// LoadPage fetches the given 1-based page under the current query state
// and returns the resulting snapshot. Repeat pages are served from the
// result cache; a failed fetch keeps the previously shown rows and
// reports the classified error in the snapshot.
func (s *Store) LoadPage(ctx context.Context, page int) (Snapshot, error) {
	return s.loadPage(ctx, page, false)
}

func (s *Store) loadPage(ctx context.Context, page int, force bool) (Snapshot, error) {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	if s.fetching {
		s.mu.Unlock()
		return Snapshot{}, ErrFetchInFlight
	}
	cursor, err := s.tracker.Boundary(page)
	if err != nil {
		s.mu.Unlock()
		return s.Snapshot(), err
	}
	cfg := s.queryCfg
	gen := s.generation
	totalKnown := s.totalKnown
	pageSize := s.cfg.PageSize
	s.fetching = true
	s.mu.Unlock()

	snap, err := s.fetch(ctx, cfg, gen, page, pageSize, cursor, totalKnown, force)
	if err != nil && s.log != nil {
		s.log.Error("page load failed", err, map[string]interface{}{
			"namespace": s.cfg.Namespace,
			"page":      page,
		})
	}
	return snap, err
}

// Reload re-fetches the current page from the backend, skipping the
// result cache and re-running the count. Before anything has loaded it
// fetches page 1.
func (s *Store) Reload(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	page := s.page
	s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	return s.loadPage(ctx, page, true)
}

// fetch runs the full load sequence: cache lookup, count sub-query,
// primary query, state reconciliation, and async schema discovery.
func (s *Store) fetch(ctx context.Context, cfg query.QueryConfig, gen uint64, page, pageSize int, cursor string, totalKnown, force bool) (Snapshot, error) {
	aggregating := cfg.HasAggregations()
	fp := resultcache.Fingerprint{
		ConnectionID: s.cfg.ConnectionID,
		Namespace:    s.cfg.Namespace,
		Config:       cfg,
		Page:         page,
		PageSize:     pageSize,
	}

	// Aggregation results bypass the cache entirely; they are cheap and
	// carry no keyset state worth preserving.
	if !aggregating && !force && s.cache != nil {
		if entry, ok := s.cache.Get(fp); ok {
			snap := s.applyCached(gen, page, entry)
			// Cached rows still feed schema discovery; the entry may
			// have been written by a store that never ran it.
			if len(entry.Rows) > 0 {
				s.discoverAsync(entry.Rows)
			}
			return snap, nil
		}
	}

	filtered := len(cfg.Predicates) > 0 || cfg.SearchText != ""
	total := -1
	if !aggregating && (force || filtered || !totalKnown) {
		n, err := s.runCount(ctx, cfg)
		if err != nil {
			return s.applyFailure(gen, err), err
		}
		total = n
	}

	compiled, err := query.Compile(cfg, query.PageRequest{Page: page, PageSize: pageSize, Cursor: cursor}, s.reg)
	if err != nil {
		return s.applyFailure(gen, err), err
	}

	start := time.Now()
	result, err := s.exec.ExecuteQuery(ctx, s.cfg.Namespace, compiled)
	var returned int
	if result != nil {
		returned = len(result.Rows)
	}
	s.observe("primary", time.Since(start), err, int64(returned))
	if err != nil {
		err = executor.Classify(err)
		return s.applyFailure(gen, err), err
	}

	snap := s.applyResult(gen, page, cfg, fp, result, total, aggregating)

	if !aggregating && len(result.Rows) > 0 {
		s.discoverAsync(result.Rows)
	}
	return snap, nil
}

func (s *Store) runCount(ctx context.Context, cfg query.QueryConfig) (int, error) {
	countQuery, err := query.CountQuery(cfg, s.reg)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	result, err := s.exec.ExecuteQuery(ctx, s.cfg.Namespace, countQuery)
	s.observe("count", time.Since(start), err, 0)
	if err != nil {
		return 0, executor.Classify(err)
	}
	n, _ := result.Count("count")
	return n, nil
}

// applyCached installs a cache hit as the current page.
func (s *Store) applyCached(gen uint64, page int, entry *resultcache.Entry) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = false
	if gen != s.generation {
		return s.snapshotLocked()
	}
	s.rows = entry.Rows
	s.total = entry.Total
	s.totalKnown = true
	s.aggs = nil
	s.groups = nil
	s.page = page
	s.tracker.Advance(page, entry.LastKey)
	s.status = StatusSuccess
	s.lastErr = nil
	return s.snapshotLocked()
}

// applyResult reconciles a successful fetch. A fetch whose generation is
// stale leaves the state untouched: the user edited the query while it
// was in flight and a fresh load is on its way.
func (s *Store) applyResult(gen uint64, page int, cfg query.QueryConfig, fp resultcache.Fingerprint, result *executor.Result, total int, aggregating bool) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = false
	if gen != s.generation {
		return s.snapshotLocked()
	}

	if aggregating {
		s.aggs = result.Aggregations
		s.groups = result.AggregationGroups
		s.rows = nil
		s.page = page
		s.status = StatusSuccess
		s.lastErr = nil
		return s.snapshotLocked()
	}

	s.rows = result.Rows
	s.aggs = nil
	s.groups = nil
	if total >= 0 {
		s.total = total
		s.totalKnown = true
	}
	s.page = page
	s.tracker.Advance(page, result.LastKey())
	s.status = StatusSuccess
	s.lastErr = nil

	if s.cache != nil {
		s.cache.Put(fp, &resultcache.Entry{
			Rows:    result.Rows,
			Total:   s.total,
			LastKey: result.LastKey(),
		})
	}
	return s.snapshotLocked()
}

// applyFailure records a failed fetch, keeping the last successful rows
// visible.
func (s *Store) applyFailure(gen uint64, err error) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = false
	if gen != s.generation {
		return s.snapshotLocked()
	}
	s.status = StatusFailed
	s.lastErr = err
	return s.snapshotLocked()
}

// discoverAsync merges the fetched rows into the schema registry off the
// hot path. Discovery only widens the registry, so racing with the next
// fetch is harmless.
func (s *Store) discoverAsync(rows []executor.Row) {
	raw := make([]map[string]any, len(rows))
	for i, r := range rows {
		raw[i] = r
	}
	s.discovery.Add(1)
	go func() {
		defer s.discovery.Done()
		s.reg.DiscoverFromRows(raw)
	}()
}

// DeleteRows removes the given rows and purges the result cache, since a
// deletion can shift every keyset boundary behind it. The caller reloads
// afterwards.
func (s *Store) DeleteRows(ctx context.Context, keys []string) error {
	if s.mutator == nil {
		return ErrNoMutator
	}
	start := time.Now()
	err := s.mutator.DeleteRows(ctx, s.cfg.Namespace, keys)
	s.observe("delete", time.Since(start), err, int64(len(keys)))
	if err != nil {
		return executor.Classify(err)
	}

	if s.cache != nil {
		s.cache.Purge()
	}
	s.mu.Lock()
	s.totalKnown = false
	s.tracker.Reset(s.cfg.PageSize)
	s.generation++
	s.mu.Unlock()
	return nil
}

// Close stops pending debounced edits and waits for in-flight schema
// discovery.
func (s *Store) Close() {
	s.search.Stop()
	s.discovery.Wait()
}

func (s *Store) observe(operation string, duration time.Duration, err error, size int64) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveOperation(observability.OperationContext{
		Component: "browser",
		Operation: operation,
		Resource:  s.cfg.Namespace,
		Duration:  duration,
		Error:     err,
		Size:      size,
	})
}
