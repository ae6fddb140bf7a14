package resultcache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/recordatlas/browse/v1/executor"
	"github.com/recordatlas/browse/v1/observability"
)

// Entry is one cached page: the rows as served plus the total row count
// the filter state had when the page was fetched.
type Entry struct {
	Rows    []executor.Row
	Total   int
	LastKey string
}

// Cache stores recently served pages keyed by fingerprint. Entries expire
// after the configured TTL and the least recently used entry is evicted
// when the cache is full. All methods are safe for concurrent use.
type Cache struct {
	entries  *lru.LRU[string, *Entry]
	observer observability.Observer
}

// New builds a cache from the given config, falling back to defaults for
// zero values.
func New(cfg *Config) *Cache {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultConfig().Capacity
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultConfig().TTL
	}
	return &Cache{
		entries: lru.NewLRU[string, *Entry](capacity, nil, ttl),
	}
}

// SetObserver attaches an observer notified on every lookup.
func (c *Cache) SetObserver(observer observability.Observer) {
	c.observer = observer
}

// Get returns the cached page for the fingerprint, or false on a miss or
// expired entry.
func (c *Cache) Get(fp Fingerprint) (*Entry, bool) {
	start := time.Now()
	entry, ok := c.entries.Get(fp.Key())
	c.observe("get", fp, time.Since(start), ok)
	return entry, ok
}

// Put stores a served page under its fingerprint.
func (c *Cache) Put(fp Fingerprint, entry *Entry) {
	c.entries.Add(fp.Key(), entry)
}

// Purge drops every entry. Called after any destructive mutation, since a
// deletion can shift every keyset boundary behind it.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

func (c *Cache) observe(operation string, fp Fingerprint, duration time.Duration, hit bool) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveOperation(observability.OperationContext{
		Component: "resultcache",
		Operation: operation,
		Resource:  fp.Namespace,
		Duration:  duration,
		Metadata:  map[string]interface{}{"hit": hit},
	})
}
