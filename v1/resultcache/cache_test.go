package resultcache

import (
	"testing"
	"time"

	"github.com/recordatlas/browse/v1/executor"
	"github.com/recordatlas/browse/v1/filters"
	"github.com/recordatlas/browse/v1/query"
	"github.com/recordatlas/browse/v1/registry"
)

func testFingerprint(page int) Fingerprint {
	return Fingerprint{
		ConnectionID: "conn-1",
		Namespace:    "docs",
		Config:       query.QueryConfig{Mode: query.ModeBrowse, SearchText: "report"},
		Page:         page,
		PageSize:     50,
	}
}

func TestCache_PutGet(t *testing.T) {
	c := New(DefaultConfig())
	entry := &Entry{Rows: []executor.Row{{"id": "doc-1"}}, Total: 1}

	c.Put(testFingerprint(1), entry)

	got, ok := c.Get(testFingerprint(1))
	if !ok {
		t.Fatal("expected a hit")
	}
	if got.Total != 1 || len(got.Rows) != 1 {
		t.Errorf("unexpected entry: %+v", got)
	}
}

func TestCache_MissOnDifferentPage(t *testing.T) {
	c := New(DefaultConfig())
	c.Put(testFingerprint(1), &Entry{})

	if _, ok := c.Get(testFingerprint(2)); ok {
		t.Error("page 2 must not hit page 1's entry")
	}
}

func TestCache_MissOnDifferentQueryState(t *testing.T) {
	c := New(DefaultConfig())
	c.Put(testFingerprint(1), &Entry{})

	fp := testFingerprint(1)
	fp.Config.SearchText = "summary"
	if _, ok := c.Get(fp); ok {
		t.Error("changed search text must change the fingerprint")
	}
}

func TestCache_PurgeDropsEverything(t *testing.T) {
	c := New(DefaultConfig())
	c.Put(testFingerprint(1), &Entry{})
	c.Put(testFingerprint(2), &Entry{})

	c.Purge()

	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
	if _, ok := c.Get(testFingerprint(1)); ok {
		t.Error("purged entry must not hit")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c := New(DefaultConfig().WithTTL(10 * time.Millisecond))
	c.Put(testFingerprint(1), &Entry{})

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get(testFingerprint(1)); ok {
		t.Error("expired entry must be a miss")
	}
}

func TestFingerprint_IgnoresPredicateIdentity(t *testing.T) {
	reg := registry.NewSchemaRegistry()
	reg.Declare(registry.Attribute{Name: "status", Type: registry.TypeString})

	first, err := filters.NewPredicate(reg, "status", filters.OpEquals, "published")
	if err != nil {
		t.Fatalf("predicate: %v", err)
	}
	second, err := filters.NewPredicate(reg, "status", filters.OpEquals, "published")
	if err != nil {
		t.Fatalf("predicate: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("test requires distinct predicate IDs")
	}

	a := testFingerprint(1)
	a.Config.Predicates = []filters.Predicate{first}
	b := testFingerprint(1)
	b.Config.Predicates = []filters.Predicate{second}

	if a.Key() != b.Key() {
		t.Error("semantically identical predicates must fingerprint equal")
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	fp := testFingerprint(3)
	if fp.Key() != fp.Key() {
		t.Error("fingerprint must be stable")
	}
	if fp.Key() == "" {
		t.Error("fingerprint must not be empty")
	}
}
