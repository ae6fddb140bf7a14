package savedfilters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recordatlas/browse/v1/filters"
	"github.com/recordatlas/browse/v1/registry"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(DefaultConfig().WithPath(":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testPredicate(t *testing.T, attribute string, op filters.Operator, input any) filters.Predicate {
	t.Helper()
	reg := registry.NewSchemaRegistry()
	reg.Declare(registry.Attribute{Name: "status", Type: registry.TypeString})
	reg.Declare(registry.Attribute{Name: "rating", Type: registry.TypeNumber})
	reg.Declare(registry.Attribute{Name: "tags", Type: registry.TypeStringArray})
	pred, err := filters.NewPredicate(reg, attribute, op, input)
	require.NoError(t, err)
	return pred
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, SavedFilter{
		Name:      "published docs",
		Namespace: "documents",
		Predicates: []filters.Predicate{
			testPredicate(t, "status", filters.OpEquals, "published"),
			testPredicate(t, "rating", filters.OpGreaterOrEqual, 4.0),
			testPredicate(t, "tags", filters.OpContainsAny, "report, draft"),
		},
		SearchText: "quarterly",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := store.Get(ctx, "documents", "published docs")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "quarterly", got.SearchText)
	require.Len(t, got.Predicates, 3)
	assert.Equal(t, "status", got.Predicates[0].Attribute)
	assert.Equal(t, filters.OpEquals, got.Predicates[0].Operator)
	assert.Equal(t, "rating", got.Predicates[1].Attribute)
	require.Equal(t, filters.KindArray, got.Predicates[2].Value.Kind())
	assert.Len(t, got.Predicates[2].Value.Items(), 2)
}

func TestSaveUpsertsByName(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, SavedFilter{
		Name:       "drafts",
		Namespace:  "documents",
		Predicates: []filters.Predicate{testPredicate(t, "status", filters.OpEquals, "draft")},
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	second, err := store.Save(ctx, SavedFilter{
		Name:       "drafts",
		Namespace:  "documents",
		Predicates: []filters.Predicate{testPredicate(t, "status", filters.OpNotEquals, "published")},
		SearchText: "wip",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	require.Len(t, second.Predicates, 1)
	assert.Equal(t, filters.OpNotEquals, second.Predicates[0].Operator)
	assert.Equal(t, "wip", second.SearchText)

	all, err := store.List(ctx, "documents")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListOrdersByMostRecentUpdate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"oldest", "middle", "newest"} {
		_, err := store.Save(ctx, SavedFilter{Name: name, Namespace: "documents"})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	all, err := store.List(ctx, "documents")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "newest", all[0].Name)
	assert.Equal(t, "oldest", all[2].Name)
}

func TestListScopedToNamespace(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, SavedFilter{Name: "shared name", Namespace: "documents"})
	require.NoError(t, err)
	_, err = store.Save(ctx, SavedFilter{Name: "shared name", Namespace: "images"})
	require.NoError(t, err)

	docs, err := store.List(ctx, "documents")
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	none, err := store.List(ctx, "videos")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteRemovesFilter(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, SavedFilter{Name: "temp", Namespace: "documents"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "documents", "temp"))

	_, err = store.Get(ctx, "documents", "temp")
	assert.ErrorIs(t, err, ErrFilterNotFound)

	err = store.Delete(ctx, "documents", "temp")
	assert.ErrorIs(t, err, ErrFilterNotFound)
}
