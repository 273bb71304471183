// internal/adapters/memory/listing_store_test.go
package memory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawmart/pawmart-be/internal/adapters/memory"
	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/core/search"
	"github.com/pawmart/pawmart-be/test/helpers"
)

func seededStore(t *testing.T, listings ...*domain.Listing) *memory.ListingStore {
	t.Helper()
	store := memory.NewListingStore()
	for _, l := range listings {
		require.NoError(t, store.Save(context.Background(), l))
	}
	return store
}

func TestListingStore_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	store := memory.NewListingStore()
	l := helpers.CreateTestListing()

	require.NoError(t, store.Save(ctx, l))

	found, err := store.FindByID(ctx, l.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, l.Name, found.Name)

	// The store hands out copies, not aliases.
	found.Name = "mutated"
	again, err := store.FindByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.Name, again.Name)
}

func TestListingStore_SaveRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewListingStore()
	l := helpers.CreateTestListing()

	require.NoError(t, store.Save(ctx, l))
	err := store.Save(ctx, l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestListingStore_FindMissingReturnsNilNil(t *testing.T) {
	store := memory.NewListingStore()
	found, err := store.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestListingStore_Update(t *testing.T) {
	ctx := context.Background()
	l := helpers.CreateTestListing()
	store := seededStore(t, l)

	l.Price = decimal.NewFromInt(999)
	require.NoError(t, store.Update(ctx, l))

	found, err := store.FindByID(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, found.Price.Equal(decimal.NewFromInt(999)))
	assert.False(t, found.UpdatedAt.Before(found.CreatedAt))
}

func TestListingStore_UpdateMissing(t *testing.T) {
	store := memory.NewListingStore()
	err := store.Update(context.Background(), helpers.CreateTestListing())
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestListingStore_SoftDelete(t *testing.T) {
	ctx := context.Background()
	l := helpers.CreateTestListing()
	store := seededStore(t, l)

	require.NoError(t, store.SoftDelete(ctx, l.ID))

	found, err := store.FindByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Nil(t, found, "soft-deleted listings are invisible to reads")

	exists, err := store.Exists(ctx, l.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Deleting again is a not-found, identical to a hard-deleted row.
	err = store.SoftDelete(ctx, l.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestListingStore_Delete(t *testing.T) {
	ctx := context.Background()
	l := helpers.CreateTestListing()
	store := seededStore(t, l)

	require.NoError(t, store.Delete(ctx, l.ID))

	err := store.Delete(ctx, l.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestListingStore_SearchExcludesSoftDeleted(t *testing.T) {
	ctx := context.Background()
	visible := helpers.CreateTestListing(func(l *domain.Listing) { l.Name = "Visible Listing" })
	hidden := helpers.CreateTestListing(func(l *domain.Listing) { l.Name = "Hidden Listing" })
	store := seededStore(t, visible, hidden)
	require.NoError(t, store.SoftDelete(ctx, hidden.ID))

	req := search.Request{}
	require.NoError(t, req.Normalize())

	items, total, err := store.Search(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Visible Listing", items[0].Name)
}

func TestListingStore_SearchPagination(t *testing.T) {
	ctx := context.Background()
	store := memory.NewListingStore()
	require.NoError(t, store.SaveBatch(ctx, helpers.CreateTestListings(25)))

	req := search.Request{Page: 3, PageSize: 10}
	require.NoError(t, req.Normalize())

	items, total, err := store.Search(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, items, 5)

	// Total counts the filtered set, not the page.
	req = search.Request{Page: 9, PageSize: 10}
	require.NoError(t, req.Normalize())
	items, total, err = store.Search(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, items, 0)
}

func TestListingStore_Suggest(t *testing.T) {
	ctx := context.Background()
	store := memory.NewListingStore()
	require.NoError(t, store.SaveBatch(ctx, helpers.CreateTestListings(5)))

	got, err := store.Suggest(ctx, "test", 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, search.SourceName, got[0].Source)
}

func TestListingStore_Facets(t *testing.T) {
	ctx := context.Background()
	store := memory.NewListingStore()
	require.NoError(t, store.SaveBatch(ctx, helpers.CreateTestListings(10)))

	summary, err := store.Facets(ctx, search.FacetScope{})
	require.NoError(t, err)
	assert.NotEmpty(t, summary.Categories)
	assert.NotEmpty(t, summary.Locations)
	assert.Len(t, summary.PriceBuckets, len(search.PriceBucketLabels()))
	assert.Len(t, summary.DateBuckets, len(search.DateBucketLabels()))

	var total int64
	for _, b := range summary.Categories {
		total += b.Count
	}
	assert.Equal(t, int64(10), total)
}

func TestListingStore_TopFacets(t *testing.T) {
	ctx := context.Background()
	store := memory.NewListingStore()
	require.NoError(t, store.SaveBatch(ctx, helpers.CreateTestListings(10)))

	popular, err := store.TopFacets(ctx, 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(popular.Categories), 2)
	assert.LessOrEqual(t, len(popular.Locations), 2)
}

func TestListingStore_PurgeDeleted(t *testing.T) {
	ctx := context.Background()
	l := helpers.CreateTestListing()
	store := seededStore(t, l)
	require.NoError(t, store.SoftDelete(ctx, l.ID))

	// Deleted moments ago: outside any positive retention window.
	purged, err := store.PurgeDeleted(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(0), purged)

	// A negative window moves the cutoff into the future and purges it.
	purged, err = store.PurgeDeleted(ctx, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	exists, err := store.Exists(ctx, l.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
