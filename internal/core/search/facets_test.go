// internal/core/search/facets_test.go
package search_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/core/search"
)

func priced(price float64) *domain.Listing {
	return listing("Priced Listing", domain.CategoryOther, price, "Denver, CO", 0)
}

func createdAt(ts time.Time) *domain.Listing {
	l := listing("Dated Listing", domain.CategoryOther, 10, "Denver, CO", 0)
	l.CreatedAt = ts
	return l
}

func bucketByLabel(t *testing.T, buckets []search.FacetBucket, label string) search.FacetBucket {
	t.Helper()
	for _, b := range buckets {
		if b.Label == label {
			return b
		}
	}
	t.Fatalf("no bucket labeled %q", label)
	return search.FacetBucket{}
}

func TestCategoryFacets(t *testing.T) {
	fixtures := []*domain.Listing{
		listing("A", domain.CategoryDogs, 10, "Denver, CO", 0),
		listing("B", domain.CategoryDogs, 10, "Denver, CO", 1),
		listing("C", domain.CategoryCats, 10, "Denver, CO", 2),
		listing("D", domain.CategoryBirds, 10, "Denver, CO", 3),
	}

	got := search.CategoryFacets(fixtures, search.FacetScope{})
	require.Len(t, got, 3)

	// Count descending; equal counts break ties lexicographically.
	assert.Equal(t, search.FacetBucket{Label: "dogs", Count: 2}, got[0])
	assert.Equal(t, search.FacetBucket{Label: "birds", Count: 1}, got[1])
	assert.Equal(t, search.FacetBucket{Label: "cats", Count: 1}, got[2])
}

func TestLocationFacets_GroupsCaseInsensitively(t *testing.T) {
	fixtures := []*domain.Listing{
		listing("A", domain.CategoryDogs, 10, "Portland, OR", 0),
		listing("B", domain.CategoryCats, 10, "portland, or", 1),
		listing("C", domain.CategoryBirds, 10, "Austin, TX", 2),
	}

	got := search.LocationFacets(fixtures, search.FacetScope{})
	require.Len(t, got, 2)
	assert.Equal(t, search.FacetBucket{Label: "Portland, OR", Count: 2}, got[0])
	assert.Equal(t, search.FacetBucket{Label: "Austin, TX", Count: 1}, got[1])
}

func TestLocationFacets_SkipsBlankValues(t *testing.T) {
	nowhere := listing("A", domain.CategoryDogs, 10, "", 0)
	somewhere := listing("B", domain.CategoryDogs, 10, "Denver, CO", 1)

	got := search.LocationFacets([]*domain.Listing{nowhere, somewhere}, search.FacetScope{})
	require.Len(t, got, 1)
	assert.Equal(t, "Denver, CO", got[0].Label)
}

func TestPriceBuckets_Boundaries(t *testing.T) {
	tests := []struct {
		price    float64
		expected string
	}{
		{0, "free"},
		{0.01, "0-1000"},
		{999.99, "0-1000"},
		{1000, "1000-5000"},
		{4999.99, "1000-5000"},
		{5000, "5000-10000"},
		{10000, "10000-25000"},
		{24999.99, "10000-25000"},
		{25000, "25000+"},
		{1000000, "25000+"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := search.PriceBuckets([]*domain.Listing{priced(tt.price)}, search.FacetScope{})
			b := bucketByLabel(t, got, tt.expected)
			assert.Equal(t, int64(1), b.Count, "price %v should land in bucket %s", tt.price, tt.expected)
		})
	}
}

func TestPriceBuckets_AllBucketsAlwaysPresent(t *testing.T) {
	got := search.PriceBuckets(nil, search.FacetScope{})
	require.Len(t, got, len(search.PriceBucketLabels()))
	for i, label := range search.PriceBucketLabels() {
		assert.Equal(t, label, got[i].Label)
		assert.Equal(t, int64(0), got[i].Count)
		assert.Nil(t, got[i].AvgPrice, "empty buckets carry no average")
	}
}

func TestPriceBuckets_AveragesOccupiedBuckets(t *testing.T) {
	got := search.PriceBuckets([]*domain.Listing{priced(10), priced(15)}, search.FacetScope{})

	b := bucketByLabel(t, got, "0-1000")
	assert.Equal(t, int64(2), b.Count)
	require.NotNil(t, b.AvgPrice)
	assert.True(t, b.AvgPrice.Equal(decimal.NewFromFloat(12.5)), "expected 12.5, got %s", b.AvgPrice)
}

func TestDateBuckets_Boundaries(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	startOfToday := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		created  time.Time
		expected string
	}{
		{"this_morning", startOfToday, "today"},
		{"an_hour_ago", now.Add(-time.Hour), "today"},
		{"yesterday", now.AddDate(0, 0, -1), "last-7-days"},
		{"exactly_seven_days_ago", now.AddDate(0, 0, -7), "last-7-days"},
		{"eight_days_ago", now.AddDate(0, 0, -8), "last-30-days"},
		{"exactly_thirty_days_ago", now.AddDate(0, 0, -30), "last-30-days"},
		{"sixty_days_ago", now.AddDate(0, 0, -60), "last-90-days"},
		{"exactly_ninety_days_ago", now.AddDate(0, 0, -90), "last-90-days"},
		{"a_year_ago", now.AddDate(-1, 0, 0), "older"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := search.DateBuckets([]*domain.Listing{createdAt(tt.created)}, search.FacetScope{}, now)
			b := bucketByLabel(t, got, tt.expected)
			assert.Equal(t, int64(1), b.Count)

			var total int64
			for _, bucket := range got {
				total += bucket.Count
			}
			assert.Equal(t, int64(1), total, "a listing belongs to exactly one bucket")
		})
	}
}

func TestFacets_ScopedToCategory(t *testing.T) {
	fixtures := []*domain.Listing{
		listing("A", domain.CategoryDogs, 100, "Portland, OR", 0),
		listing("B", domain.CategoryDogs, 200, "Denver, CO", 1),
		listing("C", domain.CategoryCats, 300, "Portland, OR", 2),
	}
	now := time.Now().UTC()

	got := search.Facets(fixtures, search.FacetScope{Category: "dogs"}, now)

	require.Len(t, got.Categories, 1)
	assert.Equal(t, search.FacetBucket{Label: "dogs", Count: 2}, got.Categories[0])
	assert.Len(t, got.Locations, 2)

	b := bucketByLabel(t, got.PriceBuckets, "0-1000")
	assert.Equal(t, int64(2), b.Count, "the cats listing is outside the scope")
}

func TestFacets_AllScopeMatchesEverything(t *testing.T) {
	fixtures := []*domain.Listing{
		listing("A", domain.CategoryDogs, 100, "Portland, OR", 0),
		listing("B", domain.CategoryCats, 300, "Denver, CO", 1),
	}
	now := time.Now().UTC()

	unscoped := search.Facets(fixtures, search.FacetScope{}, now)
	all := search.Facets(fixtures, search.FacetScope{Category: "all"}, now)
	assert.Equal(t, unscoped, all)
}

func TestPopular(t *testing.T) {
	fixtures := []*domain.Listing{
		listing("A", domain.CategoryDogs, 10, "Portland, OR", 0),
		listing("B", domain.CategoryDogs, 10, "Portland, OR", 1),
		listing("C", domain.CategoryCats, 10, "Denver, CO", 2),
		listing("D", domain.CategoryBirds, 10, "Austin, TX", 3),
		listing("E", domain.CategoryFish, 10, "Boise, ID", 4),
	}

	got := search.Popular(fixtures, 2)
	require.Len(t, got.Categories, 2)
	require.Len(t, got.Locations, 2)
	assert.Equal(t, "dogs", got.Categories[0].Label)
	assert.Equal(t, "Portland, OR", got.Locations[0].Label)

	// Non-positive limits fall back to the default.
	fallback := search.Popular(fixtures, 0)
	assert.Len(t, fallback.Categories, 4)
}
