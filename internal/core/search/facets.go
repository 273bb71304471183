// internal/core/search/facets.go
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pawmart/pawmart-be/internal/core/domain"
)

// Price bucket boundaries, in the listings' currency unit. Buckets are
// left-inclusive/right-exclusive; the last is open-ended. Price zero is the
// dedicated free-adoption bucket.
var priceBounds = []int64{0, 1000, 5000, 10000, 25000}

// PriceBucketLabels returns the fixed price bucket labels in boundary order.
func PriceBucketLabels() []string {
	return []string{"free", "0-1000", "1000-5000", "5000-10000", "10000-25000", "25000+"}
}

// Recency bucket labels in boundary order.
func DateBucketLabels() []string {
	return []string{"today", "last-7-days", "last-30-days", "last-90-days", "older"}
}

// FacetScope optionally restricts facet computation to one category.
type FacetScope struct {
	Category string
}

func (s FacetScope) matches(l *domain.Listing) bool {
	if s.Category == "" || strings.EqualFold(s.Category, CategoryAll) {
		return true
	}
	return strings.EqualFold(string(l.Category), s.Category)
}

// CategoryFacets counts listings per category, sorted by count descending
// with a lexicographic tiebreak.
func CategoryFacets(listings []*domain.Listing, scope FacetScope) []FacetBucket {
	return labelFacets(listings, scope, func(l *domain.Listing) string {
		return string(l.Category)
	})
}

// LocationFacets counts listings per location, sorted by count descending
// with a lexicographic tiebreak.
func LocationFacets(listings []*domain.Listing, scope FacetScope) []FacetBucket {
	return labelFacets(listings, scope, func(l *domain.Listing) string {
		return l.Location
	})
}

func labelFacets(listings []*domain.Listing, scope FacetScope, key func(*domain.Listing) string) []FacetBucket {
	type entry struct {
		label string
		count int64
	}
	byKey := map[string]*entry{}

	for _, l := range listings {
		if !scope.matches(l) {
			continue
		}
		label := key(l)
		if label == "" {
			continue
		}
		k := strings.ToLower(label)
		if e, ok := byKey[k]; ok {
			e.count++
			continue
		}
		byKey[k] = &entry{label: label, count: 1}
	}

	buckets := make([]FacetBucket, 0, len(byKey))
	for _, e := range byKey {
		buckets = append(buckets, FacetBucket{Label: e.label, Count: e.count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return strings.ToLower(buckets[i].Label) < strings.ToLower(buckets[j].Label)
	})
	return buckets
}

// PriceBuckets counts listings per fixed price range and averages prices
// within each occupied bucket. Every listing falls into exactly one bucket:
// free (price 0), then left-inclusive ranges, then the open-ended tail. A
// price exactly at a boundary belongs to the bucket starting there.
func PriceBuckets(listings []*domain.Listing, scope FacetScope) []FacetBucket {
	labels := PriceBucketLabels()
	counts := make([]int64, len(labels))
	sums := make([]decimal.Decimal, len(labels))

	for _, l := range listings {
		if !scope.matches(l) {
			continue
		}
		idx := priceBucketIndex(l.Price)
		counts[idx]++
		sums[idx] = sums[idx].Add(l.Price)
	}

	buckets := make([]FacetBucket, len(labels))
	for i, label := range labels {
		buckets[i] = FacetBucket{Label: label, Count: counts[i]}
		if counts[i] > 0 {
			avg := sums[i].Div(decimal.NewFromInt(counts[i])).Round(2)
			buckets[i].AvgPrice = &avg
		}
	}
	return buckets
}

func priceBucketIndex(price decimal.Decimal) int {
	if price.IsZero() {
		return 0
	}
	for i := 1; i < len(priceBounds); i++ {
		if price.LessThan(decimal.NewFromInt(priceBounds[i])) {
			return i
		}
	}
	return len(priceBounds)
}

// DateBuckets counts listings per recency range relative to now: created
// today, within the last 7/30/90 days, or older. Ranges are disjoint and
// left-inclusive on the time axis, so a listing exactly 7 days old lands in
// the last-7-days bucket.
func DateBuckets(listings []*domain.Listing, scope FacetScope, now time.Time) []FacetBucket {
	labels := DateBucketLabels()
	counts := make([]int64, len(labels))

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoffs := []time.Time{
		startOfToday,
		now.AddDate(0, 0, -7),
		now.AddDate(0, 0, -30),
		now.AddDate(0, 0, -90),
	}

	for _, l := range listings {
		if !scope.matches(l) {
			continue
		}
		counts[dateBucketIndex(l.CreatedAt, cutoffs)]++
	}

	buckets := make([]FacetBucket, len(labels))
	for i, label := range labels {
		buckets[i] = FacetBucket{Label: label, Count: counts[i]}
	}
	return buckets
}

func dateBucketIndex(created time.Time, cutoffs []time.Time) int {
	for i, cutoff := range cutoffs {
		if !created.Before(cutoff) {
			return i
		}
	}
	return len(cutoffs)
}

// Facets computes the full facet summary for the filter UI.
func Facets(listings []*domain.Listing, scope FacetScope, now time.Time) *FacetSummary {
	return &FacetSummary{
		Categories:   CategoryFacets(listings, scope),
		Locations:    LocationFacets(listings, scope),
		PriceBuckets: PriceBuckets(listings, scope),
		DateBuckets:  DateBuckets(listings, scope, now),
	}
}

// Popular returns the top-limit category and location facets.
func Popular(listings []*domain.Listing, limit int) *PopularTerms {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	cats := CategoryFacets(listings, FacetScope{})
	locs := LocationFacets(listings, FacetScope{})
	if len(cats) > limit {
		cats = cats[:limit]
	}
	if len(locs) > limit {
		locs = locs[:limit]
	}
	return &PopularTerms{Categories: cats, Locations: locs}
}
