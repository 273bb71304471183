// internal/core/search/result.go
package search

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pawmart/pawmart-be/internal/core/domain"
)

// Pagination describes where a page of results sits in the full matching set.
// TotalItems counts the filtered set before pagination, never the page itself.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// AppliedFilters echoes the effective filters and sort a search ran with,
// including defaulted values, so clients can render them unambiguously.
type AppliedFilters struct {
	Query       string           `json:"query,omitempty"`
	Category    string           `json:"category,omitempty"`
	MinPrice    *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice    *decimal.Decimal `json:"max_price,omitempty"`
	Location    string           `json:"location,omitempty"`
	CreatedFrom *time.Time       `json:"created_from,omitempty"`
	CreatedTo   *time.Time       `json:"created_to,omitempty"`
	SortBy      SortKey          `json:"sort_by"`
	SortOrder   SortOrder        `json:"sort_order"`
}

// Result is the search result envelope.
type Result struct {
	Items      []*domain.Listing `json:"items"`
	Pagination Pagination        `json:"pagination"`
	Applied    AppliedFilters    `json:"applied"`
}

// SuggestionSource identifies the listing field a suggestion was drawn from.
type SuggestionSource string

const (
	SourceName     SuggestionSource = "name"
	SourceCategory SuggestionSource = "category"
	SourceLocation SuggestionSource = "location"
)

// Suggestion is a single autocomplete candidate.
type Suggestion struct {
	Text   string           `json:"text"`
	Source SuggestionSource `json:"source"`
	Count  int64            `json:"count"`
}

// FacetBucket is one aggregate count: a category, a location, or a fixed
// price/recency range. AvgPrice is populated for price buckets only.
type FacetBucket struct {
	Label    string           `json:"label"`
	Count    int64            `json:"count"`
	AvgPrice *decimal.Decimal `json:"avg_price,omitempty"`
}

// FacetSummary groups every facet dimension for the filter UI.
type FacetSummary struct {
	Categories   []FacetBucket `json:"categories"`
	Locations    []FacetBucket `json:"locations"`
	PriceBuckets []FacetBucket `json:"price_buckets"`
	DateBuckets  []FacetBucket `json:"date_buckets"`
}

// PopularTerms carries the top category and location facets for trending
// displays.
type PopularTerms struct {
	Categories []FacetBucket `json:"categories"`
	Locations  []FacetBucket `json:"locations"`
}

// NewPagination computes pagination metadata from a total match count. An
// empty set yields zero total pages with both flags false; a page past the
// end keeps the requested page echoed with HasNext false.
func NewPagination(page, pageSize int, total int64) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
}

// AppliedFrom builds the filter echo for a normalized request.
func AppliedFrom(req Request) AppliedFilters {
	applied := AppliedFilters{
		Query:       req.Query,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		Location:    req.Location,
		CreatedFrom: req.CreatedFrom,
		CreatedTo:   req.CreatedTo,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
	}
	if req.HasCategory() {
		applied.Category = req.Category
	}
	return applied
}
