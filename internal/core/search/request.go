// internal/core/search/request.go

// Package search implements the query composer and facet engine: it turns a
// structured search request into filtered, sorted, paginated results, ranked
// autocomplete suggestions, and facet counts. All composition logic lives in
// pure functions over listings so it can be exercised without a live store;
// the Postgres adapter translates the same request into SQL.
package search

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pawmart/pawmart-be/internal/core/domain"
)

// SortKey identifies the field a search is ordered by.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortDate      SortKey = "date"
	SortPrice     SortKey = "price"
	SortName      SortKey = "name"
	SortLocation  SortKey = "location"
	SortCategory  SortKey = "category"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "all"

// Pagination and suggestion defaults. MaxPageSize bounds every result set.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	DefaultSuggestLimit = 5
	MaxSuggestLimit     = 20
	MinQueryLength      = 2
)

// Request is an ephemeral search request. All fields are optional; zero
// values mean "filter absent". Normalize fills defaults and validates the
// structurally required fields.
type Request struct {
	Query       string           `json:"query,omitempty"`
	Category    string           `json:"category,omitempty"`
	MinPrice    *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice    *decimal.Decimal `json:"max_price,omitempty"`
	Location    string           `json:"location,omitempty"`
	CreatedFrom *time.Time       `json:"created_from,omitempty"`
	CreatedTo   *time.Time       `json:"created_to,omitempty"`
	SortBy      SortKey          `json:"sort_by,omitempty"`
	SortOrder   SortOrder        `json:"sort_order,omitempty"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
}

// HasQuery reports whether a free-text query is present.
func (r *Request) HasQuery() bool {
	return strings.TrimSpace(r.Query) != ""
}

// HasCategory reports whether a real category filter is active. The "all"
// sentinel and the empty string both mean no filter.
func (r *Request) HasCategory() bool {
	c := strings.TrimSpace(r.Category)
	return c != "" && !strings.EqualFold(c, CategoryAll)
}

// EffectiveSort resolves the sort actually applied. Relevance without a
// free-text query deterministically falls back to newest-first; this mirrors
// the default ordering and is an observable API behavior, so it must not
// change silently.
func (r *Request) EffectiveSort() (SortKey, SortOrder) {
	key := r.SortBy
	order := r.SortOrder

	switch key {
	case SortRelevance:
		if !r.HasQuery() {
			return SortDate, OrderDesc
		}
		return SortRelevance, OrderDesc
	case SortDate, SortPrice, SortName, SortLocation, SortCategory:
	default:
		if r.HasQuery() {
			key = SortRelevance
			order = OrderDesc
		} else {
			key = SortDate
		}
	}

	if order != OrderAsc && order != OrderDesc {
		order = OrderDesc
	}
	return key, order
}

// Normalize applies defaults and validates the request in place. It returns
// a KindInvalidRequest error for input the caller must fix; filters that
// merely cannot match anything (unknown category, min > max) stay valid.
func (r *Request) Normalize() error {
	if r.Page < 0 {
		return &domain.Error{Kind: domain.KindInvalidRequest, Message: "page must be >= 1"}
	}
	if r.Page == 0 {
		r.Page = 1
	}

	if r.PageSize < 0 {
		return &domain.Error{Kind: domain.KindInvalidRequest, Message: "page size must be positive"}
	}
	if r.PageSize == 0 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}

	if r.MinPrice != nil && r.MinPrice.IsNegative() {
		return &domain.Error{Kind: domain.KindInvalidRequest, Message: "min price cannot be negative"}
	}
	if r.MaxPrice != nil && r.MaxPrice.IsNegative() {
		return &domain.Error{Kind: domain.KindInvalidRequest, Message: "max price cannot be negative"}
	}

	r.Query = strings.TrimSpace(r.Query)
	r.Category = strings.TrimSpace(r.Category)
	r.Location = strings.TrimSpace(r.Location)

	r.SortBy, r.SortOrder = r.EffectiveSort()
	return nil
}

// Offset returns the number of records skipped before the requested page.
// The request must be normalized first.
func (r *Request) Offset() int {
	return (r.Page - 1) * r.PageSize
}
