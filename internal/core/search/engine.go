// internal/core/search/engine.go
package search

import (
	"sort"
	"strings"

	"github.com/pawmart/pawmart-be/internal/core/domain"
)

// Relevance weights. Name matches dominate, category and location count the
// same, description matches least.
const (
	weightName        = 4
	weightCategory    = 2
	weightLocation    = 2
	weightDescription = 1
)

// Predicate is one independent filter clause. Active clauses are combined
// with logical AND.
type Predicate func(*domain.Listing) bool

// Predicates builds the filter clauses for a normalized request. Within the
// free-text clause the field matches are OR-ed; everything else is an AND.
func Predicates(req Request) []Predicate {
	var preds []Predicate

	if req.HasQuery() {
		q := strings.ToLower(req.Query)
		preds = append(preds, func(l *domain.Listing) bool {
			return containsFold(l.Name, q) ||
				containsFold(l.Description, q) ||
				containsFold(l.Location, q) ||
				containsFold(string(l.Category), q)
		})
	}

	if req.HasCategory() {
		c := req.Category
		preds = append(preds, func(l *domain.Listing) bool {
			return strings.EqualFold(string(l.Category), c)
		})
	}

	if req.MinPrice != nil {
		minPrice := *req.MinPrice
		preds = append(preds, func(l *domain.Listing) bool {
			return l.Price.GreaterThanOrEqual(minPrice)
		})
	}
	if req.MaxPrice != nil {
		maxPrice := *req.MaxPrice
		preds = append(preds, func(l *domain.Listing) bool {
			return l.Price.LessThanOrEqual(maxPrice)
		})
	}

	if req.Location != "" {
		loc := strings.ToLower(req.Location)
		preds = append(preds, func(l *domain.Listing) bool {
			return containsFold(l.Location, loc)
		})
	}

	if req.CreatedFrom != nil {
		from := *req.CreatedFrom
		preds = append(preds, func(l *domain.Listing) bool {
			return !l.CreatedAt.Before(from)
		})
	}
	if req.CreatedTo != nil {
		to := *req.CreatedTo
		preds = append(preds, func(l *domain.Listing) bool {
			return !l.CreatedAt.After(to)
		})
	}

	return preds
}

// Matches reports whether a listing satisfies every clause of the request.
func Matches(l *domain.Listing, preds []Predicate) bool {
	for _, p := range preds {
		if !p(l) {
			return false
		}
	}
	return true
}

// Filter returns the listings satisfying a normalized request, in input order.
func Filter(listings []*domain.Listing, req Request) []*domain.Listing {
	preds := Predicates(req)
	matched := make([]*domain.Listing, 0, len(listings))
	for _, l := range listings {
		if Matches(l, preds) {
			matched = append(matched, l)
		}
	}
	return matched
}

// Relevance scores how well a listing matches a free-text query. Higher is
// better; zero means no field contains the text.
func Relevance(l *domain.Listing, query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	score := 0
	if containsFold(l.Name, q) {
		score += weightName
	}
	if containsFold(string(l.Category), q) {
		score += weightCategory
	}
	if containsFold(l.Location, q) {
		score += weightLocation
	}
	if containsFold(l.Description, q) {
		score += weightDescription
	}
	return score
}

// Sort orders listings in place by the request's effective sort. Ties always
// break newest-first, then by ID, so repeated calls over identical data
// return identical sequences.
func Sort(listings []*domain.Listing, req Request) {
	key, order := req.EffectiveSort()

	less := lessFunc(key, order, req.Query)
	sort.SliceStable(listings, func(i, j int) bool {
		a, b := listings[i], listings[j]
		if c := less(a, b); c != 0 {
			return c < 0
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}

// lessFunc returns a three-way comparator for the primary sort key. Text
// keys compare case-insensitively so capitalized names do not cluster.
func lessFunc(key SortKey, order SortOrder, query string) func(a, b *domain.Listing) int {
	var cmp func(a, b *domain.Listing) int

	switch key {
	case SortPrice:
		cmp = func(a, b *domain.Listing) int { return a.Price.Cmp(b.Price) }
	case SortName:
		cmp = func(a, b *domain.Listing) int { return compareFold(a.Name, b.Name) }
	case SortLocation:
		cmp = func(a, b *domain.Listing) int { return compareFold(a.Location, b.Location) }
	case SortCategory:
		cmp = func(a, b *domain.Listing) int {
			return compareFold(string(a.Category), string(b.Category))
		}
	case SortRelevance:
		// Higher score sorts first; order is always descending here.
		return func(a, b *domain.Listing) int {
			return Relevance(b, query) - Relevance(a, query)
		}
	default: // SortDate
		cmp = func(a, b *domain.Listing) int {
			switch {
			case a.CreatedAt.Before(b.CreatedAt):
				return -1
			case a.CreatedAt.After(b.CreatedAt):
				return 1
			default:
				return 0
			}
		}
	}

	if order == OrderDesc {
		inner := cmp
		cmp = func(a, b *domain.Listing) int { return -inner(a, b) }
	}
	return cmp
}

// Page slices out the requested page. A page past the end yields an empty,
// non-nil slice.
func Page(listings []*domain.Listing, req Request) []*domain.Listing {
	offset := req.Offset()
	if offset >= len(listings) {
		return []*domain.Listing{}
	}
	end := offset + req.PageSize
	if end > len(listings) {
		end = len(listings)
	}
	return listings[offset:end]
}

// Execute runs the full compose pipeline over an in-memory listing set:
// filter, sort, paginate, envelope. It is the reference semantics the SQL
// adapter must agree with.
func Execute(listings []*domain.Listing, req Request) (*Result, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	matched := Filter(listings, req)
	Sort(matched, req)

	total := int64(len(matched))
	return &Result{
		Items:      Page(matched, req),
		Pagination: NewPagination(req.Page, req.PageSize, total),
		Applied:    AppliedFrom(req),
	}, nil
}

func containsFold(haystack, needleLower string) bool {
	return strings.Contains(strings.ToLower(haystack), needleLower)
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
