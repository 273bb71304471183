// internal/core/services/search.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/core/ports"
	"github.com/pawmart/pawmart-be/internal/core/search"
)

// Cache TTLs for read-side search responses. Facet and popular-term
// aggregates are expensive and change slowly; suggestion lists are cheap
// but hot.
const (
	facetsCacheTTL  = 5 * time.Minute
	popularCacheTTL = 10 * time.Minute
	suggestCacheTTL = time.Minute
)

// SearchService implements the query composer and facet engine on top of a
// ListingRepository, with optional read-through caching of aggregates.
type SearchService struct {
	repo   ports.ListingRepository
	cache  ports.CacheRepository
	logger *slog.Logger
}

var _ ports.SearchService = (*SearchService)(nil)

// NewSearchService creates a new search service
func NewSearchService(repo ports.ListingRepository, cache ports.CacheRepository, logger *slog.Logger) *SearchService {
	return &SearchService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("service", "search")),
	}
}

// Search normalizes the request and returns one page of matches with
// pagination metadata and the applied filters echoed back.
func (s *SearchService) Search(ctx context.Context, req search.Request) (*search.Result, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	items, total, err := s.repo.Search(ctx, req)
	if err != nil {
		return nil, domain.E(domain.KindUnavailable, "search backend unavailable", err)
	}

	s.logger.DebugContext(ctx, "executed search",
		slog.String("query", req.Query),
		slog.String("category", req.Category),
		slog.Int64("total", total),
		slog.Int("page", req.Page))

	return &search.Result{
		Items:      items,
		Pagination: search.NewPagination(req.Page, req.PageSize, total),
		Applied:    search.AppliedFrom(req),
	}, nil
}

// Suggest returns ranked autocomplete candidates. Queries shorter than the
// minimum length yield an empty list without touching storage.
func (s *SearchService) Suggest(ctx context.Context, query string, limit int) ([]search.Suggestion, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < search.MinQueryLength {
		return []search.Suggestion{}, nil
	}

	if limit <= 0 {
		limit = search.DefaultSuggestLimit
	}
	if limit > search.MaxSuggestLimit {
		limit = search.MaxSuggestLimit
	}

	if s.cache == nil {
		suggestions, err := s.repo.Suggest(ctx, query, limit)
		if err != nil {
			return nil, domain.E(domain.KindUnavailable, "suggestion backend unavailable", err)
		}
		return suggestions, nil
	}

	key := fmt.Sprintf("suggest:%s:%d", strings.ToLower(query), limit)
	var suggestions []search.Suggestion
	err := s.cache.GetOrSet(ctx, key, &suggestions, func() (interface{}, error) {
		return s.repo.Suggest(ctx, query, limit)
	}, suggestCacheTTL)
	if err != nil {
		return nil, domain.E(domain.KindUnavailable, "suggestion backend unavailable", err)
	}
	return suggestions, nil
}

// PopularTerms returns the most frequent categories and locations across
// active listings.
func (s *SearchService) PopularTerms(ctx context.Context, limit int) (*search.PopularTerms, error) {
	if limit <= 0 {
		limit = search.DefaultSuggestLimit
	}
	if limit > search.MaxSuggestLimit {
		limit = search.MaxSuggestLimit
	}

	if s.cache == nil {
		terms, err := s.repo.TopFacets(ctx, limit)
		if err != nil {
			return nil, domain.E(domain.KindUnavailable, "facet backend unavailable", err)
		}
		return terms, nil
	}

	key := fmt.Sprintf("popular:%d", limit)
	terms := &search.PopularTerms{}
	err := s.cache.GetOrSet(ctx, key, terms, func() (interface{}, error) {
		return s.repo.TopFacets(ctx, limit)
	}, popularCacheTTL)
	if err != nil {
		return nil, domain.E(domain.KindUnavailable, "facet backend unavailable", err)
	}
	return terms, nil
}

// FilterSummary returns facet buckets for building filter UIs, optionally
// scoped to a single category.
func (s *SearchService) FilterSummary(ctx context.Context, category string) (*search.FacetSummary, error) {
	scope := search.FacetScope{Category: strings.TrimSpace(category)}

	if s.cache == nil {
		summary, err := s.repo.Facets(ctx, scope)
		if err != nil {
			return nil, domain.E(domain.KindUnavailable, "facet backend unavailable", err)
		}
		return summary, nil
	}

	key := facetsCacheKey(scope)
	summary := &search.FacetSummary{}
	err := s.cache.GetOrSet(ctx, key, summary, func() (interface{}, error) {
		return s.repo.Facets(ctx, scope)
	}, facetsCacheTTL)
	if err != nil {
		return nil, domain.E(domain.KindUnavailable, "facet backend unavailable", err)
	}
	return summary, nil
}

func facetsCacheKey(scope search.FacetScope) string {
	category := scope.Category
	if category == "" || strings.EqualFold(category, search.CategoryAll) {
		category = search.CategoryAll
	}
	return fmt.Sprintf("facets:%s", strings.ToLower(category))
}
