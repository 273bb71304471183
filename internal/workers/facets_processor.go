// internal/workers/facets_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/pawmart/pawmart-be/internal/core/ports"
	"github.com/pawmart/pawmart-be/internal/core/search"
)

// Task type identifiers
const (
	TypeRefreshFacets = "facets:refresh"
	TypePurgeDeleted  = "listings:purge_deleted"
)

// Facet cache entries written by the refresh task live longer than the
// read-through TTL since the worker repopulates them on every mutation.
const refreshedFacetsTTL = 15 * time.Minute

// refreshLockKey guards the refresh across worker replicas; the TTL bounds
// how long a crashed holder can block the next run.
const (
	refreshLockKey = "facets:refresh:lock"
	refreshLockTTL = time.Minute
)

// FacetsProcessor recomputes facet aggregates in the background and primes
// the cache, so interactive requests rarely pay the aggregation cost.
type FacetsProcessor struct {
	repo   ports.ListingRepository
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewFacetsProcessor creates a new facets processor
func NewFacetsProcessor(repo ports.ListingRepository, cache ports.CacheRepository, logger *slog.Logger) *FacetsProcessor {
	return &FacetsProcessor{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("processor", "facets")),
	}
}

// RefreshFacets recomputes the unscoped facet summary and popular terms and
// writes them into the cache.
func (p *FacetsProcessor) RefreshFacets(ctx context.Context, t *asynq.Task) error {
	if p.cache != nil {
		acquired, err := p.cache.SetNX(ctx, refreshLockKey, time.Now().Unix(), refreshLockTTL)
		if err != nil {
			// A broken lock must not stop the refresh itself.
			p.logger.WarnContext(ctx, "refresh lock unavailable, proceeding",
				slog.String("error", err.Error()))
		} else if !acquired {
			p.logger.InfoContext(ctx, "refresh already running elsewhere, skipping")
			return nil
		}
	}

	p.logger.InfoContext(ctx, "refreshing facet aggregates")

	summary, err := p.repo.Facets(ctx, search.FacetScope{})
	if err != nil {
		return fmt.Errorf("failed to compute facets: %w", err)
	}

	terms, err := p.repo.TopFacets(ctx, search.DefaultSuggestLimit)
	if err != nil {
		return fmt.Errorf("failed to compute popular terms: %w", err)
	}

	if p.cache != nil {
		if err := p.cache.SetWithTTL(ctx, "facets:all", summary, refreshedFacetsTTL); err != nil {
			return fmt.Errorf("failed to cache facets: %w", err)
		}
		if err := p.cache.SetWithTTL(ctx, fmt.Sprintf("popular:%d", search.DefaultSuggestLimit), terms, refreshedFacetsTTL); err != nil {
			return fmt.Errorf("failed to cache popular terms: %w", err)
		}
	}

	p.logger.InfoContext(ctx, "facet aggregates refreshed",
		slog.Int("categories", len(summary.Categories)),
		slog.Int("locations", len(summary.Locations)))

	return nil
}
