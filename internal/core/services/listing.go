// internal/core/services/listing.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/core/ports"
	"github.com/pawmart/pawmart-be/internal/workers"
)

// ListingService handles listing lifecycle business logic. The cache and
// asynq client are optional; when nil the service skips invalidation and
// background refresh.
type ListingService struct {
	repo   ports.ListingRepository
	cache  ports.CacheRepository
	asynq  *asynq.Client
	logger *slog.Logger
}

// Statically assert that *ListingService implements the ListingService port.
var _ ports.ListingService = (*ListingService)(nil)

// NewListingService creates a new listing service
func NewListingService(repo ports.ListingRepository, cache ports.CacheRepository, asynqClient *asynq.Client, logger *slog.Logger) *ListingService {
	return &ListingService{
		repo:   repo,
		cache:  cache,
		asynq:  asynqClient,
		logger: logger.With(slog.String("service", "listing")),
	}
}

// Create validates and persists a new listing
func (s *ListingService) Create(ctx context.Context, listing *domain.Listing) error {
	if err := listing.Validate(); err != nil {
		return err
	}

	listing.PrepareForStorage()

	if err := s.repo.Save(ctx, listing); err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}

	s.logger.InfoContext(ctx, "created listing",
		slog.String("id", listing.ID.String()),
		slog.String("name", listing.Name),
		slog.String("category", string(listing.Category)))

	s.invalidateSearchCaches(ctx)
	return nil
}

// CreateBatch validates and persists multiple listings
func (s *ListingService) CreateBatch(ctx context.Context, listings []domain.Listing) error {
	if len(listings) == 0 {
		s.logger.InfoContext(ctx, "no listings to save")
		return nil
	}

	for i := range listings {
		if err := listings[i].Validate(); err != nil {
			return fmt.Errorf("validation failed for listing %q: %w", listings[i].Name, err)
		}
		listings[i].PrepareForStorage()
	}

	if err := s.repo.SaveBatch(ctx, listings); err != nil {
		return fmt.Errorf("failed to save listings batch: %w", err)
	}

	s.logger.InfoContext(ctx, "saved listings batch",
		slog.Int("count", len(listings)))

	s.invalidateSearchCaches(ctx)
	return nil
}

// GetByID retrieves a listing by ID
func (s *ListingService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	if listing == nil {
		return nil, domain.E(domain.KindNotFound, fmt.Sprintf("listing not found: %s", id), nil)
	}
	return listing, nil
}

// Update replaces a listing's mutable fields after an ownership check
func (s *ListingService) Update(ctx context.Context, id uuid.UUID, ownerEmail string, listing *domain.Listing) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load listing: %w", err)
	}
	if existing == nil {
		return domain.E(domain.KindNotFound, fmt.Sprintf("listing not found: %s", id), nil)
	}

	if !existing.OwnedBy(ownerEmail) {
		return domain.E(domain.KindForbidden, "only the listing owner may update it", nil)
	}

	listing.ID = existing.ID
	listing.OwnerEmail = existing.OwnerEmail
	listing.CreatedAt = existing.CreatedAt
	listing.UpdatedAt = time.Now().UTC()

	if err := listing.Validate(); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, listing); err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	s.logger.InfoContext(ctx, "updated listing",
		slog.String("id", id.String()),
		slog.String("name", listing.Name))

	s.invalidateSearchCaches(ctx)
	return nil
}

// Delete soft-deletes a listing, or permanently removes it when permanent
// is set. Both paths require ownership.
func (s *ListingService) Delete(ctx context.Context, id uuid.UUID, ownerEmail string, permanent bool) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load listing: %w", err)
	}
	if existing == nil {
		return domain.E(domain.KindNotFound, fmt.Sprintf("listing not found: %s", id), nil)
	}

	if !existing.OwnedBy(ownerEmail) {
		return domain.E(domain.KindForbidden, "only the listing owner may delete it", nil)
	}

	if permanent {
		err = s.repo.Delete(ctx, id)
	} else {
		err = s.repo.SoftDelete(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	s.logger.InfoContext(ctx, "deleted listing",
		slog.String("id", id.String()),
		slog.Bool("permanent", permanent))

	s.invalidateSearchCaches(ctx)
	return nil
}

// invalidateSearchCaches drops cached search responses and schedules a facet
// refresh. Failures are logged and swallowed: the cache heals via TTL.
func (s *ListingService) invalidateSearchCaches(ctx context.Context) {
	if s.cache != nil {
		for _, pattern := range []string{"search:*", "facets:*", "suggest:*", "popular:*"} {
			if err := s.cache.DeletePattern(ctx, pattern); err != nil {
				s.logger.WarnContext(ctx, "failed to invalidate cache",
					slog.String("pattern", pattern),
					slog.String("error", err.Error()))
			}
		}
	}

	if s.asynq != nil {
		task := asynq.NewTask(workers.TypeRefreshFacets, nil)
		if _, err := s.asynq.Enqueue(task,
			asynq.Queue("default"),
			asynq.MaxRetry(3),
			asynq.Retention(time.Hour)); err != nil {
			s.logger.WarnContext(ctx, "failed to enqueue facet refresh",
				slog.String("error", err.Error()))
		}
	}
}
