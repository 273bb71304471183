// internal/core/ports/listing_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/core/search"
)

// ListingRepository defines the persistence port for listings and the search
// surface the query composer consumes. Two implementations exist: the
// Postgres adapter and the in-memory adapter used in tests. Storage is always
// injected explicitly; there is no implicit runtime fallback between them.
type ListingRepository interface {
	Save(ctx context.Context, listing *domain.Listing) error
	SaveBatch(ctx context.Context, listings []domain.Listing) error
	Update(ctx context.Context, listing *domain.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	PurgeDeleted(ctx context.Context, olderThanDays int) (int64, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Search runs a normalized request and returns one page of matches plus
	// the total match count before pagination.
	Search(ctx context.Context, req search.Request) ([]*domain.Listing, int64, error)
	// Suggest returns ranked autocomplete candidates for a partial query.
	Suggest(ctx context.Context, query string, limit int) ([]search.Suggestion, error)
	// Facets aggregates category, location, price and recency counts.
	Facets(ctx context.Context, scope search.FacetScope) (*search.FacetSummary, error)
	// TopFacets returns the most frequent categories and locations.
	TopFacets(ctx context.Context, limit int) (*search.PopularTerms, error)
}
