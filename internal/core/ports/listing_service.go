// internal/core/ports/listing_service.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/core/search"
)

// ListingService defines the application service port for listing lifecycle.
// Mutations are owner-checked: only the listing's owner may update or delete.
type ListingService interface {
	Create(ctx context.Context, listing *domain.Listing) error
	CreateBatch(ctx context.Context, listings []domain.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	Update(ctx context.Context, id uuid.UUID, ownerEmail string, listing *domain.Listing) error
	Delete(ctx context.Context, id uuid.UUID, ownerEmail string, permanent bool) error
}

// SearchService defines the application port for the query composer and
// facet engine. All operations are read-only and safe for any number of
// concurrent callers.
type SearchService interface {
	Search(ctx context.Context, req search.Request) (*search.Result, error)
	Suggest(ctx context.Context, query string, limit int) ([]search.Suggestion, error)
	PopularTerms(ctx context.Context, limit int) (*search.PopularTerms, error)
	FilterSummary(ctx context.Context, category string) (*search.FacetSummary, error)
}
