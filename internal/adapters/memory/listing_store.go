// internal/adapters/memory/listing_store.go
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/core/ports"
	"github.com/pawmart/pawmart-be/internal/core/search"
)

// ListingStore is an in-memory ListingRepository. It backs tests and local
// development, and its search behavior is defined entirely by the pure
// functions in the search package, which makes it the executable reference
// the Postgres adapter is checked against.
type ListingStore struct {
	mu       sync.RWMutex
	listings map[uuid.UUID]*domain.Listing
	deleted  map[uuid.UUID]time.Time
}

var _ ports.ListingRepository = (*ListingStore)(nil)

// NewListingStore creates an empty in-memory store
func NewListingStore() *ListingStore {
	return &ListingStore{
		listings: make(map[uuid.UUID]*domain.Listing),
		deleted:  make(map[uuid.UUID]time.Time),
	}
}

// Save stores a new listing
func (s *ListingStore) Save(_ context.Context, listing *domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.listings[listing.ID]; exists {
		return fmt.Errorf("listing already exists: %s", listing.ID)
	}

	cp := *listing
	s.listings[listing.ID] = &cp
	return nil
}

// SaveBatch stores multiple listings
func (s *ListingStore) SaveBatch(ctx context.Context, listings []domain.Listing) error {
	for i := range listings {
		if err := s.Save(ctx, &listings[i]); err != nil {
			return err
		}
	}
	return nil
}

// Update replaces an existing active listing
func (s *ListingStore) Update(_ context.Context, listing *domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.listings[listing.ID]; !exists {
		return domain.E(domain.KindNotFound, fmt.Sprintf("listing not found: %s", listing.ID), nil)
	}
	if _, gone := s.deleted[listing.ID]; gone {
		return domain.E(domain.KindNotFound, fmt.Sprintf("listing not found: %s", listing.ID), nil)
	}

	listing.UpdatedAt = time.Now().UTC()
	cp := *listing
	s.listings[listing.ID] = &cp
	return nil
}

// FindByID returns a copy of the listing, or nil when absent or soft-deleted
func (s *ListingStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, exists := s.listings[id]
	if !exists {
		return nil, nil
	}
	if _, gone := s.deleted[id]; gone {
		return nil, nil
	}

	cp := *listing
	return &cp, nil
}

// Delete removes a listing permanently
func (s *ListingStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.listings[id]; !exists {
		return domain.E(domain.KindNotFound, fmt.Sprintf("listing not found: %s", id), nil)
	}

	delete(s.listings, id)
	delete(s.deleted, id)
	return nil
}

// SoftDelete hides a listing from all read paths
func (s *ListingStore) SoftDelete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.listings[id]; !exists {
		return domain.E(domain.KindNotFound, fmt.Sprintf("listing not found: %s", id), nil)
	}
	if _, gone := s.deleted[id]; gone {
		return domain.E(domain.KindNotFound, fmt.Sprintf("listing not found: %s", id), nil)
	}

	s.deleted[id] = time.Now().UTC()

	if listing := s.listings[id]; listing != nil {
		now := s.deleted[id]
		listing.DeletedAt = &now
		listing.UpdatedAt = now
	}
	return nil
}

// PurgeDeleted removes listings soft-deleted longer ago than the window
func (s *ListingStore) PurgeDeleted(_ context.Context, olderThanDays int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	var purged int64
	for id, deletedAt := range s.deleted {
		if deletedAt.Before(cutoff) {
			delete(s.listings, id)
			delete(s.deleted, id)
			purged++
		}
	}
	return purged, nil
}

// Count returns the number of active listings
func (s *ListingStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.listings) - len(s.deleted)), nil
}

// Exists reports whether an active listing with the ID is stored
func (s *ListingStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, gone := s.deleted[id]; gone {
		return false, nil
	}
	_, exists := s.listings[id]
	return exists, nil
}

// Search filters, sorts and paginates active listings
func (s *ListingStore) Search(_ context.Context, req search.Request) ([]*domain.Listing, int64, error) {
	active := s.activeListings()

	matched := search.Filter(active, req)
	search.Sort(matched, req)
	page := search.Page(matched, req)

	return page, int64(len(matched)), nil
}

// Suggest returns ranked autocomplete candidates
func (s *ListingStore) Suggest(_ context.Context, query string, limit int) ([]search.Suggestion, error) {
	return search.Suggest(s.activeListings(), query, limit), nil
}

// Facets aggregates facet buckets over active listings
func (s *ListingStore) Facets(_ context.Context, scope search.FacetScope) (*search.FacetSummary, error) {
	return search.Facets(s.activeListings(), scope, time.Now().UTC()), nil
}

// TopFacets returns the most frequent categories and locations
func (s *ListingStore) TopFacets(_ context.Context, limit int) (*search.PopularTerms, error) {
	return search.Popular(s.activeListings(), limit), nil
}

// activeListings snapshots the store as a deterministic slice. Order is by
// creation time, newest first, so results are stable across calls.
func (s *ListingStore) activeListings() []*domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]*domain.Listing, 0, len(s.listings))
	for id, listing := range s.listings {
		if _, gone := s.deleted[id]; gone {
			continue
		}
		cp := *listing
		active = append(active, &cp)
	}

	sort.Slice(active, func(i, j int) bool {
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.After(active[j].CreatedAt)
		}
		return active[i].ID.String() < active[j].ID.String()
	})

	return active
}
