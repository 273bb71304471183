// internal/core/domain/listing.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListingCategory represents listing categories. The set is known but
// extensible: an unknown category is stored as-is and simply never matches
// category-scoped filters.
type ListingCategory string

// Category constants
const (
	CategoryDogs        ListingCategory = "dogs"
	CategoryCats        ListingCategory = "cats"
	CategoryBirds       ListingCategory = "birds"
	CategoryFish        ListingCategory = "fish"
	CategoryRabbits     ListingCategory = "rabbits"
	CategoryReptiles    ListingCategory = "reptiles"
	CategorySmallPets   ListingCategory = "small-pets"
	CategoryFood        ListingCategory = "food"
	CategoryToys        ListingCategory = "toys"
	CategoryAccessories ListingCategory = "accessories"
	CategoryGrooming    ListingCategory = "grooming"
	CategoryHealth      ListingCategory = "health"
	CategoryHabitats    ListingCategory = "habitats"
	CategoryOther       ListingCategory = "other"
)

// KnownCategories returns the canonical category set in display order.
func KnownCategories() []ListingCategory {
	return []ListingCategory{
		CategoryDogs, CategoryCats, CategoryBirds, CategoryFish,
		CategoryRabbits, CategoryReptiles, CategorySmallPets,
		CategoryFood, CategoryToys, CategoryAccessories,
		CategoryGrooming, CategoryHealth, CategoryHabitats, CategoryOther,
	}
}

// Listing represents a pet or pet-supply item offered for adoption or sale.
// A price of zero means free adoption.
type Listing struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Category    ListingCategory `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	OwnerEmail  string          `json:"owner_email"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`
}

// Validate performs domain validation on the listing.
func (l *Listing) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return &Error{Kind: KindInvalidRequest, Message: "name is required"}
	}
	if strings.TrimSpace(l.OwnerEmail) == "" {
		return &Error{Kind: KindInvalidRequest, Message: "owner_email is required"}
	}
	if l.Price.IsNegative() {
		return &Error{Kind: KindInvalidRequest, Message: "price cannot be negative"}
	}
	if l.Category == "" {
		l.Category = CategoryOther
	}
	return nil
}

// OwnedBy reports whether the listing belongs to the given owner.
// Email comparison is case-insensitive.
func (l *Listing) OwnedBy(email string) bool {
	return strings.EqualFold(l.OwnerEmail, email)
}

// PrepareForStorage fills in identity and timestamps before persisting.
func (l *Listing) PrepareForStorage() {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}

	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
}

// String implements fmt.Stringer for log output.
func (l *Listing) String() string {
	return fmt.Sprintf("%s (%s, %s)", l.Name, l.Category, l.ID)
}
