// internal/handlers/listing.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/core/ports"
)

// OwnerHeader carries the caller's identity. Authentication happens
// upstream; by the time a request reaches this service the gateway has
// verified the header.
const OwnerHeader = "X-User-Email"

// ListingHandler handles listing CRUD HTTP requests
type ListingHandler struct {
	service ports.ListingService
	logger  *slog.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(service ports.ListingService, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "listing")),
	}
}

// GetListing handles GET /api/v1/listings/{id}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	listing, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get listing",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, statusForError(err), messageForError(err, "Failed to retrieve listing"))
		return
	}

	h.respondJSON(w, http.StatusOK, listing)
}

// CreateListing handles POST /api/v1/listings
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner := strings.TrimSpace(r.Header.Get(OwnerHeader))
	if owner == "" {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("%s header is required", OwnerHeader))
		return
	}

	var req ListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	listing := req.ToDomain()
	listing.OwnerEmail = owner

	if err := h.service.Create(ctx, listing); err != nil {
		h.logger.ErrorContext(ctx, "failed to create listing",
			slog.String("error", err.Error()))
		h.respondError(w, statusForError(err), messageForError(err, "Failed to create listing"))
		return
	}

	h.logger.InfoContext(ctx, "listing created",
		slog.String("id", listing.ID.String()),
		slog.String("name", listing.Name))

	h.respondJSON(w, http.StatusCreated, listing)
}

// UpdateListing handles PUT /api/v1/listings/{id}
func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	owner := strings.TrimSpace(r.Header.Get(OwnerHeader))
	if owner == "" {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("%s header is required", OwnerHeader))
		return
	}

	var req ListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	listing := req.ToDomain()
	if err := h.service.Update(ctx, id, owner, listing); err != nil {
		h.logger.ErrorContext(ctx, "failed to update listing",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, statusForError(err), messageForError(err, "Failed to update listing"))
		return
	}

	h.respondJSON(w, http.StatusOK, listing)
}

// DeleteListing handles DELETE /api/v1/listings/{id}. Deletes are soft by
// default; ?permanent=true removes the row entirely.
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	owner := strings.TrimSpace(r.Header.Get(OwnerHeader))
	if owner == "" {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("%s header is required", OwnerHeader))
		return
	}

	permanent := r.URL.Query().Get("permanent") == "true"

	if err := h.service.Delete(ctx, id, owner, permanent); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete listing",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, statusForError(err), messageForError(err, "Failed to delete listing"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ListingHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *ListingHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// statusForError maps domain error kinds to HTTP status codes
func statusForError(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidRequest:
		return http.StatusBadRequest
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// messageForError exposes domain error messages to clients; anything else
// gets the fallback so internals never leak.
func messageForError(err error, fallback string) string {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return fallback
}

// Request/Response DTOs

// ListingRequest represents the request body for creating or updating a
// listing. The owner always comes from the identity header, never the body.
type ListingRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// ToDomain converts the request to a domain listing
func (r *ListingRequest) ToDomain() *domain.Listing {
	return &domain.Listing{
		Name:        strings.TrimSpace(r.Name),
		Category:    domain.ListingCategory(strings.ToLower(strings.TrimSpace(r.Category))),
		Price:       r.Price,
		Location:    strings.TrimSpace(r.Location),
		Description: strings.TrimSpace(r.Description),
		ImageURL:    strings.TrimSpace(r.ImageURL),
	}
}
