// internal/handlers/search.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pawmart/pawmart-be/internal/core/ports"
	"github.com/pawmart/pawmart-be/internal/core/search"
)

// SearchHandler exposes the query composer and facet engine over HTTP
type SearchHandler struct {
	service ports.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service ports.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "search")),
	}
}

// SearchListings handles GET /api/v1/listings
func (h *SearchHandler) SearchListings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := parseSearchRequest(r)

	result, err := h.service.Search(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "search failed",
			slog.String("query", req.Query),
			slog.String("error", err.Error()))
		h.respondError(w, statusForError(err), messageForError(err, "Search failed"))
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Suggestions handles GET /api/v1/search/suggestions
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query().Get("q")
	limit := intParam(r, "limit", 0)

	suggestions, err := h.service.Suggest(ctx, query, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "suggestion lookup failed",
			slog.String("query", query),
			slog.String("error", err.Error()))
		h.respondError(w, statusForError(err), messageForError(err, "Failed to load suggestions"))
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":       query,
		"suggestions": suggestions,
	})
}

// Popular handles GET /api/v1/search/popular
func (h *SearchHandler) Popular(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := intParam(r, "limit", 0)

	terms, err := h.service.PopularTerms(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "popular terms lookup failed",
			slog.String("error", err.Error()))
		h.respondError(w, statusForError(err), messageForError(err, "Failed to load popular terms"))
		return
	}

	h.respondJSON(w, http.StatusOK, terms)
}

// Filters handles GET /api/v1/search/filters
func (h *SearchHandler) Filters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category := r.URL.Query().Get("category")

	summary, err := h.service.FilterSummary(ctx, category)
	if err != nil {
		h.logger.ErrorContext(ctx, "filter summary failed",
			slog.String("category", category),
			slog.String("error", err.Error()))
		h.respondError(w, statusForError(err), messageForError(err, "Failed to load filter summary"))
		return
	}

	h.respondJSON(w, http.StatusOK, summary)
}

func (h *SearchHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *SearchHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// parseSearchRequest builds a search request from query parameters.
// Malformed optional values are treated as absent rather than rejected, so
// a bad min_price degrades to an unfiltered search instead of a 400.
func parseSearchRequest(r *http.Request) search.Request {
	q := r.URL.Query()

	req := search.Request{
		Query:     q.Get("q"),
		Category:  q.Get("category"),
		Location:  q.Get("location"),
		SortBy:    search.SortKey(q.Get("sort_by")),
		SortOrder: search.SortOrder(q.Get("sort_order")),
		Page:      intParam(r, "page", 0),
		PageSize:  intParam(r, "page_size", 0),
	}

	if v := q.Get("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			req.MinPrice = &d
		}
	}
	if v := q.Get("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			req.MaxPrice = &d
		}
	}
	if v := q.Get("created_from"); v != "" {
		if ts, ok := parseTimeParam(v); ok {
			req.CreatedFrom = &ts
		}
	}
	if v := q.Get("created_to"); v != "" {
		if ts, ok := parseTimeParam(v); ok {
			req.CreatedTo = &ts
		}
	}

	return req
}

func intParam(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func parseTimeParam(v string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
