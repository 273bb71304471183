// internal/handlers/search_test.go
package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/core/search"
	"github.com/pawmart/pawmart-be/internal/handlers"
	"github.com/pawmart/pawmart-be/test/helpers"
	"github.com/pawmart/pawmart-be/test/mocks"
)

func searchGet(t *testing.T, handlerFn http.HandlerFunc, path string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	req := httptest.NewRequest("GET", path+"?"+query.Encode(), nil)
	w := httptest.NewRecorder()
	handlerFn(w, req)
	return w
}

func TestSearchHandler_SearchListings(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		setupMocks     func(*testing.T, *mocks.MockSearchService)
		expectedStatus int
	}{
		{
			name: "parses_all_filter_parameters",
			queryParams: map[string]string{
				"q":          "golden",
				"category":   "dogs",
				"location":   "Portland",
				"min_price":  "10.50",
				"max_price":  "500",
				"sort_by":    "price",
				"sort_order": "asc",
				"page":       "2",
				"page_size":  "10",
			},
			setupMocks: func(t *testing.T, m *mocks.MockSearchService) {
				m.EXPECT().
					Search(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req search.Request) (*search.Result, error) {
						assert.Equal(t, "golden", req.Query)
						assert.Equal(t, "dogs", req.Category)
						assert.Equal(t, "Portland", req.Location)
						require.NotNil(t, req.MinPrice)
						assert.Equal(t, "10.5", req.MinPrice.String())
						require.NotNil(t, req.MaxPrice)
						assert.Equal(t, search.SortPrice, req.SortBy)
						assert.Equal(t, search.OrderAsc, req.SortOrder)
						assert.Equal(t, 2, req.Page)
						assert.Equal(t, 10, req.PageSize)
						return &search.Result{Items: []*domain.Listing{}}, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "malformed_price_degrades_to_absent_filter",
			queryParams: map[string]string{"min_price": "cheap"},
			setupMocks: func(t *testing.T, m *mocks.MockSearchService) {
				m.EXPECT().
					Search(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req search.Request) (*search.Result, error) {
						assert.Nil(t, req.MinPrice)
						return &search.Result{Items: []*domain.Listing{}}, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "date_filter_accepts_plain_dates",
			queryParams: map[string]string{"created_from": "2026-08-01"},
			setupMocks: func(t *testing.T, m *mocks.MockSearchService) {
				m.EXPECT().
					Search(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req search.Request) (*search.Result, error) {
						require.NotNil(t, req.CreatedFrom)
						assert.Equal(t, 2026, req.CreatedFrom.Year())
						return &search.Result{Items: []*domain.Listing{}}, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "invalid_request_maps_to_bad_request",
			queryParams: map[string]string{},
			setupMocks: func(t *testing.T, m *mocks.MockSearchService) {
				m.EXPECT().
					Search(gomock.Any(), gomock.Any()).
					Return(nil, domain.E(domain.KindInvalidRequest, "page must be >= 1", nil))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "backend_outage_maps_to_service_unavailable",
			queryParams: map[string]string{},
			setupMocks: func(t *testing.T, m *mocks.MockSearchService) {
				m.EXPECT().
					Search(gomock.Any(), gomock.Any()).
					Return(nil, domain.E(domain.KindUnavailable, "search backend unavailable", nil))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockSearchService(ctrl)
			tt.setupMocks(t, mockService)

			handler := handlers.NewSearchHandler(mockService, helpers.TestLogger())
			w := searchGet(t, handler.SearchListings, "/api/v1/listings", tt.queryParams)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
		})
	}
}

func TestSearchHandler_SearchListings_ResponseEnvelope(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockSearchService(ctrl)

	testListing := helpers.CreateTestListing()
	mockService.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		Return(&search.Result{
			Items:      []*domain.Listing{testListing},
			Pagination: search.NewPagination(1, 20, 1),
			Applied:    search.AppliedFilters{SortBy: search.SortDate, SortOrder: search.OrderDesc},
		}, nil)

	handler := handlers.NewSearchHandler(mockService, helpers.TestLogger())
	w := searchGet(t, handler.SearchListings, "/api/v1/listings", nil)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, "application/json", w.Result().Header.Get("Content-Type"))

	var result search.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, testListing.Name, result.Items[0].Name)
	assert.Equal(t, int64(1), result.Pagination.TotalItems)
	assert.Equal(t, search.SortDate, result.Applied.SortBy)
}

func TestSearchHandler_Suggestions(t *testing.T) {
	t.Run("returns_query_and_suggestions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := mocks.NewMockSearchService(ctrl)
		mockService.EXPECT().
			Suggest(gomock.Any(), "gold", 3).
			Return([]search.Suggestion{
				{Text: "Golden Retriever Puppy", Source: search.SourceName, Count: 2},
			}, nil)

		handler := handlers.NewSearchHandler(mockService, helpers.TestLogger())
		w := searchGet(t, handler.Suggestions, "/api/v1/search/suggestions", map[string]string{
			"q": "gold", "limit": "3",
		})

		require.Equal(t, http.StatusOK, w.Result().StatusCode)

		var response struct {
			Query       string              `json:"query"`
			Suggestions []search.Suggestion `json:"suggestions"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "gold", response.Query)
		require.Len(t, response.Suggestions, 1)
		assert.Equal(t, "Golden Retriever Puppy", response.Suggestions[0].Text)
	})

	t.Run("missing_limit_defers_to_service_default", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := mocks.NewMockSearchService(ctrl)
		mockService.EXPECT().
			Suggest(gomock.Any(), "gold", 0).
			Return([]search.Suggestion{}, nil)

		handler := handlers.NewSearchHandler(mockService, helpers.TestLogger())
		w := searchGet(t, handler.Suggestions, "/api/v1/search/suggestions", map[string]string{"q": "gold"})
		assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	})

	t.Run("backend_error_maps_to_service_unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := mocks.NewMockSearchService(ctrl)
		mockService.EXPECT().
			Suggest(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, domain.E(domain.KindUnavailable, "suggestion backend unavailable", nil))

		handler := handlers.NewSearchHandler(mockService, helpers.TestLogger())
		w := searchGet(t, handler.Suggestions, "/api/v1/search/suggestions", map[string]string{"q": "gold"})
		assert.Equal(t, http.StatusServiceUnavailable, w.Result().StatusCode)
	})
}

func TestSearchHandler_Popular(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockSearchService(ctrl)
	mockService.EXPECT().
		PopularTerms(gomock.Any(), 2).
		Return(&search.PopularTerms{
			Categories: []search.FacetBucket{{Label: "dogs", Count: 12}},
			Locations:  []search.FacetBucket{{Label: "Portland, OR", Count: 7}},
		}, nil)

	handler := handlers.NewSearchHandler(mockService, helpers.TestLogger())
	w := searchGet(t, handler.Popular, "/api/v1/search/popular", map[string]string{"limit": "2"})

	require.Equal(t, http.StatusOK, w.Result().StatusCode)

	var terms search.PopularTerms
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &terms))
	require.Len(t, terms.Categories, 1)
	assert.Equal(t, "dogs", terms.Categories[0].Label)
}

func TestSearchHandler_Filters(t *testing.T) {
	t.Run("scoped_to_category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := mocks.NewMockSearchService(ctrl)
		mockService.EXPECT().
			FilterSummary(gomock.Any(), "dogs").
			Return(&search.FacetSummary{
				Categories: []search.FacetBucket{{Label: "dogs", Count: 5}},
			}, nil)

		handler := handlers.NewSearchHandler(mockService, helpers.TestLogger())
		w := searchGet(t, handler.Filters, "/api/v1/search/filters", map[string]string{"category": "dogs"})

		require.Equal(t, http.StatusOK, w.Result().StatusCode)

		var summary search.FacetSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		require.Len(t, summary.Categories, 1)
		assert.Equal(t, int64(5), summary.Categories[0].Count)
	})

	t.Run("backend_error_maps_to_service_unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockService := mocks.NewMockSearchService(ctrl)
		mockService.EXPECT().
			FilterSummary(gomock.Any(), "").
			Return(nil, domain.E(domain.KindUnavailable, "facet backend unavailable", nil))

		handler := handlers.NewSearchHandler(mockService, helpers.TestLogger())
		w := searchGet(t, handler.Filters, "/api/v1/search/filters", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Result().StatusCode)
	})
}
