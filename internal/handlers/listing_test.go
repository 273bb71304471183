// internal/handlers/listing_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/handlers"
	"github.com/pawmart/pawmart-be/test/helpers"
	"github.com/pawmart/pawmart-be/test/mocks"
)

func TestListingHandler_GetListing(t *testing.T) {
	testListing := helpers.CreateTestListing()

	tests := []struct {
		name           string
		listingID      string
		setupMocks     func(*mocks.MockListingService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:      "successfully_retrieves_listing",
			listingID: testListing.ID.String(),
			setupMocks: func(m *mocks.MockListingService) {
				m.EXPECT().
					GetByID(gomock.Any(), testListing.ID).
					Return(testListing, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response domain.Listing
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, testListing.ID, response.ID)
				assert.Equal(t, testListing.Name, response.Name)
			},
		},
		{
			name:           "invalid_uuid_format",
			listingID:      "not-a-uuid",
			setupMocks:     func(m *mocks.MockListingService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Invalid listing ID format", response["error"])
			},
		},
		{
			name:      "listing_not_found",
			listingID: uuid.New().String(),
			setupMocks: func(m *mocks.MockListingService) {
				m.EXPECT().
					GetByID(gomock.Any(), gomock.Any()).
					Return(nil, domain.E(domain.KindNotFound, "listing not found", nil))
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "listing not found", response["error"])
			},
		},
		{
			name:      "opaque_service_error_does_not_leak",
			listingID: testListing.ID.String(),
			setupMocks: func(m *mocks.MockListingService) {
				m.EXPECT().
					GetByID(gomock.Any(), testListing.ID).
					Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Failed to retrieve listing", response["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockListingService(ctrl)
			tt.setupMocks(mockService)

			handler := handlers.NewListingHandler(mockService, helpers.TestLogger())

			req := httptest.NewRequest("GET", "/api/v1/listings/"+tt.listingID, nil)
			req.SetPathValue("id", tt.listingID)
			w := httptest.NewRecorder()

			handler.GetListing(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestListingHandler_CreateListing(t *testing.T) {
	validBody := `{"name": "Golden Retriever Puppy", "category": "Dogs", "price": "850", "location": "Portland, OR"}`

	tests := []struct {
		name           string
		body           string
		ownerHeader    string
		setupMocks     func(*mocks.MockListingService)
		expectedStatus int
	}{
		{
			name:        "successfully_creates_listing",
			body:        validBody,
			ownerHeader: "owner@example.com",
			setupMocks: func(m *mocks.MockListingService) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, l *domain.Listing) error {
						assert.Equal(t, "Golden Retriever Puppy", l.Name)
						assert.Equal(t, domain.CategoryDogs, l.Category, "category is lowercased")
						assert.Equal(t, "owner@example.com", l.OwnerEmail, "owner comes from the header")
						return nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_owner_header",
			body:           validBody,
			ownerHeader:    "",
			setupMocks:     func(m *mocks.MockListingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed_json_body",
			body:           `{"name": `,
			ownerHeader:    "owner@example.com",
			setupMocks:     func(m *mocks.MockListingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "validation_error_maps_to_bad_request",
			body:        `{"name": "", "price": "10"}`,
			ownerHeader: "owner@example.com",
			setupMocks: func(m *mocks.MockListingService) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(domain.E(domain.KindInvalidRequest, "name is required", nil))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "storage_failure_maps_to_unavailable",
			body:        validBody,
			ownerHeader: "owner@example.com",
			setupMocks: func(m *mocks.MockListingService) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(domain.E(domain.KindUnavailable, "storage unavailable", nil))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockListingService(ctrl)
			tt.setupMocks(mockService)

			handler := handlers.NewListingHandler(mockService, helpers.TestLogger())

			req := httptest.NewRequest("POST", "/api/v1/listings", bytes.NewBufferString(tt.body))
			if tt.ownerHeader != "" {
				req.Header.Set(handlers.OwnerHeader, tt.ownerHeader)
			}
			w := httptest.NewRecorder()

			handler.CreateListing(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
		})
	}
}

func TestListingHandler_UpdateListing(t *testing.T) {
	id := uuid.New()
	validBody := `{"name": "Renamed Listing", "price": "25"}`

	tests := []struct {
		name           string
		listingID      string
		body           string
		ownerHeader    string
		setupMocks     func(*mocks.MockListingService)
		expectedStatus int
	}{
		{
			name:        "successfully_updates_listing",
			listingID:   id.String(),
			body:        validBody,
			ownerHeader: "owner@example.com",
			setupMocks: func(m *mocks.MockListingService) {
				m.EXPECT().
					Update(gomock.Any(), id, "owner@example.com", gomock.Any()).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid_uuid_format",
			listingID:      "not-a-uuid",
			body:           validBody,
			ownerHeader:    "owner@example.com",
			setupMocks:     func(m *mocks.MockListingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing_owner_header",
			listingID:      id.String(),
			body:           validBody,
			ownerHeader:    "",
			setupMocks:     func(m *mocks.MockListingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "non_owner_is_forbidden",
			listingID:   id.String(),
			body:        validBody,
			ownerHeader: "someone.else@example.com",
			setupMocks: func(m *mocks.MockListingService) {
				m.EXPECT().
					Update(gomock.Any(), id, "someone.else@example.com", gomock.Any()).
					Return(domain.E(domain.KindForbidden, "only the listing owner may update it", nil))
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockListingService(ctrl)
			tt.setupMocks(mockService)

			handler := handlers.NewListingHandler(mockService, helpers.TestLogger())

			req := httptest.NewRequest("PUT", "/api/v1/listings/"+tt.listingID, bytes.NewBufferString(tt.body))
			req.SetPathValue("id", tt.listingID)
			if tt.ownerHeader != "" {
				req.Header.Set(handlers.OwnerHeader, tt.ownerHeader)
			}
			w := httptest.NewRecorder()

			handler.UpdateListing(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
		})
	}
}

func TestListingHandler_DeleteListing(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		listingID      string
		query          string
		ownerHeader    string
		setupMocks     func(*mocks.MockListingService)
		expectedStatus int
	}{
		{
			name:        "default_delete_is_soft",
			listingID:   id.String(),
			ownerHeader: "owner@example.com",
			setupMocks: func(m *mocks.MockListingService) {
				m.EXPECT().
					Delete(gomock.Any(), id, "owner@example.com", false).
					Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:        "permanent_delete_via_query_param",
			listingID:   id.String(),
			query:       "?permanent=true",
			ownerHeader: "owner@example.com",
			setupMocks: func(m *mocks.MockListingService) {
				m.EXPECT().
					Delete(gomock.Any(), id, "owner@example.com", true).
					Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "missing_owner_header",
			listingID:      id.String(),
			ownerHeader:    "",
			setupMocks:     func(m *mocks.MockListingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "missing_listing",
			listingID:   id.String(),
			ownerHeader: "owner@example.com",
			setupMocks: func(m *mocks.MockListingService) {
				m.EXPECT().
					Delete(gomock.Any(), id, "owner@example.com", false).
					Return(domain.E(domain.KindNotFound, "listing not found", nil))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockListingService(ctrl)
			tt.setupMocks(mockService)

			handler := handlers.NewListingHandler(mockService, helpers.TestLogger())

			req := httptest.NewRequest("DELETE", "/api/v1/listings/"+tt.listingID+tt.query, nil)
			req.SetPathValue("id", tt.listingID)
			if tt.ownerHeader != "" {
				req.Header.Set(handlers.OwnerHeader, tt.ownerHeader)
			}
			w := httptest.NewRecorder()

			handler.DeleteListing(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
		})
	}
}
