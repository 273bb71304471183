// internal/core/services/listing_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/core/services"
	"github.com/pawmart/pawmart-be/test/helpers"
	"github.com/pawmart/pawmart-be/test/mocks"
)

func TestListingService_Create(t *testing.T) {
	tests := []struct {
		name          string
		listing       *domain.Listing
		setupMocks    func(*mocks.MockListingRepository)
		expectedError bool
		errorContains string
	}{
		{
			name:    "successful_create_with_valid_listing",
			listing: helpers.CreateTestListing(),
			setupMocks: func(m *mocks.MockListingRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			expectedError: false,
		},
		{
			name: "validation_fails_for_missing_name",
			listing: helpers.CreateTestListing(func(l *domain.Listing) {
				l.Name = ""
			}),
			setupMocks:    func(m *mocks.MockListingRepository) {},
			expectedError: true,
			errorContains: "name is required",
		},
		{
			name: "validation_fails_for_missing_owner",
			listing: helpers.CreateTestListing(func(l *domain.Listing) {
				l.OwnerEmail = "  "
			}),
			setupMocks:    func(m *mocks.MockListingRepository) {},
			expectedError: true,
			errorContains: "owner_email is required",
		},
		{
			name: "validation_fails_for_negative_price",
			listing: helpers.CreateTestListing(func(l *domain.Listing) {
				l.Price = decimal.NewFromFloat(-10.00)
			}),
			setupMocks:    func(m *mocks.MockListingRepository) {},
			expectedError: true,
			errorContains: "price cannot be negative",
		},
		{
			name:    "repository_save_error",
			listing: helpers.CreateTestListing(),
			setupMocks: func(m *mocks.MockListingRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(errors.New("database connection failed"))
			},
			expectedError: true,
			errorContains: "database connection failed",
		},
		{
			name: "sets_default_category_when_empty",
			listing: helpers.CreateTestListing(func(l *domain.Listing) {
				l.Category = ""
			}),
			setupMocks: func(m *mocks.MockListingRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, l *domain.Listing) error {
						assert.Equal(t, domain.CategoryOther, l.Category)
						return nil
					})
			},
			expectedError: false,
		},
		{
			name: "assigns_id_and_timestamps_before_save",
			listing: helpers.CreateTestListing(func(l *domain.Listing) {
				l.ID = uuid.Nil
				l.CreatedAt = time.Time{}
				l.UpdatedAt = time.Time{}
			}),
			setupMocks: func(m *mocks.MockListingRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, l *domain.Listing) error {
						assert.NotEqual(t, uuid.Nil, l.ID)
						assert.False(t, l.CreatedAt.IsZero())
						assert.False(t, l.UpdatedAt.IsZero())
						return nil
					})
			},
			expectedError: false,
		},
		{
			name: "free_adoption_price_is_valid",
			listing: helpers.CreateTestListing(func(l *domain.Listing) {
				l.Price = decimal.Zero
			}),
			setupMocks: func(m *mocks.MockListingRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			expectedError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockListingRepository(ctrl)
			tt.setupMocks(repo)

			service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
			err := service.Create(context.Background(), tt.listing)

			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestListingService_CreateBatch(t *testing.T) {
	t.Run("empty_batch_is_a_no_op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		require.NoError(t, service.CreateBatch(context.Background(), nil))
	})

	t.Run("saves_valid_batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)
		repo.EXPECT().
			SaveBatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, listings []domain.Listing) error {
				assert.Len(t, listings, 3)
				for _, l := range listings {
					assert.NotEqual(t, uuid.Nil, l.ID)
				}
				return nil
			})

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		err := service.CreateBatch(context.Background(), helpers.CreateTestListings(3))
		require.NoError(t, err)
	})

	t.Run("rejects_batch_with_invalid_listing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)

		listings := helpers.CreateTestListings(2)
		listings[1].Name = ""

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		err := service.CreateBatch(context.Background(), listings)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})
}

func TestListingService_GetByID(t *testing.T) {
	id := uuid.New()

	t.Run("returns_found_listing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)
		expected := helpers.CreateTestListing(func(l *domain.Listing) { l.ID = id })
		repo.EXPECT().FindByID(gomock.Any(), id).Return(expected, nil)

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		got, err := service.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("missing_listing_is_not_found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, nil)

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		_, err := service.GetByID(context.Background(), id)
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("repository_error_propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, errors.New("connection reset"))

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		_, err := service.GetByID(context.Background(), id)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestListingService_Update(t *testing.T) {
	id := uuid.New()
	owner := "owner@example.com"

	t.Run("owner_updates_mutable_fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)

		existing := helpers.CreateTestListing(func(l *domain.Listing) {
			l.ID = id
			l.OwnerEmail = owner
		})
		repo.EXPECT().FindByID(gomock.Any(), id).Return(existing, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, l *domain.Listing) error {
				assert.Equal(t, id, l.ID)
				assert.Equal(t, owner, l.OwnerEmail)
				assert.Equal(t, existing.CreatedAt, l.CreatedAt)
				assert.Equal(t, "Renamed Listing", l.Name)
				return nil
			})

		update := helpers.CreateTestListing(func(l *domain.Listing) {
			l.Name = "Renamed Listing"
			l.OwnerEmail = "attacker@example.com" // must be overwritten
		})

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		require.NoError(t, service.Update(context.Background(), id, owner, update))
	})

	t.Run("owner_check_is_case_insensitive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)

		existing := helpers.CreateTestListing(func(l *domain.Listing) {
			l.ID = id
			l.OwnerEmail = owner
		})
		repo.EXPECT().FindByID(gomock.Any(), id).Return(existing, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		err := service.Update(context.Background(), id, "OWNER@Example.COM", helpers.CreateTestListing())
		require.NoError(t, err)
	})

	t.Run("non_owner_is_forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)

		existing := helpers.CreateTestListing(func(l *domain.Listing) {
			l.ID = id
			l.OwnerEmail = owner
		})
		repo.EXPECT().FindByID(gomock.Any(), id).Return(existing, nil)

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		err := service.Update(context.Background(), id, "someone.else@example.com", helpers.CreateTestListing())
		require.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	})

	t.Run("missing_listing_is_not_found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, nil)

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		err := service.Update(context.Background(), id, owner, helpers.CreateTestListing())
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("invalid_update_is_rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)

		existing := helpers.CreateTestListing(func(l *domain.Listing) {
			l.ID = id
			l.OwnerEmail = owner
		})
		repo.EXPECT().FindByID(gomock.Any(), id).Return(existing, nil)

		update := helpers.CreateTestListing(func(l *domain.Listing) { l.Name = "" })

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		err := service.Update(context.Background(), id, owner, update)
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidRequest, domain.KindOf(err))
	})
}

func TestListingService_Delete(t *testing.T) {
	id := uuid.New()
	owner := "owner@example.com"

	existing := func() *domain.Listing {
		return helpers.CreateTestListing(func(l *domain.Listing) {
			l.ID = id
			l.OwnerEmail = owner
		})
	}

	t.Run("default_delete_is_soft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), id).Return(existing(), nil)
		repo.EXPECT().SoftDelete(gomock.Any(), id).Return(nil)

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		require.NoError(t, service.Delete(context.Background(), id, owner, false))
	})

	t.Run("permanent_delete_removes_the_row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), id).Return(existing(), nil)
		repo.EXPECT().Delete(gomock.Any(), id).Return(nil)

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		require.NoError(t, service.Delete(context.Background(), id, owner, true))
	})

	t.Run("non_owner_is_forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), id).Return(existing(), nil)

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		err := service.Delete(context.Background(), id, "someone.else@example.com", false)
		require.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	})

	t.Run("missing_listing_is_not_found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockListingRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, nil)

		service := services.NewListingService(repo, nil, nil, helpers.TestLogger())
		err := service.Delete(context.Background(), id, owner, false)
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestListingService_InvalidatesSearchCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockListingRepository(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	for _, pattern := range []string{"search:*", "facets:*", "suggest:*", "popular:*"} {
		cache.EXPECT().DeletePattern(gomock.Any(), pattern).Return(nil)
	}

	service := services.NewListingService(repo, cache, nil, helpers.TestLogger())
	require.NoError(t, service.Create(context.Background(), helpers.CreateTestListing()))
}

func TestListingService_CacheFailureDoesNotFailWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockListingRepository(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	cache.EXPECT().
		DeletePattern(gomock.Any(), gomock.Any()).
		Return(errors.New("redis down")).
		Times(4)

	service := services.NewListingService(repo, cache, nil, helpers.TestLogger())
	require.NoError(t, service.Create(context.Background(), helpers.CreateTestListing()))
}
