// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pawmart/pawmart-be/internal/adapters/db"
	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB creates a PostgreSQL container for integration tests
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_listings",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_listings",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		StatementCacheMode: "describe",
		EnableQueryLogging: testing.Verbose(),
	}

	// Wait for database to be ready
	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	ctx := context.Background()
	migrationConfig := &db.MigrationConfig{
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
			dbConfig.Database, dbConfig.SSLMode),
		SourcePath: "../../migrations",
		TableName:  "schema_migrations",
		SchemaName: "public",
	}

	err = db.RunMigrationsWithRetry(ctx, migrationConfig, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:               "localhost",
			Port:               "5432",
			User:               "test",
			Password:           "test",
			Name:               "test_listings",
			SSLMode:            "disable",
			MaxConnections:     10,
			MinConnections:     2,
			EnableQueryLogging: true,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			TTL:      time.Hour,
			PoolSize: 10,
		},
		Search: config.SearchConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
			SuggestLimit:    5,
			SuggestMinChars: 2,
			FacetsCacheTTL:  5 * time.Minute,
			PurgeAfterDays:  30,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			SecureHeaders:     false,
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestListing creates a test listing
func CreateTestListing(overrides ...func(*domain.Listing)) *domain.Listing {
	listing := &domain.Listing{
		ID:          uuid.New(),
		Name:        "Golden Retriever Puppy",
		Category:    domain.CategoryDogs,
		Price:       decimal.NewFromInt(850),
		Location:    "Portland, OR",
		Description: "Friendly twelve week old puppy, vaccinated and microchipped",
		ImageURL:    "https://img.example.com/golden.jpg",
		OwnerEmail:  "owner@example.com",
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	for _, override := range overrides {
		override(listing)
	}

	return listing
}

// CreateTestListings creates multiple distinct test listings. Creation
// times step backwards one hour per listing so newest-first ordering is
// deterministic: listing 1 is the newest.
func CreateTestListings(count int) []domain.Listing {
	listings := make([]domain.Listing, count)

	categories := []domain.ListingCategory{
		domain.CategoryDogs,
		domain.CategoryCats,
		domain.CategoryBirds,
		domain.CategoryFood,
		domain.CategoryToys,
	}

	locations := []string{
		"Portland, OR",
		"Austin, TX",
		"Denver, CO",
	}

	base := time.Now().UTC()
	for i := 0; i < count; i++ {
		idx := i
		listings[i] = *CreateTestListing(func(l *domain.Listing) {
			l.Name = fmt.Sprintf("Test Listing %d", idx+1)
			l.Category = categories[idx%len(categories)]
			l.Location = locations[idx%len(locations)]
			l.Price = decimal.NewFromInt(int64(100 + idx*50))
			l.CreatedAt = base.Add(-time.Duration(idx) * time.Hour)
			l.UpdatedAt = l.CreatedAt
		})
	}

	return listings
}

// CompareListings compares two listings for testing
func CompareListings(t *testing.T, expected, actual *domain.Listing) {
	t.Helper()

	require.Equal(t, expected.Name, actual.Name)
	require.Equal(t, expected.Category, actual.Category)
	require.True(t, expected.Price.Equal(actual.Price))
	require.Equal(t, expected.Location, actual.Location)
	require.Equal(t, expected.Description, actual.Description)
	require.Equal(t, expected.ImageURL, actual.ImageURL)
	require.Equal(t, expected.OwnerEmail, actual.OwnerEmail)
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, "TRUNCATE TABLE listings CASCADE")
	require.NoError(t, err, "Failed to truncate listings table")
}

// SeedTestData seeds the database with test listings
func SeedTestData(t *testing.T, db *pgxpool.Pool, listings []domain.Listing) {
	t.Helper()

	ctx := context.Background()

	for _, l := range listings {
		query := `
			INSERT INTO listings (
				id, name, category, price, location, description,
				image_url, owner_email, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`

		_, err := db.Exec(ctx, query,
			l.ID, l.Name, l.Category, l.Price, l.Location, l.Description,
			l.ImageURL, l.OwnerEmail, l.CreatedAt, l.UpdatedAt,
		)
		require.NoError(t, err, "Failed to seed test data")
	}
}
