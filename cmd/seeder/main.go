// Seeder loads listing fixtures from a JSON file into the database.
//
// Records run through the same validation and normalization as listings
// created over the API, so seeded data is indistinguishable from real data.
// Use -dry-run to validate a fixture file without touching the database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pawmart/pawmart-be/internal/adapters/db"
	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/core/services"
	"github.com/pawmart/pawmart-be/internal/pkg/config"
	"github.com/pawmart/pawmart-be/internal/pkg/logger"
)

// seedRecord is the fixture file shape. Price is a string so fixtures can
// say "850" or "12.50" without float precision surprises, and age_days lets
// a fixture spread listings across the recency buckets without hardcoding
// dates that go stale.
type seedRecord struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	OwnerEmail  string `json:"owner_email"`
	AgeDays     int    `json:"age_days,omitempty"`
}

func (r seedRecord) toListing(now time.Time) (domain.Listing, error) {
	price := decimal.Zero
	if strings.TrimSpace(r.Price) != "" {
		parsed, err := decimal.NewFromString(r.Price)
		if err != nil {
			return domain.Listing{}, fmt.Errorf("invalid price %q: %w", r.Price, err)
		}
		price = parsed
	}

	listing := domain.Listing{
		Name:        strings.TrimSpace(r.Name),
		Category:    domain.ListingCategory(strings.ToLower(strings.TrimSpace(r.Category))),
		Price:       price,
		Location:    strings.TrimSpace(r.Location),
		Description: strings.TrimSpace(r.Description),
		ImageURL:    strings.TrimSpace(r.ImageURL),
		OwnerEmail:  strings.ToLower(strings.TrimSpace(r.OwnerEmail)),
	}
	if r.AgeDays > 0 {
		listing.CreatedAt = now.AddDate(0, 0, -r.AgeDays)
	}
	return listing, nil
}

func loadRecords(path string) ([]seedRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var records []seedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return records, nil
}

func main() {
	var (
		seedFile  = flag.String("file", "", "JSON file with listing fixtures (default from SEARCH_SEED_FILE)")
		batchSize = flag.Int("batch-size", 100, "Listings per insert batch")
		dryRun    = flag.Bool("dry-run", false, "Validate fixtures without writing to the database")
	)
	flag.Parse()

	applog := logger.SetupLogger("info", "json")
	slogger := applog.Logger

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	applog = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger = applog.Logger

	path := *seedFile
	if path == "" {
		path = cfg.Search.SeedFile
	}

	records, err := loadRecords(path)
	if err != nil {
		slogger.Error("failed to load seed records",
			slog.String("file", path),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(records) == 0 {
		slogger.Warn("seed file contains no records", slog.String("file", path))
		return
	}

	slogger.Info("loaded seed records",
		slog.String("file", path),
		slog.Int("count", len(records)))

	now := time.Now()
	listings := make([]domain.Listing, 0, len(records))
	var failed int
	for i, record := range records {
		listing, err := record.toListing(now)
		if err != nil {
			slogger.Error("skipping invalid record",
				slog.Int("index", i),
				slog.String("name", record.Name),
				slog.String("error", err.Error()))
			failed++
			continue
		}
		if err := listing.Validate(); err != nil {
			slogger.Error("skipping invalid record",
				slog.Int("index", i),
				slog.String("name", record.Name),
				slog.String("error", err.Error()))
			failed++
			continue
		}
		listings = append(listings, listing)
	}

	if *dryRun {
		fmt.Printf("Dry run: %d of %d records valid", len(listings), len(records))
		if failed > 0 {
			fmt.Printf(" (%d skipped)", failed)
		}
		fmt.Println("\nNo changes were made to the database")
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxConnections:  5,
		MinConnections:  1,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	}, slogger)
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	repo := db.NewListingRepository(database, slogger)
	service := services.NewListingService(repo, nil, nil, slogger)

	var saved int
	for start := 0; start < len(listings); start += *batchSize {
		end := start + *batchSize
		if end > len(listings) {
			end = len(listings)
		}
		batch := listings[start:end]

		if err := service.CreateBatch(ctx, batch); err != nil {
			slogger.Error("failed to save batch",
				slog.Int("offset", start),
				slog.Int("size", len(batch)),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		saved += len(batch)
		fmt.Printf("PROGRESS: saved %d/%d listings\n", saved, len(listings))
	}

	slogger.Info("seed operation completed",
		slog.Int("saved", saved),
		slog.Int("skipped", failed))
	fmt.Printf("Done: %d listings seeded from %s\n", saved, path)
}
