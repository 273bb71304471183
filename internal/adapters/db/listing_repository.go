// internal/adapters/db/listing_repository.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pawmart/pawmart-be/internal/core/domain"
	"github.com/pawmart/pawmart-be/internal/core/ports"
	"github.com/pawmart/pawmart-be/internal/core/search"
)

const listingColumns = `id, name, category, price, location, description, image_url, owner_email, created_at, updated_at`

// listingRepository implements ports.ListingRepository on Postgres
type listingRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *Database, logger *slog.Logger) ports.ListingRepository {
	return &listingRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "listing")),
	}
}

// Save creates a new listing
func (r *listingRepository) Save(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (
			id, name, category, price, location,
			description, image_url, owner_email, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		listing.ID, listing.Name, listing.Category, listing.Price, listing.Location,
		listing.Description, listing.ImageURL, listing.OwnerEmail, listing.CreatedAt, listing.UpdatedAt,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}

	r.logger.DebugContext(ctx, "listing saved",
		slog.String("id", listing.ID.String()),
		slog.String("name", listing.Name))

	return nil
}

// SaveBatch saves multiple listings in a transaction
func (r *listingRepository) SaveBatch(ctx context.Context, listings []domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}

		query := `
			INSERT INTO listings (
				id, name, category, price, location,
				description, image_url, owner_email, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
			)`

		for i := range listings {
			batch.Queue(query,
				listings[i].ID, listings[i].Name, listings[i].Category, listings[i].Price, listings[i].Location,
				listings[i].Description, listings[i].ImageURL, listings[i].OwnerEmail,
				listings[i].CreatedAt, listings[i].UpdatedAt,
			)
		}

		br := tx.SendBatch(ctx, batch)
		defer br.Close()

		for i := range listings {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("failed to save listing %d: %w", i, err)
			}
		}

		return nil
	})
}

// Update updates an existing listing
func (r *listingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	query := `
		UPDATE listings SET
			name = $2, category = $3, price = $4, location = $5,
			description = $6, image_url = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	listing.UpdatedAt = time.Now().UTC()

	err := r.db.QueryRow(ctx, query,
		listing.ID, listing.Name, listing.Category, listing.Price, listing.Location,
		listing.Description, listing.ImageURL, listing.UpdatedAt,
	).Scan(&listing.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.E(domain.KindNotFound, fmt.Sprintf("listing not found: %s", listing.ID), nil)
		}
		return fmt.Errorf("failed to update listing: %w", err)
	}

	r.logger.DebugContext(ctx, "listing updated",
		slog.String("id", listing.ID.String()))

	return nil
}

// FindByID retrieves a listing by ID. Returns nil without error when the
// listing does not exist or was soft-deleted.
func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE id = $1 AND deleted_at IS NULL`, listingColumns)

	listing, err := scanListing(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}

	return listing, nil
}

// Delete performs a hard delete
func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM listings WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.E(domain.KindNotFound, fmt.Sprintf("listing not found: %s", id), nil)
	}

	r.logger.InfoContext(ctx, "listing deleted",
		slog.String("id", id.String()))

	return nil
}

// SoftDelete marks a listing as deleted
func (r *listingRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE listings SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("failed to soft delete listing: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.E(domain.KindNotFound, fmt.Sprintf("listing not found: %s", id), nil)
	}

	r.logger.InfoContext(ctx, "listing soft deleted",
		slog.String("id", id.String()))

	return nil
}

// PurgeDeleted permanently removes listings soft-deleted longer ago than
// the retention window.
func (r *listingRepository) PurgeDeleted(ctx context.Context, olderThanDays int) (int64, error) {
	query := `DELETE FROM listings WHERE deleted_at IS NOT NULL AND deleted_at < NOW() - ($1 * INTERVAL '1 day')`

	tag, err := r.db.Exec(ctx, query, olderThanDays)
	if err != nil {
		return 0, fmt.Errorf("failed to purge deleted listings: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Count returns the total number of active listings
func (r *listingRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM listings WHERE deleted_at IS NULL`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}

	return count, nil
}

// Exists checks if a listing exists
func (r *listingRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM listings WHERE id = $1 AND deleted_at IS NULL)`

	var exists bool
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}

	return exists, nil
}

// Search runs a normalized request against the listings table and returns
// one page of matches plus the total count before pagination. Filter and
// ranking semantics mirror the search package exactly: all clauses AND
// together, the text query is an OR across name, description, location and
// category, and relevance weighs name matches highest with newest-first
// tiebreaks.
func (r *listingRepository) Search(ctx context.Context, req search.Request) ([]*domain.Listing, int64, error) {
	qb := r.applyFilters(squirrel.Select(
		"id", "name", "category", "price", "location",
		"description", "image_url", "owner_email", "created_at", "updated_at",
	).From("listings").
		Where("deleted_at IS NULL").
		PlaceholderFormat(squirrel.Dollar), req)

	// Count total matches before pagination
	countQb := r.applyFilters(squirrel.Select("COUNT(*)").
		From("listings").
		Where("deleted_at IS NULL").
		PlaceholderFormat(squirrel.Dollar), req)
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	qb = r.applyOrder(qb, req)
	qb = qb.Limit(uint64(req.PageSize)).Offset(uint64(req.Offset()))

	querySQL, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	listings := make([]*domain.Listing, 0, req.PageSize)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return listings, totalCount, nil
}

// applyFilters translates the request's predicate clauses into WHERE
// conditions. All clauses AND together; the text query is an OR across the
// four searchable columns.
func (r *listingRepository) applyFilters(qb squirrel.SelectBuilder, req search.Request) squirrel.SelectBuilder {
	if req.HasQuery() {
		pattern := likePattern(req.Query)
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
			squirrel.ILike{"location": pattern},
			squirrel.ILike{"category": pattern},
		})
	}
	if req.HasCategory() {
		qb = qb.Where("LOWER(category) = LOWER(?)", req.Category)
	}
	if req.MinPrice != nil {
		qb = qb.Where("price >= ?", *req.MinPrice)
	}
	if req.MaxPrice != nil {
		qb = qb.Where("price <= ?", *req.MaxPrice)
	}
	if req.Location != "" {
		qb = qb.Where(squirrel.ILike{"location": likePattern(req.Location)})
	}
	if req.CreatedFrom != nil {
		qb = qb.Where("created_at >= ?", *req.CreatedFrom)
	}
	if req.CreatedTo != nil {
		qb = qb.Where("created_at <= ?", *req.CreatedTo)
	}

	return qb
}

// applyOrder translates the resolved sort key into ORDER BY clauses. Every
// ordering ends with created_at DESC, id ASC so pagination is stable.
func (r *listingRepository) applyOrder(qb squirrel.SelectBuilder, req search.Request) squirrel.SelectBuilder {
	sortBy, sortOrder := req.EffectiveSort()
	direction := "ASC"
	if sortOrder == search.OrderDesc {
		direction = "DESC"
	}

	switch sortBy {
	case search.SortRelevance:
		// Reached only with a non-empty query; relevance without one
		// resolves to newest-first in EffectiveSort.
		pattern := likePattern(req.Query)
		score := `(CASE WHEN name ILIKE ? THEN 4 ELSE 0 END` +
			` + CASE WHEN category ILIKE ? THEN 2 ELSE 0 END` +
			` + CASE WHEN location ILIKE ? THEN 2 ELSE 0 END` +
			` + CASE WHEN description ILIKE ? THEN 1 ELSE 0 END)`
		qb = qb.OrderByClause(score+" DESC", pattern, pattern, pattern, pattern)
	case search.SortPrice:
		qb = qb.OrderBy(fmt.Sprintf("price %s", direction))
	case search.SortName:
		qb = qb.OrderBy(fmt.Sprintf("LOWER(name) %s", direction))
	case search.SortLocation:
		qb = qb.OrderBy(fmt.Sprintf("LOWER(location) %s", direction))
	case search.SortCategory:
		qb = qb.OrderBy(fmt.Sprintf("LOWER(category) %s", direction))
	default:
		qb = qb.OrderBy(fmt.Sprintf("created_at %s", direction))
	}

	return qb.OrderBy("created_at DESC", "id ASC")
}

// Suggest returns ranked autocomplete candidates drawn from distinct names,
// categories and locations. Candidates rank by frequency, then source
// (names before categories before locations), then alphabetically.
func (r *listingRepository) Suggest(ctx context.Context, query string, limit int) ([]search.Suggestion, error) {
	pattern := likePattern(query)

	sqlQuery := `
		SELECT text, source, cnt FROM (
			SELECT MIN(name) AS text, 'name' AS source, 1 AS source_rank, COUNT(*) AS cnt
			FROM listings
			WHERE deleted_at IS NULL AND name ILIKE $1
			GROUP BY LOWER(name)
			UNION ALL
			SELECT MIN(category), 'category', 2, COUNT(*)
			FROM listings
			WHERE deleted_at IS NULL AND category ILIKE $1
			GROUP BY LOWER(category)
			UNION ALL
			SELECT MIN(location), 'location', 3, COUNT(*)
			FROM listings
			WHERE deleted_at IS NULL AND location <> '' AND location ILIKE $1
			GROUP BY LOWER(location)
		) candidates
		ORDER BY cnt DESC, source_rank ASC, LOWER(text) ASC
		LIMIT $2`

	rows, err := r.db.Query(ctx, sqlQuery, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := make([]search.Suggestion, 0, limit)
	for rows.Next() {
		var s search.Suggestion
		var source string
		if err := rows.Scan(&s.Text, &source, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		s.Source = search.SuggestionSource(source)
		suggestions = append(suggestions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return suggestions, nil
}

// Facets aggregates category, location, price and recency counts over
// active listings, optionally scoped to one category.
func (r *listingRepository) Facets(ctx context.Context, scope search.FacetScope) (*search.FacetSummary, error) {
	summary := &search.FacetSummary{}

	categories, err := r.labelFacets(ctx, "category", scope)
	if err != nil {
		return nil, err
	}
	summary.Categories = categories

	locations, err := r.labelFacets(ctx, "location", scope)
	if err != nil {
		return nil, err
	}
	summary.Locations = locations

	priceBuckets, err := r.priceFacets(ctx, scope)
	if err != nil {
		return nil, err
	}
	summary.PriceBuckets = priceBuckets

	dateBuckets, err := r.dateFacets(ctx, scope)
	if err != nil {
		return nil, err
	}
	summary.DateBuckets = dateBuckets

	return summary, nil
}

// TopFacets returns the most frequent categories and locations
func (r *listingRepository) TopFacets(ctx context.Context, limit int) (*search.PopularTerms, error) {
	scope := search.FacetScope{}

	categories, err := r.labelFacets(ctx, "category", scope)
	if err != nil {
		return nil, err
	}
	if len(categories) > limit {
		categories = categories[:limit]
	}

	locations, err := r.labelFacets(ctx, "location", scope)
	if err != nil {
		return nil, err
	}
	if len(locations) > limit {
		locations = locations[:limit]
	}

	return &search.PopularTerms{
		Categories: categories,
		Locations:  locations,
	}, nil
}

// labelFacets counts listings per distinct column value, most frequent
// first with alphabetical tiebreaks. Values differing only in case are one
// bucket; MIN picks the display label. The column name is restricted to the
// two label columns; it is never caller-supplied input.
func (r *listingRepository) labelFacets(ctx context.Context, column string, scope search.FacetScope) ([]search.FacetBucket, error) {
	qb := squirrel.Select(fmt.Sprintf("MIN(%s)", column), "COUNT(*)").
		From("listings").
		Where("deleted_at IS NULL").
		Where(fmt.Sprintf("%s <> ''", column)).
		GroupBy(fmt.Sprintf("LOWER(%s)", column)).
		OrderBy(fmt.Sprintf("COUNT(*) DESC, LOWER(MIN(%s)) ASC", column)).
		PlaceholderFormat(squirrel.Dollar)
	qb = applyScope(qb, scope)

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s facet query: %w", column, err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s facets: %w", column, err)
	}
	defer rows.Close()

	var buckets []search.FacetBucket
	for rows.Next() {
		var b search.FacetBucket
		if err := rows.Scan(&b.Label, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan %s facet: %w", column, err)
		}
		buckets = append(buckets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return buckets, nil
}

// priceFacets buckets active listings into fixed price ranges. Buckets are
// left-inclusive and right-exclusive; a price of exactly zero counts as
// free, and the final bucket is open-ended.
func (r *listingRepository) priceFacets(ctx context.Context, scope search.FacetScope) ([]search.FacetBucket, error) {
	bucketExpr := `CASE
			WHEN price = 0 THEN 0
			WHEN price < 1000 THEN 1
			WHEN price < 5000 THEN 2
			WHEN price < 10000 THEN 3
			WHEN price < 25000 THEN 4
			ELSE 5
		END`

	qb := squirrel.Select(bucketExpr+" AS bucket", "COUNT(*)", "ROUND(AVG(price), 2)").
		From("listings").
		Where("deleted_at IS NULL").
		GroupBy("bucket").
		OrderBy("bucket ASC").
		PlaceholderFormat(squirrel.Dollar)
	qb = applyScope(qb, scope)

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build price facet query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query price facets: %w", err)
	}
	defer rows.Close()

	// Empty ranges produce no group row, but the response is a fixed
	// boundary set: start from all buckets at zero and fill in the counts.
	labels := search.PriceBucketLabels()
	buckets := make([]search.FacetBucket, len(labels))
	for i, label := range labels {
		buckets[i] = search.FacetBucket{Label: label}
	}
	for rows.Next() {
		var idx int
		var count int64
		var avg decimal.Decimal
		if err := rows.Scan(&idx, &count, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan price facet: %w", err)
		}
		if idx < 0 || idx >= len(labels) {
			continue
		}
		buckets[idx].Count = count
		buckets[idx].AvgPrice = &avg
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return buckets, nil
}

// dateFacets buckets active listings by listing age
func (r *listingRepository) dateFacets(ctx context.Context, scope search.FacetScope) ([]search.FacetBucket, error) {
	bucketExpr := `CASE
			WHEN created_at >= DATE_TRUNC('day', NOW()) THEN 0
			WHEN created_at >= NOW() - INTERVAL '7 days' THEN 1
			WHEN created_at >= NOW() - INTERVAL '30 days' THEN 2
			WHEN created_at >= NOW() - INTERVAL '90 days' THEN 3
			ELSE 4
		END`

	qb := squirrel.Select(bucketExpr+" AS bucket", "COUNT(*)").
		From("listings").
		Where("deleted_at IS NULL").
		GroupBy("bucket").
		OrderBy("bucket ASC").
		PlaceholderFormat(squirrel.Dollar)
	qb = applyScope(qb, scope)

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build date facet query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query date facets: %w", err)
	}
	defer rows.Close()

	labels := search.DateBucketLabels()
	buckets := make([]search.FacetBucket, len(labels))
	for i, label := range labels {
		buckets[i] = search.FacetBucket{Label: label}
	}
	for rows.Next() {
		var idx int
		var count int64
		if err := rows.Scan(&idx, &count); err != nil {
			return nil, fmt.Errorf("failed to scan date facet: %w", err)
		}
		if idx < 0 || idx >= len(labels) {
			continue
		}
		buckets[idx].Count = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return buckets, nil
}

func applyScope(qb squirrel.SelectBuilder, scope search.FacetScope) squirrel.SelectBuilder {
	if scope.Category == "" || strings.EqualFold(scope.Category, search.CategoryAll) {
		return qb
	}
	return qb.Where("LOWER(category) = LOWER(?)", scope.Category)
}

// scanListing reads one listing row in listingColumns order
func scanListing(row pgx.Row) (*domain.Listing, error) {
	listing := &domain.Listing{}
	var location, description, imageURL sql.NullString

	err := row.Scan(
		&listing.ID, &listing.Name, &listing.Category, &listing.Price, &location,
		&description, &imageURL, &listing.OwnerEmail, &listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	listing.Location = location.String
	listing.Description = description.String
	listing.ImageURL = imageURL.String

	return listing, nil
}

// likePattern wraps a user term for substring matching, escaping the LIKE
// metacharacters first.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}
