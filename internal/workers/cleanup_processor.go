// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/pawmart/pawmart-be/internal/core/ports"
	"github.com/pawmart/pawmart-be/internal/pkg/config"
)

// CleanupProcessor handles cleanup tasks
type CleanupProcessor struct {
	repo   ports.ListingRepository
	config *config.Config
	logger *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(repo ports.ListingRepository, config *config.Config, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		repo:   repo,
		config: config,
		logger: logger.With(slog.String("processor", "cleanup")),
	}
}

// PurgeDeleted permanently removes listings that were soft-deleted longer
// ago than the configured retention window.
func (p *CleanupProcessor) PurgeDeleted(ctx context.Context, t *asynq.Task) error {
	retentionDays := p.config.Search.PurgeAfterDays
	p.logger.InfoContext(ctx, "purging soft-deleted listings",
		slog.Int("retention_days", retentionDays))

	deleted, err := p.repo.PurgeDeleted(ctx, retentionDays)
	if err != nil {
		return fmt.Errorf("failed to purge soft-deleted listings: %w", err)
	}

	p.logger.InfoContext(ctx, "soft-deleted listings purged",
		slog.Int64("rows_deleted", deleted))

	return nil
}
