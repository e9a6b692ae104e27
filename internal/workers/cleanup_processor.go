// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/dashboard-be/internal/core/ports"
)

// CleanupProcessor prunes activity rows and snapshots past retention
type CleanupProcessor struct {
	activity  ports.ActivityRepository
	store     ports.ObjectStore
	kinds     []string
	retention time.Duration
	logger    *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor. A nil store skips
// snapshot pruning.
func NewCleanupProcessor(
	activity ports.ActivityRepository,
	store ports.ObjectStore,
	kinds []string,
	retention time.Duration,
	logger *slog.Logger,
) *CleanupProcessor {
	return &CleanupProcessor{
		activity:  activity,
		store:     store,
		kinds:     kinds,
		retention: retention,
		logger:    logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupActivity handles a maintenance:cleanup_activity task
func (p *CleanupProcessor) CleanupActivity(ctx context.Context, t *asynq.Task) error {
	retention := p.retention
	if len(t.Payload()) > 0 {
		var payload CleanupPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
		}
		if payload.OlderThan > 0 {
			retention = payload.OlderThan
		}
	}
	if retention <= 0 {
		p.logger.WarnContext(ctx, "activity retention disabled, skipping cleanup")
		return nil
	}

	cutoff := time.Now().UTC().Add(-retention)

	deleted, err := p.activity.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup activity logs: %w", err)
	}

	pruned, err := p.pruneSnapshots(ctx, cutoff)
	if err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "old activity cleaned up",
		slog.Time("cutoff", cutoff),
		slog.Int64("rows_deleted", deleted),
		slog.Int("snapshots_deleted", pruned))

	return nil
}

func (p *CleanupProcessor) pruneSnapshots(ctx context.Context, cutoff time.Time) (int, error) {
	if p.store == nil {
		return 0, nil
	}

	var stale []string
	for _, kind := range p.kinds {
		objects, err := p.store.List(ctx, snapshotPrefix(kind))
		if err != nil {
			return 0, fmt.Errorf("failed to list %s snapshots: %w", kind, err)
		}
		for _, obj := range objects {
			if obj.LastModified.Before(cutoff) {
				stale = append(stale, obj.Key)
			}
		}
	}

	if len(stale) == 0 {
		return 0, nil
	}
	if err := p.store.Delete(ctx, stale...); err != nil {
		return 0, fmt.Errorf("failed to delete snapshots: %w", err)
	}

	return len(stale), nil
}
