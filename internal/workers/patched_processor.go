// internal/workers/patched_processor.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/ports"
	"github.com/ammerola/dashboard-be/internal/pkg/logger"
)

// SnapshotSource loads the committed collection of one kind
type SnapshotSource func(ctx context.Context) (any, error)

// ListSource adapts a collection service into a SnapshotSource
func ListSource[E any](svc interface {
	List(ctx context.Context) ([]E, error)
}) SnapshotSource {
	return func(ctx context.Context) (any, error) {
		return svc.List(ctx)
	}
}

// CollectionPatchedProcessor records activity for committed patches and
// archives a snapshot of the collection when object storage is configured.
// The snapshot holds the collection as read while the task runs, which after
// a retry or a backlog may include later patches, so its key carries the read
// time rather than the commit time.
type CollectionPatchedProcessor struct {
	activity ports.ActivityRepository
	store    ports.ObjectStore
	sources  map[string]SnapshotSource
	logger   *slog.Logger
}

// NewCollectionPatchedProcessor creates the processor. A nil store
// disables snapshots.
func NewCollectionPatchedProcessor(
	activity ports.ActivityRepository,
	store ports.ObjectStore,
	sources map[string]SnapshotSource,
	logger *slog.Logger,
) *CollectionPatchedProcessor {
	return &CollectionPatchedProcessor{
		activity: activity,
		store:    store,
		sources:  sources,
		logger:   logger.With(slog.String("processor", "collection_patched")),
	}
}

// ProcessCollectionPatched handles a collection:patched task
func (p *CollectionPatchedProcessor) ProcessCollectionPatched(ctx context.Context, t *asynq.Task) error {
	var event ports.CollectionPatchedEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	source, ok := p.sources[event.Kind]
	if !ok {
		return fmt.Errorf("unknown collection kind %q: %w", event.Kind, asynq.SkipRetry)
	}

	if id, ok := asynq.GetTaskID(ctx); ok {
		ctx = logger.WithValue(ctx, logger.ContextKeyTaskID, id)
	}
	ctx = logger.WithValue(ctx, logger.ContextKeyCollection, event.Kind)

	if event.PatchedAt.IsZero() {
		event.PatchedAt = time.Now().UTC()
	}

	entry := &domain.Activity{
		Kind:       event.Kind,
		Inserted:   len(event.Result.Inserted),
		Updated:    len(event.Result.Updated),
		Removed:    len(event.Result.Removed),
		OccurredAt: event.PatchedAt,
	}

	if p.store != nil {
		key, err := p.snapshot(ctx, event, source)
		if err != nil {
			return err
		}
		entry.SnapshotKey = key
	}

	if err := p.activity.Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	p.logger.InfoContext(ctx, "collection patch recorded",
		slog.Int("inserted", entry.Inserted),
		slog.Int("updated", entry.Updated),
		slog.Int("removed", entry.Removed),
		slog.String("snapshot_key", entry.SnapshotKey))

	return nil
}

func (p *CollectionPatchedProcessor) snapshot(ctx context.Context, event ports.CollectionPatchedEvent, source SnapshotSource) (string, error) {
	takenAt := time.Now().UTC()
	items, err := source(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load %s for snapshot: %w", event.Kind, err)
	}

	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := SnapshotKey(event.Kind, takenAt)
	if _, err := p.store.Upload(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	return key, nil
}
