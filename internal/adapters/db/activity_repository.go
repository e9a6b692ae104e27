// internal/adapters/db/activity_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/ports"
)

// activityRepository implements ports.ActivityRepository
type activityRepository struct {
	db     ports.Database
	logger *slog.Logger
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db ports.Database, logger *slog.Logger) ports.ActivityRepository {
	return &activityRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "activity_logs")),
	}
}

func (r *activityRepository) Record(ctx context.Context, entry *domain.Activity) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	query, args, err := psql.Insert("activity_logs").
		Columns("id", "kind", "inserted", "updated", "removed", "snapshot_key", "occurred_at").
		Values(entry.ID, entry.Kind, entry.Inserted, entry.Updated, entry.Removed, entry.SnapshotKey, entry.OccurredAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	r.logger.DebugContext(ctx, "activity recorded",
		slog.String("kind", entry.Kind),
		slog.String("id", entry.ID.String()))

	return nil
}

func (r *activityRepository) Recent(ctx context.Context, kind string, limit int) ([]domain.Activity, error) {
	qb := psql.Select("id", "kind", "inserted", "updated", "removed", "snapshot_key", "occurred_at").
		From("activity_logs").
		OrderBy("occurred_at DESC")
	if kind != "" {
		qb = qb.Where(squirrel.Eq{"kind": kind})
	}
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.Kind, &a.Inserted, &a.Updated, &a.Removed, &a.SnapshotKey, &a.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *activityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.Delete("activity_logs").
		Where(squirrel.Lt{"occurred_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete activity: %w", err)
	}

	return tag.RowsAffected(), nil
}
