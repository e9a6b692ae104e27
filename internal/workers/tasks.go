// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/dashboard-be/internal/core/ports"
)

const (
	TypeCollectionPatched = "collection:patched"
	TypeCleanupActivity   = "maintenance:cleanup_activity"
)

// CleanupPayload overrides the configured retention when OlderThan is set
type CleanupPayload struct {
	OlderThan time.Duration `json:"older_than,omitempty"`
}

// NewCollectionPatchedTask wraps event in an asynq task
func NewCollectionPatchedTask(event ports.CollectionPatchedEvent) (*asynq.Task, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return asynq.NewTask(TypeCollectionPatched, b), nil
}

// NewCleanupActivityTask builds the periodic activity cleanup task
func NewCleanupActivityTask(payload CleanupPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeCleanupActivity, b), nil
}

// snapshotPrefix is the object key prefix holding snapshots of kind
func snapshotPrefix(kind string) string {
	return fmt.Sprintf("snapshots/%s/", kind)
}

// SnapshotKey is the object key of the snapshot read at takenAt
func SnapshotKey(kind string, takenAt time.Time) string {
	return snapshotPrefix(kind) + takenAt.UTC().Format("20060102T150405.000000000Z") + ".json"
}
