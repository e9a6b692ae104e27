// internal/core/ports/events.go
package ports

import (
	"context"
	"time"
)

// CollectionPatchedEvent is published after a collection patch commits
type CollectionPatchedEvent struct {
	Kind      string          `json:"kind"`
	Result    ReconcileResult `json:"result"`
	PatchedAt time.Time       `json:"patched_at"`
}

// EventPublisher hands events to the background worker
type EventPublisher interface {
	PublishCollectionPatched(ctx context.Context, event CollectionPatchedEvent) error
}
