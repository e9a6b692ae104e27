// internal/core/domain/activity.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity records one committed collection patch
type Activity struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Inserted    int       `json:"inserted"`
	Updated     int       `json:"updated"`
	Removed     int       `json:"removed"`
	SnapshotKey string    `json:"snapshot_key,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
