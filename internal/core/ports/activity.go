// internal/core/ports/activity.go
package ports

import (
	"context"
	"io"
	"time"

	"github.com/ammerola/dashboard-be/internal/core/domain"
)

// ActivityRepository persists the audit trail of committed patches
type ActivityRepository interface {
	Record(ctx context.Context, entry *domain.Activity) error
	Recent(ctx context.Context, kind string, limit int) ([]domain.Activity, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// StoredObject describes an object held in an ObjectStore
type StoredObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStore stores collection snapshots
type ObjectStore interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	List(ctx context.Context, prefix string) ([]StoredObject, error)
	Delete(ctx context.Context, keys ...string) error
}
