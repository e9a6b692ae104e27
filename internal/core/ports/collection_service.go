// internal/core/ports/collection_service.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ammerola/dashboard-be/internal/core/patch"
)

// ReconcileResult lists the identities touched by one collection patch
type ReconcileResult struct {
	Inserted []uuid.UUID `json:"inserted"`
	Updated  []uuid.UUID `json:"updated"`
	Removed  []uuid.UUID `json:"removed"`
}

// Empty reports whether the patch changed nothing
func (r *ReconcileResult) Empty() bool {
	return len(r.Inserted) == 0 && len(r.Updated) == 0 && len(r.Removed) == 0
}

// CollectionService is the application port the HTTP handlers talk to
type CollectionService[E any] interface {
	Kind() string
	List(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id uuid.UUID) (E, error)
	PatchCollection(ctx context.Context, doc patch.Document) (*ReconcileResult, error)
}
