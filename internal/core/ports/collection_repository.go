// internal/core/ports/collection_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"
)

// Entity is a persisted record that can be staged in a collection repository
type Entity interface {
	Identity() uuid.UUID
	Ordinal() int
	SetOrdinal(pos int)
	PrepareForStorage()
}

// CollectionRepository is a per-request unit of work over one entity kind.
//
// Reads go straight to storage. Add, Update and Remove only stage
// mutations; nothing is written until Save, which commits every staged
// mutation together or none of them.
type CollectionRepository[E any] interface {
	// GetAll returns the complete collection in its stable order
	GetAll(ctx context.Context) ([]E, error)
	// GetByID returns domain.ErrNotFound when no record has the id
	GetByID(ctx context.Context, id uuid.UUID) (E, error)
	Exists(ctx context.Context, e E) (bool, error)

	Add(e E)
	Update(e E)
	Remove(es []E)

	Save(ctx context.Context) error
}

// RepositoryFactory opens a fresh repository session for each request so
// staged state is never shared between requests
type RepositoryFactory[E any] interface {
	Open(ctx context.Context) CollectionRepository[E]
}

// RepositoryFactoryFunc adapts a function to RepositoryFactory
type RepositoryFactoryFunc[E any] func(ctx context.Context) CollectionRepository[E]

// Open calls f(ctx)
func (f RepositoryFactoryFunc[E]) Open(ctx context.Context) CollectionRepository[E] {
	return f(ctx)
}
