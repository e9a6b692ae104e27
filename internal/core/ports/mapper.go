// internal/core/ports/mapper.go
package ports

import "github.com/google/uuid"

// Mapper converts between a persisted entity and its patchable view
type Mapper[E any, V any] interface {
	ToView(e E) V
	// ToEntity builds the entity for v. base is the stored entity with the
	// same identity, or the zero value for a new record; fields the view
	// does not carry are taken from it.
	ToEntity(v V, base E) E
	ViewID(v V) uuid.UUID
}
