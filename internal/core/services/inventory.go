// internal/core/services/inventory.go
package services

import (
	"log/slog"

	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/mapping"
	"github.com/ammerola/dashboard-be/internal/core/ports"
)

// KindInventories names the inventory collection in cache keys, events and exports
const KindInventories = "inventories"

// InventoryService reconciles patches against the inventory collection
type InventoryService = CollectionService[*domain.Inventory, domain.InventoryForUpdate]

// Statically assert that *InventoryService implements the CollectionService interface.
var _ ports.CollectionService[*domain.Inventory] = (*InventoryService)(nil)

// NewInventoryService creates the inventory collection service
func NewInventoryService(repos ports.RepositoryFactory[*domain.Inventory], logger *slog.Logger, opts ...Option) *InventoryService {
	return NewCollectionService[*domain.Inventory, domain.InventoryForUpdate](KindInventories, repos, mapping.InventoryMapper{}, logger, opts...)
}
