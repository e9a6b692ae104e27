// internal/core/mapping/inventory.go
package mapping

import (
	"github.com/google/uuid"

	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/ports"
)

// InventoryMapper converts between domain.Inventory and domain.InventoryForUpdate
type InventoryMapper struct{}

var _ ports.Mapper[*domain.Inventory, domain.InventoryForUpdate] = InventoryMapper{}

// ToView projects the patchable fields of i
func (InventoryMapper) ToView(i *domain.Inventory) domain.InventoryForUpdate {
	return domain.InventoryForUpdate{
		ID:           i.ID,
		SKU:          i.SKU,
		Product:      i.Product,
		Warehouse:    i.Warehouse,
		OnHand:       i.OnHand,
		Reserved:     i.Reserved,
		ReorderLevel: i.ReorderLevel,
		UnitCost:     i.UnitCost,
		Notes:        i.Notes,
	}
}

// ToEntity builds an Inventory from v, keeping the position and timestamps of base
func (InventoryMapper) ToEntity(v domain.InventoryForUpdate, base *domain.Inventory) *domain.Inventory {
	i := &domain.Inventory{
		ID:           v.ID,
		SKU:          v.SKU,
		Product:      v.Product,
		Warehouse:    v.Warehouse,
		OnHand:       v.OnHand,
		Reserved:     v.Reserved,
		ReorderLevel: v.ReorderLevel,
		UnitCost:     v.UnitCost,
		Notes:        v.Notes,
	}
	if base != nil {
		i.Position = base.Position
		i.CreatedAt = base.CreatedAt
		i.UpdatedAt = base.UpdatedAt
	}
	return i
}

// ViewID returns the identity carried by v
func (InventoryMapper) ViewID(v domain.InventoryForUpdate) uuid.UUID {
	return v.ID
}
