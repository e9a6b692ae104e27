// internal/adapters/db/inventory_store.go
package db

import (
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/ports"
)

var inventoryTable = tableMapping[*domain.Inventory]{
	name: "inventories",
	columns: []string{
		"id", "sku", "product", "warehouse", "on_hand",
		"reserved", "reorder_level", "unit_cost", "notes",
		"position", "created_at", "updated_at",
	},
	values: func(i *domain.Inventory) []any {
		return []any{
			i.ID, i.SKU, i.Product, i.Warehouse, i.OnHand,
			i.Reserved, i.ReorderLevel, i.UnitCost, i.Notes,
			i.Position, i.CreatedAt, i.UpdatedAt,
		}
	},
	scan: func(row pgx.Row) (*domain.Inventory, error) {
		i := &domain.Inventory{}
		err := row.Scan(
			&i.ID, &i.SKU, &i.Product, &i.Warehouse, &i.OnHand,
			&i.Reserved, &i.ReorderLevel, &i.UnitCost, &i.Notes,
			&i.Position, &i.CreatedAt, &i.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		return i, nil
	},
}

// NewInventoryStore creates the repository factory for inventories
func NewInventoryStore(db ports.Database, logger *slog.Logger) *CollectionStore[*domain.Inventory] {
	return newCollectionStore(db, inventoryTable, logger)
}
