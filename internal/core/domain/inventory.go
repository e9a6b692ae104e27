// internal/core/domain/inventory.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Inventory represents the stock of one product held in one warehouse
type Inventory struct {
	ID           uuid.UUID       `json:"id"`
	SKU          string          `json:"sku"`
	Product      string          `json:"product"`
	Warehouse    string          `json:"warehouse"`
	OnHand       int             `json:"on_hand"`
	Reserved     int             `json:"reserved"`
	ReorderLevel int             `json:"reorder_level"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Notes        string          `json:"notes,omitempty"`
	Position     int             `json:"position"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// InventoryForUpdate is the patchable projection of an Inventory record.
// Field order and json names are what clients address in patch paths.
type InventoryForUpdate struct {
	ID           uuid.UUID       `json:"id"`
	SKU          string          `json:"sku"`
	Product      string          `json:"product"`
	Warehouse    string          `json:"warehouse"`
	OnHand       int             `json:"on_hand"`
	Reserved     int             `json:"reserved"`
	ReorderLevel int             `json:"reorder_level"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Notes        string          `json:"notes"`
}

// Identity returns the identifier used for existence checks
func (i *Inventory) Identity() uuid.UUID {
	return i.ID
}

// Ordinal returns the stored position of the record in its collection
func (i *Inventory) Ordinal() int {
	return i.Position
}

// SetOrdinal moves the record to position pos
func (i *Inventory) SetOrdinal(pos int) {
	i.Position = pos
}

// Available returns the quantity that is not reserved
func (i *Inventory) Available() int {
	return i.OnHand - i.Reserved
}

// NeedsReorder reports whether available stock dropped to the reorder level
func (i *Inventory) NeedsReorder() bool {
	return i.ReorderLevel > 0 && i.Available() <= i.ReorderLevel
}

// StockValue returns on-hand quantity valued at unit cost
func (i *Inventory) StockValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.OnHand)))
}

// PrepareForStorage prepares the record for database storage
func (i *Inventory) PrepareForStorage() {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}

	now := time.Now()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
}

// InventorySheetColumns lists the spreadsheet header for inventory exports
var InventorySheetColumns = []string{
	"ID", "SKU", "Product", "Warehouse", "On Hand", "Reserved",
	"Available", "Reorder Level", "Unit Cost", "Stock Value", "Notes", "Updated At",
}

// SheetValues returns the row written to spreadsheet exports
func (i *Inventory) SheetValues() []any {
	return []any{
		i.ID.String(), i.SKU, i.Product, i.Warehouse, i.OnHand, i.Reserved,
		i.Available(), i.ReorderLevel, i.UnitCost.StringFixed(2), i.StockValue().StringFixed(2),
		i.Notes, i.UpdatedAt,
	}
}
