package mapping_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/mapping"
)

func TestSaleMapper_RoundTrip(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	sale := &domain.Sale{
		ID:          uuid.New(),
		OrderNumber: "SO-1001",
		Product:     "Desk Lamp",
		Region:      "EMEA",
		Channel:     domain.ChannelOnline,
		Quantity:    4,
		UnitPrice:   decimal.RequireFromString("24.90"),
		Discount:    decimal.RequireFromString("5"),
		SoldAt:      created.Add(time.Hour),
		Notes:       "gift wrap",
		Position:    2,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	m := mapping.SaleMapper{}

	view := m.ToView(sale)
	back := m.ToEntity(view, sale)

	assert.Equal(t, sale.ID, m.ViewID(view))
	assert.Equal(t, sale, back)
	assert.NotSame(t, sale, back)
}

func TestSaleMapper_ToEntity_NewRecord(t *testing.T) {
	view := domain.SaleForUpdate{OrderNumber: "SO-2", Quantity: 1}

	s := mapping.SaleMapper{}.ToEntity(view, nil)

	assert.Equal(t, uuid.Nil, s.ID)
	assert.Equal(t, "SO-2", s.OrderNumber)
	assert.True(t, s.CreatedAt.IsZero())
}

func TestSaleMapper_ToEntity_AppliesViewChanges(t *testing.T) {
	base := &domain.Sale{ID: uuid.New(), Product: "Old", Quantity: 1, CreatedAt: time.Now()}
	m := mapping.SaleMapper{}

	view := m.ToView(base)
	view.Product = "New"
	view.Quantity = 9

	s := m.ToEntity(view, base)

	assert.Equal(t, "New", s.Product)
	assert.Equal(t, 9, s.Quantity)
	assert.Equal(t, base.CreatedAt, s.CreatedAt)
	assert.Equal(t, "Old", base.Product)
}

func TestInventoryMapper_RoundTrip(t *testing.T) {
	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	item := &domain.Inventory{
		ID:           uuid.New(),
		SKU:          "LMP-01",
		Product:      "Desk Lamp",
		Warehouse:    "north",
		OnHand:       120,
		Reserved:     7,
		ReorderLevel: 20,
		UnitCost:     decimal.RequireFromString("11.25"),
		Notes:        "fragile",
		Position:     3,
		CreatedAt:    created,
		UpdatedAt:    created.Add(time.Minute),
	}
	m := mapping.InventoryMapper{}

	view := m.ToView(item)
	back := m.ToEntity(view, item)

	assert.Equal(t, item.ID, m.ViewID(view))
	assert.Equal(t, item, back)
}

func TestInventoryMapper_ToEntity_NewRecord(t *testing.T) {
	item := mapping.InventoryMapper{}.ToEntity(domain.InventoryForUpdate{SKU: "NEW"}, nil)

	assert.Equal(t, uuid.Nil, item.ID)
	assert.Equal(t, "NEW", item.SKU)
	assert.True(t, item.UpdatedAt.IsZero())
}
