package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ammerola/dashboard-be/internal/core/domain"
)

func TestSale_Total(t *testing.T) {
	tests := []struct {
		name     string
		sale     domain.Sale
		expected string
	}{
		{
			name:     "quantity_times_price",
			sale:     domain.Sale{Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")},
			expected: "59.97",
		},
		{
			name: "discount_subtracted",
			sale: domain.Sale{
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("50"),
				Discount:  decimal.RequireFromString("12.50"),
			},
			expected: "87.5",
		},
		{
			name:     "zero_quantity",
			sale:     domain.Sale{UnitPrice: decimal.RequireFromString("10")},
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := decimal.RequireFromString(tt.expected)
			assert.True(t, tt.sale.Total().Equal(expected),
				"Expected total: %s, Got: %s", expected, tt.sale.Total())
		})
	}
}

func TestSale_PrepareForStorage(t *testing.T) {
	t.Run("assigns_identity_and_defaults", func(t *testing.T) {
		sale := &domain.Sale{Product: "Widget"}

		sale.PrepareForStorage()

		assert.NotEqual(t, uuid.Nil, sale.ID)
		assert.Equal(t, sale.ID, sale.Identity())
		assert.Equal(t, domain.ChannelOther, sale.Channel)
		assert.False(t, sale.CreatedAt.IsZero())
		assert.False(t, sale.SoldAt.IsZero())
		assert.Equal(t, sale.CreatedAt, sale.UpdatedAt)
	})

	t.Run("keeps_existing_identity_and_creation_time", func(t *testing.T) {
		id := uuid.New()
		created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		sold := time.Date(2024, 2, 28, 9, 30, 0, 0, time.UTC)
		sale := &domain.Sale{ID: id, CreatedAt: created, SoldAt: sold, Channel: domain.ChannelOnline}

		sale.PrepareForStorage()

		assert.Equal(t, id, sale.ID)
		assert.Equal(t, created, sale.CreatedAt)
		assert.Equal(t, sold, sale.SoldAt)
		assert.Equal(t, domain.ChannelOnline, sale.Channel)
		assert.True(t, sale.UpdatedAt.After(created))
	})
}

func TestInventory_Stock(t *testing.T) {
	tests := []struct {
		name         string
		item         domain.Inventory
		available    int
		needsReorder bool
		stockValue   string
	}{
		{
			name:         "healthy_stock",
			item:         domain.Inventory{OnHand: 40, Reserved: 5, ReorderLevel: 10, UnitCost: decimal.RequireFromString("2.50")},
			available:    35,
			needsReorder: false,
			stockValue:   "100",
		},
		{
			name:         "at_reorder_level",
			item:         domain.Inventory{OnHand: 12, Reserved: 2, ReorderLevel: 10, UnitCost: decimal.RequireFromString("1")},
			available:    10,
			needsReorder: true,
			stockValue:   "12",
		},
		{
			name:         "no_reorder_level_configured",
			item:         domain.Inventory{OnHand: 0, Reserved: 0},
			available:    0,
			needsReorder: false,
			stockValue:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.available, tt.item.Available())
			assert.Equal(t, tt.needsReorder, tt.item.NeedsReorder())
			assert.True(t, tt.item.StockValue().Equal(decimal.RequireFromString(tt.stockValue)))
		})
	}
}

func TestInventory_PrepareForStorage(t *testing.T) {
	item := &domain.Inventory{SKU: "SKU-1"}

	item.PrepareForStorage()

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, item.ID, item.Identity())
	assert.False(t, item.CreatedAt.IsZero())
	assert.False(t, item.UpdatedAt.IsZero())
}

func TestSheetValues_MatchColumns(t *testing.T) {
	sale := &domain.Sale{ID: uuid.New()}
	item := &domain.Inventory{ID: uuid.New()}

	assert.Len(t, sale.SheetValues(), len(domain.SaleSheetColumns))
	assert.Len(t, item.SheetValues(), len(domain.InventorySheetColumns))
}
