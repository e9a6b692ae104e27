// internal/adapters/db/sale_store.go
package db

import (
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/ports"
)

var saleTable = tableMapping[*domain.Sale]{
	name: "sales",
	columns: []string{
		"id", "order_number", "product", "region", "channel",
		"quantity", "unit_price", "discount", "sold_at", "notes",
		"position", "created_at", "updated_at",
	},
	values: func(s *domain.Sale) []any {
		return []any{
			s.ID, s.OrderNumber, s.Product, s.Region, string(s.Channel),
			s.Quantity, s.UnitPrice, s.Discount, s.SoldAt, s.Notes,
			s.Position, s.CreatedAt, s.UpdatedAt,
		}
	},
	scan: func(row pgx.Row) (*domain.Sale, error) {
		s := &domain.Sale{}
		var channel string
		err := row.Scan(
			&s.ID, &s.OrderNumber, &s.Product, &s.Region, &channel,
			&s.Quantity, &s.UnitPrice, &s.Discount, &s.SoldAt, &s.Notes,
			&s.Position, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		s.Channel = domain.SalesChannel(channel)
		return s, nil
	},
}

// NewSaleStore creates the repository factory for sales
func NewSaleStore(db ports.Database, logger *slog.Logger) *CollectionStore[*domain.Sale] {
	return newCollectionStore(db, saleTable, logger)
}
