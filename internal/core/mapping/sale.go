// internal/core/mapping/sale.go

// Package mapping holds the explicit conversions between persisted
// entities and the views clients patch.
package mapping

import (
	"github.com/google/uuid"

	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/ports"
)

// SaleMapper converts between domain.Sale and domain.SaleForUpdate
type SaleMapper struct{}

var _ ports.Mapper[*domain.Sale, domain.SaleForUpdate] = SaleMapper{}

// ToView projects the patchable fields of s
func (SaleMapper) ToView(s *domain.Sale) domain.SaleForUpdate {
	return domain.SaleForUpdate{
		ID:          s.ID,
		OrderNumber: s.OrderNumber,
		Product:     s.Product,
		Region:      s.Region,
		Channel:     s.Channel,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		Discount:    s.Discount,
		SoldAt:      s.SoldAt,
		Notes:       s.Notes,
	}
}

// ToEntity builds a Sale from v, keeping the position and timestamps of base
func (SaleMapper) ToEntity(v domain.SaleForUpdate, base *domain.Sale) *domain.Sale {
	s := &domain.Sale{
		ID:          v.ID,
		OrderNumber: v.OrderNumber,
		Product:     v.Product,
		Region:      v.Region,
		Channel:     v.Channel,
		Quantity:    v.Quantity,
		UnitPrice:   v.UnitPrice,
		Discount:    v.Discount,
		SoldAt:      v.SoldAt,
		Notes:       v.Notes,
	}
	if base != nil {
		s.Position = base.Position
		s.CreatedAt = base.CreatedAt
		s.UpdatedAt = base.UpdatedAt
	}
	return s
}

// ViewID returns the identity carried by v
func (SaleMapper) ViewID(v domain.SaleForUpdate) uuid.UUID {
	return v.ID
}
