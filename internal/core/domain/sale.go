// internal/core/domain/sale.go
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// SalesChannel represents where a sale was made
type SalesChannel string

// Channel constants
const (
	ChannelStore     SalesChannel = "store"
	ChannelOnline    SalesChannel = "online"
	ChannelWholesale SalesChannel = "wholesale"
	ChannelOther     SalesChannel = "other"
)

// Sale represents a single sale line shown on the dashboard
type Sale struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	Product     string          `json:"product"`
	Region      string          `json:"region"`
	Channel     SalesChannel    `json:"channel"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	SoldAt      time.Time       `json:"sold_at"`
	Notes       string          `json:"notes,omitempty"`
	Position    int             `json:"position"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SaleForUpdate is the patchable projection of a Sale.
// Field order and json names are what clients address in patch paths.
type SaleForUpdate struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	Product     string          `json:"product"`
	Region      string          `json:"region"`
	Channel     SalesChannel    `json:"channel"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	SoldAt      time.Time       `json:"sold_at"`
	Notes       string          `json:"notes"`
}

// Identity returns the identifier used for existence checks
func (s *Sale) Identity() uuid.UUID {
	return s.ID
}

// Ordinal returns the stored position of the record in its collection
func (s *Sale) Ordinal() int {
	return s.Position
}

// SetOrdinal moves the record to position pos
func (s *Sale) SetOrdinal(pos int) {
	s.Position = pos
}

// Total returns quantity times unit price less discount
func (s *Sale) Total() decimal.Decimal {
	return s.UnitPrice.
		Mul(decimal.NewFromInt(int64(s.Quantity))).
		Sub(s.Discount)
}

// PrepareForStorage prepares the sale for database storage
func (s *Sale) PrepareForStorage() {
	// Ensure UUID is set
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	if s.SoldAt.IsZero() {
		s.SoldAt = now
	}
	if s.Channel == "" {
		s.Channel = ChannelOther
	}
}

// SaleSheetColumns lists the spreadsheet header for sale exports
var SaleSheetColumns = []string{
	"ID", "Order Number", "Product", "Region", "Channel", "Quantity",
	"Unit Price", "Discount", "Total", "Sold At", "Notes",
}

// SheetValues returns the row written to spreadsheet exports
func (s *Sale) SheetValues() []any {
	return []any{
		s.ID.String(), s.OrderNumber, s.Product, s.Region, string(s.Channel), s.Quantity,
		s.UnitPrice.StringFixed(2), s.Discount.StringFixed(2), s.Total().StringFixed(2),
		s.SoldAt, s.Notes,
	}
}
