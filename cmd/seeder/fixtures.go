// cmd/seeder/fixtures.go
package main

import (
	"fmt"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/dashboard-be/internal/core/domain"
)

// fixtureFile is the YAML document read by seed and written by dump.
// Money and timestamps are strings so that values survive the round trip
// exactly.
type fixtureFile struct {
	Sales       []saleFixture      `yaml:"sales,omitempty"`
	Inventories []inventoryFixture `yaml:"inventories,omitempty"`
}

type saleFixture struct {
	ID          string `yaml:"id,omitempty"`
	OrderNumber string `yaml:"order_number"`
	Product     string `yaml:"product"`
	Region      string `yaml:"region"`
	Channel     string `yaml:"channel,omitempty"`
	Quantity    int    `yaml:"quantity"`
	UnitPrice   string `yaml:"unit_price"`
	Discount    string `yaml:"discount,omitempty"`
	SoldAt      string `yaml:"sold_at,omitempty"`
	Notes       string `yaml:"notes,omitempty"`
}

type inventoryFixture struct {
	ID           string `yaml:"id,omitempty"`
	SKU          string `yaml:"sku"`
	Product      string `yaml:"product"`
	Warehouse    string `yaml:"warehouse"`
	OnHand       int    `yaml:"on_hand"`
	Reserved     int    `yaml:"reserved"`
	ReorderLevel int    `yaml:"reorder_level"`
	UnitCost     string `yaml:"unit_cost"`
	Notes        string `yaml:"notes,omitempty"`
}

func parseFixtures(data []byte) (*fixtureFile, error) {
	var f fixtureFile
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &f, nil
}

func (f *fixtureFile) marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

func (f saleFixture) toDomain() (*domain.Sale, error) {
	sale := &domain.Sale{
		OrderNumber: f.OrderNumber,
		Product:     f.Product,
		Region:      f.Region,
		Channel:     domain.SalesChannel(f.Channel),
		Quantity:    f.Quantity,
		Notes:       f.Notes,
	}

	var err error
	if sale.ID, err = parseFixtureID(f.ID); err != nil {
		return nil, err
	}
	if sale.UnitPrice, err = decimal.NewFromString(f.UnitPrice); err != nil {
		return nil, fmt.Errorf("sale %s: invalid unit_price %q: %w", f.OrderNumber, f.UnitPrice, err)
	}
	if f.Discount != "" {
		if sale.Discount, err = decimal.NewFromString(f.Discount); err != nil {
			return nil, fmt.Errorf("sale %s: invalid discount %q: %w", f.OrderNumber, f.Discount, err)
		}
	}
	if f.SoldAt != "" {
		if sale.SoldAt, err = time.Parse(time.RFC3339, f.SoldAt); err != nil {
			return nil, fmt.Errorf("sale %s: invalid sold_at %q: %w", f.OrderNumber, f.SoldAt, err)
		}
	}

	return sale, nil
}

func saleFixtureFrom(s *domain.Sale) saleFixture {
	f := saleFixture{
		ID:          s.ID.String(),
		OrderNumber: s.OrderNumber,
		Product:     s.Product,
		Region:      s.Region,
		Channel:     string(s.Channel),
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice.String(),
		Notes:       s.Notes,
	}
	if !s.Discount.IsZero() {
		f.Discount = s.Discount.String()
	}
	if !s.SoldAt.IsZero() {
		f.SoldAt = s.SoldAt.UTC().Format(time.RFC3339)
	}
	return f
}

func (f inventoryFixture) toDomain() (*domain.Inventory, error) {
	inv := &domain.Inventory{
		SKU:          f.SKU,
		Product:      f.Product,
		Warehouse:    f.Warehouse,
		OnHand:       f.OnHand,
		Reserved:     f.Reserved,
		ReorderLevel: f.ReorderLevel,
		Notes:        f.Notes,
	}

	var err error
	if inv.ID, err = parseFixtureID(f.ID); err != nil {
		return nil, err
	}
	if inv.UnitCost, err = decimal.NewFromString(f.UnitCost); err != nil {
		return nil, fmt.Errorf("inventory %s: invalid unit_cost %q: %w", f.SKU, f.UnitCost, err)
	}

	return inv, nil
}

func inventoryFixtureFrom(i *domain.Inventory) inventoryFixture {
	return inventoryFixture{
		ID:           i.ID.String(),
		SKU:          i.SKU,
		Product:      i.Product,
		Warehouse:    i.Warehouse,
		OnHand:       i.OnHand,
		Reserved:     i.Reserved,
		ReorderLevel: i.ReorderLevel,
		UnitCost:     i.UnitCost.String(),
		Notes:        i.Notes,
	}
}

// parseFixtureID accepts an empty id, which is filled in on insert
func parseFixtureID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}
