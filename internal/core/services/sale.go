// internal/core/services/sale.go
package services

import (
	"log/slog"

	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/mapping"
	"github.com/ammerola/dashboard-be/internal/core/ports"
)

// KindSales names the sale collection in cache keys, events and exports
const KindSales = "sales"

// SaleService reconciles patches against the sale collection
type SaleService = CollectionService[*domain.Sale, domain.SaleForUpdate]

// Statically assert that *SaleService implements the CollectionService interface.
var _ ports.CollectionService[*domain.Sale] = (*SaleService)(nil)

// NewSaleService creates the sale collection service
func NewSaleService(repos ports.RepositoryFactory[*domain.Sale], logger *slog.Logger, opts ...Option) *SaleService {
	return NewCollectionService[*domain.Sale, domain.SaleForUpdate](KindSales, repos, mapping.SaleMapper{}, logger, opts...)
}
