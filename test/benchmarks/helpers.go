// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/ports"
	"github.com/ammerola/dashboard-be/test/helpers"
)

// memoryRepository is an in-process sale repository so benchmarks measure
// reconciliation rather than database round trips
type memoryRepository struct {
	records []*domain.Sale
	staged  int
}

func (m *memoryRepository) Open(context.Context) ports.CollectionRepository[*domain.Sale] {
	return &memorySession{repo: m}
}

type memorySession struct {
	repo    *memoryRepository
	inserts []*domain.Sale
	updates []*domain.Sale
	removes []uuid.UUID
}

func (s *memorySession) GetAll(context.Context) ([]*domain.Sale, error) {
	out := make([]*domain.Sale, len(s.repo.records))
	for i, r := range s.repo.records {
		c := *r
		out[i] = &c
	}
	return out, nil
}

func (s *memorySession) GetByID(_ context.Context, id uuid.UUID) (*domain.Sale, error) {
	for _, r := range s.repo.records {
		if r.ID == id {
			c := *r
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memorySession) Exists(_ context.Context, e *domain.Sale) (bool, error) {
	return slices.ContainsFunc(s.repo.records, func(r *domain.Sale) bool { return r.ID == e.ID }), nil
}

func (s *memorySession) Add(e *domain.Sale) { s.inserts = append(s.inserts, e) }

func (s *memorySession) Update(e *domain.Sale) { s.updates = append(s.updates, e) }

func (s *memorySession) Remove(es []*domain.Sale) {
	for _, e := range es {
		s.removes = append(s.removes, e.ID)
	}
}

// Save only counts staged mutations so every iteration sees the same collection
func (s *memorySession) Save(context.Context) error {
	s.repo.staged += len(s.inserts) + len(s.updates) + len(s.removes)
	return nil
}

func newMemoryRepository(size int) *memoryRepository {
	repo := &memoryRepository{records: make([]*domain.Sale, size)}
	for i := range repo.records {
		repo.records[i] = helpers.CreateTestSale(func(s *domain.Sale) {
			s.OrderNumber = fmt.Sprintf("ORD-%05d", i)
			s.Quantity = 1 + i%7
			s.UnitPrice = decimal.NewFromInt(int64(10 + i%50))
			s.Position = i
		})
	}
	return repo
}
