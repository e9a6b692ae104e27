//go:build e2e
// +build e2e

package e2e_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ammerola/dashboard-be/internal/adapters/db"
	redis_a "github.com/ammerola/dashboard-be/internal/adapters/redis_adapter"
	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/ports"
	"github.com/ammerola/dashboard-be/internal/core/services"
	"github.com/ammerola/dashboard-be/internal/handlers"
	"github.com/ammerola/dashboard-be/internal/handlers/middleware"
	"github.com/ammerola/dashboard-be/test/helpers"
)

// recordingPublisher keeps published events in memory
type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.CollectionPatchedEvent
}

func (p *recordingPublisher) PublishCollectionPatched(_ context.Context, event ports.CollectionPatchedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) last() (ports.CollectionPatchedEvent, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return ports.CollectionPatchedEvent{}, 0
	}
	return p.events[len(p.events)-1], len(p.events)
}

type CollectionE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
	events    *recordingPublisher
	cancel    context.CancelFunc
}

func (s *CollectionE2ESuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("Skipping e2e test in short mode")
	}

	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())
	s.events = &recordingPublisher{}

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
}

func (s *CollectionE2ESuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *CollectionE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

func (s *CollectionE2ESuite) TestSaleCollectionWorkflow() {
	// 1. Empty collection
	resp := s.request(http.MethodGet, "/api/sales", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Empty(s.decodeList(resp))

	// 2. Append two sales
	resp = s.request(http.MethodPatch, "/api/sales/salecollection", `[
		{"op":"add","path":"/-","value":{"order_number":"ORD-1","product":"Grinder","region":"North","channel":"store","quantity":1,"unit_price":"89.90","discount":"0","sold_at":"2025-01-06T09:15:00Z","notes":""}},
		{"op":"add","path":"/-","value":{"order_number":"ORD-2","product":"Kettle","region":"South","channel":"online","quantity":3,"unit_price":"30","discount":"0","sold_at":"2025-01-06T10:00:00Z","notes":""}}
	]`)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	event, count := s.events.last()
	s.Equal(1, count)
	s.Equal(services.KindSales, event.Kind)
	s.Len(event.Result.Inserted, 2)

	// 3. List returns them in patch order
	resp = s.request(http.MethodGet, "/api/sales", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	sales := s.decodeList(resp)
	s.Require().Len(sales, 2)
	s.Equal("ORD-1", sales[0]["order_number"])
	s.Equal("ORD-2", sales[1]["order_number"])
	firstID := sales[0]["id"].(string)

	// 4. Lookup by id
	resp = s.request(http.MethodGet, "/api/sales/"+firstID, "")
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// 5. Replace the first and remove the second in one patch
	resp = s.request(http.MethodPatch, "/api/sales/salecollection", `[
		{"op":"test","path":"/0/order_number","value":"ORD-1"},
		{"op":"replace","path":"/0/quantity","value":5},
		{"op":"remove","path":"/1"}
	]`)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	event, count = s.events.last()
	s.Equal(2, count)
	s.Len(event.Result.Updated, 1)
	s.Len(event.Result.Removed, 1)

	// 6. The cached list was invalidated
	resp = s.request(http.MethodGet, "/api/sales", "")
	sales = s.decodeList(resp)
	s.Require().Len(sales, 1)
	s.Equal(float64(5), sales[0]["quantity"])

	// 7. A failing patch leaves the collection untouched
	resp = s.request(http.MethodPatch, "/api/sales/salecollection", `[
		{"op":"remove","path":"/0"},
		{"op":"test","path":"/0/order_number","value":"ORD-9"}
	]`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.request(http.MethodGet, "/api/sales", "")
	s.Len(s.decodeList(resp), 1)

	// 8. Null documents are rejected
	resp = s.request(http.MethodPatch, "/api/sales/salecollection", `null`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// 9. Export
	resp = s.request(http.MethodGet, "/api/sales/export", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	resp.Body.Close()

	_, count = s.events.last()
	s.Equal(2, count, "failed and rejected patches publish nothing")
}

func (s *CollectionE2ESuite) TestInventoryWorkflow() {
	resp := s.request(http.MethodPatch, "/api/inventories/inventorycollection", `[
		{"op":"add","path":"/0","value":{"sku":"SKU-1","product":"Grinder","warehouse":"Main","on_hand":10,"reserved":1,"reorder_level":3,"unit_cost":"40","notes":""}}
	]`)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.request(http.MethodGet, "/api/inventories", "")
	items := s.decodeList(resp)
	s.Require().Len(items, 1)
	s.Equal("SKU-1", items[0]["sku"])

	// missing inventory records answer 400
	resp = s.request(http.MethodGet, "/api/inventories/00000000-0000-0000-0000-000000000001", "")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// missing sales answer 404
	resp = s.request(http.MethodGet, "/api/sales/00000000-0000-0000-0000-000000000001", "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *CollectionE2ESuite) TestHealth() {
	resp := s.request(http.MethodGet, "/ready", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (s *CollectionE2ESuite) startTestServer() *httptest.Server {
	log := helpers.TestLogger()
	cfg := helpers.LoadTestConfig()

	cache := redis_a.NewCache(s.testRedis.Client, redis_a.PrefixDashboard, time.Minute, log)
	opts := []services.Option{
		services.WithCache(cache, time.Minute),
		services.WithEvents(s.events),
	}

	saleService := services.NewSaleService(db.NewSaleStore(s.testDB.Database, log), log, opts...)
	inventoryService := services.NewInventoryService(db.NewInventoryStore(s.testDB.Database, log), log, opts...)

	mux := http.NewServeMux()
	handlers.NewCollectionHandler[*domain.Sale](saleService, handlers.CollectionConfig{
		CollectionPath: "salecollection",
		NotFoundStatus: cfg.Collections.SalesNotFoundStatus,
		SheetColumns:   domain.SaleSheetColumns,
	}, log).Register(mux)
	handlers.NewCollectionHandler[*domain.Inventory](inventoryService, handlers.CollectionConfig{
		CollectionPath: "inventorycollection",
		NotFoundStatus: cfg.Collections.InventoriesNotFoundStatus,
		SheetColumns:   domain.InventorySheetColumns,
	}, log).Register(mux)
	handlers.NewHealthHandler(s.testDB.Database, s.testRedis.Client, nil, cfg, log).Register(mux)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	return httptest.NewServer(middleware.Chain(mux,
		middleware.Recovery(log),
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Logger(log),
		middleware.RateLimit(ctx, 1000, time.Second),
	))
}

func (s *CollectionE2ESuite) request(method, path, body string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json-patch+json")
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *CollectionE2ESuite) decodeList(resp *http.Response) []map[string]any {
	defer resp.Body.Close()

	var out []map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCollectionE2ESuite(t *testing.T) {
	suite.Run(t, new(CollectionE2ESuite))
}
