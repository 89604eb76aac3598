package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	inventoryapp "github.com/ordena/backend/internal/application/inventory"
	"github.com/ordena/backend/internal/domain/inventory"
	"github.com/ordena/backend/internal/domain/shared"
	"github.com/ordena/backend/internal/interfaces/http/middleware"
)

// MockStockRecordRepository implements inventory.StockRecordRepository for testing
type MockStockRecordRepository struct {
	mock.Mock
}

func (m *MockStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByProductAndLocation(ctx context.Context, productID uuid.UUID, location inventory.LocationRef) (*inventory.StockRecord, error) {
	args := m.Called(ctx, productID, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByProductAndLocationForUpdate(ctx context.Context, productID uuid.UUID, location inventory.LocationRef) (*inventory.StockRecord, error) {
	args := m.Called(ctx, productID, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockRecord, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).([]inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByLocation(ctx context.Context, location inventory.LocationRef, filter shared.Filter) ([]inventory.StockRecord, error) {
	args := m.Called(ctx, location, filter)
	return args.Get(0).([]inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]inventory.StockRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) GetOrCreate(ctx context.Context, productID uuid.UUID, location inventory.LocationRef) (*inventory.StockRecord, error) {
	args := m.Called(ctx, productID, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) Save(ctx context.Context, record *inventory.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStockRecordRepository) SaveWithLock(ctx context.Context, record *inventory.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStockRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockRecordRepository) SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockRecordRepository) ExistsByProductAndLocation(ctx context.Context, productID uuid.UUID, location inventory.LocationRef) (bool, error) {
	args := m.Called(ctx, productID, location)
	return args.Get(0).(bool), args.Error(1)
}

// MockStockMovementRepository implements inventory.StockMovementRepository for testing
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByStockRecord(ctx context.Context, stockRecordID uuid.UUID, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, stockRecordID, filter)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindAll(ctx context.Context, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) CountByStockRecord(ctx context.Context, stockRecordID uuid.UUID) (int64, error) {
	args := m.Called(ctx, stockRecordID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockMovementRepository) SumDeltaByStockRecord(ctx context.Context, stockRecordID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, stockRecordID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type stockTestFixture struct {
	router       *gin.Engine
	recordRepo   *MockStockRecordRepository
	movementRepo *MockStockMovementRepository
	userID       uuid.UUID
}

func newStockTestFixture(t *testing.T) *stockTestFixture {
	t.Helper()
	recordRepo := new(MockStockRecordRepository)
	movementRepo := new(MockStockMovementRepository)
	stockService := inventoryapp.NewStockService(recordRepo, movementRepo)
	reconciler := inventoryapp.NewStockReconciler(
		inventoryapp.NewNoOpTransactionScope(recordRepo, movementRepo), zap.NewNop())
	h := NewStockHandler(stockService, reconciler)

	userID := uuid.New()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		setJWTContext(c, userID)
		c.Next()
	})
	r.GET("/inventory/stock/record", h.GetRecord)
	r.GET("/inventory/stock", h.List)
	r.POST("/inventory/adjustments", h.Adjust)
	r.GET("/inventory/availability", h.Availability)
	r.GET("/inventory/products/:id/quantity", h.TotalQuantity)

	return &stockTestFixture{router: r, recordRepo: recordRepo, movementRepo: movementRepo, userID: userID}
}

func newStockRecord(t *testing.T, productID uuid.UUID, location inventory.LocationRef, quantity decimal.Decimal) *inventory.StockRecord {
	t.Helper()
	record, err := inventory.NewStockRecord(productID, location)
	require.NoError(t, err)
	record.Quantity = quantity
	record.ClearDomainEvents()
	return record
}

func warehouseRef(id uuid.UUID) inventory.LocationRef {
	return inventory.LocationRef{Kind: inventory.LocationKindWarehouse, ID: id}
}

func TestStockHandlerGetRecord(t *testing.T) {
	t.Run("returns record", func(t *testing.T) {
		f := newStockTestFixture(t)
		productID := uuid.New()
		location := warehouseRef(uuid.New())
		record := newStockRecord(t, productID, location, decimal.NewFromInt(30))
		f.recordRepo.On("FindByProductAndLocation", mock.Anything, productID, location).Return(record, nil)

		url := fmt.Sprintf("/inventory/stock/record?product_id=%s&location_kind=warehouse&location_id=%s",
			productID, location.ID)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"quantity":"30"`)
	})

	t.Run("missing location kind returns 400", func(t *testing.T) {
		f := newStockTestFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/inventory/stock/record?product_id="+uuid.NewString(), nil)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStockHandlerAdjust(t *testing.T) {
	adjustBody := func(productID, locationID uuid.UUID, delta string) []byte {
		return []byte(fmt.Sprintf(
			`{"product_id":%q,"location":{"kind":"warehouse","id":%q},"delta":%q,"reason":"cycle count"}`,
			productID, locationID, delta))
	}

	t.Run("applies delta and records movement", func(t *testing.T) {
		f := newStockTestFixture(t)
		productID := uuid.New()
		location := warehouseRef(uuid.New())
		record := newStockRecord(t, productID, location, decimal.NewFromInt(10))
		f.recordRepo.On("GetOrCreate", mock.Anything, productID, location).Return(record, nil)
		f.recordRepo.On("FindByProductAndLocationForUpdate", mock.Anything, productID, location).Return(record, nil)
		f.recordRepo.On("SaveWithLock", mock.Anything, record).Return(nil)
		f.movementRepo.On("Create", mock.Anything, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/inventory/adjustments",
			bytes.NewReader(adjustBody(productID, location.ID, "5")))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.IdempotencyKeyHeader, "adj-42")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"quantity":"15"`)
		f.movementRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(m *inventory.StockMovement) bool {
			return m.SourceID == "adj-42" && m.Delta.Equal(decimal.NewFromInt(5))
		}))
	})

	t.Run("insufficient stock returns 422", func(t *testing.T) {
		f := newStockTestFixture(t)
		productID := uuid.New()
		location := warehouseRef(uuid.New())
		record := newStockRecord(t, productID, location, decimal.NewFromInt(3))
		f.recordRepo.On("GetOrCreate", mock.Anything, productID, location).Return(record, nil)
		f.recordRepo.On("FindByProductAndLocationForUpdate", mock.Anything, productID, location).Return(record, nil)

		req := httptest.NewRequest(http.MethodPost, "/inventory/adjustments",
			bytes.NewReader(adjustBody(productID, location.ID, "-10")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INSUFFICIENT_STOCK")
		f.recordRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.movementRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("delta and target together rejected", func(t *testing.T) {
		f := newStockTestFixture(t)
		productID := uuid.New()
		locationID := uuid.New()
		body := []byte(fmt.Sprintf(
			`{"product_id":%q,"location":{"kind":"warehouse","id":%q},"delta":"5","target_quantity":"8","reason":"x"}`,
			productID, locationID))

		req := httptest.NewRequest(http.MethodPost, "/inventory/adjustments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStockHandlerAvailability(t *testing.T) {
	f := newStockTestFixture(t)
	productID := uuid.New()
	location := warehouseRef(uuid.New())
	record := newStockRecord(t, productID, location, decimal.NewFromInt(8))
	f.recordRepo.On("FindByProductAndLocation", mock.Anything, productID, location).Return(record, nil)

	url := fmt.Sprintf("/inventory/availability?product_id=%s&location_kind=warehouse&location_id=%s&quantity=5",
		productID, location.ID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":true`)
}

func TestStockHandlerTotalQuantity(t *testing.T) {
	f := newStockTestFixture(t)
	productID := uuid.New()
	f.recordRepo.On("SumQuantityByProduct", mock.Anything, productID).Return(decimal.NewFromInt(47), nil)

	req := httptest.NewRequest(http.MethodGet, "/inventory/products/"+productID.String()+"/quantity", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":"47"`)
}
