package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ordena/backend/internal/domain/inventory"
	"github.com/ordena/backend/internal/domain/shared"
)

func TestStockService_GetRecord(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	branch := inventory.NewBranchRef(uuid.New())

	recordRepo := new(MockStockRecordRepository)
	movementRepo := new(MockStockMovementRepository)
	service := NewStockService(recordRepo, movementRepo)

	t.Run("success", func(t *testing.T) {
		record := createTestRecord(productID, branch, decimal.NewFromInt(12))
		recordRepo.On("FindByProductAndLocation", ctx, productID, branch).Return(record, nil).Once()

		response, err := service.GetRecord(ctx, productID, branch)

		require.NoError(t, err)
		assert.Equal(t, productID, response.ProductID)
		assert.Equal(t, "branch", response.Location.Kind)
		assert.True(t, response.Quantity.Equal(decimal.NewFromInt(12)))
	})

	t.Run("not found", func(t *testing.T) {
		recordRepo.On("FindByProductAndLocation", ctx, productID, branch).Return(nil, shared.ErrNotFound).Once()

		response, err := service.GetRecord(ctx, productID, branch)

		require.Error(t, err)
		assert.Nil(t, response)
	})
}

func TestStockService_List(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	warehouse := inventory.NewWarehouseRef(uuid.New())

	recordRepo := new(MockStockRecordRepository)
	service := NewStockService(recordRepo, new(MockStockMovementRepository))

	records := []inventory.StockRecord{
		*createTestRecord(productID, warehouse, decimal.NewFromInt(5)),
	}

	t.Run("filters by product", func(t *testing.T) {
		recordRepo.On("FindByProduct", ctx, productID, mock.Anything).Return(records, nil).Once()
		recordRepo.On("Count", ctx, mock.Anything).Return(int64(1), nil).Once()

		responses, total, err := service.List(ctx, StockListFilter{ProductID: &productID})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, responses, 1)
		assert.Equal(t, productID, responses[0].ProductID)
	})

	t.Run("filters by location", func(t *testing.T) {
		recordRepo.On("FindByLocation", ctx, warehouse, mock.Anything).Return(records, nil).Once()
		recordRepo.On("Count", ctx, mock.Anything).Return(int64(1), nil).Once()

		_, _, err := service.List(ctx, StockListFilter{LocationKind: "warehouse", LocationID: &warehouse.ID})

		require.NoError(t, err)
		recordRepo.AssertExpectations(t)
	})

	t.Run("below minimum filter wins", func(t *testing.T) {
		below := true
		recordRepo.On("FindBelowMinimum", ctx, mock.Anything).Return(records, nil).Once()
		recordRepo.On("Count", ctx, mock.Anything).Return(int64(1), nil).Once()

		_, _, err := service.List(ctx, StockListFilter{ProductID: &productID, BelowMinimum: &below})

		require.NoError(t, err)
		recordRepo.AssertNotCalled(t, "FindByProduct", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStockService_SetThresholds(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	warehouseID := uuid.New()
	warehouse := inventory.NewWarehouseRef(warehouseID)

	recordRepo := new(MockStockRecordRepository)
	service := NewStockService(recordRepo, new(MockStockMovementRepository))

	t.Run("success", func(t *testing.T) {
		record := createTestRecord(productID, warehouse, decimal.NewFromInt(50))
		recordRepo.On("FindByProductAndLocation", ctx, productID, warehouse).Return(record, nil).Once()
		recordRepo.On("SaveWithLock", ctx, record).Return(nil).Once()

		response, err := service.SetThresholds(ctx, SetThresholdsRequest{
			ProductID:   productID,
			Location:    LocationDTO{Kind: "warehouse", ID: warehouseID},
			MinQuantity: decimal.NewFromInt(10),
			MaxQuantity: decimal.NewFromInt(100),
		})

		require.NoError(t, err)
		assert.True(t, response.MinQuantity.Equal(decimal.NewFromInt(10)))
		assert.True(t, response.MaxQuantity.Equal(decimal.NewFromInt(100)))
	})

	t.Run("max below min is rejected", func(t *testing.T) {
		record := createTestRecord(productID, warehouse, decimal.NewFromInt(50))
		recordRepo.On("FindByProductAndLocation", ctx, productID, warehouse).Return(record, nil).Once()

		_, err := service.SetThresholds(ctx, SetThresholdsRequest{
			ProductID:   productID,
			Location:    LocationDTO{Kind: "warehouse", ID: warehouseID},
			MinQuantity: decimal.NewFromInt(100),
			MaxQuantity: decimal.NewFromInt(10),
		})

		require.Error(t, err)
		recordRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestStockService_CheckAvailability(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	branch := inventory.NewBranchRef(uuid.New())

	recordRepo := new(MockStockRecordRepository)
	service := NewStockService(recordRepo, new(MockStockMovementRepository))

	t.Run("sufficient stock", func(t *testing.T) {
		record := createTestRecord(productID, branch, decimal.NewFromInt(30))
		recordRepo.On("FindByProductAndLocation", ctx, productID, branch).Return(record, nil).Once()

		ok, available, err := service.CheckAvailability(ctx, productID, branch, decimal.NewFromInt(20))

		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, available.Equal(decimal.NewFromInt(30)))
	})

	t.Run("insufficient stock", func(t *testing.T) {
		record := createTestRecord(productID, branch, decimal.NewFromInt(3))
		recordRepo.On("FindByProductAndLocation", ctx, productID, branch).Return(record, nil).Once()

		ok, _, err := service.CheckAvailability(ctx, productID, branch, decimal.NewFromInt(20))

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("no record means zero availability without error", func(t *testing.T) {
		recordRepo.On("FindByProductAndLocation", ctx, productID, branch).Return(nil, shared.ErrNotFound).Once()

		ok, available, err := service.CheckAvailability(ctx, productID, branch, decimal.NewFromInt(1))

		require.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, available.IsZero())
	})
}

func TestStockService_MovementHistory(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	userID := uuid.New()
	warehouse := inventory.NewWarehouseRef(uuid.New())

	recordRepo := new(MockStockRecordRepository)
	movementRepo := new(MockStockMovementRepository)
	service := NewStockService(recordRepo, movementRepo)

	record := createTestRecord(productID, warehouse, decimal.NewFromInt(10))
	m1, err := inventory.NewStockMovement(record, decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(10),
		userID, "Initial load", inventory.SourceInitialStock, "")
	require.NoError(t, err)

	t.Run("orders oldest first", func(t *testing.T) {
		recordRepo.On("FindByProductAndLocation", ctx, productID, warehouse).Return(record, nil).Once()

		var captured inventory.MovementFilter
		movementRepo.On("FindByStockRecord", ctx, record.ID, mock.Anything).Run(func(args mock.Arguments) {
			captured = args.Get(2).(inventory.MovementFilter)
		}).Return([]inventory.StockMovement{*m1}, nil).Once()

		responses, err := service.MovementHistory(ctx, productID, warehouse, MovementListFilter{})

		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.True(t, responses[0].Delta.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, "occurred_at", captured.OrderBy)
		assert.Equal(t, "asc", captured.OrderDir)
	})

	t.Run("source filter is passed through", func(t *testing.T) {
		var captured inventory.MovementFilter
		movementRepo.On("FindByProduct", ctx, productID, mock.Anything).Run(func(args mock.Arguments) {
			captured = args.Get(2).(inventory.MovementFilter)
		}).Return([]inventory.StockMovement{}, nil).Once()

		_, err := service.MovementHistoryByProduct(ctx, productID, MovementListFilter{SourceType: "TRANSFER"})

		require.NoError(t, err)
		require.NotNil(t, captured.SourceType)
		assert.Equal(t, inventory.SourceTransfer, *captured.SourceType)
	})
}
