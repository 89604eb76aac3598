package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockMovement(t *testing.T) {
	record, err := NewStockRecord(uuid.New(), NewWarehouseRef(uuid.New()))
	require.NoError(t, err)
	userID := uuid.New()

	t.Run("creates inbound movement", func(t *testing.T) {
		movement, err := NewStockMovement(record,
			decimal.NewFromInt(20), decimal.Zero, decimal.NewFromInt(20),
			userID, "Supplier delivery", SourceSupplierIngestion, "doc-42")
		require.NoError(t, err)

		assert.Equal(t, record.ID, movement.StockRecordID)
		assert.Equal(t, record.ProductID, movement.ProductID)
		assert.Equal(t, record.Location, movement.Location)
		assert.True(t, movement.Delta.Equal(decimal.NewFromInt(20)))
		assert.True(t, movement.QuantityBefore.IsZero())
		assert.True(t, movement.QuantityAfter.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, userID, movement.UserID)
		assert.True(t, movement.IsInbound())
		assert.False(t, movement.IsOutbound())
	})

	t.Run("creates outbound movement", func(t *testing.T) {
		movement, err := NewStockMovement(record,
			decimal.NewFromInt(-5), decimal.NewFromInt(20), decimal.NewFromInt(15),
			userID, "Order dispatch", SourcePurchaseOrder, "order-1")
		require.NoError(t, err)

		assert.True(t, movement.IsOutbound())
	})

	t.Run("rejects zero delta", func(t *testing.T) {
		_, err := NewStockMovement(record,
			decimal.Zero, decimal.NewFromInt(10), decimal.NewFromInt(10),
			userID, "No change", SourceManualAdjustment, "")
		require.Error(t, err)
	})

	t.Run("rejects inconsistent before/after pair", func(t *testing.T) {
		_, err := NewStockMovement(record,
			decimal.NewFromInt(5), decimal.NewFromInt(10), decimal.NewFromInt(20),
			userID, "Broken", SourceManualAdjustment, "")
		require.Error(t, err)
	})

	t.Run("rejects negative resulting quantity", func(t *testing.T) {
		_, err := NewStockMovement(record,
			decimal.NewFromInt(-15), decimal.NewFromInt(10), decimal.NewFromInt(-5),
			userID, "Oversold", SourcePurchaseOrder, "order-2")
		require.Error(t, err)
	})

	t.Run("rejects missing user", func(t *testing.T) {
		_, err := NewStockMovement(record,
			decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(1),
			uuid.Nil, "Manual", SourceManualAdjustment, "")
		require.Error(t, err)
	})

	t.Run("rejects missing reason", func(t *testing.T) {
		_, err := NewStockMovement(record,
			decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(1),
			userID, "", SourceManualAdjustment, "")
		require.Error(t, err)
	})

	t.Run("rejects unknown source type", func(t *testing.T) {
		_, err := NewStockMovement(record,
			decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(1),
			userID, "Manual", MovementSource("TELEPORT"), "")
		require.Error(t, err)
	})
}

func TestMovementSource_IsValid(t *testing.T) {
	valid := []MovementSource{
		SourcePurchaseOrder,
		SourceTransfer,
		SourceSupplierIngestion,
		SourceManualAdjustment,
		SourceInitialStock,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, MovementSource("UNKNOWN").IsValid())
}

func TestLocationRef(t *testing.T) {
	t.Run("validates kind and id", func(t *testing.T) {
		assert.NoError(t, NewWarehouseRef(uuid.New()).Validate())
		assert.NoError(t, NewBranchRef(uuid.New()).Validate())
		assert.Error(t, LocationRef{}.Validate())
		assert.Error(t, LocationRef{Kind: "store", ID: uuid.New()}.Validate())
		assert.Error(t, LocationRef{Kind: LocationKindBranch}.Validate())
	})

	t.Run("equality covers kind and id", func(t *testing.T) {
		id := uuid.New()
		assert.True(t, NewWarehouseRef(id).Equals(NewWarehouseRef(id)))
		assert.False(t, NewWarehouseRef(id).Equals(NewBranchRef(id)))
	})
}
