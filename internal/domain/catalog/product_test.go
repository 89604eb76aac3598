package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates active product with normalized code", func(t *testing.T) {
		product, err := NewProduct("  prd-001 ", "Monitor 24\"")
		require.NoError(t, err)

		assert.Equal(t, "PRD-001", product.InternalCode)
		assert.Equal(t, "Monitor 24\"", product.Name)
		assert.True(t, product.Active)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewProduct("  ", "Monitor")
		require.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("PRD-001", "")
		require.Error(t, err)
	})
}

func TestProduct_HomeLocation(t *testing.T) {
	product, err := NewProduct("PRD-002", "Keyboard")
	require.NoError(t, err)

	warehouseID := uuid.New()
	branchID := uuid.New()

	require.NoError(t, product.AssignWarehouse(warehouseID))
	require.NotNil(t, product.WarehouseID)
	assert.Equal(t, warehouseID, *product.WarehouseID)
	assert.Nil(t, product.BranchID)

	require.NoError(t, product.AssignBranch(branchID))
	require.NotNil(t, product.BranchID)
	assert.Equal(t, branchID, *product.BranchID)
	assert.Nil(t, product.WarehouseID, "assigning a branch clears the warehouse")

	assert.Error(t, product.AssignWarehouse(uuid.Nil))
}

func TestProduct_DeactivateReactivate(t *testing.T) {
	product, err := NewProduct("PRD-003", "Mouse")
	require.NoError(t, err)
	product.ClearDomainEvents()

	t.Run("deactivates", func(t *testing.T) {
		require.NoError(t, product.Deactivate())
		assert.False(t, product.Active)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductDeactivated, events[0].EventType())
	})

	t.Run("rejects double deactivation", func(t *testing.T) {
		assert.Error(t, product.Deactivate())
	})

	t.Run("reactivates", func(t *testing.T) {
		product.ClearDomainEvents()
		require.NoError(t, product.Reactivate())
		assert.True(t, product.Active)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductReactivated, events[0].EventType())
	})

	t.Run("rejects double reactivation", func(t *testing.T) {
		assert.Error(t, product.Reactivate())
	})
}

func TestBrandAndCategory(t *testing.T) {
	brand, err := NewBrand("Logitech", "Peripherals")
	require.NoError(t, err)
	assert.Equal(t, "Logitech", brand.Name)
	require.NoError(t, brand.Update("Logi", ""))
	assert.Equal(t, "Logi", brand.Name)
	_, err = NewBrand("", "")
	assert.Error(t, err)

	category, err := NewCategory("Electronics", "")
	require.NoError(t, err)
	require.NoError(t, category.Update("Home Electronics", "TVs and more"))
	assert.Equal(t, "Home Electronics", category.Name)
	_, err = NewCategory("", "")
	assert.Error(t, err)
}
