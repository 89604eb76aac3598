package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/catalog"
	"github.com/ordena/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActiveByInternalCode(ctx context.Context, internalCode string) (*catalog.Product, error) {
	args := m.Called(ctx, internalCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindInactiveByInternalCode(ctx context.Context, internalCode string) (*catalog.Product, error) {
	args := m.Called(ctx, internalCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsActiveByInternalCode(ctx context.Context, internalCode string) (bool, error) {
	args := m.Called(ctx, internalCode)
	return args.Get(0).(bool), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockBrandRepository is a mock implementation of catalog.BrandRepository
type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) FindByName(ctx context.Context, name string) (*catalog.Brand, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Brand, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *MockBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBrandRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newProductService(productRepo *MockProductRepository, brandRepo *MockBrandRepository, categoryRepo *MockCategoryRepository) *ProductService {
	return NewProductService(productRepo, brandRepo, categoryRepo, zap.NewNop())
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new product with an uppercased code", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo, new(MockBrandRepository), new(MockCategoryRepository))

		productRepo.On("ExistsActiveByInternalCode", ctx, "SKU-1").Return(false, nil).Once()
		productRepo.On("FindInactiveByInternalCode", ctx, "SKU-1").Return(nil, shared.ErrNotFound).Once()
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil).Once()

		response, err := service.Create(ctx, CreateProductRequest{InternalCode: "sku-1", Name: "Widgets"})

		require.NoError(t, err)
		assert.Equal(t, "SKU-1", response.InternalCode)
		assert.True(t, response.Active)
		assert.False(t, response.Revived)
	})

	t.Run("rejects a code held by an active product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo, new(MockBrandRepository), new(MockCategoryRepository))

		productRepo.On("ExistsActiveByInternalCode", ctx, "SKU-1").Return(true, nil).Once()

		_, err := service.Create(ctx, CreateProductRequest{InternalCode: "SKU-1", Name: "Widgets"})

		require.Error(t, err)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("revives a retired product under the same code", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo, new(MockBrandRepository), new(MockCategoryRepository))

		retired, err := catalog.NewProduct("SKU-1", "Old widgets")
		require.NoError(t, err)
		require.NoError(t, retired.Deactivate())
		retired.ClearDomainEvents()

		productRepo.On("ExistsActiveByInternalCode", ctx, "SKU-1").Return(false, nil).Once()
		productRepo.On("FindInactiveByInternalCode", ctx, "SKU-1").Return(retired, nil).Once()
		productRepo.On("Save", ctx, retired).Return(nil).Once()

		response, err := service.Create(ctx, CreateProductRequest{InternalCode: "SKU-1", Name: "New widgets", Description: "Back in catalog"})

		require.NoError(t, err)
		assert.True(t, response.Revived)
		assert.True(t, response.Active)
		assert.Equal(t, retired.ID, response.ID)
		assert.Equal(t, "New widgets", response.Name)
	})

	t.Run("unknown brand reference is rejected", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		brandRepo := new(MockBrandRepository)
		service := newProductService(productRepo, brandRepo, new(MockCategoryRepository))

		brandID := uuid.New()
		productRepo.On("ExistsActiveByInternalCode", ctx, "SKU-1").Return(false, nil).Once()
		brandRepo.On("FindByID", ctx, brandID).Return(nil, shared.ErrNotFound).Once()

		_, err := service.Create(ctx, CreateProductRequest{InternalCode: "SKU-1", Name: "Widgets", BrandID: &brandID})

		require.Error(t, err)
	})
}

func TestProductService_Deactivate(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	service := newProductService(productRepo, new(MockBrandRepository), new(MockCategoryRepository))

	t.Run("retires an active product", func(t *testing.T) {
		product, err := catalog.NewProduct("SKU-2", "Gadgets")
		require.NoError(t, err)
		product.ClearDomainEvents()

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil).Once()
		productRepo.On("Save", ctx, product).Return(nil).Once()

		response, err := service.Deactivate(ctx, product.ID)

		require.NoError(t, err)
		assert.False(t, response.Active)
	})

	t.Run("retiring twice fails", func(t *testing.T) {
		product, err := catalog.NewProduct("SKU-2", "Gadgets")
		require.NoError(t, err)
		require.NoError(t, product.Deactivate())

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil).Once()

		_, err = service.Deactivate(ctx, product.ID)

		require.Error(t, err)
	})
}

func TestProductService_Reactivate(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	service := newProductService(productRepo, new(MockBrandRepository), new(MockCategoryRepository))

	t.Run("blocked while another product holds the code", func(t *testing.T) {
		product, err := catalog.NewProduct("SKU-3", "Gizmos")
		require.NoError(t, err)
		require.NoError(t, product.Deactivate())

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil).Once()
		productRepo.On("ExistsActiveByInternalCode", ctx, "SKU-3").Return(true, nil).Once()

		_, err = service.Reactivate(ctx, product.ID)

		require.Error(t, err)
		assert.False(t, product.Active)
	})

	t.Run("succeeds when the code is free", func(t *testing.T) {
		product, err := catalog.NewProduct("SKU-3", "Gizmos")
		require.NoError(t, err)
		require.NoError(t, product.Deactivate())
		product.ClearDomainEvents()

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil).Once()
		productRepo.On("ExistsActiveByInternalCode", ctx, "SKU-3").Return(false, nil).Once()
		productRepo.On("Save", ctx, product).Return(nil).Once()

		response, err := service.Reactivate(ctx, product.ID)

		require.NoError(t, err)
		assert.True(t, response.Active)
	})
}
