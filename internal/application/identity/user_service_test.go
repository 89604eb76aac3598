package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/identity"
	"github.com/ordena/backend/internal/domain/location"
	"github.com/ordena/backend/internal/domain/shared"
	"github.com/ordena/backend/internal/infrastructure/auth"
)

func userFixture() (*MockUserRepository, *MockWarehouseRepository, *MockBranchRepository, *auth.InMemoryTokenBlacklist, *UserService) {
	userRepo := new(MockUserRepository)
	warehouseRepo := new(MockWarehouseRepository)
	branchRepo := new(MockBranchRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	service := NewUserService(userRepo, warehouseRepo, branchRepo, blacklist, testJWTService(), zap.NewNop())
	return userRepo, warehouseRepo, branchRepo, blacklist, service
}

func testWarehouse(t *testing.T) *location.Warehouse {
	t.Helper()
	warehouse, err := location.NewWarehouse("Bodega Central", "Av. Principal 100", "76.543.210-1")
	require.NoError(t, err)
	return warehouse
}

func testBranch(t *testing.T, warehouseID uuid.UUID) *location.Branch {
	t.Helper()
	branch, err := location.NewBranch("Sucursal Norte", "Calle 5 #20", "", "77.111.222-3", warehouseID)
	require.NoError(t, err)
	return branch
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("warehouse staff get a home warehouse", func(t *testing.T) {
		userRepo, warehouseRepo, _, _, service := userFixture()

		warehouse := testWarehouse(t)
		userRepo.On("FindByEmail", ctx, "ana@ordena.test").Return(nil, shared.ErrNotFound).Once()
		warehouseRepo.On("FindByID", ctx, warehouse.ID).Return(warehouse, nil).Once()
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil).Once()

		response, err := service.Create(ctx, CreateUserRequest{
			Name:        "Ana Rojas",
			Email:       "Ana@Ordena.test",
			Password:    "secret123",
			Role:        "warehouse",
			WarehouseID: &warehouse.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "ana@ordena.test", response.Email)
		assert.Equal(t, "warehouse", response.Role)
		require.NotNil(t, response.WarehouseID)
		assert.Equal(t, warehouse.ID, *response.WarehouseID)
		assert.Nil(t, response.BranchID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		userRepo, _, _, _, service := userFixture()

		existing := createTestUser(t, identity.RoleAdmin)
		userRepo.On("FindByEmail", ctx, existing.Email).Return(existing, nil).Once()

		_, err := service.Create(ctx, CreateUserRequest{
			Name:     "Other",
			Email:    existing.Email,
			Password: "secret123",
			Role:     "admin",
		})

		require.Error(t, err)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("warehouse staff without a warehouse are rejected", func(t *testing.T) {
		userRepo, _, _, _, service := userFixture()

		userRepo.On("FindByEmail", ctx, "ben@ordena.test").Return(nil, shared.ErrNotFound).Once()

		_, err := service.Create(ctx, CreateUserRequest{
			Name:     "Ben",
			Email:    "ben@ordena.test",
			Password: "secret123",
			Role:     "warehouse",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SITE", domainErr.Code)
	})

	t.Run("admins are not tied to a site", func(t *testing.T) {
		userRepo, _, _, _, service := userFixture()

		warehouseID := uuid.New()
		userRepo.On("FindByEmail", ctx, "eve@ordena.test").Return(nil, shared.ErrNotFound).Once()

		_, err := service.Create(ctx, CreateUserRequest{
			Name:        "Eve",
			Email:       "eve@ordena.test",
			Password:    "secret123",
			Role:        "admin",
			WarehouseID: &warehouseID,
		})

		require.Error(t, err)
	})

	t.Run("unknown branch reference is rejected", func(t *testing.T) {
		userRepo, _, branchRepo, _, service := userFixture()

		branchID := uuid.New()
		userRepo.On("FindByEmail", ctx, "zoe@ordena.test").Return(nil, shared.ErrNotFound).Once()
		branchRepo.On("FindByID", ctx, branchID).Return(nil, shared.ErrNotFound).Once()

		_, err := service.Create(ctx, CreateUserRequest{
			Name:     "Zoe",
			Email:    "zoe@ordena.test",
			Password: "secret123",
			Role:     "branch",
			BranchID: &branchID,
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserService_AssignSites(t *testing.T) {
	ctx := context.Background()

	t.Run("moving warehouse staff between warehouses", func(t *testing.T) {
		userRepo, warehouseRepo, _, _, service := userFixture()

		warehouse := testWarehouse(t)
		user := createTestUser(t, identity.RoleWarehouse)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil).Once()
		warehouseRepo.On("FindByID", ctx, warehouse.ID).Return(warehouse, nil).Once()
		userRepo.On("Save", ctx, user).Return(nil).Once()

		response, err := service.AssignWarehouse(ctx, user.ID, warehouse.ID)

		require.NoError(t, err)
		require.NotNil(t, response.WarehouseID)
		assert.Equal(t, warehouse.ID, *response.WarehouseID)
	})

	t.Run("branch staff cannot be moved to a warehouse", func(t *testing.T) {
		userRepo, _, _, _, service := userFixture()

		user := createTestUser(t, identity.RoleBranch)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil).Once()

		_, err := service.AssignWarehouse(ctx, user.ID, uuid.New())

		require.Error(t, err)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("assigning a branch clears the warehouse", func(t *testing.T) {
		userRepo, _, branchRepo, _, service := userFixture()

		warehouse := testWarehouse(t)
		branch := testBranch(t, warehouse.ID)
		user := createTestUser(t, identity.RoleAdmin)
		require.NoError(t, user.AssignWarehouse(warehouse.ID))

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil).Once()
		branchRepo.On("FindByID", ctx, branch.ID).Return(branch, nil).Once()
		userRepo.On("Save", ctx, user).Return(nil).Once()

		response, err := service.AssignBranch(ctx, user.ID, branch.ID)

		require.NoError(t, err)
		require.NotNil(t, response.BranchID)
		assert.Nil(t, response.WarehouseID)
	})
}

func TestUserService_Deactivate(t *testing.T) {
	ctx := context.Background()

	userRepo, _, _, blacklist, service := userFixture()

	user := createTestUser(t, identity.RoleBranch)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil).Once()
	userRepo.On("Save", ctx, user).Return(nil).Once()

	response, err := service.Deactivate(ctx, user.ID)

	require.NoError(t, err)
	assert.False(t, response.Active)

	invalid, err := blacklist.IsUserTokenInvalidated(ctx, user.ID.String(), user.CreatedAt)
	require.NoError(t, err)
	assert.True(t, invalid)
}
