package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/identity"
	"github.com/ordena/backend/internal/domain/inventory"
	"github.com/ordena/backend/internal/domain/notification"
	"github.com/ordena/backend/internal/domain/shared"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByBranch(ctx context.Context, branchID uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepository is a mock implementation of notification.Repository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	args := m.Called(ctx, ns)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, includeArchived bool, filter shared.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, userID, includeArchived, filter)
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func createTestUser(t *testing.T, role identity.Role) identity.User {
	t.Helper()
	user, err := identity.NewUser("Test User", uuid.NewString()+"@example.com", "s3cret-password", role)
	require.NoError(t, err)
	return *user
}

func criticalEvent(productID uuid.UUID, location inventory.LocationRef) *inventory.StockCriticalEvent {
	record, _ := inventory.NewStockRecord(productID, location)
	record.Quantity = decimal.NewFromInt(4)
	record.MinQuantity = decimal.NewFromInt(5)
	return inventory.NewStockCriticalEvent(record, decimal.NewFromInt(6), decimal.NewFromInt(4))
}

func maxEvent(productID uuid.UUID, location inventory.LocationRef) *inventory.StockMaxReachedEvent {
	record, _ := inventory.NewStockRecord(productID, location)
	record.Quantity = decimal.NewFromInt(120)
	record.MaxQuantity = decimal.NewFromInt(100)
	return inventory.NewStockMaxReachedEvent(record, decimal.NewFromInt(90), decimal.NewFromInt(120))
}

func TestThresholdNotifier_EventTypes(t *testing.T) {
	notifier := NewThresholdNotifier(new(MockUserRepository), new(MockNotificationRepository), zap.NewNop())

	types := notifier.EventTypes()

	assert.Contains(t, types, inventory.EventTypeStockCritical)
	assert.Contains(t, types, inventory.EventTypeStockMaxReached)
}

func TestThresholdNotifier_Handle(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	warehouseID := uuid.New()
	branchID := uuid.New()

	t.Run("critical event notifies warehouse staff", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		notifRepo := new(MockNotificationRepository)
		staff := []identity.User{createTestUser(t, identity.RoleWarehouse), createTestUser(t, identity.RoleWarehouse)}

		userRepo.On("FindByWarehouse", mock.Anything, warehouseID).Return(staff, nil).Once()

		var captured []*notification.Notification
		notifRepo.On("CreateBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			captured = args.Get(1).([]*notification.Notification)
		}).Return(nil).Once()

		notifier := NewThresholdNotifier(userRepo, notifRepo, zap.NewNop())
		err := notifier.Handle(ctx, criticalEvent(productID, inventory.NewWarehouseRef(warehouseID)))

		require.NoError(t, err)
		require.Len(t, captured, 2)
		assert.Equal(t, notification.KindStockCritical, captured[0].Kind)
		assert.Equal(t, staff[0].ID, captured[0].UserID)
		require.NotNil(t, captured[0].ProductID)
		assert.Equal(t, productID, *captured[0].ProductID)
		userRepo.AssertExpectations(t)
		notifRepo.AssertExpectations(t)
	})

	t.Run("max event notifies branch staff", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		notifRepo := new(MockNotificationRepository)
		staff := []identity.User{createTestUser(t, identity.RoleBranch)}

		userRepo.On("FindByBranch", mock.Anything, branchID).Return(staff, nil).Once()

		var captured []*notification.Notification
		notifRepo.On("CreateBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			captured = args.Get(1).([]*notification.Notification)
		}).Return(nil).Once()

		notifier := NewThresholdNotifier(userRepo, notifRepo, zap.NewNop())
		err := notifier.Handle(ctx, maxEvent(productID, inventory.NewBranchRef(branchID)))

		require.NoError(t, err)
		require.Len(t, captured, 1)
		assert.Equal(t, notification.KindStockMaximum, captured[0].Kind)
	})

	t.Run("falls back to admins when the location has no staff", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		notifRepo := new(MockNotificationRepository)
		admins := []identity.User{createTestUser(t, identity.RoleAdmin)}

		userRepo.On("FindByWarehouse", mock.Anything, warehouseID).Return([]identity.User{}, nil).Once()
		userRepo.On("FindByRole", mock.Anything, identity.RoleAdmin).Return(admins, nil).Once()
		notifRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Once()

		notifier := NewThresholdNotifier(userRepo, notifRepo, zap.NewNop())
		err := notifier.Handle(ctx, criticalEvent(productID, inventory.NewWarehouseRef(warehouseID)))

		require.NoError(t, err)
		userRepo.AssertExpectations(t)
		notifRepo.AssertExpectations(t)
	})

	t.Run("no recipients means no writes", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		notifRepo := new(MockNotificationRepository)

		userRepo.On("FindByWarehouse", mock.Anything, warehouseID).Return([]identity.User{}, nil).Once()
		userRepo.On("FindByRole", mock.Anything, identity.RoleAdmin).Return([]identity.User{}, nil).Once()

		notifier := NewThresholdNotifier(userRepo, notifRepo, zap.NewNop())
		err := notifier.Handle(ctx, criticalEvent(productID, inventory.NewWarehouseRef(warehouseID)))

		require.NoError(t, err)
		notifRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("user lookup failure is swallowed", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		notifRepo := new(MockNotificationRepository)

		userRepo.On("FindByWarehouse", mock.Anything, warehouseID).Return(nil, errors.New("db down")).Once()

		notifier := NewThresholdNotifier(userRepo, notifRepo, zap.NewNop())
		err := notifier.Handle(ctx, criticalEvent(productID, inventory.NewWarehouseRef(warehouseID)))

		assert.NoError(t, err)
		notifRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("store failure is swallowed", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		notifRepo := new(MockNotificationRepository)
		staff := []identity.User{createTestUser(t, identity.RoleWarehouse)}

		userRepo.On("FindByWarehouse", mock.Anything, warehouseID).Return(staff, nil).Once()
		notifRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

		notifier := NewThresholdNotifier(userRepo, notifRepo, zap.NewNop())
		err := notifier.Handle(ctx, criticalEvent(productID, inventory.NewWarehouseRef(warehouseID)))

		assert.NoError(t, err)
	})

	t.Run("ignores unrelated event types", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		notifRepo := new(MockNotificationRepository)

		record, _ := inventory.NewStockRecord(productID, inventory.NewWarehouseRef(warehouseID))
		notifier := NewThresholdNotifier(userRepo, notifRepo, zap.NewNop())
		err := notifier.Handle(ctx, inventory.NewStockRecordCreatedEvent(record))

		assert.NoError(t, err)
		notifRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})
}
