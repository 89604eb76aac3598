package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/identity"
	"github.com/ordena/backend/internal/domain/notification"
	"github.com/ordena/backend/internal/domain/orders"
	"github.com/ordena/backend/internal/domain/shared"
)

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
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByBranch(ctx context.Context, branchID uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.User, error) {
	args := m.Called(ctx, role)
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

// MockOrderRepository is a mock implementation of orders.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*orders.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]orders.Order, error) {
	args := m.Called(ctx, warehouseID, filter)
	return args.Get(0).([]orders.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]orders.Order, error) {
	args := m.Called(ctx, branchID, filter)
	return args.Get(0).([]orders.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status orders.OrderStatus, filter shared.Filter) ([]orders.Order, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]orders.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]orders.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]orders.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *orders.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, order *orders.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func createTestNotification(t *testing.T, userID uuid.UUID) *notification.Notification {
	t.Helper()
	n, err := notification.New(userID, notification.KindStockCritical, "Stock crítico", "Stock dropped to 2")
	require.NoError(t, err)
	return n
}

func createTestUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	email := fmt.Sprintf("user-%s@ordena.test", uuid.New())
	user, err := identity.NewUser("Test User", email, "secret123", role)
	require.NoError(t, err)
	return user
}

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(MockNotificationRepository)
	service := NewNotificationService(repo, zap.NewNop())

	t.Run("lists newest first with archived excluded by default", func(t *testing.T) {
		n := createTestNotification(t, userID)

		var captured shared.Filter
		repo.On("FindByUser", ctx, userID, false, mock.AnythingOfType("shared.Filter")).
			Run(func(args mock.Arguments) {
				captured = args.Get(3).(shared.Filter)
			}).
			Return([]notification.Notification{*n}, nil).Once()

		responses, err := service.List(ctx, userID, NotificationListFilter{})

		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.Equal(t, "stock_critical", responses[0].Kind)
		assert.Equal(t, "created_at", captured.OrderBy)
		assert.Equal(t, "desc", captured.OrderDir)
	})

	t.Run("archived included on request", func(t *testing.T) {
		repo.On("FindByUser", ctx, userID, true, mock.AnythingOfType("shared.Filter")).
			Return([]notification.Notification{}, nil).Once()

		responses, err := service.List(ctx, userID, NotificationListFilter{IncludeArchived: true})

		require.NoError(t, err)
		assert.Empty(t, responses)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("marks own notification read", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo, zap.NewNop())

		n := createTestNotification(t, userID)
		repo.On("FindByID", ctx, n.ID).Return(n, nil).Once()
		repo.On("Save", ctx, n).Return(nil).Once()

		response, err := service.MarkRead(ctx, userID, n.ID)

		require.NoError(t, err)
		assert.True(t, response.Read)
		assert.False(t, response.Archived)
	})

	t.Run("someone else's notification is not found", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo, zap.NewNop())

		n := createTestNotification(t, uuid.New())
		repo.On("FindByID", ctx, n.ID).Return(n, nil).Once()

		_, err := service.MarkRead(ctx, userID, n.ID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_Archive(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(MockNotificationRepository)
	service := NewNotificationService(repo, zap.NewNop())

	n := createTestNotification(t, userID)
	repo.On("FindByID", ctx, n.ID).Return(n, nil).Once()
	repo.On("Save", ctx, n).Return(nil).Once()

	response, err := service.Archive(ctx, userID, n.ID)

	require.NoError(t, err)
	assert.True(t, response.Archived)
	assert.True(t, response.Read)
}

func TestOrderStatusNotifier_Handle(t *testing.T) {
	ctx := context.Background()

	newFixture := func() (*MockOrderRepository, *MockUserRepository, *MockNotificationRepository, *OrderStatusNotifier) {
		orderRepo := new(MockOrderRepository)
		userRepo := new(MockUserRepository)
		notificationRepo := new(MockNotificationRepository)
		notifier := NewOrderStatusNotifier(orderRepo, userRepo, notificationRepo, zap.NewNop())
		return orderRepo, userRepo, notificationRepo, notifier
	}

	newTransferOrder := func(t *testing.T, createdBy uuid.UUID) *orders.Order {
		t.Helper()
		order, err := orders.NewTransferOrder("Restock", uuid.New(), uuid.New(), createdBy)
		require.NoError(t, err)
		order.ClearDomainEvents()
		return order
	}

	t.Run("notifies creator and branch staff, skipping the actor", func(t *testing.T) {
		orderRepo, userRepo, notificationRepo, notifier := newFixture()

		creator := createTestUser(t, identity.RoleWarehouse)
		branchUser := createTestUser(t, identity.RoleBranch)
		actor := createTestUser(t, identity.RoleBranch)

		order := newTransferOrder(t, creator.ID)
		event := orders.NewOrderStatusChangedEvent(order, orders.OrderStatusPending, orders.OrderStatusInTransit, actor.ID)

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil).Once()
		userRepo.On("FindByBranch", ctx, *order.BranchID).Return([]identity.User{*branchUser, *actor}, nil).Once()

		var stored []*notification.Notification
		notificationRepo.On("CreateBatch", ctx, mock.AnythingOfType("[]*notification.Notification")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).([]*notification.Notification)
			}).
			Return(nil).Once()

		err := notifier.Handle(ctx, event)

		require.NoError(t, err)
		require.Len(t, stored, 2)
		recipients := map[uuid.UUID]bool{stored[0].UserID: true, stored[1].UserID: true}
		assert.True(t, recipients[creator.ID])
		assert.True(t, recipients[branchUser.ID])
		assert.False(t, recipients[actor.ID])
		assert.Equal(t, notification.KindOrderStatus, stored[0].Kind)
		require.NotNil(t, stored[0].OrderID)
		assert.Equal(t, order.ID, *stored[0].OrderID)
	})

	t.Run("order lookup failure is swallowed", func(t *testing.T) {
		orderRepo, _, notificationRepo, notifier := newFixture()

		order := newTransferOrder(t, uuid.New())
		event := orders.NewOrderStatusChangedEvent(order, orders.OrderStatusPending, orders.OrderStatusRejected, uuid.New())

		orderRepo.On("FindByID", ctx, order.ID).Return(nil, shared.ErrNotFound).Once()

		err := notifier.Handle(ctx, event)

		require.NoError(t, err)
		notificationRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("actor-only audience stores nothing", func(t *testing.T) {
		orderRepo, userRepo, notificationRepo, notifier := newFixture()

		creator := createTestUser(t, identity.RoleWarehouse)
		order := newTransferOrder(t, creator.ID)
		event := orders.NewOrderStatusChangedEvent(order, orders.OrderStatusPending, orders.OrderStatusInTransit, creator.ID)

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil).Once()
		userRepo.On("FindByBranch", ctx, *order.BranchID).Return([]identity.User{*creator}, nil).Once()

		err := notifier.Handle(ctx, event)

		require.NoError(t, err)
		notificationRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})
}
