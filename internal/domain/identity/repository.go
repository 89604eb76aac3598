package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]User, error)
	FindByBranch(ctx context.Context, branchID uuid.UUID) ([]User, error)
	FindByRole(ctx context.Context, role Role) ([]User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)
	Save(ctx context.Context, user *User) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
