package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/identity"
	"github.com/ordena/backend/internal/domain/location"
	"github.com/ordena/backend/internal/domain/shared"
	"github.com/ordena/backend/internal/infrastructure/auth"
)

// UserService handles user administration. Warehouse staff get a home
// warehouse, branch staff a home branch, admins neither.
type UserService struct {
	userRepo      identity.UserRepository
	warehouseRepo location.WarehouseRepository
	branchRepo    location.BranchRepository
	blacklist     auth.TokenBlacklist
	jwtService    *auth.JWTService
	logger        *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo identity.UserRepository,
	warehouseRepo location.WarehouseRepository,
	branchRepo location.BranchRepository,
	blacklist auth.TokenBlacklist,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:      userRepo,
		warehouseRepo: warehouseRepo,
		branchRepo:    branchRepo,
		blacklist:     blacklist,
		jwtService:    jwtService,
		logger:        logger,
	}
}

// Create creates a new user and assigns their home site
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	role := identity.Role(req.Role)
	if err := s.validateSiteForRole(role, req.WarehouseID, req.BranchID); err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.Name, email, req.Password, role)
	if err != nil {
		return nil, err
	}

	switch {
	case req.WarehouseID != nil:
		if _, err := s.warehouseRepo.FindByID(ctx, *req.WarehouseID); err != nil {
			return nil, err
		}
		if err := user.AssignWarehouse(*req.WarehouseID); err != nil {
			return nil, err
		}
	case req.BranchID != nil:
		if _, err := s.branchRepo.FindByID(ctx, *req.BranchID); err != nil {
			return nil, err
		}
		if err := user.AssignBranch(*req.BranchID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()),
	)
	return ToUserResponse(user), nil
}

// GetByID returns a user by ID
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List returns users matching the filter
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	var (
		users []identity.User
		err   error
	)
	if filter.Role != "" {
		users, err = s.userRepo.FindByRole(ctx, identity.Role(filter.Role))
	} else {
		users, err = s.userRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponses(users), total, nil
}

// AssignWarehouse moves a user to a warehouse
func (s *UserService) AssignWarehouse(ctx context.Context, userID, warehouseID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == identity.RoleBranch {
		return nil, shared.NewDomainError("INVALID_SITE", "Branch staff cannot be assigned a warehouse")
	}
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		return nil, err
	}
	if err := user.AssignWarehouse(warehouseID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// AssignBranch moves a user to a branch
func (s *UserService) AssignBranch(ctx context.Context, userID, branchID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == identity.RoleWarehouse {
		return nil, shared.NewDomainError("INVALID_SITE", "Warehouse staff cannot be assigned a branch")
	}
	if _, err := s.branchRepo.FindByID(ctx, branchID); err != nil {
		return nil, err
	}
	if err := user.AssignBranch(branchID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Deactivate disables a user and revokes their outstanding tokens
func (s *UserService) Deactivate(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), ttl); err != nil {
		s.logger.Error("failed to revoke tokens for deactivated user",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("user deactivated", zap.String("user_id", user.ID.String()))
	return ToUserResponse(user), nil
}

// validateSiteForRole checks role and home-site consistency
func (s *UserService) validateSiteForRole(role identity.Role, warehouseID, branchID *uuid.UUID) error {
	if warehouseID != nil && branchID != nil {
		return shared.NewDomainError("INVALID_SITE", "A user belongs to at most one site")
	}
	switch role {
	case identity.RoleWarehouse:
		if warehouseID == nil {
			return shared.NewDomainError("INVALID_SITE", "Warehouse staff need a home warehouse")
		}
	case identity.RoleBranch:
		if branchID == nil {
			return shared.NewDomainError("INVALID_SITE", "Branch staff need a home branch")
		}
	case identity.RoleAdmin:
		if warehouseID != nil || branchID != nil {
			return shared.NewDomainError("INVALID_SITE", "Admins are not tied to a site")
		}
	}
	return nil
}
