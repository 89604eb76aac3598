package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/identity"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// RefreshRequest represents a token refresh attempt
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshResponse represents a refreshed token pair
type RefreshResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// ChangePasswordRequest represents a password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required,min=8,max=72"`
	Role        string     `json:"role" binding:"required,oneof=admin warehouse branch"`
	WarehouseID *uuid.UUID `json:"warehouse_id"`
	BranchID    *uuid.UUID `json:"branch_id"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Active      bool       `json:"active"`
	WarehouseID *uuid.UUID `json:"warehouse_id,omitempty"`
	BranchID    *uuid.UUID `json:"branch_id,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UserListFilter represents filters for listing users
type UserListFilter struct {
	Role     string `form:"role" binding:"omitempty,oneof=admin warehouse branch"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToUserResponse converts a user entity to a response DTO
func ToUserResponse(user *identity.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role.String(),
		Active:      user.Active,
		WarehouseID: user.WarehouseID,
		BranchID:    user.BranchID,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// ToUserResponses converts a slice of users to response DTOs
func ToUserResponses(users []identity.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *ToUserResponse(&users[i])
	}
	return responses
}
