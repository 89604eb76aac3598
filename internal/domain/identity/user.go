package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ordena/backend/internal/domain/shared"
)

// Role represents the access role of a user
type Role string

const (
	// RoleAdmin has full access across all sites
	RoleAdmin Role = "admin"
	// RoleWarehouse operates a central warehouse
	RoleWarehouse Role = "warehouse"
	// RoleBranch operates a retail branch
	RoleBranch Role = "branch"
)

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// IsValid returns true if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleWarehouse, RoleBranch:
		return true
	}
	return false
}

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a system user.
// A user belongs to at most one home site: a warehouse for warehouse staff,
// a branch for branch staff, neither for admins.
type User struct {
	shared.BaseAggregateRoot
	Name         string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	Role         Role       `gorm:"type:varchar(20);not null"`
	Active       bool       `gorm:"not null;default:true"`
	WarehouseID  *uuid.UUID `gorm:"type:uuid;index"`
	BranchID     *uuid.UUID `gorm:"type:uuid;index"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user
func NewUser(name, email, password string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "User name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
		Active:            true,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword verifies the old password and sets a new one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword sets a new password without verifying the old one
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// AssignWarehouse sets the home warehouse and clears any home branch
func (u *User) AssignWarehouse(warehouseID uuid.UUID) error {
	if warehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	u.WarehouseID = &warehouseID
	u.BranchID = nil
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// AssignBranch sets the home branch and clears any home warehouse
func (u *User) AssignBranch(branchID uuid.UUID) error {
	if branchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}

	u.BranchID = &branchID
	u.WarehouseID = nil
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RecordLogin stores the login timestamp
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}

// Deactivate disables the account
func (u *User) Deactivate() error {
	if !u.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already inactive")
	}

	u.Active = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// CanLogin returns true if the user may authenticate
func (u *User) CanLogin() bool {
	return u.Active
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
