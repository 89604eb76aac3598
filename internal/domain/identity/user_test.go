package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser("Ana Pérez", "Ana@Example.com", "s3cret-pass", RoleBranch)
		require.NoError(t, err)

		assert.Equal(t, "ana@example.com", user.Email)
		assert.True(t, user.Active)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.VerifyPassword("s3cret-pass"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("Ana", "not-an-email", "s3cret-pass", RoleAdmin)
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("Ana", "ana@example.com", "short", RoleAdmin)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("Ana", "ana@example.com", "s3cret-pass", Role("intern"))
		assert.Error(t, err)
	})
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("Ana", "ana@example.com", "s3cret-pass", RoleWarehouse)
	require.NoError(t, err)

	require.Error(t, user.ChangePassword("wrong", "new-password-1"))
	require.NoError(t, user.ChangePassword("s3cret-pass", "new-password-1"))
	assert.True(t, user.VerifyPassword("new-password-1"))
}

func TestUser_HomeSite(t *testing.T) {
	user, err := NewUser("Ana", "ana@example.com", "s3cret-pass", RoleWarehouse)
	require.NoError(t, err)

	warehouseID := uuid.New()
	require.NoError(t, user.AssignWarehouse(warehouseID))
	assert.Equal(t, warehouseID, *user.WarehouseID)

	branchID := uuid.New()
	require.NoError(t, user.AssignBranch(branchID))
	assert.Equal(t, branchID, *user.BranchID)
	assert.Nil(t, user.WarehouseID)
}

func TestUser_Deactivate(t *testing.T) {
	user, err := NewUser("Ana", "ana@example.com", "s3cret-pass", RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())
	assert.False(t, user.CanLogin())
	assert.Error(t, user.Deactivate())
}
