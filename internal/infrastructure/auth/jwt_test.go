package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordena/backend/internal/infrastructure/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "ordena-test",
		MaxRefreshCount:        3,
	}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := NewJWTService(testJWTConfig())
	userID := uuid.New()
	warehouseID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID:      userID,
		Email:       "ana@ordena.test",
		Role:        "warehouse",
		WarehouseID: &warehouseID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	t.Run("access token carries identity", func(t *testing.T) {
		claims, err := service.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "ana@ordena.test", claims.Email)
		assert.Equal(t, "warehouse", claims.Role)

		parsed, err := claims.GetWarehouseUUID()
		require.NoError(t, err)
		require.NotNil(t, parsed)
		assert.Equal(t, warehouseID, *parsed)

		branch, err := claims.GetBranchUUID()
		require.NoError(t, err)
		assert.Nil(t, branch)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := service.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := service.ValidateRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestJWTService_Expiration(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenExpiration = -time.Minute
	service := NewJWTService(cfg)

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "ana@ordena.test",
		Role:   "admin",
	})
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	service := NewJWTService(testJWTConfig())
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "ana@ordena.test",
		Role:   "branch",
	})
	require.NoError(t, err)

	t.Run("refresh issues a fresh pair with current identity", func(t *testing.T) {
		branchID := uuid.New()
		refreshed, err := service.RefreshTokenPair(pair.RefreshToken, RefreshTokenInput{
			Email:    "ana@ordena.test",
			Role:     "branch",
			BranchID: &branchID,
		})
		require.NoError(t, err)

		claims, err := service.ValidateAccessToken(refreshed.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, branchID.String(), claims.BranchID)

		refreshClaims, err := service.ValidateRefreshToken(refreshed.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, refreshClaims.RefreshCount)
	})

	t.Run("refresh count is capped", func(t *testing.T) {
		token := pair.RefreshToken
		input := RefreshTokenInput{Email: "ana@ordena.test", Role: "branch"}

		for i := 0; i < 3; i++ {
			refreshed, err := service.RefreshTokenPair(token, input)
			require.NoError(t, err)
			token = refreshed.RefreshToken
		}

		_, err := service.RefreshTokenPair(token, input)
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	blacklist := NewInMemoryTokenBlacklist()

	t.Run("revoked JTI is reported until its TTL passes", func(t *testing.T) {
		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Minute))

		revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = blacklist.IsBlacklisted(ctx, "jti-unknown")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("expired entries fall out", func(t *testing.T) {
		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-2", -time.Second))

		revoked, err := blacklist.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("user-wide invalidation rejects older tokens only", func(t *testing.T) {
		userID := uuid.New().String()
		issuedBefore := time.Now().Add(-time.Minute)

		require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, userID, time.Hour))

		invalid, err := blacklist.IsUserTokenInvalidated(ctx, userID, issuedBefore)
		require.NoError(t, err)
		assert.True(t, invalid)

		invalid, err = blacklist.IsUserTokenInvalidated(ctx, userID, time.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, invalid)
	})
}
