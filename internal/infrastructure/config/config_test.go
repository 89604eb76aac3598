package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "ordena-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "ordena", cfg.Database.DBName)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, 10, cfg.JWT.MaxRefreshCount)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	assert.NotEmpty(t, cfg.HTTP.CORSAllowMethods)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.App.Port = "9090"
	cfg.Database.DBName = "inventory"
	cfg.JWT.MaxRefreshCount = 3
	applyDefaults(cfg)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "inventory", cfg.Database.DBName)
	assert.Equal(t, 3, cfg.JWT.MaxRefreshCount)
}

func TestValidate(t *testing.T) {
	t.Run("valid development config", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		require.NoError(t, cfg.validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Database.MaxOpenConns = 5
		cfg.Database.MaxIdleConns = 10
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.JWT.Secret = "short"
		assert.Error(t, cfg.validate())
	})

	t.Run("production rejects wildcard cors origin", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})

	t.Run("sampling ratio bounds", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Telemetry.SamplingRatio = 1.5
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "ordena",
		Password: "p@ss/word",
		DBName:   "ordena",
		SSLMode:  "require",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word")
}
