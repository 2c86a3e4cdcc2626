package config_test

import (
	"testing"
	"time"

	"dailydiet/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("DATABASE_CLIENT", "sqlite")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("PORT", "3001")
	t.Setenv("TOKEN_SECRET", "secret")
	t.Setenv("TOKEN_EXPIRATION", "10m")
	t.Setenv("RABBITMQ_URL", "")
}

func TestLoad(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.AppEnv)
	assert.Equal(t, "sqlite", cfg.DatabaseClient)
	assert.Equal(t, "file:test.db", cfg.DatabaseURL)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "secret", cfg.TokenSecret)
	assert.Equal(t, 10*time.Minute, cfg.TokenExpiration)
	assert.Equal(t, ":3001", cfg.Addr())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown environment", "APP_ENV", "prod"},
		{"unknown database client", "DATABASE_CLIENT", "mysql"},
		{"empty database url", "DATABASE_URL", ""},
		{"empty token secret", "TOKEN_SECRET", ""},
		{"empty token expiration", "TOKEN_EXPIRATION", ""},
		{"malformed token expiration", "TOKEN_EXPIRATION", "tomorrow"},
		{"negative token expiration", "TOKEN_EXPIRATION", "-5m"},
		{"port out of range", "PORT", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValidEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	setValidEnv(t)
	t.Setenv("APP_ENV", "")
	t.Setenv("DATABASE_CLIENT", "")
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "sqlite", cfg.DatabaseClient)
	assert.Equal(t, 3001, cfg.Port)
}
