package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "todoapi.db", cfg.DatabaseURL)
	assert.Equal(t, time.Duration(0), cfg.SessionTTL)
	assert.Equal(t, time.Hour, cfg.SessionSweepEvery)
	assert.Equal(t, 8, cfg.PasswordMinLength)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DATABASE_URL", "data/todo.db")
	t.Setenv("SESSION_TTL_HOURS", "24")
	t.Setenv("PASSWORD_MIN_LENGTH", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "data/todo.db", cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 12, cfg.PasswordMinLength)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "-1")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("SESSION_TTL_HOURS", "0")
	t.Setenv("PASSWORD_MIN_LENGTH", "0")
	_, err = Load()
	require.Error(t, err)
}
