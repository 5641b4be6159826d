package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "MASTERMIND_DB", "PORT", "SESSION_SECRET", "CLIENT_ORIGIN", "MASTERMIND_TEST_MODE", "MASTERMIND_SEED", "DAILY_SALT"} {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	c := Load()
	assert.Equal(t, zerolog.InfoLevel, c.LogLevel)
	assert.Equal(t, "./data/mastermind.db", c.DBPath)
	assert.Equal(t, "5176", c.Port)
	assert.Equal(t, "dev_secret_change_me", c.SessionSecret)
	assert.Equal(t, "http://localhost:5173", c.ClientOrigin)
	assert.False(t, c.TestMode)
	assert.Empty(t, c.Seed)
	assert.Equal(t, "local_dev_salt", c.DailySalt)
}

func TestOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9000")
	t.Setenv("MASTERMIND_TEST_MODE", "true")
	t.Setenv("MASTERMIND_SEED", "daily")

	c := Load()
	assert.Equal(t, zerolog.DebugLevel, c.LogLevel)
	assert.Equal(t, "9000", c.Port)
	assert.True(t, c.TestMode)
	assert.Equal(t, "daily", c.Seed)
}

func TestBadValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("MASTERMIND_TEST_MODE", "maybe")

	c := Load()
	assert.Equal(t, zerolog.InfoLevel, c.LogLevel)
	assert.False(t, c.TestMode)
}
