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

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "referral-ledger", cfg.MongoDB.Database)
	assert.Equal(t, 5*time.Second, cfg.MongoDB.Timeout)
	assert.False(t, cfg.MongoDB.UseMemory)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_SLICE", "a,b,c")

	assert.Equal(t, "value", GetEnv("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("TEST_UNSET", "fallback"))
	assert.Equal(t, 42, GetEnvAsInt("TEST_INT", 0))
	assert.Equal(t, 7, GetEnvAsInt("TEST_UNSET", 7))
	assert.True(t, GetEnvAsBool("TEST_BOOL", false))
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvAsSlice("TEST_SLICE", ",", nil))
}

func TestGetEnvHelpersIgnoreMalformedValues(t *testing.T) {
	t.Setenv("TEST_INT", "not-a-number")
	t.Setenv("TEST_BOOL", "maybe")

	assert.Equal(t, 3, GetEnvAsInt("TEST_INT", 3))
	assert.False(t, GetEnvAsBool("TEST_BOOL", false))
}
