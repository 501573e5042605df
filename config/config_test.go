package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	config, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "data/skynet.db", config.DatabaseDbPath)
	assert.Equal(t, 480, config.SessionTTLMinutes)
	assert.Equal(t, "http://localhost:3001", config.NotificationBaseURL)
	assert.True(t, config.IsDevelopment())
}

func TestInitConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SKYNET_PORT", "9090")
	t.Setenv("SKYNET_ENVIRONMENT", "production")
	t.Setenv("SKYNET_DATABASE_CACHE_ADDRESS", "cache.internal")
	t.Setenv("SKYNET_DATABASE_CACHE_PORT", "6380")

	config, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Port)
	assert.False(t, config.IsDevelopment())
	assert.Equal(t, "cache.internal:6380", config.CacheAddress())
}

func TestConfig_CacheAddress(t *testing.T) {
	config := Config{DatabaseCacheAddress: "localhost", DatabaseCachePort: 6379}
	assert.Equal(t, "localhost:6379", config.CacheAddress())
}
