package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresServiceURLs(t *testing.T) {
	t.Setenv("RECIPE_URL", "")
	t.Setenv("PANTRY_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RECIPE_URL", "http://recipes:8080")
	t.Setenv("PANTRY_URL", "http://pantry:8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 256, cfg.Matching.CacheSize)
	assert.Equal(t, "ingredient_weights.json", cfg.Matching.WeightsPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RECIPE_URL", "http://recipes:8080")
	t.Setenv("PANTRY_URL", "http://pantry:8080")
	t.Setenv("PORT", "9000")
	t.Setenv("MATCH_CACHE_SIZE", "32")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 32, cfg.Matching.CacheSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}
