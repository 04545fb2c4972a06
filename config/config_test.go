package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv removes all NUTRILENS_ variables so tests see only what they set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NUTRILENS_SERVER_PORT",
		"NUTRILENS_SERVER_ENVIRONMENT",
		"NUTRILENS_OPENFOODFACTS_BASE_URL",
		"NUTRILENS_OPENFOODFACTS_ENABLED",
		"NUTRILENS_CACHE_TTL",
		"NUTRILENS_STORE_PATH",
	} {
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://world.openfoodfacts.org", cfg.OpenFoodFacts.BaseURL)
	assert.True(t, cfg.OpenFoodFacts.Enabled)
	assert.Equal(t, 720*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "products.db", cfg.Store.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NUTRILENS_SERVER_PORT", "9090")
	t.Setenv("NUTRILENS_SERVER_ENVIRONMENT", "production")
	t.Setenv("NUTRILENS_STORE_PATH", "/var/lib/nutrilens/products.db")
	t.Setenv("NUTRILENS_CACHE_TTL", "24h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, "/var/lib/nutrilens/products.db", cfg.Store.Path)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
}

func TestLoadDisabledLookup(t *testing.T) {
	clearEnv(t)
	t.Setenv("NUTRILENS_OPENFOODFACTS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.OpenFoodFacts.Enabled)
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Server:        ServerConfig{Port: "8080"},
		OpenFoodFacts: OpenFoodFactsConfig{BaseURL: "https://world.openfoodfacts.org", Enabled: true},
		Store:         StoreConfig{Path: "products.db"},
	}
	assert.NoError(t, validate(valid))

	noPort := *valid
	noPort.Server.Port = ""
	assert.Error(t, validate(&noPort))

	noStore := *valid
	noStore.Store.Path = ""
	assert.Error(t, validate(&noStore))

	noBaseURL := *valid
	noBaseURL.OpenFoodFacts.BaseURL = ""
	assert.Error(t, validate(&noBaseURL))

	// a missing base URL is fine when lookup is disabled
	noBaseURL.OpenFoodFacts.Enabled = false
	assert.NoError(t, validate(&noBaseURL))
}
