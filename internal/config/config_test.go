package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFallback(t *testing.T) {
	t.Setenv("TOURLAB_TEST_KEY", "")
	assert.Equal(t, "fallback", Get("TOURLAB_TEST_KEY", "fallback"))

	t.Setenv("TOURLAB_TEST_KEY", "set")
	assert.Equal(t, "set", Get("TOURLAB_TEST_KEY", "fallback"))
}

func TestLoadLayersYAMLUnderEnv(t *testing.T) {
	chdirForTest(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "tourlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
db_driver: sqlite
cache_backend: redis
redis_addr: "cache:6379"
cache_ttl: 5m
`), 0o644))

	t.Setenv("TOURLAB_CONFIG", path)
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "redis", cfg.CacheBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "data/edinburgh.csv", cfg.LocationsCSV)
}

func TestLoadRejectsUnknownYAMLField(t *testing.T) {
	chdirForTest(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colour: blue\n"), 0o644))
	t.Setenv("TOURLAB_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.DBDriver = "pgx"
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")

	cfg = Default()
	cfg.CacheBackend = "memcached"
	assert.ErrorContains(t, cfg.Validate(), "CACHE_BACKEND")

	cfg = Default()
	cfg.CacheSize = 0
	assert.ErrorContains(t, cfg.Validate(), "CACHE_SIZE")
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains:
// it changes the working directory and restores it when the test ends.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
