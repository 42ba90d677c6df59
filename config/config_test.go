package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PLANTCARE_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DriverMySQL, cfg.DB.Driver)
	assert.Equal(t, CatalogFile, cfg.Catalog.Source)
	assert.Equal(t, "root:root@tcp(127.0.0.1:3306)/plantcare?charset=utf8mb4", cfg.DSN())
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PLANTCARE_CONFIG", "")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("CATALOG_SOURCE", "url")
	t.Setenv("CATALOG_URL", "http://example.test/plants.json")
	t.Setenv("CATALOG_CACHE_TTL", "1m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DSN())
	assert.Equal(t, time.Minute, cfg.Catalog.CacheTTL)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plantcare.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 7000
debug: true
database:
  driver: sqlite
  path: /tmp/plants.db
catalog:
  source: db
  cache_ttl: 5s
`), 0o600))

	t.Setenv("PLANTCARE_CONFIG", path)
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/tmp/plants.db", cfg.DB.Path)
	assert.Equal(t, CatalogDB, cfg.Catalog.Source)
	assert.Equal(t, 5*time.Second, cfg.Catalog.CacheTTL)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "PORT", "eighty"},
		{"bad driver", "DB_DRIVER", "oracle"},
		{"bad source", "CATALOG_SOURCE", "ftp"},
		{"bad duration", "CATALOG_CACHE_TTL", "soon"},
		{"url without address", "CATALOG_SOURCE", "url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PLANTCARE_CONFIG", "")
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
