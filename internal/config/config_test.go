package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[catalog]
base_url = "https://papers.example.com/api"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://papers.example.com/api", cfg.Catalog.BaseURL)
	// Untouched sections keep their defaults.
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10, cfg.Catalog.PageSize)
	assert.True(t, cfg.Catalog.Fallback)
	assert.Equal(t, "24h", cfg.Batch.CompletionWindow)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9090"

[catalog]
base_url = "http://localhost:4000/api"
timeout_seconds = 3
page_size = 25
fallback = false

[batch]
model = "glm-4"
chunk_size = 1000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Catalog.TimeoutSeconds)
	assert.Equal(t, 25, cfg.Catalog.PageSize)
	assert.False(t, cfg.Catalog.Fallback)
	assert.Equal(t, "glm-4", cfg.Batch.Model)
	assert.Equal(t, 1000, cfg.Batch.ChunkSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeConfig(t, `[catalog`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7001")
	t.Setenv("CATALOG_BASE_URL", "http://env.example.com/api")
	t.Setenv("CATALOG_FALLBACK", "false")
	t.Setenv("BATCH_MODEL", "glm-4-plus")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, ":7001", cfg.Server.Addr)
	assert.Equal(t, "http://env.example.com/api", cfg.Catalog.BaseURL)
	assert.False(t, cfg.Catalog.Fallback)
	assert.Equal(t, "glm-4-plus", cfg.Batch.Model)
}

func TestApplyEnvIgnoresBadBool(t *testing.T) {
	t.Setenv("CATALOG_FALLBACK", "sometimes")

	cfg := Default()
	cfg.ApplyEnv()
	assert.True(t, cfg.Catalog.Fallback)
}
