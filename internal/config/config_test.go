package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "auto", cfg.Theme)
	assert.Empty(t, cfg.Catalog.Path)
	assert.False(t, cfg.Catalog.Watch)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce())
	assert.Equal(t, 2*time.Second, cfg.ProcessingDelay())
	assert.False(t, cfg.Verbose)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{bad yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Theme = "dark"
	cfg.Catalog.Path = "/tmp/catalog.yaml"
	cfg.Catalog.Watch = true
	cfg.Search.Debounce = "150ms"
	cfg.Payment.ProcessingDelay = "50ms"
	cfg.Verbose = true

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, 150*time.Millisecond, loaded.SearchDebounce())
	assert.Equal(t, 50*time.Millisecond, loaded.ProcessingDelay())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: light\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce(), "unset debounce keeps the default")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_THEME", "dark")
	t.Setenv("STOREFRONT_CATALOG", "/srv/catalog.yaml")
	t.Setenv("STOREFRONT_VERBOSE", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "/srv/catalog.yaml", cfg.Catalog.Path)
	assert.True(t, cfg.Verbose)
}

func TestDurationFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.Debounce = "not a duration"
	cfg.Payment.ProcessingDelay = "-5s"

	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce())
	assert.Equal(t, 2*time.Second, cfg.ProcessingDelay())
}
