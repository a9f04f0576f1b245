package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.yaml")
	content := `
data_dir: ./data
stores_dir: ./stores
output_dir: ./dist
version: 2026.8.1
base_url: https://ofdb.example
asset_url_mode: absolute
skip_csv: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "./stores", cfg.StoresDir)
	assert.Equal(t, "./dist", cfg.OutputDir)
	assert.Equal(t, "2026.8.1", cfg.Version)
	assert.Equal(t, "https://ofdb.example", cfg.BaseURL)
	assert.Equal(t, "absolute", cfg.AssetURLMode)
	assert.True(t, cfg.SkipCSV)
	assert.False(t, cfg.SkipJSON)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unclosed"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
