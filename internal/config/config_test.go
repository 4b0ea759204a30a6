package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("CATALOGCTL_CONFIG", filepath.Join(t.TempDir(), "missing.yml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Services.CatalogBase)
	assert.Equal(t, "http://localhost:8081", cfg.Services.UserBase)
	assert.Equal(t, 10, cfg.Defaults.PageSize)
	assert.Equal(t, "id", cfg.Defaults.SortBy)
	assert.Equal(t, "DESC", cfg.Defaults.SortOrder)
	assert.False(t, cfg.Debug.Enabled)
	assert.NotEmpty(t, cfg.Defaults.CredentialsPath)
	assert.NotEmpty(t, cfg.Debug.LogPath)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(`
services:
  catalog_base: https://books.example.com
  user_base: https://users.example.com
defaults:
  page_size: 25
debug:
  enabled: true
  log_path: /tmp/catalogctl.log
`)), 0644))
	t.Setenv("CATALOGCTL_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://books.example.com", cfg.Services.CatalogBase)
	assert.Equal(t, "https://users.example.com", cfg.Services.UserBase)
	assert.Equal(t, 25, cfg.Defaults.PageSize)
	// Untouched keys keep their defaults.
	assert.Equal(t, "id", cfg.Defaults.SortBy)
	assert.True(t, cfg.Debug.Enabled)
	assert.Equal(t, "/tmp/catalogctl.log", cfg.Debug.LogPath)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("services: [not: a: map"), 0644))
	t.Setenv("CATALOGCTL_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config", "x"), ExpandHome("~/.config/x"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "relative", ExpandHome("relative"))
}
