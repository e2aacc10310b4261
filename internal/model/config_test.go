package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	assert.Equal(t, "default", cfg.Display.Theme)
	assert.Empty(t, cfg.Identity.APIKey)
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api:
  base_url: https://tracker.example.com/api
identity:
  base_url: https://identitytoolkit.example.com
  api_key: app-key-123
  project_id: tracker-prod
display:
  theme: dark
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://tracker.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "https://identitytoolkit.example.com", cfg.Identity.BaseURL)
	assert.Equal(t, "app-key-123", cfg.Identity.APIKey)
	assert.Equal(t, "tracker-prod", cfg.Identity.ProjectID)
	assert.Equal(t, "dark", cfg.Display.Theme)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  theme: dark\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	assert.Equal(t, "dark", cfg.Display.Theme)
}

func TestSaveConfigCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	require.NoError(t, SaveConfig(path, &AppConfig{
		API: APIConfig{BaseURL: "https://tracker.example.com/api"},
	}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestTotalEstimateRounding(t *testing.T) {
	assignments := []Assignment{
		{Estimate: 1.25},
		{Estimate: 2.25},
	}
	assert.Equal(t, 3.5, TotalEstimate(assignments))
	assert.Equal(t, 0.0, TotalEstimate(nil))
}
