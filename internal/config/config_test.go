package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Debug)
	assert.Equal(t, 100, cfg.MaxIncludeDepth)
	assert.Equal(t, "", cfg.BaseDirectory)
	assert.False(t, cfg.Verbose)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".shrup.yaml")
	content := `debug: true
max_include_depth: 25
base_directory: /opt/scripts
verbose: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 25, cfg.MaxIncludeDepth)
	assert.Equal(t, "/opt/scripts", cfg.BaseDirectory)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".shrup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: true\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 100, cfg.MaxIncludeDepth)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".shrup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: [not\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfigRejectsInvalidDepth(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".shrup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_include_depth: 0\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_include_depth must be positive")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIncludeDepth = -5
	require.Error(t, cfg.Validate())

	cfg.MaxIncludeDepth = 1
	assert.NoError(t, cfg.Validate())
}
