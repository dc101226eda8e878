package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forcelab.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DataDir)
}

func TestLoadFull(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(writeConfig(t, `
log_level = "debug"
data_dir = "`+dir+`"
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, dir, cfg.DataDir)
}

func TestLoadBadLevel(t *testing.T) {
	_, err := Load(writeConfig(t, `log_level = "loud"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoadMissingDataDir(t *testing.T) {
	_, err := Load(writeConfig(t, `data_dir = "/definitely/not/here"`))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
