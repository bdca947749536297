package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, 30*time.Second, cfg.AutosaveInterval)
}

func TestYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "resume.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "8080"
log_level: debug
storage:
  driver: memory
  quota_bytes: 1024
watch_templates: true
autosave_interval: 10s
`), 0o644))
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_QUOTA_BYTES", "2048")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, int64(2048), cfg.Storage.QuotaBytes)
	assert.True(t, cfg.WatchTemplates)
	assert.Equal(t, 10*time.Second, cfg.AutosaveInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EXPORT_DIR=out\nCHROME_PATH=/usr/bin/chromium\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("EXPORT_DIR")
		os.Unsetenv("CHROME_PATH")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.ExportDir)
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromePath)
}

func TestValidation(t *testing.T) {
	chdir(t, t.TempDir())
	cases := map[string]map[string]string{
		"unknown driver":   {"STORAGE_DRIVER": "mongo"},
		"postgres no url":  {"STORAGE_DRIVER": "postgres"},
		"bad log level":    {"LOG_LEVEL": "loud"},
		"non numeric port": {"PORT": "http"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "warn"
	assert.Equal(t, "WARN", cfg.SlogLevel().String())
}
