package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "curio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeFile(t, `
server:
  addr: ":9999"
backend:
  url: https://project.example.dev
  key: anon-key
redis:
  addr: localhost:6379
cookie:
  secure: true
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "https://project.example.dev", cfg.Backend.URL)
	assert.Equal(t, "anon-key", cfg.Backend.Key)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Cookie.Secure)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CURIO_BACKEND_URL", "https://project.example.dev")
	t.Setenv("CURIO_BACKEND_KEY", "anon-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/", cfg.Cookie.Path)
	assert.Equal(t, "lax", cfg.Cookie.SameSite)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, `
backend:
  url: https://file.example.dev
  key: file-key
`)
	t.Setenv("CURIO_BACKEND_URL", "https://env.example.dev")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.dev", cfg.Backend.URL)
	assert.Equal(t, "file-key", cfg.Backend.Key)
}

func TestLoad_MissingBackendIsFatal(t *testing.T) {
	t.Setenv("CURIO_BACKEND_URL", "")
	t.Setenv("CURIO_BACKEND_KEY", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend url is required")

	t.Setenv("CURIO_BACKEND_URL", "https://project.example.dev")
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend key is required")
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeFile(t, "server: [not: a: mapping")

	_, err := Load(path)
	assert.Error(t, err)
}
