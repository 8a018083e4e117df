package config

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) Getenv {
	return func(key string) string { return vars[key] }
}

func TestLoadRequiresRootPath(t *testing.T) {
	_, err := LoadFrom(env(nil))
	assert.ErrorContains(t, err, "EP_ROOT_PATH")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{"EP_ROOT_PATH": "/srv/party"}))
	require.NoError(t, err)
	assert.Equal(t, "/srv/party", cfg.RootPath)
	assert.Equal(t, filepath.Join("/srv/party", "diagnostics.json"), cfg.DiagnosticsPath)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, "http://127.0.0.1:8787", cfg.WebServerURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{
		"EP_ROOT_PATH":        "/srv/party",
		"EP_DIAGNOSTICS_PATH": "/tmp/diag.yaml",
		"EP_LISTEN_ADDR":      "0.0.0.0:9000",
		"EP_LOG_LEVEL":        "debug",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/diag.yaml", cfg.DiagnosticsPath)
	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddr)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.WebServerURL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadInvalidLogLevelFallsBack(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{"EP_ROOT_PATH": "/srv", "EP_LOG_LEVEL": "loud"}))
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestClientURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:8787", ClientURL(env(nil)))
	assert.Equal(t, "http://127.0.0.1:9999", ClientURL(env(map[string]string{"EP_LISTEN_ADDR": ":9999"})))
	assert.Equal(t, "http://box:1", ClientURL(env(map[string]string{"EP_WEBSERVER_URL": "http://box:1"})))
}
