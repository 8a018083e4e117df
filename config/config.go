// Package config loads daemon settings from EP_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultListenAddr = "127.0.0.1:8787"
	diagnosticsFile   = "diagnostics.json"
)

type Config struct {
	// RootPath holds the images/ and sounds/ asset directories.
	RootPath string
	// DiagnosticsPath is the snapshot file the watcher follows.
	DiagnosticsPath string
	ListenAddr      string
	WebServerURL    string
	LogLevel        slog.Level
}

// Getenv is swapped in tests.
type Getenv func(string) string

func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

func LoadFrom(getenv Getenv) (*Config, error) {
	rootPath := getenv("EP_ROOT_PATH")
	if rootPath == "" {
		return nil, fmt.Errorf("EP_ROOT_PATH environment variable is required")
	}

	cfg := &Config{
		RootPath:        rootPath,
		DiagnosticsPath: getenv("EP_DIAGNOSTICS_PATH"),
		ListenAddr:      getenv("EP_LISTEN_ADDR"),
		WebServerURL:    getenv("EP_WEBSERVER_URL"),
		LogLevel:        slog.LevelInfo,
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.DiagnosticsPath == "" {
		cfg.DiagnosticsPath = filepath.Join(rootPath, diagnosticsFile)
	}
	if cfg.WebServerURL == "" {
		cfg.WebServerURL = WebServerURL(cfg.ListenAddr)
	}

	if level := getenv("EP_LOG_LEVEL"); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			slog.Warn("unable to parse EP_LOG_LEVEL, using default", "EP_LOG_LEVEL", level, "default", slog.LevelInfo)
			cfg.LogLevel = slog.LevelInfo
		}
	}

	return cfg, nil
}

// ClientURL resolves the daemon URL without requiring an assets root, for
// CLI commands that only talk to a running daemon.
func ClientURL(getenv Getenv) string {
	if u := getenv("EP_WEBSERVER_URL"); u != "" {
		return u
	}
	addr := getenv("EP_LISTEN_ADDR")
	if addr == "" {
		addr = DefaultListenAddr
	}
	return WebServerURL(addr)
}

// WebServerURL turns a listen address into a loopback URL.
func WebServerURL(listenAddr string) string {
	if strings.HasPrefix(listenAddr, ":") {
		listenAddr = "127.0.0.1" + listenAddr
	}
	listenAddr = strings.Replace(listenAddr, "0.0.0.0", "127.0.0.1", 1)
	return "http://" + listenAddr
}
