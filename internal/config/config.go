// Package config loads notifygate settings from TOML config files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// AppName labels journal entries so a reader can tell which sender
	// a notification belonged to. It never reaches the bus: the outgoing
	// application name stays a fixed empty placeholder until per-caller
	// names can be validated.
	AppName string `koanf:"app_name"`

	// DefaultTimeoutMillis is used when a request leaves the expire
	// timeout unset. -1 means server default.
	DefaultTimeoutMillis int32 `koanf:"default_timeout_ms"`

	// DefaultUrgency is "low", "normal", "critical", or "" to not set
	// an urgency hint by default.
	DefaultUrgency string `koanf:"default_urgency"`

	// Journal settings.
	Journal JournalConfig `koanf:"journal"`
}

// JournalConfig controls the local notification journal.
type JournalConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"` // empty means XDG data dir
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		DefaultTimeoutMillis: -1,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultTimeoutMillis < -1 {
		return nil, fmt.Errorf("default_timeout_ms must be >= -1, got %d", cfg.DefaultTimeoutMillis)
	}

	switch cfg.DefaultUrgency {
	case "", "low", "normal", "critical":
	default:
		return nil, fmt.Errorf("unknown default_urgency %q", cfg.DefaultUrgency)
	}

	// Expand ~ in journal path
	if cfg.Journal.Path != "" {
		cfg.Journal.Path = expandPath(cfg.Journal.Path)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/notifygate/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "notifygate", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
