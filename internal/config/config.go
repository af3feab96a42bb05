// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PALETTEKITTY_STORAGE_DRIVER
const EnvPrefix = "PALETTEKITTY"

var v *viper.Viper

// DefaultPath returns $PALETTEKITTY_CONFIG or ~/.palettekitty/config.yaml
func DefaultPath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(homeDir(), "config.yaml")
}

// homeDir is the per-user data directory
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".palettekitty")
}

// LoadDotEnv loads KEY=value pairs from the given files (".env" when none
// are named) into the process environment. Missing files are ignored and
// variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// InitConfig initializes the configuration system
func InitConfig(configPath string) error {
	v = viper.New()

	setDefaults()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// If config doesn't exist, create it with defaults
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			if err := v.WriteConfigAs(configPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	dataDir := homeDir()

	// Catalog storage
	v.SetDefault("storage.driver", "file") // file, sqlite, mysql, s3, memory, none
	v.SetDefault("storage.key", "palettes")
	v.SetDefault("storage.path", filepath.Join(dataDir, "catalog"))
	v.SetDefault("storage.capacity_bytes", 5*1024*1024)

	// Relational substrate
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", filepath.Join(dataDir, "palettekitty.db"))

	// Object storage substrate; credentials come from AWS_* variables
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "palettekitty")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")

	// HTTP API
	v.SetDefault("server.http_port", "8080")
	v.SetDefault("server.rate_limit", 10) // import/clear requests per minute per IP
	v.SetDefault("server.hsts", false)
	v.SetDefault("server.shutdown_timeout", "10s")

	// Backups
	v.SetDefault("backups.path", filepath.Join(dataDir, "backups"))
	v.SetDefault("backups.interval", "24h")
	v.SetDefault("backups.retention", 10)
	v.SetDefault("backups.enable_auto_backup", true)

	// Logging
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// GetString returns a config value as string
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetInt returns a config value as int
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetInt64 returns a config value as int64
func GetInt64(key string) int64 {
	if v == nil {
		return 0
	}
	return v.GetInt64(key)
}

// GetBool returns a config value as bool
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetDuration returns a config value as time.Duration
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set sets a config value and saves to file
func Set(key string, value interface{}) error {
	if v == nil {
		return fmt.Errorf("config not initialized")
	}

	v.Set(key, value)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetAll returns all config values as a map
func GetAll() map[string]interface{} {
	if v == nil {
		return nil
	}
	return v.AllSettings()
}
