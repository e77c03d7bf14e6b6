package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/netlearn/pkg/pipeline"
)

// configFile is the config file name, looked up in the working directory
// first and then under the XDG config directory.
const configFile = "netlearn.toml"

// Config holds user-level defaults for learn parameters and backends.
// Command-line flags override config values, which override built-in
// defaults.
type Config struct {
	Seed       uint64      `toml:"seed"`
	MaxParents int         `toml:"max_parents"`
	Workers    int         `toml:"workers"`
	Cache      CacheConfig `toml:"cache"`
	Serve      ServeConfig `toml:"serve"`
}

// CacheConfig selects and configures the learned-network cache backend.
type CacheConfig struct {
	// Backend is "file" (default), "redis", or "none".
	Backend string `toml:"backend"`
	// Dir overrides the XDG cache directory for the file backend.
	Dir string `toml:"dir"`
	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `toml:"redis_addr"`
}

// ServeConfig configures the HTTP API.
type ServeConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
	// MongoURI enables the persistent run store when set. Empty means runs
	// live in process memory.
	MongoURI string `toml:"mongo_uri"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Seed: pipeline.DefaultSeed,
		Cache: CacheConfig{
			Backend: "file",
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// LoadConfig reads a config file and applies it over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the first config file found, or returns the
// defaults if none exists. A malformed config file also falls back to the
// defaults; commands that care can call LoadConfig directly.
func LoadConfigOrDefault() Config {
	for _, path := range configPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := LoadConfig(path)
		if err != nil {
			return DefaultConfig()
		}
		return cfg
	}
	return DefaultConfig()
}

// configPaths returns the candidate config locations in lookup order.
func configPaths() []string {
	paths := []string{configFile}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		paths = append(paths, filepath.Join(configHome, appName, configFile))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, configFile))
	}
	return paths
}
