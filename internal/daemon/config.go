// Package daemon holds the long-running process configuration.
package daemon

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full daemon configuration, loaded from TOML.
type Config struct {
	API       APIConfig       `toml:"api"`
	Audit     AuditConfig     `toml:"audit"`
	Recommend RecommendConfig `toml:"recommend"`
}

// APIConfig controls the HTTP listener.
type APIConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"`
}

// AuditConfig controls the operation journal. An empty Dir keeps the
// journal in memory.
type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// RecommendConfig bounds the recommendation result size.
type RecommendConfig struct {
	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:    "127.0.0.1",
			Port:    8880,
			Metrics: true,
		},
		Audit: AuditConfig{
			Enabled: true,
			Dir:     "",
		},
		Recommend: RecommendConfig{
			DefaultLimit: 5,
			MaxLimit:     20,
		},
	}
}

// Load reads a TOML config file over the defaults. A missing file is not
// an error; the defaults stand.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("config: api.port %d out of range", c.API.Port)
	}
	if c.Recommend.MaxLimit > 0 && c.Recommend.DefaultLimit > c.Recommend.MaxLimit {
		return fmt.Errorf("config: recommend.default_limit %d exceeds max_limit %d",
			c.Recommend.DefaultLimit, c.Recommend.MaxLimit)
	}
	return nil
}

// Addr is the host:port the API listener binds.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
