package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 8880 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 8880)
	}
	if !cfg.API.Metrics {
		t.Error("API.Metrics should be true by default")
	}
	if !cfg.Audit.Enabled {
		t.Error("Audit.Enabled should be true by default")
	}
	if cfg.Audit.Dir != "" {
		t.Errorf("Audit.Dir = %q, want in-memory default", cfg.Audit.Dir)
	}
	if cfg.Recommend.DefaultLimit != 5 {
		t.Errorf("Recommend.DefaultLimit = %d, want 5", cfg.Recommend.DefaultLimit)
	}
	if cfg.Recommend.MaxLimit != 20 {
		t.Errorf("Recommend.MaxLimit = %d, want 20", cfg.Recommend.MaxLimit)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
host = "0.0.0.0"
port = 9000

[audit]
enabled = false

[recommend]
default_limit = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.Host != "0.0.0.0" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "0.0.0.0")
	}
	if cfg.API.Port != 9000 {
		t.Errorf("API.Port = %d, want 9000", cfg.API.Port)
	}
	if cfg.Audit.Enabled {
		t.Error("Audit.Enabled should be overridden to false")
	}
	if cfg.Recommend.DefaultLimit != 3 {
		t.Errorf("Recommend.DefaultLimit = %d, want 3", cfg.Recommend.DefaultLimit)
	}
	// Untouched keys keep their defaults.
	if cfg.Recommend.MaxLimit != 20 {
		t.Errorf("Recommend.MaxLimit = %d, want 20", cfg.Recommend.MaxLimit)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad port", "[api]\nport = 99999\n"},
		{"default over max", "[recommend]\ndefault_limit = 50\nmax_limit = 20\n"},
		{"malformed toml", "[api\nport = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestAPIConfig_Addr(t *testing.T) {
	cfg := APIConfig{Host: "127.0.0.1", Port: 8880}
	if got := cfg.Addr(); got != "127.0.0.1:8880" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:8880")
	}
}
