package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	// Test default config loading (without config file)
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	// Check defaults
	if cfg.ListenPort != 3000 {
		t.Errorf("Default listen_port = %v, want %v", cfg.ListenPort, 3000)
	}

	if cfg.ConnectTimeout != 2500 {
		t.Errorf("Default connect_timeout = %v, want %v", cfg.ConnectTimeout, 2500)
	}

	if cfg.RequestTimeout != 5000 {
		t.Errorf("Default request_timeout = %v, want %v", cfg.RequestTimeout, 5000)
	}

	if cfg.MaxDepth != 4 {
		t.Errorf("Default max_depth = %v, want %v", cfg.MaxDepth, 4)
	}

	if cfg.MaxOpen != 512 {
		t.Errorf("Default max_open = %v, want %v", cfg.MaxOpen, 512)
	}

	if cfg.ReadBudget != "65535" {
		t.Errorf("Default read_budget = %v, want %v", cfg.ReadBudget, "65535")
	}

	if cfg.StoreRoot != ".changesets" {
		t.Errorf("Default store_root = %v, want %v", cfg.StoreRoot, ".changesets")
	}

	if cfg.MaxRedirects != 0 {
		t.Errorf("Default max_redirects = %v, want %v", cfg.MaxRedirects, 0)
	}

	if cfg.LinkParent {
		t.Errorf("Default link_parent = %v, want %v", cfg.LinkParent, false)
	}

	if cfg.AI.Enabled {
		t.Errorf("Default ai_enabled = %v, want %v", cfg.AI.Enabled, false)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config does not validate: %v", err)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("WEBTRAIL_LISTEN_PORT", "8080")
	t.Setenv("WEBTRAIL_STORE_ROOT", "/var/lib/webtrail")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ListenPort != 8080 {
		t.Errorf("listen_port = %v, want %v", cfg.ListenPort, 8080)
	}
	if cfg.StoreRoot != "/var/lib/webtrail" {
		t.Errorf("store_root = %v, want %v", cfg.StoreRoot, "/var/lib/webtrail")
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webtrail.yaml")
	content := "home_root: /srv/home\nworkers: 3\nlog:\n  level: debug\n  file: /tmp/webtrail.log\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.HomeRoot != "/srv/home" {
		t.Errorf("home_root = %v, want %v", cfg.HomeRoot, "/srv/home")
	}
	if cfg.Workers != 3 {
		t.Errorf("workers = %v, want %v", cfg.Workers, 3)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %v, want %v", cfg.Log.Level, "debug")
	}
	if cfg.Log.File != "/tmp/webtrail.log" {
		t.Errorf("log.file = %v, want %v", cfg.Log.File, "/tmp/webtrail.log")
	}
	// untouched keys keep their defaults
	if cfg.ListenPort != 3000 {
		t.Errorf("listen_port = %v, want %v", cfg.ListenPort, 3000)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() expected error for missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			MaxDepth:       4,
			MaxOpen:        512,
			ConnectTimeout: 2500,
			RequestTimeout: 5000,
			StoreRoot:      ".changesets",
			ListenPort:     3000,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"Negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"Zero depth", func(c *Config) { c.MaxDepth = 0 }, true},
		{"Zero open budget", func(c *Config) { c.MaxOpen = 0 }, true},
		{"Two redirects", func(c *Config) { c.MaxRedirects = 2 }, true},
		{"One redirect", func(c *Config) { c.MaxRedirects = 1 }, false},
		{"Zero timeout", func(c *Config) { c.RequestTimeout = 0 }, true},
		{"Negative rate", func(c *Config) { c.ProbeRate = -1 }, true},
		{"Empty store", func(c *Config) { c.StoreRoot = "" }, true},
		{"Port out of range", func(c *Config) { c.ListenPort = 70000 }, true},
		{"Line diff", func(c *Config) { c.DiffMode = "line" }, false},
		{"Word diff", func(c *Config) { c.DiffMode = "word" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDurations(t *testing.T) {
	cfg := &Config{ConnectTimeout: 2500, RequestTimeout: 5000}
	if got := cfg.ConnectTimeoutDuration(); got != 2500*time.Millisecond {
		t.Errorf("ConnectTimeoutDuration() = %v, want %v", got, 2500*time.Millisecond)
	}
	if got := cfg.RequestTimeoutDuration(); got != 5*time.Second {
		t.Errorf("RequestTimeoutDuration() = %v, want %v", got, 5*time.Second)
	}
}

func TestShouldScanUser(t *testing.T) {
	tests := []struct {
		name     string
		users    []string
		user     string
		expected bool
	}{
		{"No filter", nil, "alice", true},
		{"Listed", []string{"alice", "bob"}, "bob", true},
		{"Not listed", []string{"alice"}, "bob", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Users: tt.users}
			if got := cfg.ShouldScanUser(tt.user); got != tt.expected {
				t.Errorf("ShouldScanUser(%q) = %v, want %v", tt.user, got, tt.expected)
			}
		})
	}
}
