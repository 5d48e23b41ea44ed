package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the auditor configuration
type Config struct {
	// Scan settings
	HomeRoot   string   `mapstructure:"home_root"`   // parent of per-user content roots
	PasswdPath string   `mapstructure:"passwd_path"` // account database
	Users      []string `mapstructure:"users"`       // restrict scan to these users
	Workers    int      `mapstructure:"workers"`     // number of concurrent user tasks
	MaxDepth   int      `mapstructure:"max_depth"`   // traversal depth below a user root
	MaxOpen    int      `mapstructure:"max_open"`    // open file budget shared by all tasks
	ReadBudget string   `mapstructure:"read_budget"` // bytes sampled from the start of a file
	Exclude    []string `mapstructure:"exclude"`     // directories to exclude

	// Store settings
	StoreRoot  string `mapstructure:"store_root"`  // changeset store directory
	WriteJSON  bool   `mapstructure:"write_json"`  // mirror every changeset as JSON
	LinkParent bool   `mapstructure:"link_parent"` // chain new changesets to the previous one

	// Domain settings
	PolicyPath string `mapstructure:"policy_path"` // YAML domain policy file or directory

	// Probe settings
	ConnectTimeout int     `mapstructure:"connect_timeout"` // ms
	RequestTimeout int     `mapstructure:"request_timeout"` // ms
	MaxRedirects   int     `mapstructure:"max_redirects"`   // 0 or 1
	MaxBodySize    string  `mapstructure:"max_body_size"`   // response bytes kept per probe
	UserAgent      string  `mapstructure:"user_agent"`
	ProbeRate      float64 `mapstructure:"probe_rate"` // probes per second, 0 = unlimited

	// Report settings
	ReportFormat string `mapstructure:"report_format"` // json, text, md
	OutputFile   string `mapstructure:"output_file"`   // output file path

	// Diff settings
	DiffMode string `mapstructure:"diff_mode"` // char, line

	// Server settings
	ListenPort int `mapstructure:"listen_port"`

	// Log settings
	Log LogConfig `mapstructure:"log"`

	// AI settings
	AI AIConfig `mapstructure:"ai"` // AI change summaries
}

// LogConfig holds logger output settings
type LogConfig struct {
	Level      string `mapstructure:"level"`        // debug, info, warn, error
	File       string `mapstructure:"file"`         // rotate logs into this file as well
	MaxSizeMB  int    `mapstructure:"max_size_mb"`  // rotate after this size
	MaxBackups int    `mapstructure:"max_backups"`  // rotated files to keep
	MaxAgeDays int    `mapstructure:"max_age_days"` // days to keep rotated files
}

// AIConfig holds AI summary configuration
type AIConfig struct {
	Enabled  bool   `mapstructure:"ai_enabled"`   // Enable AI change summaries
	Model    string `mapstructure:"ai_model"`     // Model: haiku, sonnet, opus
	APIToken string `mapstructure:"ai_token"`     // Anthropic API token
	Timeout  int    `mapstructure:"ai_timeout"`   // Seconds per request
	Language string `mapstructure:"ai_language"`  // Summary language: en, ru, es, de, zh, pl
	MaxChars int    `mapstructure:"ai_max_chars"` // Diff text sent per request
}

// LoadConfig loads configuration from defaults, an optional file and environment variables
func LoadConfig(file string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("home_root", "/home")
	v.SetDefault("passwd_path", "/etc/passwd")
	v.SetDefault("users", []string{})
	v.SetDefault("workers", runtime.NumCPU()*2)
	v.SetDefault("max_depth", 4)
	v.SetDefault("max_open", 512)
	v.SetDefault("read_budget", "65535")
	v.SetDefault("exclude", []string{".git", ".svn", ".hg"})
	v.SetDefault("store_root", ".changesets")
	v.SetDefault("write_json", true)
	v.SetDefault("link_parent", false)
	v.SetDefault("policy_path", "")
	v.SetDefault("connect_timeout", 2500)
	v.SetDefault("request_timeout", 5000)
	v.SetDefault("max_redirects", 0)
	v.SetDefault("max_body_size", "2M")
	v.SetDefault("user_agent", "Mozilla/5.0 (X11; Linux x86_64; rv:10.0) Gecko/20100101 Firefox/10.0")
	v.SetDefault("probe_rate", 0.0)
	v.SetDefault("report_format", "")
	v.SetDefault("diff_mode", "char")
	v.SetDefault("listen_port", 3000)

	// Log defaults
	v.SetDefault("log.level", "error")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 30)

	// AI defaults
	v.SetDefault("ai.ai_enabled", false)
	v.SetDefault("ai.ai_model", "haiku")
	v.SetDefault("ai.ai_timeout", 30)
	v.SetDefault("ai.ai_language", "en")
	v.SetDefault("ai.ai_max_chars", 12000)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("WEBTRAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would make a scan impossible
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative (got: %d)", c.Workers)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1 (got: %d)", c.MaxDepth)
	}
	if c.MaxOpen < 1 {
		return fmt.Errorf("max_open must be at least 1 (got: %d)", c.MaxOpen)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 1 {
		return fmt.Errorf("max_redirects must be 0 or 1 (got: %d)", c.MaxRedirects)
	}
	if c.ConnectTimeout <= 0 || c.RequestTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive (got: connect=%d request=%d)", c.ConnectTimeout, c.RequestTimeout)
	}
	if c.ProbeRate < 0 {
		return fmt.Errorf("probe_rate must not be negative (got: %v)", c.ProbeRate)
	}
	if c.StoreRoot == "" {
		return fmt.Errorf("store_root must be set")
	}
	if c.ListenPort <= 0 || c.ListenPort > 65535 {
		return fmt.Errorf("listen_port out of range (got: %d)", c.ListenPort)
	}
	switch c.DiffMode {
	case "", "char", "line":
	default:
		return fmt.Errorf("diff_mode must be one of: char, line (got: %s)", c.DiffMode)
	}
	return nil
}

// ConnectTimeoutDuration returns the probe connect timeout
func (c *Config) ConnectTimeoutDuration() time.Duration {
	return time.Duration(c.ConnectTimeout) * time.Millisecond
}

// RequestTimeoutDuration returns the probe request timeout
func (c *Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Millisecond
}

// GetWorkers returns the worker pool size
func (c *Config) GetWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU() * 2
	}
	return c.Workers
}

// ShouldScanUser reports whether a user is selected for scanning
func (c *Config) ShouldScanUser(name string) bool {
	if len(c.Users) == 0 {
		return true
	}
	for _, u := range c.Users {
		if u == name {
			return true
		}
	}
	return false
}
