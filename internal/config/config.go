package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// EnvPrefix prefixes environment overrides, e.g. CARCLI__API__BASE_URL
	EnvPrefix = "CARCLI__"

	// DefaultPageSize matches the list endpoint's fixed page size
	DefaultPageSize = 5
)

var (
	// ConfigDir is the global configuration directory (~/.carcli)
	ConfigDir string

	// ConfigFile is the default YAML configuration file
	ConfigFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string

	// DatabasePath is the SQLite database file for activity history
	DatabasePath string

	// LogFile is the default log destination while the TUI runs
	LogFile string
)

// Config is the top-level application configuration
type Config struct {
	Profile  string               `koanf:"profile"`
	API      APIConfig            `koanf:"api"`
	Log      LogConfig            `koanf:"log"`
	UI       UIConfig             `koanf:"ui"`
	History  HistoryConfig        `koanf:"history"`
	Profiles map[string]APIConfig `koanf:"profiles"`
}

// APIConfig describes how to reach the /car API
type APIConfig struct {
	BaseURL  string `koanf:"base_url"`
	Timeout  string `koanf:"timeout"`
	PageSize int    `koanf:"page_size"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

// UIConfig holds TUI settings
type UIConfig struct {
	MessageTimeout int `koanf:"message_timeout"` // Seconds before notifications auto-clear (0 = never)
}

// HistoryConfig holds activity history settings
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// flagKeys maps CLI flag names to config keys
var flagKeys = map[string]string{
	"profile":   "profile",
	"base-url":  "api.base_url",
	"timeout":   "api.timeout",
	"page-size": "api.page_size",
	"log-level": "log.level",
	"log-file":  "log.file",
	"history":   "history.enabled",
}

// Initialize sets up the configuration directory under the user's home.
// It creates ~/.carcli/ if it doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".carcli"))
}

// InitializeAt sets global paths relative to dir and creates it
func InitializeAt(dir string) error {
	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	DatabasePath = filepath.Join(ConfigDir, "carcli.db")
	LogFile = filepath.Join(ConfigDir, "carcli.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}
	return nil
}

// defaults returns the baseline configuration values
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"api.base_url":       "http://localhost:8080",
		"api.timeout":        "10s",
		"api.page_size":      DefaultPageSize,
		"log.level":          "info",
		"log.format":         "text",
		"log.file":           LogFile,
		"ui.message_timeout": 5,
		"history.enabled":    true,
		"history.path":       DatabasePath,
	}
}

// Load reads configuration with precedence flags > env > file > defaults.
// An empty cfgFile falls back to ConfigFile when it exists.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := cfgFile
	if path == "" && ConfigFile != "" {
		if _, err := os.Stat(ConfigFile); err == nil {
			path = ConfigFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// CARCLI__API__BASE_URL -> api.base_url
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.TrimPrefix(s, EnvPrefix)
		key = strings.ToLower(key)
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks supported values and applies the selected profile
func (c *Config) Validate() error {
	if c.Profile != "" {
		profile, ok := c.Profiles[c.Profile]
		if !ok {
			return fmt.Errorf("unknown profile %q", c.Profile)
		}
		if profile.BaseURL != "" {
			c.API.BaseURL = profile.BaseURL
		}
		if profile.Timeout != "" {
			c.API.Timeout = profile.Timeout
		}
		if profile.PageSize != 0 {
			c.API.PageSize = profile.PageSize
		}
	}

	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("invalid api.base_url %q: must start with http:// or https://", c.API.BaseURL)
	}

	if c.API.PageSize < 1 {
		return fmt.Errorf("invalid api.page_size %d: must be at least 1", c.API.PageSize)
	}

	if t := strings.TrimSpace(c.API.Timeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid api.timeout %q: must be greater than 0", c.API.Timeout)
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be one of %q, %q", c.Log.Format, "text", "json")
	}

	if c.UI.MessageTimeout < 0 {
		return fmt.Errorf("invalid ui.message_timeout %d: must not be negative", c.UI.MessageTimeout)
	}

	return nil
}

// RequestTimeout returns the API timeout, 10s when unset
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.API.Timeout))
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// MessageTimeout returns how long notifications stay visible (0 = until dismissed)
func (c *Config) MessageTimeout() time.Duration {
	return time.Duration(c.UI.MessageTimeout) * time.Second
}
