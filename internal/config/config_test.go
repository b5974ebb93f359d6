package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, InitializeAt(dir))
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), FilePermissions))
	return path
}

func TestInitializeAt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".carcli")
	require.NoError(t, InitializeAt(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "carcli.db"), DatabasePath)
	assert.Equal(t, filepath.Join(dir, "keybinds.json"), KeybindsFile)
}

func TestLoad_Defaults(t *testing.T) {
	dir := setupDir(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, DefaultPageSize, cfg.API.PageSize)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 5*time.Second, cfg.MessageTimeout())
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(dir, "carcli.db"), cfg.History.Path)
}

func TestLoad_FileEnvFlagPrecedence(t *testing.T) {
	dir := setupDir(t)
	path := writeConfig(t, dir, `
api:
  base_url: http://file.example:9000/
  timeout: 3s
  page_size: 10
log:
  level: debug
`)

	t.Setenv("CARCLI__API__TIMEOUT", "7s")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("base-url", "", "")
	flags.Int("page-size", 0, "")
	require.NoError(t, flags.Parse([]string{"--page-size", "20"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "http://file.example:9000", cfg.API.BaseURL, "trailing slash trimmed, unset flag ignored")
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout(), "env overrides file")
	assert.Equal(t, 20, cfg.API.PageSize, "flag overrides file")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DefaultFileIsPickedUp(t *testing.T) {
	dir := setupDir(t)
	writeConfig(t, dir, "ui:\n  message_timeout: 0\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.MessageTimeout())
}

func TestLoad_Profile(t *testing.T) {
	dir := setupDir(t)
	path := writeConfig(t, dir, `
profile: staging
profiles:
  staging:
    base_url: https://staging.example.com
    page_size: 25
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", cfg.API.BaseURL)
	assert.Equal(t, 25, cfg.API.PageSize)
	assert.Equal(t, "10s", cfg.API.Timeout, "unset profile fields keep the base value")
}

func TestLoad_MissingFile(t *testing.T) {
	setupDir(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{API: APIConfig{BaseURL: "http://localhost:8080", Timeout: "5s", PageSize: 5}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty base url", mutate: func(c *Config) { c.API.BaseURL = "  " }, wantErr: "api.base_url is required"},
		{name: "bad scheme", mutate: func(c *Config) { c.API.BaseURL = "ftp://x" }, wantErr: "must start with http"},
		{name: "zero page size", mutate: func(c *Config) { c.API.PageSize = 0 }, wantErr: "api.page_size"},
		{name: "bad timeout", mutate: func(c *Config) { c.API.Timeout = "soon" }, wantErr: "api.timeout"},
		{name: "negative timeout", mutate: func(c *Config) { c.API.Timeout = "-1s" }, wantErr: "greater than 0"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "negative message timeout", mutate: func(c *Config) { c.UI.MessageTimeout = -1 }, wantErr: "ui.message_timeout"},
		{name: "unknown profile", mutate: func(c *Config) { c.Profile = "prod" }, wantErr: `unknown profile "prod"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
