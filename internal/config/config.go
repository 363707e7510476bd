// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/budgetchat-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete budgetchat configuration.
type Config struct {
	// Backend API settings
	API APIConfig `toml:"api" json:"api"`

	// Display settings (live reloadable)
	UI UIConfig `toml:"ui" json:"ui"`

	// Chat view-model behaviour
	Session SessionConfig `toml:"session" json:"session"`

	// Logging
	Log LogConfig `toml:"log" json:"log"`

	// Local transcript store
	Transcript TranscriptConfig `toml:"transcript" json:"transcript"`

	// Mock backend (budgetchat serve)
	Server ServerConfig `toml:"server" json:"server"`
}

// APIConfig describes how to reach the backend.
type APIConfig struct {
	// BaseURL is the API root including the /api prefix
	BaseURL string `toml:"base_url" json:"base_url"`
	// Timeout bounds each request; zero means no client-side timeout
	Timeout Duration `toml:"timeout" json:"timeout"`
}

// UIConfig contains display configuration.
type UIConfig struct {
	// Theme is "auto", "dark" or "light"
	Theme string `toml:"theme" json:"theme"`
	// Sidebar is "auto" (docked when wide), "always" or "never"
	Sidebar string `toml:"sidebar" json:"sidebar"`
	// ShowTimestamps shows the time under each message
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
	// Markdown renders assistant replies as markdown
	Markdown bool `toml:"markdown" json:"markdown"`
	// WordWrap caps the rendered message width (0 = terminal width)
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
}

// SessionConfig tunes the chat view-model.
type SessionConfig struct {
	// StatsRefreshDelay is the wait before re-fetching stats after a reply
	StatsRefreshDelay Duration `toml:"stats_refresh_delay" json:"stats_refresh_delay"`
	// HealthInterval is how often the header re-probes the backend
	HealthInterval Duration `toml:"health_interval" json:"health_interval"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level      string `toml:"level" json:"level"`
	Format     string `toml:"format" json:"format"`
	Output     string `toml:"output" json:"output"`
	File       string `toml:"file" json:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" json:"max_age_days"`
}

// TranscriptConfig controls the local SQLite transcript.
type TranscriptConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Path    string `toml:"path" json:"path"`
}

// ServerConfig configures the mock backend.
type ServerConfig struct {
	Addr string `toml:"addr" json:"addr"`
	// RateLimit is requests per second per client; zero disables limiting
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`
	Burst     int     `toml:"burst" json:"burst"`
}

// =============================================================================
// DURATION
// =============================================================================

// Duration is a time.Duration that reads and writes as "500ms", "30s".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default values.
const (
	DefaultBaseURL           = "http://localhost:8080/api"
	DefaultStatsRefreshDelay = 500 * time.Millisecond
	DefaultHealthInterval    = 30 * time.Second
	DefaultServerAddr        = ":8080"
)

// Default returns a Config with sensible default values.
// Paths under the config directory are filled in by SetDefaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		UI: UIConfig{
			Theme:          "auto",
			Sidebar:        "auto",
			ShowTimestamps: true,
			Markdown:       true,
		},
		Session: SessionConfig{
			StatsRefreshDelay: Duration(DefaultStatsRefreshDelay),
			HealthInterval:    Duration(DefaultHealthInterval),
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			Output:     "file",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Server: ServerConfig{
			Addr:      DefaultServerAddr,
			RateLimit: 10,
			Burst:     20,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the budgetchat configuration directory path.
// BUDGETCHAT_HOME overrides the default ~/.budgetchat.
func ConfigDir() (string, error) {
	if dir := os.Getenv("BUDGETCHAT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".budgetchat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config directory.
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}
	return finish(Default())
}

// LoadFromPath loads configuration from a specific file path with full validation.
// Keys missing from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// finish applies env overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	data, err := cfg.TOML()
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// TOML renders the configuration as a commented TOML document.
func (c *Config) TOML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# budgetchat configuration file\n")
	buf.WriteString("# Generated by budgetchat - edit with care\n\n")
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// API
	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.API.BaseURL),
		})
	}
	if c.API.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "api.timeout", Message: "must not be negative"})
	}

	// UI
	if !oneOf(c.UI.Theme, "auto", "dark", "light") {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if !oneOf(c.UI.Sidebar, "auto", "always", "never") {
		errs = append(errs, ValidationError{
			Field:   "ui.sidebar",
			Message: fmt.Sprintf("invalid sidebar mode '%s', must be one of: auto, always, never", c.UI.Sidebar),
		})
	}
	if c.UI.WordWrap < 0 {
		errs = append(errs, ValidationError{Field: "ui.word_wrap", Message: "must not be negative"})
	}

	// Session
	if c.Session.StatsRefreshDelay < 0 {
		errs = append(errs, ValidationError{Field: "session.stats_refresh_delay", Message: "must not be negative"})
	}
	if c.Session.HealthInterval < 0 {
		errs = append(errs, ValidationError{Field: "session.health_interval", Message: "must not be negative"})
	}

	// Log
	if !oneOf(c.Log.Level, "debug", "info", "warn", "warning", "error") {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}
	if !oneOf(c.Log.Format, "json", "console") {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: json, console", c.Log.Format),
		})
	}
	if !oneOf(c.Log.Output, "file", "stderr", "stdout", "none") {
		errs = append(errs, ValidationError{
			Field:   "log.output",
			Message: fmt.Sprintf("invalid output '%s', must be one of: file, stderr, stdout, none", c.Log.Output),
		})
	}

	// Server
	if c.Server.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "server.rate_limit", Message: "must not be negative"})
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		errs = append(errs, ValidationError{Field: "server.burst", Message: "must be at least 1 when rate limiting"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// SetDefaults fills empty fields with defaults. Booleans are left alone;
// their defaults come from Default before decoding.
func (c *Config) SetDefaults() {
	d := Default()

	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")

	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.Sidebar == "" {
		c.UI.Sidebar = d.UI.Sidebar
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	c.UI.Sidebar = strings.ToLower(c.UI.Sidebar)

	if c.Session.StatsRefreshDelay == 0 {
		c.Session.StatsRefreshDelay = d.Session.StatsRefreshDelay
	}
	if c.Session.HealthInterval == 0 {
		c.Session.HealthInterval = d.Session.HealthInterval
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Log.Output == "" {
		c.Log.Output = d.Log.Output
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = d.Log.MaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = d.Log.MaxBackups
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = d.Log.MaxAgeDays
	}

	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}

	// Paths under the config directory
	if dir, err := ConfigDir(); err == nil {
		if c.Log.File == "" {
			c.Log.File = filepath.Join(dir, "logs", "budgetchat.log")
		}
		if c.Transcript.Path == "" {
			c.Transcript.Path = filepath.Join(dir, "transcript.db")
		}
	}
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported:
//   - BUDGETCHAT_API_BASE: overrides api.base_url
//   - REACT_APP_API_BASE: same, read when BUDGETCHAT_API_BASE is unset
//   - BUDGETCHAT_API_TIMEOUT: overrides api.timeout ("10s")
//   - BUDGETCHAT_THEME: overrides ui.theme
//   - BUDGETCHAT_LOG_LEVEL: overrides log.level
//   - BUDGETCHAT_LOG_OUTPUT: overrides log.output
//   - BUDGETCHAT_TRANSCRIPT: enables/disables the transcript ("1", "true")
func (c *Config) ApplyEnvOverrides() {
	if base := os.Getenv("BUDGETCHAT_API_BASE"); base != "" {
		c.API.BaseURL = base
	} else if base := os.Getenv("REACT_APP_API_BASE"); base != "" {
		c.API.BaseURL = base
	}

	if timeout := os.Getenv("BUDGETCHAT_API_TIMEOUT"); timeout != "" {
		var d Duration
		if err := d.UnmarshalText([]byte(timeout)); err == nil {
			c.API.Timeout = d
		}
	}

	if theme := os.Getenv("BUDGETCHAT_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if level := os.Getenv("BUDGETCHAT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if output := os.Getenv("BUDGETCHAT_LOG_OUTPUT"); output != "" {
		c.Log.Output = output
	}

	if transcript := os.Getenv("BUDGETCHAT_TRANSCRIPT"); transcript != "" {
		c.Transcript.Enabled = transcript == "1" || strings.ToLower(transcript) == "true"
	}
}
