// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp dir and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BUDGETCHAT_HOME", dir)
	for _, k := range []string{
		"BUDGETCHAT_API_BASE", "REACT_APP_API_BASE", "BUDGETCHAT_API_TIMEOUT",
		"BUDGETCHAT_THEME", "BUDGETCHAT_LOG_LEVEL", "BUDGETCHAT_LOG_OUTPUT", "BUDGETCHAT_TRANSCRIPT",
	} {
		t.Setenv(k, "")
	}
	return dir
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, Duration(0), cfg.API.Timeout)
	assert.Equal(t, DefaultStatsRefreshDelay, cfg.Session.StatsRefreshDelay.Std())
	assert.True(t, cfg.UI.Markdown)
	assert.True(t, cfg.UI.ShowTimestamps)
	assert.False(t, cfg.Transcript.Enabled)
	assert.Equal(t, filepath.Join(dir, "logs", "budgetchat.log"), cfg.Log.File)
	assert.Equal(t, filepath.Join(dir, "transcript.db"), cfg.Transcript.Path)
}

func TestLoad_TOMLOverDefaults(t *testing.T) {
	dir := isolate(t)

	data := `
[api]
base_url = "http://budget.internal:9090/api/"
timeout = "15s"

[ui]
theme = "Dark"
show_timestamps = false

[session]
stats_refresh_delay = "1s"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://budget.internal:9090/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout.Std())
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.False(t, cfg.UI.ShowTimestamps)
	assert.True(t, cfg.UI.Markdown, "keys missing from the file keep defaults")
	assert.Equal(t, time.Second, cfg.Session.StatsRefreshDelay.Std())
}

func TestLoad_JSONFallback(t *testing.T) {
	dir := isolate(t)

	data := `{"api": {"base_url": "https://budget.example.com/api"}, "transcript": {"enabled": true}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://budget.example.com/api", cfg.API.BaseURL)
	assert.True(t, cfg.Transcript.Enabled)
}

func TestLoad_UnknownKey(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[api]\nbase = \"x\"\n"), 0600))

	if _, err := Load(); err == nil {
		t.Error("Load() with unknown key should fail")
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[ui]\ntheme = \"neon\"\n"), 0600))

	_, err := Load()
	require.Error(t, err)

	var verrs ValidateErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("error %v is not ValidateErrors", err)
	}
	if len(verrs) != 1 || verrs[0].Field != "ui.theme" {
		t.Errorf("ValidateErrors = %v, want one ui.theme error", verrs)
	}
}

// =============================================================================
// ENV TESTS
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("REACT_APP_API_BASE", "http://react:8080/api")
	t.Setenv("BUDGETCHAT_API_TIMEOUT", "5s")
	t.Setenv("BUDGETCHAT_TRANSCRIPT", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://react:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout.Std())
	assert.True(t, cfg.Transcript.Enabled)

	t.Setenv("BUDGETCHAT_API_BASE", "http://native:8080/api")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "http://native:8080/api", cfg.API.BaseURL, "BUDGETCHAT_API_BASE wins")
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BUDGETCHAT_THEME=light\nBUDGETCHAT_LOG_LEVEL=debug\n"), 0600))

	// An already-set variable must win over the file
	t.Setenv("BUDGETCHAT_LOG_LEVEL", "error")
	// Unset the theme so the file can provide it
	os.Unsetenv("BUDGETCHAT_THEME")

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "light", os.Getenv("BUDGETCHAT_THEME"))
	assert.Equal(t, "error", os.Getenv("BUDGETCHAT_LOG_LEVEL"))
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"relative url", func(c *Config) { c.API.BaseURL = "/api" }, "api.base_url"},
		{"ftp url", func(c *Config) { c.API.BaseURL = "ftp://host/api" }, "api.base_url"},
		{"negative timeout", func(c *Config) { c.API.Timeout = -1 }, "api.timeout"},
		{"sidebar", func(c *Config) { c.UI.Sidebar = "left" }, "ui.sidebar"},
		{"log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"log output", func(c *Config) { c.Log.Output = "syslog" }, "log.output"},
		{"burst", func(c *Config) { c.Server.Burst = 0 }, "server.burst"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)

			err := cfg.Validate()
			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() = %v, want ValidateErrors", err)
			}
			if verrs[0].Field != tc.field {
				t.Errorf("Validate() field = %q, want %q", verrs[0].Field, tc.field)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("750ms")))
	assert.Equal(t, 750*time.Millisecond, d.Std())

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "750ms", string(text))

	assert.Error(t, d.UnmarshalText([]byte("soon")))
}

// =============================================================================
// SAVE / WATCH TESTS
// =============================================================================

func TestSaveAndReload(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.API.BaseURL = "http://saved:8080/api"
	cfg.UI.Sidebar = "never"
	require.NoError(t, Save(cfg))

	path, err := ConfigPathTOML()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://saved:8080/api", loaded.API.BaseURL)
	assert.Equal(t, "never", loaded.UI.Sidebar)
}

func TestWatch(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"dark\"\n"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) { changes <- c }, nil)
	}()

	// Give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"light\"\n"), 0600))

	select {
	case c := <-changes:
		assert.Equal(t, "light", c.UI.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("no config change delivered")
	}

	cancel()
	require.NoError(t, <-done)
}
