package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validToken = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuv12"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"READWISE_TOKEN", "READE_TIMEOUT", "READE_DEBUG", "READE_LOG_LEVEL", "READE_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", cfg.TimeoutSeconds)
	}
	if cfg.Title != "Highlights saved by Reade" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.Token != "" {
		t.Errorf("Token = %q, want empty", cfg.Token)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("log defaults = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadConfigCreatesDefaultFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "subdir", "config.json")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", cfg.TimeoutSeconds)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("default config file was not created: %v", err)
	}
	var onDisk Config
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("default config file is not valid JSON: %v", err)
	}
	if onDisk.Title != DefaultConfig().Title {
		t.Errorf("persisted Title = %q", onDisk.Title)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 0600", perm)
	}
}

func TestLoadConfigExistingFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.json")
	content := `{"token": "` + validToken + `", "timeout": 30, "title": "Custom"}`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Token != validToken {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.TimeoutSeconds)
	}
	if cfg.Title != "Custom" {
		t.Errorf("Title = %q, want Custom", cfg.Title)
	}
}

func TestLoadConfigRepairsClearedFields(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{"timeout": 0, "title": ""}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want defaulted 10", cfg.TimeoutSeconds)
	}
	if cfg.Title != DefaultConfig().Title {
		t.Errorf("Title = %q, want default", cfg.Title)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte("{invalid"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(configPath); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}

func TestEnvironmentTokenBootstrap(t *testing.T) {
	clearEnv(t)
	t.Setenv("READWISE_TOKEN", validToken)
	configPath := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Token != validToken {
		t.Errorf("Token = %q, want environment token", cfg.Token)
	}
}

func TestEnvironmentTokenDoesNotOverrideStored(t *testing.T) {
	clearEnv(t)
	stored := strings.Repeat("z", 50)
	t.Setenv("READWISE_TOKEN", validToken)
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{"token": "`+stored+`"}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Token != stored {
		t.Errorf("Token = %q, stored token must win", cfg.Token)
	}
}

func TestEnvironmentTokenRejectedWhenMalformed(t *testing.T) {
	clearEnv(t)
	t.Setenv("READWISE_TOKEN", "too-short")
	configPath := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Token != "" {
		t.Errorf("Token = %q, malformed env token must be ignored", cfg.Token)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("READE_TIMEOUT", "60")
	t.Setenv("READE_DEBUG", "true")
	t.Setenv("READE_LOG_LEVEL", "DEBUG")
	t.Setenv("READE_LOG_FORMAT", "text")
	configPath := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, want 60", cfg.TimeoutSeconds)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
}

func TestEnvironmentOverridesIgnoreInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("READE_TIMEOUT", "-5")
	t.Setenv("READE_LOG_LEVEL", "chatty")
	configPath := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, invalid override must be ignored", cfg.TimeoutSeconds)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, invalid override must be ignored", cfg.LogLevel)
	}
}

func TestSetToken(t *testing.T) {
	cfg := DefaultConfig()

	shown, err := cfg.Set("token", validToken)
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if cfg.Token != validToken {
		t.Errorf("Token = %q", cfg.Token)
	}
	if shown != validToken[:7]+"…" {
		t.Errorf("shown = %q, want masked token", shown)
	}

	if _, err := cfg.Set("token", "nope"); err == nil {
		t.Error("malformed token should be rejected")
	}
	if _, err := cfg.Set("token", ""); err == nil {
		t.Error("empty token should be rejected")
	}
}

func TestSetTimeout(t *testing.T) {
	cfg := DefaultConfig()

	shown, err := cfg.Set("timeout", "25")
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if cfg.TimeoutSeconds != 25 || shown != "25" {
		t.Errorf("TimeoutSeconds = %d, shown = %q", cfg.TimeoutSeconds, shown)
	}

	for _, bad := range []string{"0", "-1", "soon", ""} {
		if _, err := cfg.Set("timeout", bad); err == nil {
			t.Errorf("timeout %q should be rejected", bad)
		}
	}
}

func TestSetTitle(t *testing.T) {
	cfg := DefaultConfig()

	if _, err := cfg.Set("Title", "  My Title  "); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if cfg.Title != "My Title" {
		t.Errorf("Title = %q, want trimmed value", cfg.Title)
	}

	if _, err := cfg.Set("title", strings.Repeat("x", 512)); err == nil {
		t.Error("overlong title should be rejected")
	}
}

func TestSetUnknownKey(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := cfg.Set("color", "red"); err == nil {
		t.Fatal("unknown key should be rejected")
	}
}

func TestResetRetainsToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Token = validToken
	cfg.TimeoutSeconds = 99
	cfg.Title = "Changed"

	cfg.Reset()

	if cfg.Token != validToken {
		t.Errorf("Token = %q, reset must retain the token", cfg.Token)
	}
	if cfg.TimeoutSeconds != 10 || cfg.Title != DefaultConfig().Title {
		t.Errorf("options not restored: %+v", cfg)
	}
}

func TestShowMasksToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Token = validToken

	out := cfg.Show()
	if strings.Contains(out, validToken) {
		t.Error("Show must not reveal the full token")
	}
	if !strings.Contains(out, validToken[:7]+"…") {
		t.Errorf("Show output missing masked token: %q", out)
	}
	if !strings.Contains(out, "timeout: 10") || !strings.Contains(out, "title: ") {
		t.Errorf("Show output missing options: %q", out)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("config without token should not validate")
	}

	cfg.Token = validToken
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.TimeoutSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero timeout should not validate")
	}
}
