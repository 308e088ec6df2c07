package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"reade_cli/logger"
)

// Config represents the application configuration
type Config struct {
	Token          string `json:"token"`
	TimeoutSeconds int    `json:"timeout"`
	Title          string `json:"title"`
	Debug          bool   `json:"debug"`
	LogLevel       string `json:"log_level"`
	LogFormat      string `json:"log_format"`
	LogFile        string `json:"log_file"`
}

const maxTitleLength = 511

var tokenPattern = regexp.MustCompile(`^[a-zA-Z0-9]{50}$`)

// DefaultConfig returns a configuration with default values
func DefaultConfig() Config {
	return Config{
		Token:          "",
		TimeoutSeconds: 10,
		Title:          "Highlights saved by Reade",
		Debug:          false,
		LogLevel:       "info",
		LogFormat:      "json",
		LogFile:        "",
	}
}

// LoadConfig loads the configuration from the specified path.
// If the file doesn't exist, it creates one with default values.
// Environment variables override config file values.
func LoadConfig(configPath string) (Config, error) {
	logger.Debug("Loading configuration", "config_path", configPath)

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		logger.Error("Failed to create config directory", "error", err, "config_dir", configDir)
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	var cfg Config

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("Config file not found, creating default config", "config_path", configPath)
			cfg = DefaultConfig()
			if err := SaveConfig(configPath, cfg); err != nil {
				logger.Error("Failed to create default config", "error", err, "config_path", configPath)
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			logger.Error("Failed to read config file", "error", err, "config_path", configPath)
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &cfg); err != nil {
			logger.Error("Failed to parse config file", "error", err, "config_path", configPath)
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
		// A hand-edited file may have cleared defaulted fields.
		if cfg.TimeoutSeconds == 0 {
			cfg.TimeoutSeconds = DefaultConfig().TimeoutSeconds
		}
		if cfg.Title == "" {
			cfg.Title = DefaultConfig().Title
		}
	}

	cfg = applyEnvironmentOverrides(cfg)

	logger.Debug("Configuration loaded",
		"has_token", cfg.Token != "",
		"timeout", cfg.TimeoutSeconds,
		"log_level", cfg.LogLevel)

	return cfg, nil
}

// applyEnvironmentOverrides applies environment variable overrides to the config
func applyEnvironmentOverrides(cfg Config) Config {
	// Token bootstrap: pick up READWISE_TOKEN when no token is stored yet.
	if cfg.Token == "" {
		if token := strings.TrimSpace(os.Getenv("READWISE_TOKEN")); tokenPattern.MatchString(token) {
			logger.Debug("Using token from environment", "has_token", true)
			cfg.Token = token
		}
	}

	if timeoutStr := os.Getenv("READE_TIMEOUT"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil && timeout > 0 {
			logger.Debug("Overriding timeout from environment", "READE_TIMEOUT", timeout)
			cfg.TimeoutSeconds = timeout
		}
	}

	if debugEnv := os.Getenv("READE_DEBUG"); debugEnv != "" {
		if debug, err := strconv.ParseBool(debugEnv); err == nil {
			logger.Debug("Overriding debug mode from environment", "READE_DEBUG", debug)
			cfg.Debug = debug
		}
	}

	if logLevel := os.Getenv("READE_LOG_LEVEL"); logLevel != "" {
		validLevels := []string{"debug", "info", "warn", "error"}
		logLevel = strings.ToLower(logLevel)
		for _, valid := range validLevels {
			if logLevel == valid {
				cfg.LogLevel = logLevel
				break
			}
		}
	}

	if logFormat := os.Getenv("READE_LOG_FORMAT"); logFormat != "" {
		logFormat = strings.ToLower(logFormat)
		if logFormat == "text" || logFormat == "json" {
			cfg.LogFormat = logFormat
		}
	}

	return cfg
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file holds the API token.
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		logger.Error("Failed to write config file", "error", err, "config_path", configPath)
		return fmt.Errorf("failed to write config file: %w", err)
	}

	logger.Debug("Configuration saved", "config_path", configPath, "size", len(data))
	return nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.Token == "" {
		return errors.New("Readwise API token is required (run \"config set token ...\" or set READWISE_TOKEN)")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive, got: %d", c.TimeoutSeconds)
	}
	if c.Title == "" || len(c.Title) > maxTitleLength {
		return fmt.Errorf("title must be 1-%d characters", maxTitleLength)
	}
	return nil
}

// Set updates a single option by its user-facing key, validating the value.
// It returns the value as it should be echoed back to the user (the token is
// masked). The caller is responsible for saving the updated config.
func (c *Config) Set(key, val string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	val = strings.TrimSpace(val)

	switch key {
	case "token":
		if val == "" {
			return "", fmt.Errorf("%q must not be empty", key)
		}
		if !tokenPattern.MatchString(val) {
			return "", errors.New("not a valid API token")
		}
		c.Token = val
		return maskToken(val), nil

	case "timeout":
		timeout, err := strconv.Atoi(val)
		if err != nil || timeout <= 0 {
			return "", fmt.Errorf("%q must be a positive integer", key)
		}
		c.TimeoutSeconds = timeout
		return val, nil

	case "title":
		if val == "" {
			return "", fmt.Errorf("%q must not be empty", key)
		}
		if len(val) > maxTitleLength {
			return "", fmt.Errorf("%q must be at most %d characters", key, maxTitleLength)
		}
		c.Title = val
		return val, nil

	default:
		return "", fmt.Errorf("%q is not a valid configuration option; use the \"config\" command to view all options", key)
	}
}

// Reset restores all options to their defaults, retaining the API token.
func (c *Config) Reset() {
	token := c.Token
	*c = DefaultConfig()
	c.Token = token
}

// Show returns a listing of the persisted options with the token masked.
func (c Config) Show() string {
	var b strings.Builder
	fmt.Fprintf(&b, "timeout: %d\n", c.TimeoutSeconds)
	fmt.Fprintf(&b, "title: %s\n", c.Title)
	fmt.Fprintf(&b, "token: %s\n", maskToken(c.Token))
	return b.String()
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 7 {
		return token + "…"
	}
	return token[:7] + "…"
}

// GetConfigPath returns the default path for the config file
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home directory can't be determined
		return ".reade/config.json"
	}
	return filepath.Join(homeDir, ".reade", "config.json")
}

// GetCachePath returns the directory used for cached document renders.
func GetCachePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".reade", "cache")
	}
	return filepath.Join(homeDir, ".reade", "cache")
}
