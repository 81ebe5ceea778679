package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format   string `mapstructure:"format"`
	Quiet    bool   `mapstructure:"quiet"`
	Verbose  bool   `mapstructure:"verbose"`
	Ros2Path string `mapstructure:"ros2_path"`

	// Wait budgets for service calls
	Timeouts TimeoutsConfig `mapstructure:"timeouts"`
}

// TimeoutsConfig holds the wait budgets as duration strings ("1s", "500ms")
type TimeoutsConfig struct {
	// AttemptWait bounds one service-readiness probe
	AttemptWait string `mapstructure:"attempt_wait"`
	// MaxWait bounds the total readiness wait before a node is reported unavailable
	MaxWait string `mapstructure:"max_wait"`
	// Call bounds the wait for an in-flight call
	Call string `mapstructure:"call"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:   "text",
		Quiet:    false,
		Verbose:  false,
		Ros2Path: "ros2",
		Timeouts: TimeoutsConfig{
			AttemptWait: "1s",
			MaxWait:     "30s",
			Call:        "2s",
		},
	}
}

// AttemptWait returns the parsed per-probe budget, falling back to the
// default on a malformed value.
func (c *Config) AttemptWait() time.Duration {
	return parseDuration(c.Timeouts.AttemptWait, time.Second)
}

// MaxWait returns the parsed total readiness budget.
func (c *Config) MaxWait() time.Duration {
	return parseDuration(c.Timeouts.MaxWait, 30*time.Second)
}

// CallTimeout returns the parsed in-flight call budget.
func (c *Config) CallTimeout() time.Duration {
	return parseDuration(c.Timeouts.Call, 2*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.rlc.yaml or ./.rlc.yml
// 2. ~/.rlc.yaml or ~/.rlc.yml
// 3. $XDG_CONFIG_HOME/rlc/config.yaml (or ~/.config/rlc/config.yaml)
// 4. /etc/rlc/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}

		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	applyEnvOverrides(cfg)

	return cfg, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".rlc.yaml", ".rlc.yml", "rlc.yaml", "rlc.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	// Search locations in order of precedence (highest first)
	var searchPaths []string

	cwd, err := os.Getwd()
	if err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "rlc"))
	}
	searchPaths = append(searchPaths, "/etc/rlc")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RLC_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("RLC_ROS2_PATH"); v != "" {
		cfg.Ros2Path = v
	}
	if v := os.Getenv("RLC_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("RLC_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("RLC_CALL_TIMEOUT"); v != "" {
		cfg.Timeouts.Call = v
	}
	if v := os.Getenv("RLC_MAX_WAIT"); v != "" {
		cfg.Timeouts.MaxWait = v
	}
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
