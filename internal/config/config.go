// Package config handles configuration loading for hookgate.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/hookgate/hookgate/pkg/models"
)

// Config holds all configuration for hookgate.
type Config struct {
	Engine   EngineConfig   `mapstructure:"engine"`
	Timeouts TimeoutsConfig `mapstructure:"timeouts"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// EngineConfig holds scheduling settings.
type EngineConfig struct {
	// FallbackToSequential replays a run one hook at a time when the
	// concurrent orchestration faults.
	FallbackToSequential bool `mapstructure:"fallback_to_sequential"`
	// MaxParallel caps concurrent hooks per tier; zero is unbounded.
	MaxParallel int `mapstructure:"max_parallel"`
	// Verbose enables per-hook debug logging.
	Verbose bool `mapstructure:"verbose"`
}

// TimeoutsConfig holds default timeout settings per tier, applied to hooks
// that specify no timeout of their own.
type TimeoutsConfig struct {
	Critical   time.Duration `mapstructure:"critical"`
	High       time.Duration `mapstructure:"high"`
	Medium     time.Duration `mapstructure:"medium"`
	Low        time.Duration `mapstructure:"low"`
	Background time.Duration `mapstructure:"background"`
}

// ForTier returns the default timeout for the given tier.
func (tc TimeoutsConfig) ForTier(tier models.Tier) time.Duration {
	switch tier {
	case models.TierCritical:
		return tc.Critical
	case models.TierHigh:
		return tc.High
	case models.TierLow:
		return tc.Low
	case models.TierBackground:
		return tc.Background
	default:
		return tc.Medium
	}
}

// LoggingConfig holds debug log settings.
type LoggingConfig struct {
	// DebugLog is the path of the engine debug log. Empty disables it.
	DebugLog string `mapstructure:"debug_log"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			FallbackToSequential: true,
		},
		Timeouts: TimeoutsConfig{
			Critical:   30 * time.Second,
			High:       30 * time.Second,
			Medium:     60 * time.Second,
			Low:        60 * time.Second,
			Background: 120 * time.Second,
		},
	}
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (HOOKGATE_*)
// 2. Project config (.hookgate.yaml in current directory or parent)
// 3. User config (~/.config/hookgate/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			// Merge project config (takes precedence)
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	// Environment variable overrides
	v.AutomaticEnv()
	v.SetEnvPrefix("HOOKGATE")

	v.BindEnv("engine.verbose", "HOOKGATE_VERBOSE")
	v.BindEnv("logging.debug_log", "HOOKGATE_DEBUG_LOG")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Logging.DebugLog = os.ExpandEnv(cfg.Logging.DebugLog)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Logging.DebugLog = os.ExpandEnv(cfg.Logging.DebugLog)

	return cfg, nil
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("engine.fallback_to_sequential", cfg.Engine.FallbackToSequential)
	v.Set("engine.max_parallel", cfg.Engine.MaxParallel)
	v.Set("engine.verbose", cfg.Engine.Verbose)
	v.Set("timeouts.critical", cfg.Timeouts.Critical.String())
	v.Set("timeouts.high", cfg.Timeouts.High.String())
	v.Set("timeouts.medium", cfg.Timeouts.Medium.String())
	v.Set("timeouts.low", cfg.Timeouts.Low.String())
	v.Set("timeouts.background", cfg.Timeouts.Background.String())
	v.Set("logging.debug_log", cfg.Logging.DebugLog)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.fallback_to_sequential", true)
	v.SetDefault("engine.max_parallel", 0)
	v.SetDefault("engine.verbose", false)

	v.SetDefault("timeouts.critical", "30s")
	v.SetDefault("timeouts.high", "30s")
	v.SetDefault("timeouts.medium", "60s")
	v.SetDefault("timeouts.low", "60s")
	v.SetDefault("timeouts.background", "120s")

	v.SetDefault("logging.debug_log", "")
}

// getUserConfigDir returns the XDG config directory for hookgate.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "hookgate")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "hookgate")
	}
	return filepath.Join(home, ".config", "hookgate")
}

// findProjectConfig searches for .hookgate.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".hookgate.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
