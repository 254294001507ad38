package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hookgate/hookgate/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify hookgate configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/hookgate/config.yaml
Project-specific overrides can be placed in .hookgate.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("engine.fallback_to_sequential: %t\n", cfg.Engine.FallbackToSequential)
	fmt.Printf("engine.max_parallel: %d\n", cfg.Engine.MaxParallel)
	fmt.Printf("engine.verbose: %t\n", cfg.Engine.Verbose)
	fmt.Printf("timeouts.critical: %s\n", cfg.Timeouts.Critical)
	fmt.Printf("timeouts.high: %s\n", cfg.Timeouts.High)
	fmt.Printf("timeouts.medium: %s\n", cfg.Timeouts.Medium)
	fmt.Printf("timeouts.low: %s\n", cfg.Timeouts.Low)
	fmt.Printf("timeouts.background: %s\n", cfg.Timeouts.Background)
	fmt.Printf("logging.debug_log: %s\n", cfg.Logging.DebugLog)
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "engine.fallback_to_sequential":
		return strconv.FormatBool(cfg.Engine.FallbackToSequential), nil
	case "engine.max_parallel":
		return strconv.Itoa(cfg.Engine.MaxParallel), nil
	case "engine.verbose":
		return strconv.FormatBool(cfg.Engine.Verbose), nil
	case "timeouts.critical":
		return cfg.Timeouts.Critical.String(), nil
	case "timeouts.high":
		return cfg.Timeouts.High.String(), nil
	case "timeouts.medium":
		return cfg.Timeouts.Medium.String(), nil
	case "timeouts.low":
		return cfg.Timeouts.Low.String(), nil
	case "timeouts.background":
		return cfg.Timeouts.Background.String(), nil
	case "logging.debug_log":
		if cfg.Logging.DebugLog == "" {
			return "(not set)", nil
		}
		return cfg.Logging.DebugLog, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "engine.fallback_to_sequential":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for fallback_to_sequential: %w", err)
		}
		cfg.Engine.FallbackToSequential = b
	case "engine.max_parallel":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_parallel: %w", err)
		}
		if n < 0 {
			return fmt.Errorf("max_parallel must be >= 0")
		}
		cfg.Engine.MaxParallel = n
	case "engine.verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for verbose: %w", err)
		}
		cfg.Engine.Verbose = b
	case "timeouts.critical":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for timeouts.critical: %w", err)
		}
		cfg.Timeouts.Critical = d
	case "timeouts.high":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for timeouts.high: %w", err)
		}
		cfg.Timeouts.High = d
	case "timeouts.medium":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for timeouts.medium: %w", err)
		}
		cfg.Timeouts.Medium = d
	case "timeouts.low":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for timeouts.low: %w", err)
		}
		cfg.Timeouts.Low = d
	case "timeouts.background":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for timeouts.background: %w", err)
		}
		cfg.Timeouts.Background = d
	case "logging.debug_log":
		cfg.Logging.DebugLog = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
