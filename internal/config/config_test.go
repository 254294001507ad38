package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hookgate/hookgate/pkg/models"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Engine.FallbackToSequential {
		t.Error("fallback to sequential must default on")
	}
	if cfg.Engine.MaxParallel != 0 {
		t.Errorf("MaxParallel default = %d, want 0 (unbounded)", cfg.Engine.MaxParallel)
	}
	if cfg.Timeouts.Critical != 30*time.Second {
		t.Errorf("critical timeout default = %v, want 30s", cfg.Timeouts.Critical)
	}
	if cfg.Timeouts.Background != 120*time.Second {
		t.Errorf("background timeout default = %v, want 120s", cfg.Timeouts.Background)
	}
}

func TestTimeouts_ForTier(t *testing.T) {
	tc := TimeoutsConfig{
		Critical:   1 * time.Second,
		High:       2 * time.Second,
		Medium:     3 * time.Second,
		Low:        4 * time.Second,
		Background: 5 * time.Second,
	}

	tests := []struct {
		tier models.Tier
		want time.Duration
	}{
		{models.TierCritical, 1 * time.Second},
		{models.TierHigh, 2 * time.Second},
		{models.TierMedium, 3 * time.Second},
		{models.TierLow, 4 * time.Second},
		{models.TierBackground, 5 * time.Second},
		{models.Tier("unknown"), 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			if got := tc.ForTier(tt.tier); got != tt.want {
				t.Errorf("ForTier(%q) = %v, want %v", tt.tier, got, tt.want)
			}
		})
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
engine:
  fallback_to_sequential: false
  max_parallel: 4
  verbose: true
timeouts:
  critical: 10s
  medium: 45s
logging:
  debug_log: /tmp/hookgate-debug.log
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Engine.FallbackToSequential {
		t.Error("expected fallback disabled")
	}
	if cfg.Engine.MaxParallel != 4 {
		t.Errorf("MaxParallel = %d, want 4", cfg.Engine.MaxParallel)
	}
	if !cfg.Engine.Verbose {
		t.Error("expected verbose enabled")
	}
	if cfg.Timeouts.Critical != 10*time.Second {
		t.Errorf("critical timeout = %v, want 10s", cfg.Timeouts.Critical)
	}
	if cfg.Timeouts.Medium != 45*time.Second {
		t.Errorf("medium timeout = %v, want 45s", cfg.Timeouts.Medium)
	}
	// Unset keys keep their defaults.
	if cfg.Timeouts.Background != 120*time.Second {
		t.Errorf("background timeout = %v, want default 120s", cfg.Timeouts.Background)
	}
	if cfg.Logging.DebugLog != "/tmp/hookgate-debug.log" {
		t.Errorf("DebugLog = %q", cfg.Logging.DebugLog)
	}
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
