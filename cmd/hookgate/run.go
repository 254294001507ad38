package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hookgate/hookgate/internal/classify"
	"github.com/hookgate/hookgate/internal/config"
	"github.com/hookgate/hookgate/internal/engine"
	"github.com/hookgate/hookgate/pkg/models"
)

var (
	runTimeoutMs   int
	runNoFallback  bool
	runVerbose     bool
	runMaxParallel int
	runDebugLog    string
	runPretty      bool
)

var runCmd = &cobra.Command{
	Use:   "run <manifest>",
	Short: "Run the hooks described by a manifest",
	Long: `Run every hook in the manifest against its input document.

The manifest names the hooks (with tier, family, command, timeout) and
the data document serialized as JSON onto each hook's stdin. Use "-" as
the manifest path to read a JSON manifest from stdin:

  hookgate run checks.yaml
  cat checks.json | hookgate run -

Hooks run concurrently inside each tier; tiers run in precedence order
(critical, high, medium, low, background). A block from a critical or
high hook stops the run before later tiers start. Blocks from lower
tiers are recorded but do not stop anything.

The run summary is written to stdout as JSON. Exit codes:
  0  all hooks allowed
  2  at least one hook blocked
  1  no blocks, but a hook failed or timed out`,
	Args: cobra.ExactArgs(1),
	RunE: runHooks,
}

func init() {
	runCmd.Flags().IntVar(&runTimeoutMs, "timeout", 0, "Default hook timeout in milliseconds (overrides config)")
	runCmd.Flags().BoolVar(&runNoFallback, "no-fallback", false, "Fail on orchestration faults instead of retrying sequentially")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print per-hook progress to stderr")
	runCmd.Flags().IntVar(&runMaxParallel, "max-parallel", 0, "Cap concurrent hooks per tier (0 = unbounded)")
	runCmd.Flags().StringVar(&runDebugLog, "debug-log", "", "Write engine debug output to this file")
	runCmd.Flags().BoolVar(&runPretty, "pretty", false, "Indent the summary JSON")
}

func runHooks(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	manifest, err := ReadManifest(args[0])
	if err != nil {
		return err
	}

	opts := optionsFromConfig(cfg)
	if cmd.Flags().Changed("timeout") {
		opts.DefaultTimeout = time.Duration(runTimeoutMs) * time.Millisecond
	}
	if cmd.Flags().Changed("max-parallel") {
		opts.MaxParallel = runMaxParallel
	}
	if runNoFallback {
		opts.FallbackToSequential = false
	}
	if runVerbose {
		opts.Verbose = true
	}

	debugLogPath := cfg.Logging.DebugLog
	if runDebugLog != "" {
		debugLogPath = runDebugLog
	}
	if debugLogPath != "" {
		logger, err := engine.NewDebugLogger(debugLogPath)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer logger.Close()
		engine.SetDebugLogger(logger)
		defer engine.SetDebugLogger(nil)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt, terminating hooks...")
		cancel()
	}()

	hooks := classify.ClassifyAll(manifest.Hooks)
	// An explicit --timeout flag overrides the configured per-tier
	// defaults; otherwise hooks without their own timeout_ms inherit the
	// default for their tier.
	if !cmd.Flags().Changed("timeout") {
		hooks = applyTierTimeouts(hooks, cfg.Timeouts)
	}

	e := engine.New(opts)
	summary, err := e.Execute(ctx, hooks, manifest.Data)
	if err != nil {
		return fmt.Errorf("execute hooks: %w", err)
	}

	if opts.Verbose {
		printSummary(os.Stderr, summary)
	}

	enc := json.NewEncoder(os.Stdout)
	if runPretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	exitStatus = exitCode(summary)
	return nil
}

// optionsFromConfig maps loaded configuration onto engine options. The
// engine takes one default timeout, so the medium-tier default stands in
// for hooks with no timeout of their own.
func optionsFromConfig(cfg *config.Config) engine.Options {
	opts := engine.DefaultOptions()
	if cfg.Timeouts.Medium > 0 {
		opts.DefaultTimeout = cfg.Timeouts.Medium
	}
	opts.FallbackToSequential = cfg.Engine.FallbackToSequential
	opts.MaxParallel = cfg.Engine.MaxParallel
	opts.Verbose = cfg.Engine.Verbose
	return opts
}

// applyTierTimeouts fills each hook's missing timeout from the configured
// default for its tier. A hook's own timeout_ms always wins.
func applyTierTimeouts(hooks []models.Hook, tc config.TimeoutsConfig) []models.Hook {
	for i, h := range hooks {
		if h.TimeoutMs != 0 {
			continue
		}
		if d := tc.ForTier(h.Tier); d > 0 {
			hooks[i].TimeoutMs = int(d.Milliseconds())
		}
	}
	return hooks
}

// exitCode maps the run verdict onto the process exit code.
// A block outranks a degradation.
func exitCode(summary models.RunSummary) int {
	switch {
	case summary.Blocked:
		return 2
	case summary.Degraded():
		return 1
	default:
		return 0
	}
}

func printSummary(w *os.File, summary models.RunSummary) {
	for _, res := range summary.Results {
		printOutcome(w, res)
	}

	fmt.Fprintf(w, "\nRun %s: %d hook(s), longest hook %dms (efficiency %.2fx)\n",
		summary.RunID, len(summary.Results), summary.MaxDurationMs, summary.ParallelEfficiency)

	switch {
	case summary.Blocked:
		fmt.Fprintf(w, "%s run blocked\n", color.RedString("✗"))
	case summary.Degraded():
		fmt.Fprintf(w, "%s run degraded (hook failures or timeouts)\n", color.YellowString("⚠"))
	default:
		fmt.Fprintf(w, "%s all hooks allowed\n", color.GreenString("✓"))
	}
}

func printOutcome(w *os.File, res models.ExecutionResult) {
	var symbol string
	switch res.Outcome {
	case models.OutcomeAllow:
		symbol = color.GreenString("✓")
	case models.OutcomeBlock:
		symbol = color.RedString("✗")
	case models.OutcomeTimeout:
		symbol = color.YellowString("⏱")
	default:
		symbol = color.YellowString("⚠")
	}
	fmt.Fprintf(w, "  %s [%s] %s: %s (%dms)\n", symbol, res.Tier, res.HookID, res.Outcome, res.DurationMs)
}
