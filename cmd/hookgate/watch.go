package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hookgate/hookgate/internal/classify"
	"github.com/hookgate/hookgate/internal/config"
	"github.com/hookgate/hookgate/internal/engine"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <manifest>",
	Short: "Re-run hooks whenever the manifest changes",
	Long: `Watch a manifest file and re-run its hooks on every change.

Each run's summary is written to stdout as a JSON line. The watch loop
runs until interrupted; the process exit code does not carry the last
run's verdict.

Rapid consecutive writes (editor save sequences) are coalesced into a
single run.`,
	Args: cobra.ExactArgs(1),
	RunE: watchManifest,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "Quiet period before re-running after a change")
	watchCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print per-hook progress to stderr")
}

func watchManifest(cmd *cobra.Command, args []string) error {
	manifestPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving manifest path: %w", err)
	}
	if _, err := os.Stat(manifestPath); err != nil {
		return fmt.Errorf("manifest not found: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opts := optionsFromConfig(cfg)
	if runVerbose {
		opts.Verbose = true
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors typically replace the
	// file on save, which drops a direct file watch.
	if err := watcher.Add(filepath.Dir(manifestPath)); err != nil {
		return fmt.Errorf("watch manifest directory: %w", err)
	}

	e := engine.New(opts)

	fmt.Fprintf(os.Stderr, "Watching %s\n", manifestPath)
	if err := runOnce(ctx, e, cfg.Timeouts, manifestPath); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("✗"), err)
	}

	var debounce *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != manifestPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-pending:
			if err := runOnce(ctx, e, cfg.Timeouts, manifestPath); err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("✗"), err)
			}
		}
	}
}

// runOnce loads the manifest and executes a single run, writing the
// summary as one JSON line.
func runOnce(ctx context.Context, e *engine.Engine, tc config.TimeoutsConfig, manifestPath string) error {
	manifest, err := ReadManifest(manifestPath)
	if err != nil {
		return err
	}

	hooks := applyTierTimeouts(classify.ClassifyAll(manifest.Hooks), tc)
	summary, err := e.Execute(ctx, hooks, manifest.Data)
	if err != nil {
		return fmt.Errorf("execute hooks: %w", err)
	}

	if runVerbose {
		printSummary(os.Stderr, summary)
	}
	return json.NewEncoder(os.Stdout).Encode(summary)
}
