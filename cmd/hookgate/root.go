package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hookgate",
	Short: "Priority-tiered validation hook runner",
	Long: `Hookgate runs validation hooks as external processes, grouped into
priority tiers. Hooks inside a tier run concurrently; tiers run in
strict precedence order. A block verdict from a critical or high hook
stops every later tier.

Each hook receives the run's input document as JSON on stdin and
answers through its exit code:
  0  allow
  2  block (veto the run)
  anything else counts as a hook failure, not a veto

The run summary is written to stdout as JSON. The process exit code
reports the verdict: 0 clean, 2 blocked, 1 when any hook failed or
timed out.`,
	SilenceUsage: true,
}

// exitStatus carries the run verdict out of the command handlers so
// deferred cleanup still runs before the process exits.
var exitStatus int

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitStatus)
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}
