package engine

import (
	"time"

	"github.com/hookgate/hookgate/internal/invoker"
)

// Options configures one engine instance. Environment toggles have no
// effect on the engine itself; callers resolve configuration and pass it
// here explicitly, so the engine stays reusable and testable in isolation.
type Options struct {
	// DefaultTimeout applies to hooks that specify no timeout of their own.
	DefaultTimeout time.Duration
	// FallbackToSequential replays the run one hook at a time when the
	// concurrent orchestration itself faults. When false, the fault
	// propagates to the caller instead.
	FallbackToSequential bool
	// Verbose enables per-hook debug logging.
	Verbose bool
	// MaxParallel caps concurrent invocations within a tier.
	// Zero means unbounded.
	MaxParallel int
}

// DefaultOptions returns the options used when the caller specifies nothing.
func DefaultOptions() Options {
	return Options{
		DefaultTimeout:       invoker.DefaultTimeout,
		FallbackToSequential: true,
	}
}
