// Package invoker runs a single hook as an isolated child process and
// decodes its exit status into an outcome. Every failure mode is captured
// as data: Invoke never returns an error, because the scheduler's
// settle-all join depends on every invocation settling.
package invoker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/hookgate/hookgate/pkg/models"
)

// DefaultTimeout is used when neither the hook nor the engine specifies one.
const DefaultTimeout = 60 * time.Second

// DefaultGracePeriod is how long a timed-out process gets to exit after
// SIGTERM before it is killed.
const DefaultGracePeriod = 2 * time.Second

// Invoker runs one hook against one input payload and always settles with a
// result. Implementations backed by in-process functions may be substituted
// for testing without spawning real processes.
type Invoker interface {
	Invoke(ctx context.Context, hook models.Hook, payload []byte) models.ExecutionResult
}

// ProcessInvoker implements Invoker by spawning the hook's command through
// the shell. The child receives the payload as a single write on stdin and
// signals its verdict through its exit code: 0 = allow, 2 = block, anything
// else = failure.
type ProcessInvoker struct {
	defaultTimeout time.Duration
	gracePeriod    time.Duration
}

// NewProcessInvoker creates a ProcessInvoker. A non-positive defaultTimeout
// falls back to DefaultTimeout.
func NewProcessInvoker(defaultTimeout time.Duration) *ProcessInvoker {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultTimeout
	}
	return &ProcessInvoker{
		defaultTimeout: defaultTimeout,
		gracePeriod:    DefaultGracePeriod,
	}
}

// SetGracePeriod overrides the SIGTERM-to-SIGKILL escalation delay.
func (p *ProcessInvoker) SetGracePeriod(d time.Duration) {
	if d > 0 {
		p.gracePeriod = d
	}
}

// Invoke runs the hook and blocks until the invocation settles: clean exit,
// timeout, or spawn error. The returned result's duration covers spawn to
// settle. No process belonging to the invocation outlives this call.
func (p *ProcessInvoker) Invoke(ctx context.Context, hook models.Hook, payload []byte) models.ExecutionResult {
	start := time.Now()
	result := models.ExecutionResult{
		HookID: hook.ID,
		Tier:   hook.Tier,
		Family: hook.Family,
	}

	timeout := hook.Timeout()
	if timeout <= 0 {
		timeout = p.defaultTimeout
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command("sh", "-c", hook.Command)
	// The payload is written once and the stream closed; the child sees
	// exactly one JSON document, no streaming protocol.
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Own process group so termination reaches the shell's children too.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		result.Outcome = models.OutcomeFail
		result.Error = fmt.Sprintf("spawn failed: %v", err)
		result.DurationMs = time.Since(start).Milliseconds()
		return result
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case waitErr := <-done:
		result.Outcome, result.Error = decodeExit(waitErr, stderr.String())
	case <-timer.C:
		p.terminate(cmd, done)
		result.Outcome = models.OutcomeTimeout
		result.Error = fmt.Sprintf("timed out after %v", timeout)
	case <-ctx.Done():
		p.terminate(cmd, done)
		result.Outcome = models.OutcomeFail
		result.Error = fmt.Sprintf("cancelled: %v", ctx.Err())
	}

	result.Output = stdout.String()
	result.DurationMs = time.Since(start).Milliseconds()
	return result
}

// terminate sends SIGTERM to the process group, escalates to SIGKILL after
// the grace period, and reaps the process so nothing is left behind.
func (p *ProcessInvoker) terminate(cmd *exec.Cmd, done <-chan error) {
	pid := cmd.Process.Pid
	// Negative pid signals the whole group.
	_ = syscall.Kill(-pid, syscall.SIGTERM)

	select {
	case <-done:
		return
	case <-time.After(p.gracePeriod):
	}

	_ = syscall.Kill(-pid, syscall.SIGKILL)
	<-done
}

// decodeExit maps a Wait error to an outcome using the exit-code convention
// 0 = allow, 2 = block, anything else = failure. The convention is decoded
// only here; every other component works against the Outcome enum.
func decodeExit(waitErr error, stderr string) (models.Outcome, string) {
	stderr = strings.TrimSpace(stderr)

	if waitErr == nil {
		return models.OutcomeAllow, ""
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		if exitErr.ExitCode() == 2 {
			return models.OutcomeBlock, stderr
		}
		if stderr != "" {
			return models.OutcomeFail, fmt.Sprintf("exit code %d: %s", exitErr.ExitCode(), stderr)
		}
		return models.OutcomeFail, fmt.Sprintf("exit code %d", exitErr.ExitCode())
	}

	return models.OutcomeFail, waitErr.Error()
}

// Verify ProcessInvoker implements Invoker at compile time.
var _ Invoker = (*ProcessInvoker)(nil)
