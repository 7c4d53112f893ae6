package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the process
// has been killed, so grandchildren holding stderr open cannot stall a worker.
const waitDelay = 2 * time.Second

// CommandOutput holds everything captured from a single command execution.
type CommandOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
	Duration time.Duration
}

// Failed reports whether the command did not finish with exit code zero.
func (o CommandOutput) Failed() bool {
	return o.TimedOut || o.ExitCode != 0
}

// CommandRunnerAdapter abstracts external process execution.
type CommandRunnerAdapter interface {
	// LookPath resolves an executable name the same way Run will.
	LookPath(name string) (string, error)

	// Run executes name with args, killing it once timeout elapses.
	// A non-zero exit or a timeout is reported through CommandOutput and
	// never as an error. The returned error is non-nil only when the
	// process could not be started or ctx itself was cancelled.
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) (CommandOutput, error)
}

// LocalCommandRunnerAdapter provides a concrete implementation using os/exec.
type LocalCommandRunnerAdapter struct{}

// NewLocalCommandRunnerAdapter constructs a LocalCommandRunnerAdapter.
func NewLocalCommandRunnerAdapter() *LocalCommandRunnerAdapter {
	return &LocalCommandRunnerAdapter{}
}

// LookPath resolves name using the PATH of the current process.
func (a *LocalCommandRunnerAdapter) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes the command and captures stdout and stderr separately.
func (a *LocalCommandRunnerAdapter) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (CommandOutput, error) {
	runCtx := ctx

	if timeout > 0 {
		var cancel context.CancelFunc

		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// #nosec G204 - the command name comes from local configuration
	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	output := CommandOutput{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if ctx.Err() != nil {
		return output, ctx.Err()
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		slog.Debug("Command timed out", "command", name, "args", args, "timeout", timeout)

		output.TimedOut = true
		output.ExitCode = -1

		return output, nil
	}

	if err == nil {
		return output, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		output.ExitCode = exitErr.ExitCode()
		return output, nil
	}

	if errors.Is(err, exec.ErrWaitDelay) {
		return output, nil
	}

	slog.Error("Failed to run command", "command", name, "args", args, "error", err)

	return output, fmt.Errorf("run %s: %w", name, err)
}
