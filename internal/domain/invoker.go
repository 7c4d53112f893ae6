package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ghostscan.dev/pkg/ghostscan/internal/adapter"
	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

const (
	// DefaultCommand is the generator under test.
	DefaultCommand = "hypothesis"
	// DefaultTimeout bounds a single generator invocation.
	DefaultTimeout = 10 * time.Second

	writeSubcommand = "write"
)

// Invoker runs the generator against a single module.
type Invoker interface {
	// Write runs `<command> write <module>` once and classifies the outcome.
	// Failures of the generator are part of the Result; the error is reserved
	// for the command not starting at all or ctx being cancelled.
	Write(ctx context.Context, module m.Module) (m.Result, error)
}

type invoker struct {
	adapter.CommandRunnerAdapter
	command string
	timeout time.Duration
}

// NewInvoker creates an Invoker. Empty command and non-positive timeout fall
// back to DefaultCommand and DefaultTimeout.
func NewInvoker(runner adapter.CommandRunnerAdapter, command string, timeout time.Duration) Invoker {
	if command == "" {
		command = DefaultCommand
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &invoker{
		CommandRunnerAdapter: runner,
		command:              command,
		timeout:              timeout,
	}
}

func (i *invoker) Write(ctx context.Context, module m.Module) (m.Result, error) {
	output, err := i.Run(ctx, i.timeout, i.command, writeSubcommand, module.Name)
	if err != nil {
		return m.Result{Module: module}, fmt.Errorf("write %s: %w", module.Name, err)
	}

	result := m.Result{
		Module:   module,
		Outcome:  Classify(output),
		ExitCode: output.ExitCode,
		TimedOut: output.TimedOut,
		Stderr:   output.Stderr,
		Duration: output.Duration,
	}

	slog.Debug("Invoked generator",
		"module", module.Name,
		"outcome", result.Outcome,
		"exitCode", result.ExitCode,
		"timedOut", result.TimedOut,
		"duration", result.Duration)

	if result.Reported() {
		slog.Info("Unexpected generator failure", "module", module.Name, "stderr", lastLine(output.Stderr))
	}

	return result, nil
}

// lastLine returns the last non-empty line of s, which for a Python
// traceback is the exception itself.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for idx := len(lines) - 1; idx >= 0; idx-- {
		if line := strings.TrimSpace(lines[idx]); line != "" {
			return line
		}
	}

	return ""
}
