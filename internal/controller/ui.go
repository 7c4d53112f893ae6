// Package controller provides output adapters for displaying scan results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"

	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeScan StartMode = iota
	ModeList
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode        StartMode
	interactive bool
	cancel      context.CancelFunc
}

// WithScanMode sets the UI to scan mode.
func WithScanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeScan
	}
}

// WithListMode sets the UI to listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithInteractive requests the interactive view when the terminal allows it.
func WithInteractive(interactive bool) StartOption {
	return func(c *StartConfig) {
		c.interactive = interactive
	}
}

// WithCancel lets an interactive UI abort the scan when the user quits.
func WithCancel(cancel context.CancelFunc) StartOption {
	return func(c *StartConfig) {
		c.cancel = cancel
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	var cfg StartConfig
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// UI defines how scan progress and results reach the user.
// Implementations can use different output methods (plain text, TUI).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayHeader(ctx context.Context, header string)
	DisplayModuleCount(ctx context.Context, total int)
	DisplayResult(ctx context.Context, result m.Result)
	DisplaySummary(ctx context.Context, summary m.Summary)
	DisplayListing(ctx context.Context, modules []m.Module, err error) error
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
