package controller

import (
	"context"
	"sync"

	"github.com/spf13/cobra"

	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

// selectingUI picks the plain or interactive implementation on Start.
type selectingUI struct {
	cmd   *cobra.Command
	isTTY bool

	mu     sync.Mutex
	simple *SimpleUI
	active UI
}

// NewUI returns a UI that renders the interactive view only when it is
// requested through WithInteractive and isTTY reports a terminal.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	simple := NewSimpleUI(cmd)

	return &selectingUI{cmd: cmd, isTTY: isTTY, simple: simple, active: simple}
}

func (s *selectingUI) current() UI {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active
}

func (s *selectingUI) Start(ctx context.Context, options ...StartOption) error {
	cfg := newStartConfig(options...)

	var active UI = s.simple
	if cfg.interactive && cfg.mode == ModeScan && s.isTTY {
		active = NewTUI(s.cmd.ErrOrStderr(), s.cmd.OutOrStdout(), s.simple)
	}

	s.mu.Lock()
	s.active = active
	s.mu.Unlock()

	return active.Start(ctx, options...)
}

func (s *selectingUI) Close(ctx context.Context) {
	s.current().Close(ctx)
}

func (s *selectingUI) DisplayHeader(ctx context.Context, header string) {
	s.current().DisplayHeader(ctx, header)
}

func (s *selectingUI) DisplayModuleCount(ctx context.Context, total int) {
	s.current().DisplayModuleCount(ctx, total)
}

func (s *selectingUI) DisplayResult(ctx context.Context, result m.Result) {
	s.current().DisplayResult(ctx, result)
}

func (s *selectingUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	s.current().DisplaySummary(ctx, summary)
}

func (s *selectingUI) DisplayListing(ctx context.Context, modules []m.Module, err error) error {
	return s.current().DisplayListing(ctx, modules, err)
}
