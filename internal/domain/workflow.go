// Package domain implements module enumeration, generator invocation and the scan workflow.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"ghostscan.dev/pkg/ghostscan/internal/adapter"
	"ghostscan.dev/pkg/ghostscan/internal/controller"
	m "ghostscan.dev/pkg/ghostscan/internal/model"
	"ghostscan.dev/pkg/ghostscan/pkg"
)

// DefaultPython is the interpreter queried for the stdlib root.
const DefaultPython = "python3"

// ErrCommandNotFound is returned when the generator is not on PATH.
var ErrCommandNotFound = errors.New("generator command not found")

// ScanArgs contains the arguments for a scan.
type ScanArgs struct {
	// Root overrides stdlib discovery when set.
	Root        m.Path
	Python      string
	Command     string
	Timeout     time.Duration
	Threads     int
	Skip        []string
	Interactive bool
	Summary     bool
	SpillDir    string
}

// ListArgs contains the arguments for listing modules.
type ListArgs struct {
	Root   m.Path
	Python string
	Skip   []string
}

// Workflow defines the user-facing operations.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) error
	List(ctx context.Context, args ListArgs) error
}

type workflow struct {
	adapter.ModuleFSAdapter
	adapter.CommandRunnerAdapter
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.ModuleFSAdapter,
	runner adapter.CommandRunnerAdapter,
	ui controller.UI,
) Workflow {
	return &workflow{
		ModuleFSAdapter:      fsAdapter,
		CommandRunnerAdapter: runner,
		UI:                   ui,
	}
}

// Header returns the comment line printed before the module list.
func Header(command string) string {
	if command == "" {
		command = DefaultCommand
	}

	return fmt.Sprintf("# prints the names of modules for which `%s write` errors out", filepath.Base(command))
}

func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	command := args.Command
	if command == "" {
		command = DefaultCommand
	}

	if _, err := w.LookPath(command); err != nil {
		slog.Error("Generator command not found", "command", command, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrCommandNotFound, command, err)
	}

	root, err := w.resolveRoot(ctx, args.Root, args.Python)
	if err != nil {
		return err
	}

	threads := normalizeThreads(args.Threads)

	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.Start(scanCtx,
		controller.WithScanMode(),
		controller.WithInteractive(args.Interactive),
		controller.WithCancel(cancel),
	); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	w.DisplayHeader(scanCtx, Header(command))

	modules, err := w.collectModules(scanCtx, root, NewDenylist(args.Skip...), args.SpillDir)
	if err != nil {
		return fmt.Errorf("enumerate modules: %w", err)
	}

	defer func() { _ = modules.Close() }()

	w.DisplayModuleCount(scanCtx, int(modules.Len()))
	slog.Info("Starting scan",
		"root", root,
		"modules", modules.Len(),
		"threads", threads,
		"command", command,
		"timeout", args.Timeout)

	invoker := NewInvoker(w.CommandRunnerAdapter, command, args.Timeout)
	results, errs := w.invokeAll(scanCtx, modules, invoker, threads)

	var summary m.Summary

	for result := range results {
		summary.Add(result)
		w.DisplayResult(scanCtx, result)
	}

	if err := <-errs; err != nil {
		slog.Error("Scan aborted", "error", err, "completed", summary.Total)
		return fmt.Errorf("scan: %w", err)
	}

	slog.Info("Scan finished",
		"total", summary.Total,
		"passed", summary.Passed,
		"expected", summary.Expected,
		"unexpected", summary.Unexpected,
		"timedOut", summary.TimedOut)

	if args.Summary {
		w.DisplaySummary(scanCtx, summary)
	}

	return nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	var modules []m.Module

	root, err := w.resolveRoot(ctx, args.Root, args.Python)
	if err == nil {
		enumerated, errs := NewEnumerator(w.ModuleFSAdapter, NewDenylist(args.Skip...)).Enumerate(ctx, root)
		err = drain(enumerated, errs, func(module m.Module) error {
			modules = append(modules, module)
			return nil
		})
	}

	if displayErr := w.DisplayListing(ctx, modules, err); displayErr != nil {
		return fmt.Errorf("list modules: %w", displayErr)
	}

	return nil
}

// resolveRoot returns root, or the interpreter's stdlib directory when root is empty.
func (w *workflow) resolveRoot(ctx context.Context, root m.Path, python string) (m.Path, error) {
	if root == "" {
		if python == "" {
			python = DefaultPython
		}

		resolved, err := w.ResolveStdlibRoot(ctx, python)
		if err != nil {
			slog.Error("Failed to resolve stdlib root", "python", python, "error", err)
			return "", err
		}

		root = resolved
	}

	info, err := w.FileInfo(ctx, root)
	if err != nil {
		slog.Error("Stdlib root is not accessible", "root", root, "error", err)
		return "", fmt.Errorf("%w: %w", adapter.ErrRootNotFound, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", adapter.ErrRootNotFound, root)
	}

	return root, nil
}

// collectModules enumerates root into a spill so the total is known before
// any invocation starts.
func (w *workflow) collectModules(ctx context.Context, root m.Path, denylist Denylist, spillDir string) (pkg.FileSpill[m.Module], error) {
	spill, err := pkg.NewFileSpill[m.Module](spillDir)
	if err != nil {
		return nil, err
	}

	modules, errs := NewEnumerator(w.ModuleFSAdapter, denylist).Enumerate(ctx, root)
	if err := drain(modules, errs, spill.Append); err != nil {
		_ = spill.Close()
		return nil, err
	}

	slog.Debug("Buffered modules", "spill", spill.Path(), "modules", spill.Len())

	return spill, nil
}

// invokeAll runs invoker over every module with at most threads concurrent
// invocations. Results arrive in completion order. The error channel yields
// at most one error once the results channel is closed.
func (w *workflow) invokeAll(ctx context.Context, modules pkg.FileSpill[m.Module], invoker Invoker, threads int) (<-chan m.Result, <-chan error) {
	results := make(chan m.Result, threads)
	errs := make(chan error, 1)

	go func() {
		defer close(errs)
		defer close(results)

		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(threads)

		rangeErr := modules.Range(func(_ uint64, module m.Module) error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			group.Go(func() error {
				result, err := invoker.Write(groupCtx, module)
				if err != nil {
					return err
				}

				select {
				case <-groupCtx.Done():
					return groupCtx.Err()
				case results <- result:
				}

				return nil
			})

			return nil
		})

		err := group.Wait()
		if err == nil {
			err = rangeErr
		}

		if err != nil {
			errs <- err
		}
	}()

	return results, errs
}

func normalizeThreads(threads int) int {
	if threads <= 0 {
		return runtime.NumCPU()
	}

	return threads
}
