package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ghostscan.dev/pkg/ghostscan/internal/adapter"
	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

const (
	sourceSuffix         = ".py"
	installedPackagesDir = "site-packages."
)

// packageMarkers are source files that never name an importable module of their own.
var packageMarkers = map[string]bool{
	"__init__.py": true,
	"__main__.py": true,
}

// ModuleName derives a dotted module name from a path relative to the
// stdlib root. It returns false for non-source files and package markers.
func ModuleName(rel m.Path) (string, bool) {
	slashed := filepath.ToSlash(string(rel))
	base := slashed[strings.LastIndex(slashed, "/")+1:]

	if !strings.HasSuffix(base, sourceSuffix) || packageMarkers[base] {
		return "", false
	}

	name := strings.TrimSuffix(slashed, sourceSuffix)
	name = strings.ReplaceAll(name, "/", ".")
	name = strings.TrimPrefix(name, installedPackagesDir)

	return name, true
}

// Enumerator streams the modules found under a stdlib root.
type Enumerator interface {
	// Enumerate walks root and sends every admissible module. Both channels
	// are closed when the walk ends; at most one error is sent.
	Enumerate(ctx context.Context, root m.Path) (<-chan m.Module, <-chan error)
}

type enumerator struct {
	adapter.ModuleFSAdapter
	denylist Denylist
}

// NewEnumerator creates an Enumerator that filters names through denylist.
func NewEnumerator(fsAdapter adapter.ModuleFSAdapter, denylist Denylist) Enumerator {
	return &enumerator{
		ModuleFSAdapter: fsAdapter,
		denylist:        denylist,
	}
}

func (e *enumerator) Enumerate(ctx context.Context, root m.Path) (<-chan m.Module, <-chan error) {
	modules := make(chan m.Module)
	errs := make(chan error, 1)

	go func() {
		defer close(errs)
		defer close(modules)

		err := e.Walk(ctx, root, func(path string, info os.FileInfo, walkErr error) error {
			return e.visit(ctx, root, path, info, walkErr, modules)
		})
		if err != nil {
			slog.Error("Failed to enumerate modules", "root", root, "error", err)
			errs <- fmt.Errorf("enumerate %s: %w", root, err)
		}
	}()

	return modules, errs
}

func (e *enumerator) visit(ctx context.Context, root m.Path, path string, info os.FileInfo, walkErr error, out chan<- m.Module) error {
	if walkErr != nil {
		if path == string(root) {
			return walkErr
		}

		// Unreadable entries below the root are skipped, not fatal.
		slog.Warn("Skipping unreadable path", "path", path, "error", walkErr)

		if info != nil && info.IsDir() {
			return filepath.SkipDir
		}

		return nil
	}

	if info.IsDir() {
		return nil
	}

	rel, err := e.RelPath(ctx, root, m.Path(path))
	if err != nil {
		return err
	}

	name, ok := ModuleName(rel)
	if !ok {
		return nil
	}

	if entry, denied := e.denylist.Match(name); denied {
		slog.Debug("Skipping denylisted module", "module", name, "entry", entry)
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case out <- m.Module{Name: name, Path: m.Path(path)}:
	}

	return nil
}

// drain collects every module from Enumerate, returning the walk error if any.
func drain(modules <-chan m.Module, errs <-chan error, fn func(m.Module) error) error {
	var fnErr error

	for module := range modules {
		if fnErr != nil {
			continue
		}

		fnErr = fn(module)
	}

	walkErr := <-errs

	return errors.Join(fnErr, walkErr)
}
