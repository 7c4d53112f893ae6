// Package adapter contains filesystem and process adapters used by the scan pipeline.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

// ErrRootNotFound is returned when the standard-library root cannot be located.
var ErrRootNotFound = errors.New("standard library root not found")

// stdlibQuery prints the directory the interpreter loads its standard library from.
const stdlibQuery = "import sysconfig; print(sysconfig.get_paths()['stdlib'])"

const resolveTimeout = 30 * time.Second

// ModuleFSAdapter abstracts filesystem-specific operations the domain layer
// relies on when enumerating modules. It hides direct `os` access so the
// enumeration logic can be tested against temporary trees.
type ModuleFSAdapter interface {
	// Walk traverses root recursively, calling fn for every entry.
	Walk(ctx context.Context, root m.Path, fn FilepathWalkFunc) error

	// FileInfo returns metadata for a path.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// RelPath returns the relative path from base to target.
	RelPath(ctx context.Context, base, target m.Path) (m.Path, error)

	// ResolveStdlibRoot asks the given interpreter for its standard-library directory.
	ResolveStdlibRoot(ctx context.Context, python string) (m.Path, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalModuleFSAdapter is the os-backed ModuleFSAdapter.
type LocalModuleFSAdapter struct {
	runner CommandRunnerAdapter
}

// NewLocalModuleFSAdapter constructs a LocalModuleFSAdapter. The runner is
// used to query the interpreter during root discovery.
func NewLocalModuleFSAdapter(runner CommandRunnerAdapter) *LocalModuleFSAdapter {
	return &LocalModuleFSAdapter{runner: runner}
}

// Walk iterates over every file and directory under root. A root that is a
// symlink is followed; paths handed to fn stay under root as given.
func (a *LocalModuleFSAdapter) Walk(ctx context.Context, root m.Path, fn FilepathWalkFunc) error {
	walkRoot := string(root)

	resolved, err := filepath.EvalSymlinks(walkRoot)
	if err == nil {
		walkRoot = resolved
	}

	return filepath.Walk(walkRoot, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		return fn(underRoot(string(root), walkRoot, path), info, err)
	})
}

// underRoot rebases path from walkRoot onto root.
func underRoot(root, walkRoot, path string) string {
	if walkRoot == root {
		return path
	}

	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return path
	}

	if rel == "." {
		return root
	}

	return filepath.Join(root, rel)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalModuleFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// RelPath returns the relative path from base to target.
func (a *LocalModuleFSAdapter) RelPath(ctx context.Context, base, target m.Path) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// ResolveStdlibRoot runs `python -c <query>` and returns the printed directory.
func (a *LocalModuleFSAdapter) ResolveStdlibRoot(ctx context.Context, python string) (m.Path, error) {
	output, err := a.runner.Run(ctx, resolveTimeout, python, "-c", stdlibQuery)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRootNotFound, err)
	}

	if output.Failed() {
		return "", fmt.Errorf("%w: %s exited with %d: %s", ErrRootNotFound, python, output.ExitCode, strings.TrimSpace(output.Stderr))
	}

	root := strings.TrimSpace(output.Stdout)
	if root == "" {
		return "", fmt.Errorf("%w: %s printed no path", ErrRootNotFound, python)
	}

	return m.Path(root), nil
}
