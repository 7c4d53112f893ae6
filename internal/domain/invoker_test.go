package domain_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ghostscan.dev/pkg/ghostscan/internal/adapter"
	adaptermocks "ghostscan.dev/pkg/ghostscan/internal/adapter/mocks"
	"ghostscan.dev/pkg/ghostscan/internal/domain"
	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

func TestInvoker_Write_Classification(t *testing.T) {
	tests := []struct {
		name         string
		output       adapter.CommandOutput
		wantOutcome  m.Outcome
		wantReported bool
	}{
		{"exit zero", adapter.CommandOutput{}, m.Passed, false},
		{"failed to import", adapter.CommandOutput{ExitCode: 1, Stderr: "Error: Failed to import `x`"}, m.Expected, false},
		{"unrelated failure", adapter.CommandOutput{ExitCode: 1, Stderr: "KeyError: 'y'"}, m.Unexpected, true},
		{"timeout", adapter.CommandOutput{ExitCode: -1, TimedOut: true}, m.Unexpected, true},
		{"timeout with marker", adapter.CommandOutput{ExitCode: -1, TimedOut: true, Stderr: "Error: Found the 'x'"}, m.Expected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			runner := adaptermocks.NewMockCommandRunnerAdapter(t)
			runner.On("Run", ctx, 10*time.Second, "hypothesis", "write", "json.tool").Return(tt.output, nil).Once()

			invoker := domain.NewInvoker(runner, "", 0)
			module := m.Module{Name: "json.tool", Path: "/lib/json/tool.py"}

			result, err := invoker.Write(ctx, module)
			require.NoError(t, err)

			assert.Equal(t, module, result.Module)
			assert.Equal(t, tt.wantOutcome, result.Outcome)
			assert.Equal(t, tt.wantReported, result.Reported())
			assert.Equal(t, tt.output.TimedOut, result.TimedOut)
			assert.Equal(t, tt.output.ExitCode, result.ExitCode)
		})
	}
}

func TestInvoker_Write_StartFailure(t *testing.T) {
	runner := adaptermocks.NewMockCommandRunnerAdapter(t)
	startErr := errors.New("permission denied")
	runner.On("Run", mock.Anything, 3*time.Second, "gen", "write", "abc").Return(adapter.CommandOutput{}, startErr).Once()

	invoker := domain.NewInvoker(runner, "gen", 3*time.Second)

	result, err := invoker.Write(context.Background(), m.Module{Name: "abc"})
	require.ErrorIs(t, err, startErr)
	assert.Equal(t, "abc", result.Module.Name)
}

// fakeGenerator writes a shell script standing in for `hypothesis` that
// behaves according to the module name it is asked to write.
func fakeGenerator(t *testing.T) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}

	script := `#!/bin/sh
[ "$1" = "write" ] || { echo "usage" >&2; exit 64; }
case "$2" in
  ok*) echo "def test_ok(): pass" ;;
  missing*) echo "Error: Failed to import $2" >&2; exit 1 ;;
  weird*) echo "Error: Found the '$2' module, but it has no public functions" >&2; exit 1 ;;
  slowmarker*) echo "Error: Failed to import $2" >&2; exec sleep 5 ;;
  slow*) exec sleep 5 ;;
  *) echo "Traceback (most recent call last):" >&2; echo "TypeError: $2" >&2; exit 1 ;;
esac
`

	path := filepath.Join(t.TempDir(), "hypothesis")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	return path
}

func TestInvoker_Write_RealProcess(t *testing.T) {
	command := fakeGenerator(t)
	invoker := domain.NewInvoker(adapter.NewLocalCommandRunnerAdapter(), command, 300*time.Millisecond)

	tests := []struct {
		module       string
		wantOutcome  m.Outcome
		wantTimedOut bool
	}{
		{"ok.mod", m.Passed, false},
		{"missing.mod", m.Expected, false},
		{"weird.mod", m.Expected, false},
		{"broken.mod", m.Unexpected, false},
		{"slow.mod", m.Unexpected, true},
		{"slowmarker.mod", m.Expected, true},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			result, err := invoker.Write(context.Background(), m.Module{Name: tt.module})
			require.NoError(t, err)

			assert.Equal(t, tt.wantOutcome, result.Outcome)
			assert.Equal(t, tt.wantTimedOut, result.TimedOut)
			assert.Equal(t, tt.module, result.Module.Name)
		})
	}
}
