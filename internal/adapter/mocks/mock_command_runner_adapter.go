// Package mocks provides testify mocks for the adapter interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ghostscan.dev/pkg/ghostscan/internal/adapter"
)

// MockCommandRunnerAdapter is a mock of adapter.CommandRunnerAdapter.
type MockCommandRunnerAdapter struct {
	mock.Mock
}

// NewMockCommandRunnerAdapter creates a mock and registers expectation checks on cleanup.
func NewMockCommandRunnerAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCommandRunnerAdapter {
	m := &MockCommandRunnerAdapter{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// LookPath provides a mock function.
func (m *MockCommandRunnerAdapter) LookPath(name string) (string, error) {
	ret := m.Called(name)

	return ret.String(0), ret.Error(1)
}

// Run provides a mock function.
func (m *MockCommandRunnerAdapter) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (adapter.CommandOutput, error) {
	callArgs := []interface{}{ctx, timeout, name}
	for _, arg := range args {
		callArgs = append(callArgs, arg)
	}

	ret := m.Called(callArgs...)

	var output adapter.CommandOutput
	if fn, ok := ret.Get(0).(func(context.Context, time.Duration, string, ...string) adapter.CommandOutput); ok {
		output = fn(ctx, timeout, name, args...)
	} else if ret.Get(0) != nil {
		output = ret.Get(0).(adapter.CommandOutput)
	}

	return output, ret.Error(1)
}
