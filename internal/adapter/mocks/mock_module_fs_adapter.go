package mocks

import (
	"context"
	"os"

	"github.com/stretchr/testify/mock"

	"ghostscan.dev/pkg/ghostscan/internal/adapter"
	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

// MockModuleFSAdapter is a mock of adapter.ModuleFSAdapter.
type MockModuleFSAdapter struct {
	mock.Mock
}

// NewMockModuleFSAdapter creates a mock and registers expectation checks on cleanup.
func NewMockModuleFSAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockModuleFSAdapter {
	mk := &MockModuleFSAdapter{}
	mk.Test(t)

	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Walk provides a mock function.
func (mk *MockModuleFSAdapter) Walk(ctx context.Context, root m.Path, fn adapter.FilepathWalkFunc) error {
	ret := mk.Called(ctx, root, fn)

	return ret.Error(0)
}

// FileInfo provides a mock function.
func (mk *MockModuleFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	ret := mk.Called(ctx, path)

	info, _ := ret.Get(0).(os.FileInfo)

	return info, ret.Error(1)
}

// RelPath provides a mock function.
func (mk *MockModuleFSAdapter) RelPath(ctx context.Context, base, target m.Path) (m.Path, error) {
	ret := mk.Called(ctx, base, target)

	return ret.Get(0).(m.Path), ret.Error(1)
}

// ResolveStdlibRoot provides a mock function.
func (mk *MockModuleFSAdapter) ResolveStdlibRoot(ctx context.Context, python string) (m.Path, error) {
	ret := mk.Called(ctx, python)

	return ret.Get(0).(m.Path), ret.Error(1)
}
