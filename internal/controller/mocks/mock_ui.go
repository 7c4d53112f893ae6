// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ghostscan.dev/pkg/ghostscan/internal/controller"
	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

// MockUI is a mock of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a mock and registers expectation checks on cleanup.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mk := &MockUI{}
	mk.Test(t)

	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Start provides a mock function. Options are not forwarded to Called.
func (mk *MockUI) Start(ctx context.Context, _ ...controller.StartOption) error {
	ret := mk.Called(ctx)

	return ret.Error(0)
}

// Close provides a mock function.
func (mk *MockUI) Close(ctx context.Context) {
	mk.Called(ctx)
}

// DisplayHeader provides a mock function.
func (mk *MockUI) DisplayHeader(ctx context.Context, header string) {
	mk.Called(ctx, header)
}

// DisplayModuleCount provides a mock function.
func (mk *MockUI) DisplayModuleCount(ctx context.Context, total int) {
	mk.Called(ctx, total)
}

// DisplayResult provides a mock function.
func (mk *MockUI) DisplayResult(ctx context.Context, result m.Result) {
	mk.Called(ctx, result)
}

// DisplaySummary provides a mock function.
func (mk *MockUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	mk.Called(ctx, summary)
}

// DisplayListing provides a mock function.
func (mk *MockUI) DisplayListing(ctx context.Context, modules []m.Module, err error) error {
	ret := mk.Called(ctx, modules, err)

	return ret.Error(0)
}
