// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ghostscan.dev/pkg/ghostscan/internal/domain"
)

// MockWorkflow is a mock of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a mock and registers expectation checks on cleanup.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mk := &MockWorkflow{}
	mk.Test(t)

	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Scan provides a mock function.
func (mk *MockWorkflow) Scan(ctx context.Context, args domain.ScanArgs) error {
	ret := mk.Called(ctx, args)

	return ret.Error(0)
}

// List provides a mock function.
func (mk *MockWorkflow) List(ctx context.Context, args domain.ListArgs) error {
	ret := mk.Called(ctx, args)

	return ret.Error(0)
}
