// Package mocks provides mock implementations of the expr contracts for
// testing purposes.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amansingh-swe/OpenRefine-aman/expr"
)

// Evaluable is a mock implementation of expr.Evaluable.
type Evaluable struct {
	mock.Mock
}

// Evaluate is a mock implementation of the Evaluate method.
func (m *Evaluable) Evaluate(ctx context.Context, bindings expr.Bindings) (expr.Result, error) {
	args := m.Called(ctx, bindings)
	return args.Get(0).(expr.Result), args.Error(1)
}

// GetSource is a mock implementation of the GetSource method.
func (m *Evaluable) GetSource() string {
	args := m.Called()
	return args.String(0)
}

// GetLanguagePrefix is a mock implementation of the GetLanguagePrefix method.
func (m *Evaluable) GetLanguagePrefix() string {
	args := m.Called()
	return args.String(0)
}
