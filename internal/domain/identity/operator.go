package identity

import (
	"context"
)

// Operator is the person working the PDV or submitting wholesale orders
type Operator struct {
	Code string
	Name string
}

// OperatorProvider resolves the current operator. Real deployments plug
// an authenticated implementation; the default is a fixed mock while
// authentication stays disabled.
type OperatorProvider interface {
	Current(ctx context.Context) (Operator, error)
}

// MockProvider always resolves to the same fixed operator
type MockProvider struct {
	operator Operator
}

// NewMockProvider creates a provider returning the given operator
func NewMockProvider(code, name string) *MockProvider {
	return &MockProvider{operator: Operator{Code: code, Name: name}}
}

// DefaultMockProvider returns the stock disabled-auth operator
func DefaultMockProvider() *MockProvider {
	return NewMockProvider("OP01", "Operador")
}

// Current returns the fixed operator
func (p *MockProvider) Current(ctx context.Context) (Operator, error) {
	return p.operator, nil
}
