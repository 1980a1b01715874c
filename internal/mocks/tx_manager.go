package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type TxManager struct {
	mock.Mock
}

// WithTx runs the callback with the plain context so service tests exercise
// the mutations performed inside the transaction.
func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
