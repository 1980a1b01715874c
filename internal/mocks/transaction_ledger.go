package mocks

import (
	"context"
	"time"

	"github.com/numinix/paypal-rest-api-sub010/internal/model"
	"github.com/stretchr/testify/mock"
)

type TransactionLedger struct {
	mock.Mock
}

func (m *TransactionLedger) ListByOrder(ctx context.Context, orderID int, moduleName string, txnType model.TxnType) ([]model.Transaction, error) {
	args := m.Called(ctx, orderID, moduleName, txnType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *TransactionLedger) FindByTxnID(ctx context.Context, orderID int, moduleName string, txnID string) (*model.Transaction, error) {
	args := m.Called(ctx, orderID, moduleName, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *TransactionLedger) Exists(ctx context.Context, orderID int, moduleName string, parentTxnID string, txnID string) (bool, error) {
	args := m.Called(ctx, orderID, moduleName, parentTxnID, txnID)
	return args.Bool(0), args.Error(1)
}

func (m *TransactionLedger) Append(ctx context.Context, txn *model.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *TransactionLedger) UpdateStatus(ctx context.Context, orderID int, moduleName string, txnID string, status string, modified time.Time) error {
	args := m.Called(ctx, orderID, moduleName, txnID, status, modified)
	return args.Error(0)
}

func (m *TransactionLedger) AppendMemo(ctx context.Context, orderID int, moduleName string, txnID string, text string) error {
	args := m.Called(ctx, orderID, moduleName, txnID, text)
	return args.Error(0)
}
