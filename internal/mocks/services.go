package mocks

import (
	"context"

	"github.com/numinix/paypal-rest-api-sub010/internal/model"
	"github.com/numinix/paypal-rest-api-sub010/internal/service"
	"github.com/stretchr/testify/mock"
)

type SyncEngine struct {
	mock.Mock
}

func (m *SyncEngine) Reconcile(ctx context.Context, orderID int) (*service.SyncResult, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncResult), args.Error(1)
}

type CaptureOrchestrator struct {
	mock.Mock
}

func (m *CaptureOrchestrator) Capture(ctx context.Context, cmd service.CaptureCommand) (*model.Transaction, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

type RefundOrchestrator struct {
	mock.Mock
}

func (m *RefundOrchestrator) Refund(ctx context.Context, cmd service.RefundCommand) (*model.Transaction, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

type VoidOrchestrator struct {
	mock.Mock
}

func (m *VoidOrchestrator) Void(ctx context.Context, cmd service.VoidCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
