package mocks

import (
	"context"

	"github.com/numinix/paypal-rest-api-sub010/pkg/paypal"
	"github.com/stretchr/testify/mock"
)

type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) GetOrderStatus(ctx context.Context, orderTxnID string) (*paypal.OrderDetail, error) {
	args := m.Called(ctx, orderTxnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paypal.OrderDetail), args.Error(1)
}

func (m *PaymentGateway) CapturePayment(ctx context.Context, authorizationID string, request paypal.CaptureRequest) (*paypal.PaymentEntry, error) {
	args := m.Called(ctx, authorizationID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paypal.PaymentEntry), args.Error(1)
}

func (m *PaymentGateway) RefundCaptureFull(ctx context.Context, captureID string, request paypal.RefundRequest) (*paypal.PaymentEntry, error) {
	args := m.Called(ctx, captureID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paypal.PaymentEntry), args.Error(1)
}

func (m *PaymentGateway) RefundCapturePartial(ctx context.Context, captureID string, request paypal.RefundRequest) (*paypal.PaymentEntry, error) {
	args := m.Called(ctx, captureID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paypal.PaymentEntry), args.Error(1)
}

func (m *PaymentGateway) VoidPayment(ctx context.Context, authorizationID string) error {
	args := m.Called(ctx, authorizationID)
	return args.Error(0)
}

func (m *PaymentGateway) GetAuthorizationStatus(ctx context.Context, authorizationID string) (*paypal.PaymentEntry, error) {
	args := m.Called(ctx, authorizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paypal.PaymentEntry), args.Error(1)
}

func (m *PaymentGateway) GetCaptureStatus(ctx context.Context, captureID string) (*paypal.PaymentEntry, error) {
	args := m.Called(ctx, captureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paypal.PaymentEntry), args.Error(1)
}
