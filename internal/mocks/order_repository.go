package mocks

import (
	"context"

	"github.com/numinix/paypal-rest-api-sub010/internal/model"
	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) GetByID(ctx context.Context, orderID int) (*model.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *OrderRepository) SetStatus(ctx context.Context, orderID int, statusID int) error {
	args := m.Called(ctx, orderID, statusID)
	return args.Error(0)
}

func (m *OrderRepository) AddComment(ctx context.Context, orderID int, statusID int, comment string) error {
	args := m.Called(ctx, orderID, statusID, comment)
	return args.Error(0)
}
