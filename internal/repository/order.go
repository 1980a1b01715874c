package repository

import (
	"context"
	"errors"
	"time"

	"github.com/numinix/paypal-rest-api-sub010/internal/model"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("ORDER_NOT_FOUND")

// OrderRepository is the merchant order-status/history store. Orchestrators
// call it fire-and-forget: a failure here is logged, never rolled back
// against the ledger.
type OrderRepository interface {
	GetByID(ctx context.Context, orderID int) (*model.Order, error)
	SetStatus(ctx context.Context, orderID int, statusID int) error
	AddComment(ctx context.Context, orderID int, statusID int, comment string) error
}

type Orders struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &Orders{db: db}
}

func (r *Orders) GetByID(ctx context.Context, orderID int) (*model.Order, error) {
	db := GetTx(ctx, r.db)

	var order model.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *Orders) SetStatus(ctx context.Context, orderID int, statusID int) error {
	db := GetTx(ctx, r.db)

	return db.Model(&model.Order{}).
		Where("orders_id = ?", orderID).
		Updates(map[string]any{
			"orders_status": statusID,
			"last_modified": time.Now(),
		}).Error
}

func (r *Orders) AddComment(ctx context.Context, orderID int, statusID int, comment string) error {
	db := GetTx(ctx, r.db)

	history := model.OrderStatusHistory{
		OrderID:   orderID,
		StatusID:  statusID,
		Comment:   comment,
		DateAdded: time.Now(),
	}

	return db.Create(&history).Error
}
