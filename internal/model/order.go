package model

import "time"

type Order struct {
	ID           int       `gorm:"primaryKey;column:orders_id;<-:create"`
	StatusID     int       `gorm:"column:orders_status"`
	CurrencyCode string    `gorm:"column:currency;type:varchar(3)"`
	LastModified time.Time `gorm:"column:last_modified"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderStatusHistory is the merchant-visible audit trail of status changes
// and admin comments against an order.
type OrderStatusHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;<-:create"`
	OrderID   int       `gorm:"column:orders_id;not null;index;<-:create"`
	StatusID  int       `gorm:"column:orders_status_id;<-:create"`
	Comment   string    `gorm:"column:comments;type:text;<-:create"`
	DateAdded time.Time `gorm:"column:date_added;<-:create"`
}

func (OrderStatusHistory) TableName() string {
	return "orders_status_history"
}
