package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TxnType string

const (
	TxnTypeCreate    TxnType = "CREATE"
	TxnTypeAuthorize TxnType = "AUTHORIZE"
	TxnTypeCapture   TxnType = "CAPTURE"
	TxnTypeRefund    TxnType = "REFUND"
)

// Processor status strings recorded on ledger rows at last sync.
const (
	PaymentStatusCreated           = "CREATED"
	PaymentStatusPending           = "PENDING"
	PaymentStatusCompleted         = "COMPLETED"
	PaymentStatusDeclined          = "DECLINED"
	PaymentStatusVoided            = "VOIDED"
	PaymentStatusRefunded          = "REFUNDED"
	PaymentStatusPartiallyRefunded = "PARTIALLY_REFUNDED"
)

// MemoReconciled marks rows the sync engine discovered from the processor
// rather than rows an admin action recorded directly.
const MemoReconciled = "added during out-of-band reconciliation."

// Transaction is one payment event recorded against an order. Rows are
// append-only: after insert, only payment_status/last_modified refreshes and
// memo appends touch an existing row.
type Transaction struct {
	ID            int64            `gorm:"primaryKey;autoIncrement;<-:create" json:"id"`
	OrderID       int              `gorm:"column:order_id;not null;index:idx_order_module_parent_txn,unique,priority:1;<-:create" json:"order_id"`
	TxnType       TxnType          `gorm:"column:txn_type;type:varchar(16);not null;<-:create" json:"txn_type"`
	TxnID         string           `gorm:"column:txn_id;type:varchar(64);not null;index:idx_order_module_parent_txn,unique,priority:4;<-:create" json:"txn_id"`
	ParentTxnID   string           `gorm:"column:parent_txn_id;type:varchar(64);index:idx_order_module_parent_txn,unique,priority:3;<-:create" json:"parent_txn_id"`
	ModuleName    string           `gorm:"column:module_name;type:varchar(64);not null;index:idx_order_module_parent_txn,unique,priority:2;<-:create" json:"module_name"`
	PaymentType   string           `gorm:"column:payment_type;type:varchar(32)" json:"payment_type"`
	PaymentStatus string           `gorm:"column:payment_status;type:varchar(32)" json:"payment_status"`
	GrossAmount   decimal.Decimal  `gorm:"column:gross_amount;type:decimal(15,4)" json:"gross_amount"`
	FeeAmount     decimal.Decimal  `gorm:"column:fee_amount;type:decimal(15,4)" json:"fee_amount"`
	SettleAmount  decimal.Decimal  `gorm:"column:settle_amount;type:decimal(15,4)" json:"settle_amount"`
	MCCurrency    string           `gorm:"column:mc_currency;type:varchar(3)" json:"mc_currency"`
	SettleCurrency string          `gorm:"column:settle_currency;type:varchar(3)" json:"settle_currency"`
	ExchangeRate  *decimal.Decimal `gorm:"column:exchange_rate;type:decimal(15,6)" json:"exchange_rate,omitempty"`
	DateAdded     time.Time        `gorm:"column:date_added;<-:create" json:"date_added"`
	LastModified  time.Time        `gorm:"column:last_modified" json:"last_modified"`
	Memo          string           `gorm:"column:memo;type:text" json:"memo"`
}

func (Transaction) TableName() string {
	return "paypal_transactions"
}
