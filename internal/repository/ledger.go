package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/numinix/paypal-rest-api-sub010/internal/model"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound  = errors.New("TRANSACTION_NOT_FOUND")
	ErrDuplicateTransaction = errors.New("DUPLICATE_TRANSACTION")
)

// TransactionLedger is the persisted record store of payment events for an
// order. Appends are idempotent on (orderID, moduleName, parentTxnID, txnID).
type TransactionLedger interface {
	ListByOrder(ctx context.Context, orderID int, moduleName string, txnType model.TxnType) ([]model.Transaction, error)
	FindByTxnID(ctx context.Context, orderID int, moduleName string, txnID string) (*model.Transaction, error)
	Exists(ctx context.Context, orderID int, moduleName string, parentTxnID string, txnID string) (bool, error)
	Append(ctx context.Context, txn *model.Transaction) error
	UpdateStatus(ctx context.Context, orderID int, moduleName string, txnID string, status string, modified time.Time) error
	AppendMemo(ctx context.Context, orderID int, moduleName string, txnID string, text string) error
}

type Ledger struct {
	db *gorm.DB
}

func NewTransactionLedger(db *gorm.DB) TransactionLedger {
	return &Ledger{db: db}
}

// ListByOrder returns the ledger for one (order, module) pair with the CREATE
// row first and the rest by date_added. The CREATE row and its first child
// often share a timestamp, so ordering by date alone is not enough.
func (l *Ledger) ListByOrder(ctx context.Context, orderID int, moduleName string, txnType model.TxnType) ([]model.Transaction, error) {
	db := GetTx(ctx, l.db)

	query := db.Where("order_id = ? AND module_name = ?", orderID, moduleName)
	if txnType != "" {
		query = query.Where("txn_type = ?", txnType)
	}

	var txns []model.Transaction
	err := query.
		Order("(txn_type = 'CREATE') DESC").
		Order("date_added ASC").
		Order("id ASC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}

	return txns, nil
}

func (l *Ledger) FindByTxnID(ctx context.Context, orderID int, moduleName string, txnID string) (*model.Transaction, error) {
	db := GetTx(ctx, l.db)

	var txn model.Transaction
	err := db.Where("order_id = ? AND module_name = ? AND txn_id = ?", orderID, moduleName, txnID).
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	return &txn, nil
}

func (l *Ledger) Exists(ctx context.Context, orderID int, moduleName string, parentTxnID string, txnID string) (bool, error) {
	db := GetTx(ctx, l.db)

	var count int64
	err := db.Model(&model.Transaction{}).
		Where("order_id = ? AND module_name = ? AND parent_txn_id = ? AND txn_id = ?",
			orderID, moduleName, parentTxnID, txnID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (l *Ledger) Append(ctx context.Context, txn *model.Transaction) error {
	db := GetTx(ctx, l.db)

	exists, err := l.Exists(ctx, txn.OrderID, txn.ModuleName, txn.ParentTxnID, txn.TxnID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateTransaction
	}

	err = db.Create(txn).Error
	if err == nil {
		return nil
	}

	// Unique index on (order_id, module_name, parent_txn_id, txn_id) is the
	// last line of defense when two admin actions race.
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrDuplicateTransaction
	}

	return err
}

func (l *Ledger) UpdateStatus(ctx context.Context, orderID int, moduleName string, txnID string, status string, modified time.Time) error {
	db := GetTx(ctx, l.db)

	result := db.Model(&model.Transaction{}).
		Where("order_id = ? AND module_name = ? AND txn_id = ?", orderID, moduleName, txnID).
		Updates(map[string]any{
			"payment_status": status,
			"last_modified":  modified,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

// AppendMemo adds to a row's audit trail. Memos are append-only; the existing
// text is never replaced.
func (l *Ledger) AppendMemo(ctx context.Context, orderID int, moduleName string, txnID string, text string) error {
	db := GetTx(ctx, l.db)

	txn, err := l.FindByTxnID(ctx, orderID, moduleName, txnID)
	if err != nil {
		return err
	}

	memo := txn.Memo
	if memo != "" {
		memo += "\n"
	}
	memo += text

	return db.Model(&model.Transaction{}).
		Where("id = ?", txn.ID).
		Updates(map[string]any{
			"memo":          memo,
			"last_modified": time.Now(),
		}).Error
}
