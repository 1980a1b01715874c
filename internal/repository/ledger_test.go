package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/numinix/paypal-rest-api-sub010/internal/model"
	"github.com/numinix/paypal-rest-api-sub010/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const moduleName = "paypalr"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.Transaction{}, &model.Order{}, &model.OrderStatusHistory{})
	require.NoError(t, err)

	return db
}

func newTransaction(orderID int, txnType model.TxnType, txnID, parentTxnID string, added time.Time) *model.Transaction {
	return &model.Transaction{
		OrderID:       orderID,
		TxnType:       txnType,
		TxnID:         txnID,
		ParentTxnID:   parentTxnID,
		ModuleName:    moduleName,
		PaymentType:   "paypal",
		PaymentStatus: model.PaymentStatusCompleted,
		GrossAmount:   decimal.RequireFromString("50.00"),
		MCCurrency:    "USD",
		DateAdded:     added,
		LastModified:  added,
	}
}

func TestLedger_ListByOrder(t *testing.T) {
	db := setupTestDB(t)
	ledger := repository.NewTransactionLedger(db)
	ctx := context.Background()

	// The CREATE row and the authorization share a timestamp on purpose.
	added := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	require.NoError(t, ledger.Append(ctx, newTransaction(1045, model.TxnTypeAuthorize, "0VF5678", "9XY0001", added)))
	require.NoError(t, ledger.Append(ctx, newTransaction(1045, model.TxnTypeCreate, "9XY0001", "", added)))
	require.NoError(t, ledger.Append(ctx, newTransaction(1045, model.TxnTypeCapture, "2GG1234", "0VF5678", added.Add(time.Hour))))
	require.NoError(t, ledger.Append(ctx, newTransaction(2000, model.TxnTypeCreate, "OTHER", "", added)))

	t.Run("create row first then chronological", func(t *testing.T) {
		txns, err := ledger.ListByOrder(ctx, 1045, moduleName, "")

		assert.NoError(t, err)
		require.Len(t, txns, 3)
		assert.Equal(t, "9XY0001", txns[0].TxnID)
		assert.Equal(t, "0VF5678", txns[1].TxnID)
		assert.Equal(t, "2GG1234", txns[2].TxnID)
	})

	t.Run("filter by txn type", func(t *testing.T) {
		txns, err := ledger.ListByOrder(ctx, 1045, moduleName, model.TxnTypeCapture)

		assert.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, "2GG1234", txns[0].TxnID)
	})

	t.Run("other module is invisible", func(t *testing.T) {
		txns, err := ledger.ListByOrder(ctx, 1045, "braintree", "")

		assert.NoError(t, err)
		assert.Empty(t, txns)
	})

	t.Run("no records", func(t *testing.T) {
		txns, err := ledger.ListByOrder(ctx, 9999, moduleName, "")

		assert.NoError(t, err)
		assert.Empty(t, txns)
	})
}

func TestLedger_FindByTxnID(t *testing.T) {
	db := setupTestDB(t)
	ledger := repository.NewTransactionLedger(db)
	ctx := context.Background()

	added := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	require.NoError(t, ledger.Append(ctx, newTransaction(1045, model.TxnTypeAuthorize, "0VF5678", "9XY0001", added)))

	t.Run("found", func(t *testing.T) {
		txn, err := ledger.FindByTxnID(ctx, 1045, moduleName, "0VF5678")

		assert.NoError(t, err)
		assert.Equal(t, model.TxnTypeAuthorize, txn.TxnType)
		assert.True(t, txn.GrossAmount.Equal(decimal.RequireFromString("50.00")))
	})

	t.Run("not found", func(t *testing.T) {
		txn, err := ledger.FindByTxnID(ctx, 1045, moduleName, "MISSING")

		assert.Nil(t, txn)
		assert.ErrorIs(t, err, repository.ErrTransactionNotFound)
	})
}

func TestLedger_Append(t *testing.T) {
	db := setupTestDB(t)
	ledger := repository.NewTransactionLedger(db)
	ctx := context.Background()

	added := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("first append succeeds", func(t *testing.T) {
		err := ledger.Append(ctx, newTransaction(1045, model.TxnTypeCapture, "2GG1234", "0VF5678", added))

		assert.NoError(t, err)
	})

	t.Run("same key is rejected", func(t *testing.T) {
		err := ledger.Append(ctx, newTransaction(1045, model.TxnTypeCapture, "2GG1234", "0VF5678", added))

		assert.ErrorIs(t, err, repository.ErrDuplicateTransaction)
	})

	t.Run("same txn id under another order is fine", func(t *testing.T) {
		err := ledger.Append(ctx, newTransaction(2000, model.TxnTypeCapture, "2GG1234", "0VF5678", added))

		assert.NoError(t, err)
	})

	t.Run("exists reflects the key", func(t *testing.T) {
		exists, err := ledger.Exists(ctx, 1045, moduleName, "0VF5678", "2GG1234")
		assert.NoError(t, err)
		assert.True(t, exists)

		exists, err = ledger.Exists(ctx, 1045, moduleName, "", "2GG1234")
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestLedger_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	ledger := repository.NewTransactionLedger(db)
	ctx := context.Background()

	added := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	require.NoError(t, ledger.Append(ctx, newTransaction(1045, model.TxnTypeAuthorize, "0VF5678", "9XY0001", added)))

	t.Run("updates status and last modified", func(t *testing.T) {
		modified := added.Add(2 * time.Hour)

		err := ledger.UpdateStatus(ctx, 1045, moduleName, "0VF5678", model.PaymentStatusVoided, modified)
		assert.NoError(t, err)

		txn, err := ledger.FindByTxnID(ctx, 1045, moduleName, "0VF5678")
		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusVoided, txn.PaymentStatus)
		assert.Equal(t, modified.Unix(), txn.LastModified.Unix())
	})

	t.Run("unknown row", func(t *testing.T) {
		err := ledger.UpdateStatus(ctx, 1045, moduleName, "MISSING", model.PaymentStatusVoided, added)

		assert.ErrorIs(t, err, repository.ErrTransactionNotFound)
	})
}

func TestLedger_AppendMemo(t *testing.T) {
	db := setupTestDB(t)
	ledger := repository.NewTransactionLedger(db)
	ctx := context.Background()

	added := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	txn := newTransaction(1045, model.TxnTypeAuthorize, "0VF5678", "9XY0001", added)
	txn.Memo = "Authorized at checkout."
	require.NoError(t, ledger.Append(ctx, txn))

	t.Run("appends on a new line", func(t *testing.T) {
		err := ledger.AppendMemo(ctx, 1045, moduleName, "0VF5678", "Voided by admin.")
		assert.NoError(t, err)

		stored, err := ledger.FindByTxnID(ctx, 1045, moduleName, "0VF5678")
		assert.NoError(t, err)
		assert.Equal(t, "Authorized at checkout.\nVoided by admin.", stored.Memo)
	})

	t.Run("unknown row", func(t *testing.T) {
		err := ledger.AppendMemo(ctx, 1045, moduleName, "MISSING", "text")

		assert.ErrorIs(t, err, repository.ErrTransactionNotFound)
	})
}

func TestTransactionManager_WithTx(t *testing.T) {
	db := setupTestDB(t)
	ledger := repository.NewTransactionLedger(db)
	txManager := repository.NewTransactionManager(db)
	ctx := context.Background()

	added := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("commit persists all writes", func(t *testing.T) {
		err := txManager.WithTx(ctx, func(ctx context.Context) error {
			if err := ledger.Append(ctx, newTransaction(1045, model.TxnTypeCreate, "9XY0001", "", added)); err != nil {
				return err
			}
			return ledger.Append(ctx, newTransaction(1045, model.TxnTypeAuthorize, "0VF5678", "9XY0001", added))
		})
		assert.NoError(t, err)

		txns, err := ledger.ListByOrder(ctx, 1045, moduleName, "")
		assert.NoError(t, err)
		assert.Len(t, txns, 2)
	})

	t.Run("error rolls everything back", func(t *testing.T) {
		err := txManager.WithTx(ctx, func(ctx context.Context) error {
			if err := ledger.Append(ctx, newTransaction(2000, model.TxnTypeCreate, "OTHER", "", added)); err != nil {
				return err
			}
			// Same key as the committed row above forces the rollback.
			return ledger.Append(ctx, newTransaction(1045, model.TxnTypeAuthorize, "0VF5678", "9XY0001", added))
		})
		assert.ErrorIs(t, err, repository.ErrDuplicateTransaction)

		txns, err := ledger.ListByOrder(ctx, 2000, moduleName, "")
		assert.NoError(t, err)
		assert.Empty(t, txns)
	})
}

func TestOrders(t *testing.T) {
	db := setupTestDB(t)
	orders := repository.NewOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Order{ID: 1045, StatusID: 1, CurrencyCode: "USD"}).Error)

	t.Run("get by id", func(t *testing.T) {
		order, err := orders.GetByID(ctx, 1045)

		assert.NoError(t, err)
		assert.Equal(t, 1, order.StatusID)
		assert.Equal(t, "USD", order.CurrencyCode)
	})

	t.Run("missing order", func(t *testing.T) {
		order, err := orders.GetByID(ctx, 9999)

		assert.Nil(t, order)
		assert.ErrorIs(t, err, repository.ErrOrderNotFound)
	})

	t.Run("set status", func(t *testing.T) {
		err := orders.SetStatus(ctx, 1045, 2)
		assert.NoError(t, err)

		order, err := orders.GetByID(ctx, 1045)
		assert.NoError(t, err)
		assert.Equal(t, 2, order.StatusID)
	})

	t.Run("add comment", func(t *testing.T) {
		err := orders.AddComment(ctx, 1045, 2, "Captured 50.00 USD.")
		assert.NoError(t, err)

		var history []model.OrderStatusHistory
		require.NoError(t, db.Where("orders_id = ?", 1045).Find(&history).Error)
		require.Len(t, history, 1)
		assert.Equal(t, "Captured 50.00 USD.", history[0].Comment)
	})
}
