package service

import (
	"context"

	"github.com/numinix/paypal-rest-api-sub010/internal/constants"
	"github.com/numinix/paypal-rest-api-sub010/internal/model"
	"github.com/numinix/paypal-rest-api-sub010/internal/repository"
	"github.com/shopspring/decimal"
)

// findTargetTransaction resolves the parent transaction an admin action is
// aimed at. "No rows of this type at all" and "rows exist but none match"
// are distinct failures so the admin can tell "nothing to act on" from a
// stale or mistyped id.
func findTargetTransaction(ctx context.Context, ledger repository.TransactionLedger, orderID int,
	moduleName string, txnType model.TxnType, txnID string,
	emptyCode string, emptyErr error, notFoundCode string, notFoundErr error) (*model.Transaction, []model.Transaction, error) {

	txns, err := ledger.ListByOrder(ctx, orderID, moduleName, txnType)
	if err != nil {
		return nil, nil, NewServiceError(constants.ErrCodeDatabase, err)
	}

	if len(txns) == 0 {
		return nil, nil, NewServiceError(emptyCode, emptyErr)
	}

	for i := range txns {
		if txns[i].TxnID == txnID {
			return &txns[i], txns, nil
		}
	}

	return nil, txns, NewServiceError(notFoundCode, notFoundErr)
}

// sumChildren totals the gross amounts of the rows whose parent is the given
// transaction.
func sumChildren(txns []model.Transaction, parentTxnID string) decimal.Decimal {
	total := decimal.Zero
	for i := range txns {
		if txns[i].ParentTxnID == parentTxnID {
			total = total.Add(txns[i].GrossAmount)
		}
	}
	return total
}
