package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/numinix/paypal-rest-api-sub010/internal/config"
	"github.com/numinix/paypal-rest-api-sub010/internal/model"
	"github.com/numinix/paypal-rest-api-sub010/internal/repository"
	"go.uber.org/zap"
)

func invoiceID(module config.Module, orderID int) string {
	return fmt.Sprintf("%s-%d", strings.ToUpper(module.Name), orderID)
}

func trimNote(note string) string {
	return strings.TrimSpace(note)
}

// refreshRootTransaction stamps the order-level CREATE row with the status
// returned by the latest gateway operation.
func refreshRootTransaction(ctx context.Context, ledger repository.TransactionLedger, orderID int,
	moduleName string, status string, now time.Time) error {

	roots, err := ledger.ListByOrder(ctx, orderID, moduleName, model.TxnTypeCreate)
	if err != nil {
		return err
	}
	if len(roots) == 0 {
		return nil
	}

	return ledger.UpdateStatus(ctx, orderID, moduleName, roots[0].TxnID, status, now)
}

// updateOrderStatus applies the order-status sentinel and history comment.
// Both are fire-and-forget: the ledger is already consistent and a failure
// here must not roll it back.
func updateOrderStatus(ctx context.Context, orders repository.OrderRepository, logger *zap.Logger,
	orderID int, statusID int, comment string) {

	if err := orders.AddComment(ctx, orderID, statusID, comment); err != nil {
		logger.Error("failed to append order history comment",
			zap.Int("orderID", orderID),
			zap.Error(err))
	}

	if err := orders.SetStatus(ctx, orderID, statusID); err != nil {
		logger.Error("failed to update order status",
			zap.Int("orderID", orderID),
			zap.Int("statusID", statusID),
			zap.Error(err))
	}
}
