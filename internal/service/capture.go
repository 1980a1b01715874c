package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/numinix/paypal-rest-api-sub010/internal/config"
	"github.com/numinix/paypal-rest-api-sub010/internal/constants"
	"github.com/numinix/paypal-rest-api-sub010/internal/metrics"
	"github.com/numinix/paypal-rest-api-sub010/internal/model"
	"github.com/numinix/paypal-rest-api-sub010/internal/repository"
	"github.com/numinix/paypal-rest-api-sub010/pkg/money"
	"github.com/numinix/paypal-rest-api-sub010/pkg/paypal"
	"go.uber.org/zap"
)

type CaptureOrchestrator interface {
	Capture(ctx context.Context, cmd CaptureCommand) (*model.Transaction, error)
}

type Capture struct {
	ledger    repository.TransactionLedger
	orders    repository.OrderRepository
	txManager repository.TxManager
	gateway   paypal.Gateway
	module    config.Module
	statuses  config.OrderStatus
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewCaptureOrchestrator(ledger repository.TransactionLedger, orders repository.OrderRepository,
	txManager repository.TxManager, gateway paypal.Gateway, cfg *config.Config,
	logger *zap.Logger, metrics *metrics.Metrics) CaptureOrchestrator {
	return &Capture{ledger: ledger, orders: orders, txManager: txManager, gateway: gateway,
		module: cfg.Module, statuses: cfg.OrderStatus, logger: logger, metrics: metrics}
}

func (c *Capture) Capture(ctx context.Context, cmd CaptureCommand) (*model.Transaction, error) {
	if cmd.RequestOrderID != cmd.OrderID {
		c.metrics.RecordAction("capture", "validation_error")
		return nil, NewServiceError(constants.ErrCodeOrderMismatch, ErrOrderMismatch)
	}

	auth, _, err := findTargetTransaction(ctx, c.ledger, cmd.OrderID, c.module.Name,
		model.TxnTypeAuthorize, cmd.AuthorizationTxnID,
		constants.ErrCodeNoAuthorizations, ErrNoAuthorizations,
		constants.ErrCodeAuthorizationNotFound, ErrAuthorizationNotFound)
	if err != nil {
		c.metrics.RecordAction("capture", "lookup_error")
		return nil, err
	}

	codec := money.NewCodec(auth.MCCurrency)
	amount, err := codec.ParsePositive(cmd.Amount)
	if err != nil {
		c.metrics.RecordAction("capture", "validation_error")
		return nil, NewServiceError(constants.ErrCodeInvalidAmount, err)
	}

	// Re-sum just before the call: uniqueness on append cannot stop two valid
	// captures from over-committing the authorization.
	captures, err := c.ledger.ListByOrder(ctx, cmd.OrderID, c.module.Name, model.TxnTypeCapture)
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeDatabase, err)
	}

	captured := sumChildren(captures, auth.TxnID)
	if captured.Add(amount).GreaterThan(auth.GrossAmount) {
		c.metrics.RecordAction("capture", "ceiling_exceeded")
		return nil, NewServiceError(constants.ErrCodeCaptureExceedsAuth,
			fmt.Errorf("capture of %s with %s already captured exceeds authorized %s",
				codec.Format(amount), codec.Format(captured), codec.Format(auth.GrossAmount)))
	}

	request := paypal.CaptureRequest{
		Amount:       &paypal.Amount{CurrencyCode: codec.Currency(), Value: codec.Format(amount)},
		InvoiceID:    invoiceID(c.module, cmd.OrderID),
		NoteToPayer:  cmd.Note,
		FinalCapture: cmd.FinalCapture,
	}

	start := time.Now()
	result, err := c.gateway.CapturePayment(ctx, auth.TxnID, request)
	c.metrics.ObserveGatewayCall("capture_payment", time.Since(start))
	if err != nil {
		c.metrics.RecordAction("capture", "gateway_error")
		c.logger.Warn("capture rejected by processor",
			zap.Int("orderID", cmd.OrderID),
			zap.String("authorizationID", auth.TxnID),
			zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeGatewayError, err)
	}

	memo := fmt.Sprintf("Captured by %s. Amount: %s %s.", cmd.AdminUser, codec.Format(amount), codec.Currency())
	if note := trimNote(cmd.Note); note != "" {
		memo += " Note: " + note
	}

	txn, err := buildTransaction(cmd.OrderID, c.module.Name, model.TxnTypeCapture, auth.PaymentType,
		auth.TxnID, result, memo)
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeGatewayError, err)
	}

	authStatus := c.refreshedAuthorizationStatus(ctx, auth.TxnID)

	err = c.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := c.ledger.Append(ctx, &txn); err != nil {
			return err
		}

		now := time.Now()
		if authStatus != "" {
			if err := c.ledger.UpdateStatus(ctx, cmd.OrderID, c.module.Name, auth.TxnID, authStatus, now); err != nil {
				return err
			}
		}

		return c.refreshRoot(ctx, cmd.OrderID, result.Status, now)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			// Orchestrators only append fresh processor-issued ids; a
			// duplicate here is a logic error, not routine reconciliation.
			c.logger.Error("capture already recorded",
				zap.Int("orderID", cmd.OrderID),
				zap.String("txnID", result.ID))
			return nil, NewServiceError(constants.ErrCodeDuplicateTransaction, err)
		}

		c.logger.Error("capture succeeded at processor but ledger update failed; awaiting reconciliation",
			zap.Int("orderID", cmd.OrderID),
			zap.String("txnID", result.ID),
			zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeDatabase, err)
	}

	statusID := c.statuses.PaymentPending
	if cmd.FinalCapture {
		statusID = c.statuses.Paid
	}

	comment := fmt.Sprintf("Capture %s for %s %s recorded by %s.",
		result.ID, codec.Format(amount), codec.Currency(), cmd.AdminUser)
	c.updateOrder(ctx, cmd.OrderID, statusID, comment)

	c.metrics.RecordAction("capture", "success")
	c.logger.Info("capture completed",
		zap.Int("orderID", cmd.OrderID),
		zap.String("authorizationID", auth.TxnID),
		zap.String("captureID", result.ID),
		zap.String("amount", codec.Format(amount)),
		zap.Bool("final", cmd.FinalCapture))

	return &txn, nil
}

// refreshedAuthorizationStatus asks the processor for the authorization's
// current status. A failure only means the parent row keeps its last-synced
// status.
func (c *Capture) refreshedAuthorizationStatus(ctx context.Context, authorizationID string) string {
	start := time.Now()
	status, err := c.gateway.GetAuthorizationStatus(ctx, authorizationID)
	c.metrics.ObserveGatewayCall("get_authorization_status", time.Since(start))
	if err != nil {
		c.logger.Warn("authorization status refresh failed",
			zap.String("authorizationID", authorizationID),
			zap.Error(err))
		return ""
	}

	return status.Status
}

func (c *Capture) refreshRoot(ctx context.Context, orderID int, status string, now time.Time) error {
	return refreshRootTransaction(ctx, c.ledger, orderID, c.module.Name, status, now)
}

func (c *Capture) updateOrder(ctx context.Context, orderID int, statusID int, comment string) {
	updateOrderStatus(ctx, c.orders, c.logger, orderID, statusID, comment)
}
