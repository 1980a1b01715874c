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
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type RefundOrchestrator interface {
	Refund(ctx context.Context, cmd RefundCommand) (*model.Transaction, error)
}

type Refund struct {
	ledger    repository.TransactionLedger
	orders    repository.OrderRepository
	txManager repository.TxManager
	gateway   paypal.Gateway
	module    config.Module
	statuses  config.OrderStatus
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewRefundOrchestrator(ledger repository.TransactionLedger, orders repository.OrderRepository,
	txManager repository.TxManager, gateway paypal.Gateway, cfg *config.Config,
	logger *zap.Logger, metrics *metrics.Metrics) RefundOrchestrator {
	return &Refund{ledger: ledger, orders: orders, txManager: txManager, gateway: gateway,
		module: cfg.Module, statuses: cfg.OrderStatus, logger: logger, metrics: metrics}
}

func (r *Refund) Refund(ctx context.Context, cmd RefundCommand) (*model.Transaction, error) {
	if cmd.RequestOrderID != cmd.OrderID {
		r.metrics.RecordAction("refund", "validation_error")
		return nil, NewServiceError(constants.ErrCodeOrderMismatch, ErrOrderMismatch)
	}

	capture, _, err := findTargetTransaction(ctx, r.ledger, cmd.OrderID, r.module.Name,
		model.TxnTypeCapture, cmd.CaptureTxnID,
		constants.ErrCodeNoCaptures, ErrNoCaptures,
		constants.ErrCodeCaptureNotFound, ErrCaptureNotFound)
	if err != nil {
		r.metrics.RecordAction("refund", "lookup_error")
		return nil, err
	}

	codec := money.NewCodec(capture.MCCurrency)

	refunds, err := r.ledger.ListByOrder(ctx, cmd.OrderID, r.module.Name, model.TxnTypeRefund)
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeDatabase, err)
	}
	refunded := sumChildren(refunds, capture.TxnID)

	var amount decimal.Decimal
	if !cmd.FullRefund {
		amount, err = codec.ParsePositive(cmd.Amount)
		if err != nil {
			r.metrics.RecordAction("refund", "validation_error")
			return nil, NewServiceError(constants.ErrCodeInvalidAmount, err)
		}

		if refunded.Add(amount).GreaterThan(capture.GrossAmount) {
			r.metrics.RecordAction("refund", "ceiling_exceeded")
			return nil, NewServiceError(constants.ErrCodeRefundExceedsCapture,
				fmt.Errorf("refund of %s with %s already refunded exceeds captured %s",
					codec.Format(amount), codec.Format(refunded), codec.Format(capture.GrossAmount)))
		}
	}

	request := paypal.RefundRequest{
		InvoiceID:   invoiceID(r.module, cmd.OrderID),
		NoteToPayer: cmd.Note,
	}

	start := time.Now()
	var result *paypal.PaymentEntry
	if cmd.FullRefund {
		result, err = r.gateway.RefundCaptureFull(ctx, capture.TxnID, request)
	} else {
		request.Amount = &paypal.Amount{CurrencyCode: codec.Currency(), Value: codec.Format(amount)}
		result, err = r.gateway.RefundCapturePartial(ctx, capture.TxnID, request)
	}
	r.metrics.ObserveGatewayCall("refund_capture", time.Since(start))
	if err != nil {
		r.metrics.RecordAction("refund", "gateway_error")
		r.logger.Warn("refund rejected by processor",
			zap.Int("orderID", cmd.OrderID),
			zap.String("captureID", capture.TxnID),
			zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeGatewayError, err)
	}

	memo := fmt.Sprintf("Refunded by %s. Amount: %s %s.", cmd.AdminUser, result.Amount.Value, result.Amount.CurrencyCode)
	if note := trimNote(cmd.Note); note != "" {
		memo += " Note: " + note
	}

	txn, err := buildTransaction(cmd.OrderID, r.module.Name, model.TxnTypeRefund, capture.PaymentType,
		capture.TxnID, result, memo)
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeGatewayError, err)
	}

	captureStatus := r.refreshedCaptureStatus(ctx, capture.TxnID)

	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := r.ledger.Append(ctx, &txn); err != nil {
			return err
		}

		now := time.Now()
		if captureStatus != "" {
			if err := r.ledger.UpdateStatus(ctx, cmd.OrderID, r.module.Name, capture.TxnID, captureStatus, now); err != nil {
				return err
			}
		}

		return refreshRootTransaction(ctx, r.ledger, cmd.OrderID, r.module.Name, result.Status, now)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			r.logger.Error("refund already recorded",
				zap.Int("orderID", cmd.OrderID),
				zap.String("txnID", result.ID))
			return nil, NewServiceError(constants.ErrCodeDuplicateTransaction, err)
		}

		r.logger.Error("refund succeeded at processor but ledger update failed; awaiting reconciliation",
			zap.Int("orderID", cmd.OrderID),
			zap.String("txnID", result.ID),
			zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeDatabase, err)
	}

	// The merchant-facing sentinel tells at a glance whether further refunds
	// are possible: a cumulative total equal to the capture's gross amount in
	// the same currency closes the capture out.
	total := refunded.Add(txn.GrossAmount)
	statusID := r.statuses.PartiallyRefunded
	if total.Equal(capture.GrossAmount) && txn.MCCurrency == capture.MCCurrency {
		statusID = r.statuses.Refunded
	}

	comment := fmt.Sprintf("Refund %s for %s %s recorded by %s.",
		result.ID, result.Amount.Value, result.Amount.CurrencyCode, cmd.AdminUser)
	updateOrderStatus(ctx, r.orders, r.logger, cmd.OrderID, statusID, comment)

	r.metrics.RecordAction("refund", "success")
	r.logger.Info("refund completed",
		zap.Int("orderID", cmd.OrderID),
		zap.String("captureID", capture.TxnID),
		zap.String("refundID", result.ID),
		zap.String("amount", result.Amount.Value),
		zap.Bool("full", cmd.FullRefund))

	return &txn, nil
}

func (r *Refund) refreshedCaptureStatus(ctx context.Context, captureID string) string {
	start := time.Now()
	status, err := r.gateway.GetCaptureStatus(ctx, captureID)
	r.metrics.ObserveGatewayCall("get_capture_status", time.Since(start))
	if err != nil {
		r.logger.Warn("capture status refresh failed",
			zap.String("captureID", captureID),
			zap.Error(err))
		return ""
	}

	return status.Status
}
