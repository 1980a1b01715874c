package service

import (
	"context"
	"fmt"
	"time"

	"github.com/numinix/paypal-rest-api-sub010/internal/config"
	"github.com/numinix/paypal-rest-api-sub010/internal/constants"
	"github.com/numinix/paypal-rest-api-sub010/internal/metrics"
	"github.com/numinix/paypal-rest-api-sub010/internal/model"
	"github.com/numinix/paypal-rest-api-sub010/internal/repository"
	"github.com/numinix/paypal-rest-api-sub010/pkg/paypal"
	"go.uber.org/zap"
)

type VoidOrchestrator interface {
	Void(ctx context.Context, cmd VoidCommand) error
}

type Void struct {
	ledger    repository.TransactionLedger
	orders    repository.OrderRepository
	txManager repository.TxManager
	gateway   paypal.Gateway
	module    config.Module
	statuses  config.OrderStatus
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewVoidOrchestrator(ledger repository.TransactionLedger, orders repository.OrderRepository,
	txManager repository.TxManager, gateway paypal.Gateway, cfg *config.Config,
	logger *zap.Logger, metrics *metrics.Metrics) VoidOrchestrator {
	return &Void{ledger: ledger, orders: orders, txManager: txManager, gateway: gateway,
		module: cfg.Module, statuses: cfg.OrderStatus, logger: logger, metrics: metrics}
}

func (v *Void) Void(ctx context.Context, cmd VoidCommand) error {
	if cmd.RequestOrderID != cmd.OrderID {
		v.metrics.RecordAction("void", "validation_error")
		return NewServiceError(constants.ErrCodeOrderMismatch, ErrOrderMismatch)
	}

	auth, _, err := findTargetTransaction(ctx, v.ledger, cmd.OrderID, v.module.Name,
		model.TxnTypeAuthorize, cmd.AuthorizationTxnID,
		constants.ErrCodeNoAuthorizations, ErrNoAuthorizations,
		constants.ErrCodeAuthorizationNotFound, ErrAuthorizationNotFound)
	if err != nil {
		v.metrics.RecordAction("void", "lookup_error")
		return err
	}

	// Once any capture exists under the authorization the hold can no longer
	// be released; the only paths left are further capture or refund.
	captures, err := v.ledger.ListByOrder(ctx, cmd.OrderID, v.module.Name, model.TxnTypeCapture)
	if err != nil {
		return NewServiceError(constants.ErrCodeDatabase, err)
	}
	for i := range captures {
		if captures[i].ParentTxnID == auth.TxnID {
			v.metrics.RecordAction("void", "already_captured")
			return NewServiceError(constants.ErrCodeAuthorizationCaptured,
				fmt.Errorf("authorization %s already has capture %s", auth.TxnID, captures[i].TxnID))
		}
	}

	start := time.Now()
	err = v.gateway.VoidPayment(ctx, auth.TxnID)
	v.metrics.ObserveGatewayCall("void_payment", time.Since(start))
	if err != nil {
		v.metrics.RecordAction("void", "gateway_error")
		v.logger.Warn("void rejected by processor",
			zap.Int("orderID", cmd.OrderID),
			zap.String("authorizationID", auth.TxnID),
			zap.Error(err))
		return NewServiceError(constants.ErrCodeGatewayError, err)
	}

	memo := fmt.Sprintf("Voided by %s.", cmd.AdminUser)
	if note := trimNote(cmd.Note); note != "" {
		memo += " " + note
	}

	err = v.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := v.ledger.UpdateStatus(ctx, cmd.OrderID, v.module.Name, auth.TxnID,
			model.PaymentStatusVoided, time.Now()); err != nil {
			return err
		}

		return v.ledger.AppendMemo(ctx, cmd.OrderID, v.module.Name, auth.TxnID, memo)
	})
	if err != nil {
		v.logger.Error("void succeeded at processor but ledger update failed; awaiting reconciliation",
			zap.Int("orderID", cmd.OrderID),
			zap.String("authorizationID", auth.TxnID),
			zap.Error(err))
		return NewServiceError(constants.ErrCodeDatabase, err)
	}

	comment := fmt.Sprintf("Authorization %s voided by %s.", auth.TxnID, cmd.AdminUser)
	updateOrderStatus(ctx, v.orders, v.logger, cmd.OrderID, v.statuses.Refunded, comment)

	v.metrics.RecordAction("void", "success")
	v.logger.Info("void completed",
		zap.Int("orderID", cmd.OrderID),
		zap.String("authorizationID", auth.TxnID))

	return nil
}
