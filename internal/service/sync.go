package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/numinix/paypal-rest-api-sub010/internal/config"
	"github.com/numinix/paypal-rest-api-sub010/internal/metrics"
	"github.com/numinix/paypal-rest-api-sub010/internal/model"
	"github.com/numinix/paypal-rest-api-sub010/internal/repository"
	"github.com/numinix/paypal-rest-api-sub010/pkg/paypal"
	"go.uber.org/zap"
)

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

type SyncMessage struct {
	Severity string `json:"severity"`
	Text     string `json:"text"`
}

// SyncResult is the display-ready merged ledger plus the human-readable
// messages accumulated while reconciling, rendered above the transaction
// table.
type SyncResult struct {
	Transactions []model.Transaction `json:"transactions"`
	Messages     []SyncMessage       `json:"messages"`
}

// SyncEngine brings the local ledger up to date with the processor's view of
// an order. It must run before every display of transaction history, not just
// on first load: a crash between a gateway call and its ledger append leaves
// the ledger under-reporting until the next pass.
type SyncEngine interface {
	Reconcile(ctx context.Context, orderID int) (*SyncResult, error)
}

type Sync struct {
	ledger  repository.TransactionLedger
	gateway paypal.Gateway
	module  config.Module
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewSyncEngine(ledger repository.TransactionLedger, gateway paypal.Gateway, module config.Module,
	logger *zap.Logger, metrics *metrics.Metrics) SyncEngine {
	return &Sync{ledger: ledger, gateway: gateway, module: module, logger: logger, metrics: metrics}
}

var collectionTxnTypes = []struct {
	key     string
	txnType model.TxnType
}{
	{paypal.CollectionAuthorizations, model.TxnTypeAuthorize},
	{paypal.CollectionCaptures, model.TxnTypeCapture},
	{paypal.CollectionRefunds, model.TxnTypeRefund},
}

func (s *Sync) Reconcile(ctx context.Context, orderID int) (*SyncResult, error) {
	txns, err := s.ledger.ListByOrder(ctx, orderID, s.module.Name, "")
	if err != nil {
		return nil, NewServiceError(ErrDatabase.Error(), err)
	}

	// No payment-module history for this order; nothing to reconcile.
	if len(txns) == 0 {
		return &SyncResult{}, nil
	}

	result := &SyncResult{Transactions: txns}

	root := findRoot(txns)
	if root == nil {
		s.warn(result, fmt.Sprintf("order %d has %s history but no root transaction; skipping reconciliation", orderID, s.module.Name))
		return result, nil
	}

	start := time.Now()
	detail, err := s.gateway.GetOrderStatus(ctx, root.TxnID)
	s.metrics.ObserveGatewayCall("get_order_status", time.Since(start))
	if err != nil {
		s.logger.Warn("order status lookup failed",
			zap.Int("orderID", orderID),
			zap.String("txnID", root.TxnID),
			zap.Error(err))
		s.fail(result, fmt.Sprintf("could not retrieve the processor's status for order %d: %s", orderID, err))
		return result, nil
	}

	paymentType := paypal.PrimaryPaymentSource(detail.PaymentSource)

	added := 0
	for _, unit := range detail.PurchaseUnits {
		added += s.mergeUnit(ctx, orderID, paymentType, unit, result)
	}

	if added > 0 {
		s.metrics.RecordSyncDiscovered(added)
		s.logger.Info("reconciliation appended missing transactions",
			zap.Int("orderID", orderID),
			zap.Int("added", added))

		merged, err := s.ledger.ListByOrder(ctx, orderID, s.module.Name, "")
		if err != nil {
			return nil, NewServiceError(ErrDatabase.Error(), err)
		}
		result.Transactions = merged
	}

	return result, nil
}

// mergeUnit walks one purchase unit's child collections parent-first and
// appends every entry the ledger does not know yet.
func (s *Sync) mergeUnit(ctx context.Context, orderID int, paymentType string, unit paypal.PurchaseUnit, result *SyncResult) int {
	added := 0

	seen := map[string]bool{}
	for _, collection := range collectionTxnTypes {
		seen[collection.key] = true
		for i := range unit.Payments[collection.key] {
			if s.mergeEntry(ctx, orderID, collection.txnType, paymentType, &unit.Payments[collection.key][i], result) {
				added++
			}
		}
	}

	for key := range unit.Payments {
		if !seen[key] {
			s.warn(result, fmt.Sprintf("unrecognized payment record type %q reported by the processor; skipped", key))
		}
	}

	return added
}

func (s *Sync) mergeEntry(ctx context.Context, orderID int, txnType model.TxnType, paymentType string,
	entry *paypal.PaymentEntry, result *SyncResult) bool {

	parentTxnID, ok := paypal.ExtractParentID(entry.Links)
	if !ok {
		s.warn(result, fmt.Sprintf("transaction %s has no resolvable parent link; skipped", entry.ID))
		return false
	}

	exists, err := s.ledger.Exists(ctx, orderID, s.module.Name, parentTxnID, entry.ID)
	if err != nil {
		s.fail(result, fmt.Sprintf("could not check ledger for transaction %s: %s", entry.ID, err))
		return false
	}
	if exists {
		return false
	}

	txn, err := buildTransaction(orderID, s.module.Name, txnType, paymentType, parentTxnID, entry, model.MemoReconciled)
	if err != nil {
		s.warn(result, fmt.Sprintf("transaction %s could not be recorded: %s", entry.ID, err))
		return false
	}

	if err := s.ledger.Append(ctx, &txn); err != nil {
		// Already reconciled by a concurrent pass.
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			return false
		}
		s.fail(result, fmt.Sprintf("could not record transaction %s: %s", entry.ID, err))
		return false
	}

	return true
}

func (s *Sync) warn(result *SyncResult, text string) {
	result.Messages = append(result.Messages, SyncMessage{Severity: SeverityWarning, Text: text})
	s.metrics.RecordSyncMessage(SeverityWarning)
}

func (s *Sync) fail(result *SyncResult, text string) {
	result.Messages = append(result.Messages, SyncMessage{Severity: SeverityError, Text: text})
	s.metrics.RecordSyncMessage(SeverityError)
}

func findRoot(txns []model.Transaction) *model.Transaction {
	for i := range txns {
		if txns[i].TxnType == model.TxnTypeCreate {
			return &txns[i]
		}
	}
	return nil
}
