package service

import (
	"fmt"
	"time"

	"github.com/numinix/paypal-rest-api-sub010/internal/model"
	"github.com/numinix/paypal-rest-api-sub010/pkg/paypal"
	"github.com/shopspring/decimal"
)

// buildTransaction maps a processor payment entry onto a ledger row. Every
// field is derived from the entry alone; nothing is merged from prior local
// state (the remote value wins).
func buildTransaction(orderID int, moduleName string, txnType model.TxnType, paymentType string,
	parentTxnID string, entry *paypal.PaymentEntry, memo string) (model.Transaction, error) {

	gross, err := decimal.NewFromString(entry.Amount.Value)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q for txn %s: %w", entry.Amount.Value, entry.ID, err)
	}

	dateAdded := entry.CreateTime
	if dateAdded.IsZero() {
		dateAdded = time.Now()
	}
	lastModified := entry.UpdateTime
	if lastModified.IsZero() {
		lastModified = dateAdded
	}

	txn := model.Transaction{
		OrderID:       orderID,
		TxnType:       txnType,
		TxnID:         entry.ID,
		ParentTxnID:   parentTxnID,
		ModuleName:    moduleName,
		PaymentType:   paymentType,
		PaymentStatus: entry.Status,
		GrossAmount:   gross,
		MCCurrency:    entry.Amount.CurrencyCode,
		DateAdded:     dateAdded,
		LastModified:  lastModified,
		Memo:          memo,
	}

	breakdown := entry.SellerReceivableBreakdown
	if breakdown == nil {
		breakdown = entry.SellerPayableBreakdown
	}
	if breakdown == nil {
		return txn, nil
	}

	if breakdown.PaypalFee != nil {
		if fee, err := decimal.NewFromString(breakdown.PaypalFee.Value); err == nil {
			txn.FeeAmount = fee
		}
	}
	if breakdown.NetAmount != nil {
		if net, err := decimal.NewFromString(breakdown.NetAmount.Value); err == nil {
			txn.SettleAmount = net
			txn.SettleCurrency = breakdown.NetAmount.CurrencyCode
		}
	}
	if breakdown.ExchangeRate != nil {
		if rate, err := decimal.NewFromString(breakdown.ExchangeRate.Value); err == nil {
			txn.ExchangeRate = &rate
		}
	}

	return txn, nil
}
