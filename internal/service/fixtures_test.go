package service_test

import (
	"time"

	"github.com/numinix/paypal-rest-api-sub010/internal/config"
	"github.com/numinix/paypal-rest-api-sub010/internal/metrics"
	"github.com/numinix/paypal-rest-api-sub010/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	testOrderID    = 1045
	testModuleName = "paypalr"

	rootTxnID    = "9XY0001"
	authTxnID    = "0VF5678"
	captureTxnID = "2GG1234"
	refundTxnID  = "1JU0870"
)

var testAdded = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func mustDecimal(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func testServiceConfig() *config.Config {
	return &config.Config{
		Module:      config.Module{Name: testModuleName, Version: "1.0.0"},
		OrderStatus: config.OrderStatus{}.WithDefaults(),
	}
}

func testMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func ledgerTxn(txnType model.TxnType, txnID, parentTxnID, amount string) model.Transaction {
	return model.Transaction{
		OrderID:       testOrderID,
		TxnType:       txnType,
		TxnID:         txnID,
		ParentTxnID:   parentTxnID,
		ModuleName:    testModuleName,
		PaymentType:   "paypal",
		PaymentStatus: model.PaymentStatusCompleted,
		GrossAmount:   decimal.RequireFromString(amount),
		MCCurrency:    "USD",
		DateAdded:     testAdded,
		LastModified:  testAdded,
	}
}

func createRow() model.Transaction {
	return ledgerTxn(model.TxnTypeCreate, rootTxnID, "", "50.00")
}

func authorizeRow() model.Transaction {
	return ledgerTxn(model.TxnTypeAuthorize, authTxnID, rootTxnID, "50.00")
}

func captureRow() model.Transaction {
	return ledgerTxn(model.TxnTypeCapture, captureTxnID, authTxnID, "50.00")
}
