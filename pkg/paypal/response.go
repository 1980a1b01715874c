package paypal

import (
	"encoding/json"
	"time"
)

// Child-collection keys reported under a purchase unit's payments object.
const (
	CollectionAuthorizations = "authorizations"
	CollectionCaptures       = "captures"
	CollectionRefunds        = "refunds"
)

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type ExchangeRate struct {
	SourceCurrency string `json:"source_currency"`
	TargetCurrency string `json:"target_currency"`
	Value          string `json:"value"`
}

// Breakdown is the seller receivable/payable breakdown the processor attaches
// to settled captures and some refunds. Absent for most refunds.
type Breakdown struct {
	GrossAmount  Amount        `json:"gross_amount"`
	PaypalFee    *Amount       `json:"paypal_fee,omitempty"`
	NetAmount    *Amount       `json:"net_amount,omitempty"`
	ExchangeRate *ExchangeRate `json:"exchange_rate,omitempty"`
}

// PaymentEntry is one authorization, capture or refund as the processor
// reports it, either inside an order detail or as a standalone status lookup.
type PaymentEntry struct {
	ID                        string     `json:"id"`
	Status                    string     `json:"status"`
	Amount                    Amount     `json:"amount"`
	FinalCapture              bool       `json:"final_capture,omitempty"`
	InvoiceID                 string     `json:"invoice_id,omitempty"`
	SellerReceivableBreakdown *Breakdown `json:"seller_receivable_breakdown,omitempty"`
	SellerPayableBreakdown    *Breakdown `json:"seller_payable_breakdown,omitempty"`
	Links                     []Link     `json:"links,omitempty"`
	CreateTime                time.Time  `json:"create_time,omitempty"`
	UpdateTime                time.Time  `json:"update_time,omitempty"`
}

// PaymentCollections keeps the wire-level collection keys so callers can
// detect collections they do not recognize.
type PaymentCollections map[string][]PaymentEntry

type PurchaseUnit struct {
	ReferenceID string             `json:"reference_id,omitempty"`
	Payments    PaymentCollections `json:"payments,omitempty"`
}

type OrderDetail struct {
	ID            string                     `json:"id"`
	Status        string                     `json:"status"`
	PaymentSource map[string]json.RawMessage `json:"payment_source,omitempty"`
	PurchaseUnits []PurchaseUnit             `json:"purchase_units,omitempty"`
	CreateTime    time.Time                  `json:"create_time,omitempty"`
	UpdateTime    time.Time                  `json:"update_time,omitempty"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Payment-source categories we prefer when the processor reports more than
// one key under payment_source. Anything else falls back to the
// lexicographically smallest key so the choice stays deterministic.
var paymentSourcePriority = []string{"card", "paypal"}

// PrimaryPaymentSource picks the payment-source category from an order
// detail's payment_source map.
func PrimaryPaymentSource(source map[string]json.RawMessage) string {
	if len(source) == 0 {
		return ""
	}

	for _, preferred := range paymentSourcePriority {
		if _, ok := source[preferred]; ok {
			return preferred
		}
	}

	smallest := ""
	for key := range source {
		if smallest == "" || key < smallest {
			smallest = key
		}
	}

	return smallest
}
