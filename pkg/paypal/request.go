package paypal

type CaptureRequest struct {
	Amount       *Amount `json:"amount,omitempty"`
	InvoiceID    string  `json:"invoice_id,omitempty"`
	NoteToPayer  string  `json:"note_to_payer,omitempty"`
	FinalCapture bool    `json:"final_capture"`
}

// RefundRequest with a nil Amount refunds the capture's full remaining value.
type RefundRequest struct {
	Amount      *Amount `json:"amount,omitempty"`
	InvoiceID   string  `json:"invoice_id,omitempty"`
	NoteToPayer string  `json:"note_to_payer,omitempty"`
}
