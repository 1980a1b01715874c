package service

// RequestOrderID on each command carries the order id the admin form posted;
// it must match OrderID, the order under action, before anything else runs.

type CaptureCommand struct {
	OrderID            int
	RequestOrderID     int
	AuthorizationTxnID string
	Amount             string
	Note               string
	FinalCapture       bool
	AdminUser          string
}

// RefundCommand with FullRefund set ignores Amount and refunds the capture's
// full remaining value on the processor side.
type RefundCommand struct {
	OrderID        int
	RequestOrderID int
	CaptureTxnID   string
	Amount         string
	FullRefund     bool
	Note           string
	AdminUser      string
}

type VoidCommand struct {
	OrderID            int
	RequestOrderID     int
	AuthorizationTxnID string
	Note               string
	AdminUser          string
}
