package v1

type CaptureRequest struct {
	OrderID         int    `json:"order_id" validate:"required,min=1"`
	AuthorizationID string `json:"authorization_id" validate:"required"`
	Amount          string `json:"amount" validate:"required"`
	FinalCapture    bool   `json:"final_capture"`
	Note            string `json:"note" validate:"max=255"`
	AdminUser       string `json:"admin_user" validate:"required"`
}

type RefundRequest struct {
	OrderID    int    `json:"order_id" validate:"required,min=1"`
	CaptureID  string `json:"capture_id" validate:"required"`
	Amount     string `json:"amount" validate:"required_if=FullRefund false"`
	FullRefund bool   `json:"full_refund"`
	Note       string `json:"note" validate:"max=255"`
	AdminUser  string `json:"admin_user" validate:"required"`
}

type VoidRequest struct {
	OrderID         int    `json:"order_id" validate:"required,min=1"`
	AuthorizationID string `json:"authorization_id" validate:"required"`
	Note            string `json:"note" validate:"max=255"`
	AdminUser       string `json:"admin_user" validate:"required"`
}
