package v1

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/numinix/paypal-rest-api-sub010/internal/api/contract"
	"github.com/numinix/paypal-rest-api-sub010/internal/api/validator"
	"github.com/numinix/paypal-rest-api-sub010/internal/constants"
	"github.com/numinix/paypal-rest-api-sub010/internal/service"
	"go.uber.org/zap"
)

type Handler struct {
	logger     *zap.Logger
	sync       service.SyncEngine
	capture    service.CaptureOrchestrator
	refund     service.RefundOrchestrator
	void       service.VoidOrchestrator
	XValidator validator.IXValidator
}

func NewHandler(logger *zap.Logger, sync service.SyncEngine, capture service.CaptureOrchestrator,
	refund service.RefundOrchestrator, void service.VoidOrchestrator, XValidator validator.IXValidator) *Handler {
	return &Handler{logger: logger, sync: sync, capture: capture, refund: refund, void: void,
		XValidator: XValidator}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

// GetTransactions reconciles the ledger against the processor before
// returning it, so the admin always sees the merged state.
func (h *Handler) GetTransactions(c *fiber.Ctx) error {
	orderID, err := h.orderID(c)
	if err != nil {
		return err
	}

	result, err := h.sync.Reconcile(c.UserContext(), orderID)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Code: "success", Result: result})
}

func (h *Handler) Capture(c *fiber.Ctx) error {
	orderID, err := h.orderID(c)
	if err != nil {
		return err
	}

	var request CaptureRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("capture request validation failed", zap.Any("request", request))
		return c.Status(fiber.StatusBadRequest).JSON(responseError)
	}

	cmd := service.CaptureCommand{
		OrderID:            orderID,
		RequestOrderID:     request.OrderID,
		AuthorizationTxnID: request.AuthorizationID,
		Amount:             request.Amount,
		FinalCapture:       request.FinalCapture,
		Note:               request.Note,
		AdminUser:          request.AdminUser,
	}

	txn, err := h.capture.Capture(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Code: "success", Message: "capture recorded", Result: txn})
}

func (h *Handler) Refund(c *fiber.Ctx) error {
	orderID, err := h.orderID(c)
	if err != nil {
		return err
	}

	var request RefundRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("refund request validation failed", zap.Any("request", request))
		return c.Status(fiber.StatusBadRequest).JSON(responseError)
	}

	cmd := service.RefundCommand{
		OrderID:        orderID,
		RequestOrderID: request.OrderID,
		CaptureTxnID:   request.CaptureID,
		Amount:         request.Amount,
		FullRefund:     request.FullRefund,
		Note:           request.Note,
		AdminUser:      request.AdminUser,
	}

	txn, err := h.refund.Refund(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Code: "success", Message: "refund recorded", Result: txn})
}

func (h *Handler) Void(c *fiber.Ctx) error {
	orderID, err := h.orderID(c)
	if err != nil {
		return err
	}

	var request VoidRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("void request validation failed", zap.Any("request", request))
		return c.Status(fiber.StatusBadRequest).JSON(responseError)
	}

	cmd := service.VoidCommand{
		OrderID:            orderID,
		RequestOrderID:     request.OrderID,
		AuthorizationTxnID: request.AuthorizationID,
		Note:               request.Note,
		AdminUser:          request.AdminUser,
	}

	if err := h.void.Void(c.UserContext(), cmd); err != nil {
		return err
	}

	return c.JSON(contract.Response{Code: "success", Message: "authorization voided"})
}

func (h *Handler) orderID(c *fiber.Ctx) (int, error) {
	orderID, err := strconv.Atoi(c.Params("orderId"))
	if err != nil || orderID < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "order id must be a positive integer")
	}

	return orderID, nil
}
