package api

import (
	"github.com/gofiber/fiber/v2"
	v1 "github.com/numinix/paypal-rest-api-sub010/internal/api/v1"
)

const prefixV1 = "/api/v1"

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/ping", handler.Pong)
	app.Get(prefixV1+"/orders/:orderId/transactions", handler.GetTransactions)
	app.Post(prefixV1+"/orders/:orderId/capture", handler.Capture)
	app.Post(prefixV1+"/orders/:orderId/refund", handler.Refund)
	app.Post(prefixV1+"/orders/:orderId/void", handler.Void)
}
