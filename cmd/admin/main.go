package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/numinix/paypal-rest-api-sub010/internal/api"
	"github.com/numinix/paypal-rest-api-sub010/internal/api/middleware"
	v1 "github.com/numinix/paypal-rest-api-sub010/internal/api/v1"
	"github.com/numinix/paypal-rest-api-sub010/internal/api/validator"
	"github.com/numinix/paypal-rest-api-sub010/internal/config"
	"github.com/numinix/paypal-rest-api-sub010/internal/metrics"
	"github.com/numinix/paypal-rest-api-sub010/internal/repository"
	"github.com/numinix/paypal-rest-api-sub010/internal/service"
	"github.com/numinix/paypal-rest-api-sub010/pkg/httpclient"
	"github.com/numinix/paypal-rest-api-sub010/pkg/paypal"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewConnectionDB,
			NewRegistry,
			metrics.NewMetrics,
			NewPaymentGateway,

			repository.NewTransactionLedger,
			repository.NewOrderRepository,
			repository.NewTransactionManager,

			NewSyncEngine,
			NewCaptureOrchestrator,
			NewRefundOrchestrator,
			NewVoidOrchestrator,

			validator.NewXValidator,
			v1.NewHandler,
		),
		fx.Invoke(runServer),
	).Run()
}

func runServer(cfg *config.Config, handler *v1.Handler, logger *zap.Logger, lc fx.Lifecycle) {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})

	api.SetupRoutes(app, handler)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(":" + cfg.API.Port); err != nil {
					logger.Error("server exited", zap.Error(err))
				}
			}()

			logger.Info("admin API started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping admin API")
			return app.Shutdown()
		},
	})
}

func NewConnectionDB(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{})
}

func NewRegistry() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}

func NewPaymentGateway(cfg *config.Config) paypal.Gateway {
	client := httpclient.NewHTTPClient(cfg.PayPal.Timeout)
	return paypal.NewGateway(cfg.PayPal, client)
}

func NewSyncEngine(ledger repository.TransactionLedger, gateway paypal.Gateway, cfg *config.Config,
	logger *zap.Logger, m *metrics.Metrics) service.SyncEngine {
	return service.NewSyncEngine(ledger, gateway, cfg.Module, logger, m)
}

func NewCaptureOrchestrator(ledger repository.TransactionLedger, orders repository.OrderRepository,
	txManager repository.TxManager, gateway paypal.Gateway, cfg *config.Config,
	logger *zap.Logger, m *metrics.Metrics) service.CaptureOrchestrator {
	return service.NewCaptureOrchestrator(ledger, orders, txManager, gateway, cfg, logger, m)
}

func NewRefundOrchestrator(ledger repository.TransactionLedger, orders repository.OrderRepository,
	txManager repository.TxManager, gateway paypal.Gateway, cfg *config.Config,
	logger *zap.Logger, m *metrics.Metrics) service.RefundOrchestrator {
	return service.NewRefundOrchestrator(ledger, orders, txManager, gateway, cfg, logger, m)
}

func NewVoidOrchestrator(ledger repository.TransactionLedger, orders repository.OrderRepository,
	txManager repository.TxManager, gateway paypal.Gateway, cfg *config.Config,
	logger *zap.Logger, m *metrics.Metrics) service.VoidOrchestrator {
	return service.NewVoidOrchestrator(ledger, orders, txManager, gateway, cfg, logger, m)
}
