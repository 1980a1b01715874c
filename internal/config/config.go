package config

import (
	"fmt"

	"github.com/numinix/paypal-rest-api-sub010/pkg/paypal"
	"github.com/spf13/viper"
)

type Config struct {
	API         API           `mapstructure:"api"`
	Database    Database      `mapstructure:"database"`
	PayPal      paypal.Config `mapstructure:"paypal"`
	Module      Module        `mapstructure:"module"`
	OrderStatus OrderStatus   `mapstructure:"order_status"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Database struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

func (d Database) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// Module identifies which payment module produced a ledger. The name is
// stamped on every transaction row.
type Module struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// OrderStatus holds the merchant-configured order-status ids the
// orchestrators set after a successful action. A zero value means the
// merchant never configured one and the default applies.
type OrderStatus struct {
	Paid              int `mapstructure:"paid"`
	PaymentPending    int `mapstructure:"payment_pending"`
	PartiallyRefunded int `mapstructure:"partially_refunded"`
	Refunded          int `mapstructure:"refunded"`
}

const (
	defaultModuleName = "paypalr"

	DefaultPaidStatusID              = 2
	DefaultPaymentPendingStatusID    = 1
	DefaultPartiallyRefundedStatusID = 5
	DefaultRefundedStatusID          = 4
)

func (s OrderStatus) WithDefaults() OrderStatus {
	if s.Paid == 0 {
		s.Paid = DefaultPaidStatusID
	}
	if s.PaymentPending == 0 {
		s.PaymentPending = DefaultPaymentPendingStatusID
	}
	if s.PartiallyRefunded == 0 {
		s.PartiallyRefunded = DefaultPartiallyRefundedStatusID
	}
	if s.Refunded == 0 {
		s.Refunded = DefaultRefundedStatusID
	}
	return s
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Module.Name == "" {
		cfg.Module.Name = defaultModuleName
	}
	cfg.OrderStatus = cfg.OrderStatus.WithDefaults()

	return &cfg, nil
}
