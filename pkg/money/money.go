package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount  = errors.New("INVALID_AMOUNT")
	ErrNegativeAmount = errors.New("NEGATIVE_AMOUNT")
	ErrZeroAmount     = errors.New("ZERO_AMOUNT")
)

// Currencies the processor settles without minor units.
var zeroDecimalCurrencies = map[string]struct{}{
	"HUF": {},
	"JPY": {},
	"TWD": {},
}

// Codec converts between display strings and decimal values for a single
// currency. Values are always rounded to the currency's minor-unit precision.
type Codec struct {
	currency string
	exponent int32
}

func NewCodec(currencyCode string) *Codec {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))

	exponent := int32(2)
	if _, ok := zeroDecimalCurrencies[code]; ok {
		exponent = 0
	}

	return &Codec{currency: code, exponent: exponent}
}

func (c *Codec) Currency() string {
	return c.currency
}

// Parse converts a user-entered display string into a decimal value.
func (c *Codec) Parse(display string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(display)
	if trimmed == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	if value.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}

	return value.Round(c.exponent), nil
}

// ParsePositive is Parse with zero additionally rejected. Capture and refund
// amounts must be strictly positive.
func (c *Codec) ParsePositive(display string) (decimal.Decimal, error) {
	value, err := c.Parse(display)
	if err != nil {
		return decimal.Zero, err
	}

	if value.IsZero() {
		return decimal.Zero, ErrZeroAmount
	}

	return value, nil
}

func (c *Codec) Format(value decimal.Decimal) string {
	return value.StringFixed(c.exponent)
}
