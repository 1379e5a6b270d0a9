package kernel

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// DefaultCurrency is used when an order is placed without one.
const DefaultCurrency = "INR"

// ErrMoneyIsNotConstructed is returned when validating a zero Money.
var ErrMoneyIsNotConstructed = errors.New("money must be created via NewMoney")

// Money is an amount in minor units (paise, cents) with an ISO 4217 currency code.
type Money struct {
	minor    int64
	currency string
	guard    guard.ConstructorGuard
}

func NewMoney(minor int64, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	if minor < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", minor, 0, "unbounded")
	}
	if len(currency) != 3 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("want a 3 letter code, got %q", currency))
	}

	return Money{minor: minor, currency: currency, guard: guard.NewConstructorGuard()}, nil
}

func (m Money) Minor() int64 {
	return m.minor
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsEqual(other Money) bool {
	return m.minor == other.minor && m.currency == other.currency
}

// String renders the amount with two decimals, e.g. "1499.00 INR".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.minor/100, m.minor%100, m.currency)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
