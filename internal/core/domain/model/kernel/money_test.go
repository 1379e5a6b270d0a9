package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should normalize currency", func(t *testing.T) {
		m, err := kernel.NewMoney(149900, " usd ")

		require.NoError(t, err)
		assert.Equal(t, int64(149900), m.Minor())
		assert.Equal(t, "USD", m.Currency())
		assert.Equal(t, "1499.00 USD", m.String())
		require.NoError(t, m.Validate())
	})

	t.Run("should default currency", func(t *testing.T) {
		m, err := kernel.NewMoney(0, "")

		require.NoError(t, err)
		assert.Equal(t, kernel.DefaultCurrency, m.Currency())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-1, "INR")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject malformed currency", func(t *testing.T) {
		_, err := kernel.NewMoney(100, "RUPEE")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_IsEqual(t *testing.T) {
	a, _ := kernel.NewMoney(500, "INR")
	b, _ := kernel.NewMoney(500, "inr")
	c, _ := kernel.NewMoney(500, "USD")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestMoney_ZeroValueIsNotConstructed(t *testing.T) {
	var m kernel.Money
	assert.ErrorIs(t, m.Validate(), kernel.ErrMoneyIsNotConstructed)
}
