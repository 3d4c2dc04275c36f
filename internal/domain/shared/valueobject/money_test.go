package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyConstruction(t *testing.T) {
	t.Run("requires a currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(10), "")
		assert.Error(t, err)
	})

	t.Run("BRL helpers default the currency", func(t *testing.T) {
		m := NewMoneyBRLFromFloat(25.90)
		assert.Equal(t, BRL, m.Currency())
		assert.Equal(t, "25.90", m.StringFixed(2))

		parsed, err := NewMoneyBRLFromString("12.50")
		require.NoError(t, err)
		assert.True(t, parsed.Amount().Equal(decimal.NewFromFloat(12.5)))

		_, err = NewMoneyBRLFromString("abc")
		assert.Error(t, err)
	})

	t.Run("zero is zero", func(t *testing.T) {
		assert.True(t, ZeroBRL().IsZero())
		assert.False(t, ZeroBRL().IsPositive())
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add accumulates same-currency amounts", func(t *testing.T) {
		total, err := NewMoneyBRLFromFloat(10.50).Add(NewMoneyBRLFromFloat(4.50))
		require.NoError(t, err)
		assert.Equal(t, "15.00", total.StringFixed(2))
	})

	t.Run("add rejects mixed currencies", func(t *testing.T) {
		usd, err := NewMoney(decimal.NewFromInt(10), USD)
		require.NoError(t, err)

		_, err = NewMoneyBRLFromFloat(10).Add(usd)
		assert.Error(t, err)
		assert.Panics(t, func() { NewMoneyBRLFromFloat(10).MustAdd(usd) })
	})

	t.Run("multiply scales the amount", func(t *testing.T) {
		// The line subtotal case: unit price times quantidade
		subtotal := NewMoneyBRLFromFloat(12.50).MultiplyByInt(3)
		assert.Equal(t, "37.50", subtotal.StringFixed(2))
		assert.Equal(t, BRL, subtotal.Currency())
	})
}

func TestMoneyComparison(t *testing.T) {
	small := NewMoneyBRLFromFloat(9.99)
	big := NewMoneyBRLFromFloat(10)

	t.Run("less than", func(t *testing.T) {
		below, err := small.LessThan(big)
		require.NoError(t, err)
		assert.True(t, below)

		atLeast, err := big.GreaterThanOrEqual(small)
		require.NoError(t, err)
		assert.True(t, atLeast)
	})

	t.Run("mixed currencies do not compare", func(t *testing.T) {
		usd, err := NewMoney(decimal.NewFromInt(10), USD)
		require.NoError(t, err)

		_, err = small.LessThan(usd)
		assert.Error(t, err)
	})

	t.Run("equals checks amount and currency", func(t *testing.T) {
		assert.True(t, big.Equals(NewMoneyBRL(decimal.NewFromInt(10))))
		assert.False(t, big.Equals(small))
	})
}

func TestMoneySerialization(t *testing.T) {
	t.Run("json round-trip", func(t *testing.T) {
		data, err := json.Marshal(NewMoneyBRLFromFloat(25.90))
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":"25.9","currency":"BRL"}`, string(data))

		var m Money
		require.NoError(t, json.Unmarshal(data, &m))
		assert.True(t, m.Equals(NewMoneyBRLFromFloat(25.90)))
	})

	t.Run("scan defaults to BRL", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("12.5000"))
		assert.Equal(t, BRL, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(12.5)))

		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())

		assert.Error(t, m.Scan(42))
	})

	t.Run("value stores the bare amount", func(t *testing.T) {
		v, err := NewMoneyBRLFromFloat(12.5).Value()
		require.NoError(t, err)
		assert.Equal(t, "12.5", v)
	})
}
