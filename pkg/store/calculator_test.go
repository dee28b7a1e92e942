package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestCalculator(t testing.TB) *Calculator {
	c, err := NewCalculator(DefaultRate(), DefaultLimits())
	require.NoError(t, err)
	return c
}

func TestDefaultRate(t *testing.T) {
	r := DefaultRate()
	assert.True(t, r.PerCoin().Equal(dec("0.06")))
	assert.Equal(t, "50 coins = 3.00", r.String())
}

func TestNewRateValidation(t *testing.T) {
	_, err := NewRate(50, "abc")
	assert.Error(t, err)

	_, err = NewRate(0, "3")
	assert.Error(t, err)

	_, err = NewRate(50, "-1")
	assert.Error(t, err)

	r, err := NewRate(100, " 0.99 ")
	require.NoError(t, err)
	assert.Equal(t, "0.99", r.Price(100).StringFixed(2))
}

func TestNewCalculatorStartsAtDefault(t *testing.T) {
	c := newTestCalculator(t)

	q := c.Quote()
	assert.Equal(t, int64(50), q.Coins)
	assert.Equal(t, "3.00", q.AmountString())
}

func TestNewCalculatorRejectsBadLimits(t *testing.T) {
	_, err := NewCalculator(DefaultRate(), Limits{Min: 20, Max: 10})
	assert.Error(t, err)

	_, err = NewCalculator(DefaultRate(), Limits{Min: 1, Max: 10, Default: 11})
	assert.Error(t, err)
}

func TestSetCoins(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		in        int64
		wantCoins int64
		wantAmt   string
	}{
		{50, 50, "3.00"},
		{5, 5, "0.30"},
		{0, 0, "0.00"},
		{-4, 0, "0.00"},
		{10000, 10000, "600.00"},
		{25000, 10000, "600.00"},
		{333, 333, "19.98"},
	}
	for _, tt := range tests {
		q := c.SetCoins(tt.in)
		assert.Equal(t, tt.wantCoins, q.Coins, "coins for %d", tt.in)
		assert.Equal(t, tt.wantAmt, q.AmountString(), "amount for %d", tt.in)
	}
}

func TestSetAmount(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		in        string
		wantCoins int64
		wantAmt   string
	}{
		{"3.00", 50, "3.00"},
		{"3.05", 51, "3.06"},
		{"0.03", 1, "0.06"}, // half rounds up
		{"0.02", 0, "0.00"},
		{"-1", 0, "0.00"},
		{"600", 10000, "600.00"},
		{"9999", 10000, "600.00"},
	}
	for _, tt := range tests {
		q := c.SetAmount(dec(tt.in))
		assert.Equal(t, tt.wantCoins, q.Coins, "coins for %s", tt.in)
		assert.Equal(t, tt.wantAmt, q.AmountString(), "amount for %s", tt.in)
	}
}

func TestParseFields(t *testing.T) {
	c := newTestCalculator(t)

	coins := []struct {
		in   string
		want int64
	}{
		{" 120 ", 120},
		{"lots", 0},
		{"-5", 0},
		{"999999", 10000},
		{"99999999999999999999", 10000},
		{"-99999999999999999999", 0},
	}
	for _, tt := range coins {
		assert.Equal(t, tt.want, c.ParseCoins(tt.in).Coins, "coins for %q", tt.in)
	}
	assert.Equal(t, int64(100), c.ParseAmount("$6").Coins)
	assert.Equal(t, int64(0), c.ParseAmount("six").Coins)
}

func TestResetAndPackages(t *testing.T) {
	c := newTestCalculator(t)

	q := c.SelectPackage(DefaultPackages[2])
	assert.Equal(t, int64(285), q.Coins)
	assert.Equal(t, "17.10", q.AmountString())

	q = c.Reset()
	assert.Equal(t, int64(50), q.Coins)
}

func TestSetRateReprices(t *testing.T) {
	c := newTestCalculator(t)
	c.SetCoins(100)

	r, err := NewRate(100, "0.99")
	require.NoError(t, err)
	require.NoError(t, c.SetRate(r))

	assert.Equal(t, "0.99", c.Quote().AmountString())
	assert.Error(t, c.SetRate(Rate{}))
}

func TestCoinsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c, err := NewCalculator(DefaultRate(), DefaultLimits())
		if err != nil {
			t.Fatal(err)
		}
		coins := rapid.Int64Range(0, DefaultMaxCoins).Draw(t, "coins")

		amount := c.SetCoins(coins).Amount
		back := c.SetAmount(amount)
		if back.Coins != coins {
			t.Fatalf("%d coins -> %s -> %d coins", coins, amount.StringFixed(2), back.Coins)
		}
	})
}

func TestAmountConversionIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		baseCoins := rapid.Int64Range(1, 500).Draw(t, "baseCoins")
		cents := rapid.Int64Range(1, 10000).Draw(t, "baseCents")
		rate := Rate{BaseCoins: baseCoins, BasePrice: decimal.New(cents, -2)}

		c, err := NewCalculator(rate, DefaultLimits())
		if err != nil {
			t.Fatal(err)
		}
		in := decimal.New(rapid.Int64Range(0, 10_000_000).Draw(t, "cents"), -2)

		first := c.SetAmount(in)
		second := c.SetAmount(first.Amount)
		if !second.Amount.Equal(first.Amount) {
			t.Fatalf("rate %s: %s -> %s -> %s", rate, in, first.Amount, second.Amount)
		}
		if first.Coins < 0 || first.Coins > DefaultMaxCoins {
			t.Fatalf("coins %d out of bounds", first.Coins)
		}
		if first.Amount.GreaterThan(c.MaxAmount().Round(2)) {
			t.Fatalf("amount %s above max %s", first.Amount, c.MaxAmount())
		}
	})
}
