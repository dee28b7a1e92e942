// Package store converts between coins and money and runs coin purchases.
package store

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseCoins = 50
	DefaultBasePrice = "3.00"
	DefaultMinCoins  = 10
	DefaultMaxCoins  = 10000
	DefaultCoins     = 50
)

// Rate prices BaseCoins coins at BasePrice.
type Rate struct {
	BaseCoins int64
	BasePrice decimal.Decimal
}

func NewRate(baseCoins int64, basePrice string) (Rate, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(basePrice))
	if err != nil {
		return Rate{}, fmt.Errorf("invalid base price %q: %w", basePrice, err)
	}
	r := Rate{BaseCoins: baseCoins, BasePrice: price}
	return r, r.Validate()
}

func DefaultRate() Rate {
	return Rate{BaseCoins: DefaultBaseCoins, BasePrice: decimal.RequireFromString(DefaultBasePrice)}
}

func (r Rate) Validate() error {
	if r.BaseCoins <= 0 {
		return errors.New("base coins must be positive")
	}
	if !r.BasePrice.IsPositive() {
		return errors.New("base price must be positive")
	}
	return nil
}

// PerCoin is the unrounded price of one coin.
func (r Rate) PerCoin() decimal.Decimal {
	return r.BasePrice.Div(decimal.NewFromInt(r.BaseCoins))
}

// Price is the cost of coins, rounded to cents.
func (r Rate) Price(coins int64) decimal.Decimal {
	return r.exact(coins).Round(2)
}

// Coins is the number of coins amount buys, rounded to the nearest coin.
func (r Rate) Coins(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(r.BaseCoins)).Div(r.BasePrice).Round(0).IntPart()
}

func (r Rate) exact(coins int64) decimal.Decimal {
	return r.BasePrice.Mul(decimal.NewFromInt(coins)).Div(decimal.NewFromInt(r.BaseCoins))
}

func (r Rate) String() string {
	return fmt.Sprintf("%d coins = %s", r.BaseCoins, r.BasePrice.StringFixed(2))
}

type Limits struct {
	Min     int64
	Max     int64
	Default int64
}

func DefaultLimits() Limits {
	return Limits{Min: DefaultMinCoins, Max: DefaultMaxCoins, Default: DefaultCoins}
}

func (l Limits) Validate() error {
	if l.Min < 0 || l.Max <= 0 || l.Min > l.Max {
		return fmt.Errorf("invalid coin limits [%d, %d]", l.Min, l.Max)
	}
	if l.Default < 0 || l.Default > l.Max {
		return fmt.Errorf("default coins %d outside [0, %d]", l.Default, l.Max)
	}
	return nil
}

// Quote is a coin quantity and what it costs.
type Quote struct {
	Coins  int64
	Amount decimal.Decimal
}

// AmountString formats the amount with two decimals.
func (q Quote) AmountString() string {
	return q.Amount.StringFixed(2)
}

// Calculator keeps the coin and amount fields of the purchase form in step.
// The coin quantity is authoritative and the amount is always derived from it.
type Calculator struct {
	rate   Rate
	limits Limits
	coins  int64
}

func NewCalculator(rate Rate, limits Limits) (*Calculator, error) {
	if err := rate.Validate(); err != nil {
		return nil, err
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{rate: rate, limits: limits, coins: limits.Default}, nil
}

func (c *Calculator) Rate() Rate     { return c.rate }
func (c *Calculator) Limits() Limits { return c.limits }

// SetRate swaps the exchange rate and reprices the current quantity.
func (c *Calculator) SetRate(rate Rate) error {
	if err := rate.Validate(); err != nil {
		return err
	}
	c.rate = rate
	return nil
}

// MaxAmount is the price of the largest allowed quantity.
func (c *Calculator) MaxAmount() decimal.Decimal {
	return c.rate.exact(c.limits.Max)
}

// SetCoins clamps coins to [0, Max]. Quantities under the purchase minimum
// are accepted here and rejected at checkout.
func (c *Calculator) SetCoins(coins int64) Quote {
	c.coins = clampCoins(coins, c.limits.Max)
	return c.Quote()
}

// SetAmount clamps amount to [0, MaxAmount] and converts it to coins.
func (c *Calculator) SetAmount(amount decimal.Decimal) Quote {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	if ceiling := c.MaxAmount(); amount.GreaterThan(ceiling) {
		amount = ceiling
	}
	c.coins = clampCoins(c.rate.Coins(amount), c.limits.Max)
	return c.Quote()
}

// ParseCoins handles text typed in the coin field; anything that does not
// parse counts as zero and numbers too long for int64 clamp by sign.
func (c *Calculator) ParseCoins(s string) Quote {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange) && strings.HasPrefix(s, "-"):
		n = math.MinInt64
	case errors.Is(err, strconv.ErrRange):
		n = math.MaxInt64
	case err != nil:
		n = 0
	}
	return c.SetCoins(n)
}

// ParseAmount handles text typed in the amount field.
func (c *Calculator) ParseAmount(s string) Quote {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	a, err := decimal.NewFromString(s)
	if err != nil {
		a = decimal.Zero
	}
	return c.SetAmount(a)
}

func (c *Calculator) Quote() Quote {
	return Quote{Coins: c.coins, Amount: c.rate.Price(c.coins)}
}

// Reset restores the default quantity.
func (c *Calculator) Reset() Quote {
	c.coins = c.limits.Default
	return c.Quote()
}

func clampCoins(n, ceiling int64) int64 {
	if n < 0 {
		return 0
	}
	if n > ceiling {
		return ceiling
	}
	return n
}
