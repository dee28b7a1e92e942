package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a purchase between Begin and Complete.
type Order struct {
	ID        uuid.UUID
	Payee     string
	Coins     int64
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// Checkout validates purchases and applies them to a wallet. Coins are
// credited when an order begins and taken back if the charge fails, so the
// balance shown while a payment is processing already includes them.
type Checkout struct {
	calc    *Calculator
	wallet  *Wallet
	enabled bool
	pending *Order
	now     func() time.Time
}

func NewCheckout(calc *Calculator, wallet *Wallet) *Checkout {
	return &Checkout{
		calc:    calc,
		wallet:  wallet,
		enabled: true,
		now:     time.Now,
	}
}

func (c *Checkout) Calculator() *Calculator { return c.calc }
func (c *Checkout) Wallet() *Wallet         { return c.wallet }

func (c *Checkout) PaymentsEnabled() bool { return c.enabled }

func (c *Checkout) SetPaymentsEnabled(enabled bool) {
	c.enabled = enabled
}

// Pending returns the order awaiting its charge, if any.
func (c *Checkout) Pending() *Order {
	return c.pending
}

// Begin validates the form and opens an order for the current quote. A
// validation failure leaves every piece of state untouched.
func (c *Checkout) Begin(payee string) (*Order, error) {
	payee = strings.TrimSpace(payee)
	quote := c.calc.Quote()
	minimum := c.calc.Limits().Min

	switch {
	case c.pending != nil:
		return nil, &ValidationError{
			Title:   "Purchase In Progress",
			Message: "Please wait for the current purchase to finish",
			Err:     ErrOrderPending,
		}
	case !c.enabled:
		return nil, &ValidationError{
			Title:   "Payments Unavailable",
			Message: "Coin purchases are currently disabled",
			Err:     ErrPaymentsDisabled,
		}
	case payee == "":
		return nil, &ValidationError{
			Title:   "Email Required",
			Message: "Please enter your PayPal email address",
			Err:     ErrPayeeRequired,
		}
	case quote.Coins < minimum:
		return nil, &ValidationError{
			Title:   "Minimum Purchase",
			Message: fmt.Sprintf("Minimum purchase is %d coins", minimum),
			Err:     ErrBelowMinimum,
		}
	}

	order := &Order{
		ID:        uuid.New(),
		Payee:     payee,
		Coins:     quote.Coins,
		Amount:    quote.Amount,
		CreatedAt: c.now(),
	}
	c.wallet.credit(order.Coins)
	c.pending = order
	return order, nil
}

// Complete settles order with the outcome of its charge. Orders other than
// the pending one are rejected with ErrStaleOrder and change nothing.
func (c *Checkout) Complete(order *Order, conf Confirmation, chargeErr error) (*Receipt, error) {
	if order == nil || c.pending == nil || c.pending.ID != order.ID {
		return nil, ErrStaleOrder
	}
	c.pending = nil

	if chargeErr != nil {
		c.wallet.revert(order.Coins)
		return nil, fmt.Errorf("%w: %w", ErrPaymentFailed, chargeErr)
	}

	at := conf.ProcessedAt
	if at.IsZero() {
		at = c.now()
	}
	receipt := Receipt{
		OrderID:   order.ID,
		Reference: conf.Reference,
		Payee:     order.Payee,
		Coins:     order.Coins,
		Amount:    order.Amount,
		At:        at,
	}
	c.wallet.record(receipt)
	c.calc.Reset()
	return &receipt, nil
}

// Abort drops the pending order and takes its coins back.
func (c *Checkout) Abort() {
	if c.pending == nil {
		return
	}
	c.wallet.revert(c.pending.Coins)
	c.pending = nil
}

// Purchase runs a whole checkout synchronously.
func (c *Checkout) Purchase(ctx context.Context, provider PaymentProvider, payee string) (*Receipt, error) {
	order, err := c.Begin(payee)
	if err != nil {
		return nil, err
	}
	conf, err := provider.Charge(ctx, *order)
	return c.Complete(order, conf, err)
}
