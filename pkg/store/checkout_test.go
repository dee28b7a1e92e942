package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCheckout(t *testing.T, balance int64) *Checkout {
	t.Helper()
	return NewCheckout(newTestCalculator(t), NewWallet(balance))
}

func TestBeginRejectsBelowMinimum(t *testing.T) {
	c := newTestCheckout(t, 40)
	c.Calculator().SetCoins(5)

	order, err := c.Begin("reader@example.com")

	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrBelowMinimum)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Minimum purchase is 10 coins", verr.Message)

	assert.Equal(t, int64(40), c.Wallet().Balance())
	assert.Nil(t, c.Pending())
	assert.Equal(t, int64(5), c.Calculator().Quote().Coins)
}

func TestBeginRequiresPayee(t *testing.T) {
	c := newTestCheckout(t, 0)

	_, err := c.Begin("   ")

	assert.ErrorIs(t, err, ErrPayeeRequired)
	assert.Zero(t, c.Wallet().Balance())
}

func TestBeginWhenPaymentsDisabled(t *testing.T) {
	c := newTestCheckout(t, 0)
	c.SetPaymentsEnabled(false)

	_, err := c.Begin("reader@example.com")
	assert.ErrorIs(t, err, ErrPaymentsDisabled)
}

func TestSuccessfulPurchase(t *testing.T) {
	c := newTestCheckout(t, 10)
	c.Calculator().SetCoins(250)

	order, err := c.Begin(" reader@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", order.Payee)
	assert.Equal(t, "15.00", order.Amount.StringFixed(2))

	// credited while the charge runs
	assert.Equal(t, int64(260), c.Wallet().Balance())

	_, err = c.Begin("reader@example.com")
	assert.ErrorIs(t, err, ErrOrderPending)

	receipt, err := c.Complete(order, Confirmation{Reference: "ref-1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ref-1", receipt.Reference)
	assert.Equal(t, int64(250), receipt.Coins)
	assert.False(t, receipt.At.IsZero())

	assert.Equal(t, int64(260), c.Wallet().Balance())
	assert.Len(t, c.Wallet().History(), 1)
	assert.Nil(t, c.Pending())
	assert.Equal(t, int64(DefaultCoins), c.Calculator().Quote().Coins)
}

func TestFailedChargeReverts(t *testing.T) {
	c := newTestCheckout(t, 10)
	c.Calculator().SetCoins(100)

	order, err := c.Begin("reader@example.com")
	require.NoError(t, err)

	_, err = c.Complete(order, Confirmation{}, ErrDeclined)
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.ErrorIs(t, err, ErrDeclined)

	assert.Equal(t, int64(10), c.Wallet().Balance())
	assert.Empty(t, c.Wallet().History())
	// the form keeps what the user entered
	assert.Equal(t, int64(100), c.Calculator().Quote().Coins)
}

func TestStaleCompletionIsIgnored(t *testing.T) {
	c := newTestCheckout(t, 0)

	order, err := c.Begin("reader@example.com")
	require.NoError(t, err)
	c.Abort()
	assert.Zero(t, c.Wallet().Balance())

	_, err = c.Complete(order, Confirmation{}, nil)
	assert.ErrorIs(t, err, ErrStaleOrder)
	assert.Zero(t, c.Wallet().Balance())
	assert.Empty(t, c.Wallet().History())

	_, err = c.Complete(nil, Confirmation{}, nil)
	assert.ErrorIs(t, err, ErrStaleOrder)
}

func TestPurchaseWithSimulatedProvider(t *testing.T) {
	c := newTestCheckout(t, 0)
	c.Calculator().SetCoins(50)

	receipt, err := c.Purchase(context.Background(), SimulatedProvider{Delay: time.Millisecond}, "reader@example.com")
	require.NoError(t, err)
	assert.Contains(t, receipt.Reference, "SIM-")
	assert.Equal(t, int64(50), c.Wallet().Balance())
}

func TestPurchaseDeclined(t *testing.T) {
	c := newTestCheckout(t, 0)

	_, err := c.Purchase(context.Background(), SimulatedProvider{Decline: true}, "reader@example.com")
	assert.ErrorIs(t, err, ErrDeclined)
	assert.Zero(t, c.Wallet().Balance())
}

func TestPurchaseCancelled(t *testing.T) {
	c := newTestCheckout(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Purchase(ctx, SimulatedProvider{Delay: time.Hour}, "reader@example.com")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, c.Wallet().Balance())
	assert.Nil(t, c.Pending())
}

func TestNewWalletClampsNegative(t *testing.T) {
	assert.Zero(t, NewWallet(-5).Balance())
}
