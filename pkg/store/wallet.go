package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt records a completed purchase.
type Receipt struct {
	OrderID   uuid.UUID
	Reference string
	Payee     string
	Coins     int64
	Amount    decimal.Decimal
	At        time.Time
}

// Wallet is the in-memory coin balance of the current user.
type Wallet struct {
	balance int64
	history []Receipt
}

func NewWallet(balance int64) *Wallet {
	if balance < 0 {
		balance = 0
	}
	return &Wallet{balance: balance}
}

func (w *Wallet) Balance() int64 {
	return w.balance
}

// History lists receipts, oldest first.
func (w *Wallet) History() []Receipt {
	out := make([]Receipt, len(w.history))
	copy(out, w.history)
	return out
}

func (w *Wallet) credit(coins int64) {
	w.balance += coins
}

func (w *Wallet) revert(coins int64) {
	w.balance -= coins
}

func (w *Wallet) record(r Receipt) {
	w.history = append(w.history, r)
}
