package store

import (
	"context"
	"fmt"
	"time"
)

// Confirmation is what a payment provider returns for a settled charge.
type Confirmation struct {
	Reference   string
	ProcessedAt time.Time
}

type PaymentProvider interface {
	Charge(ctx context.Context, order Order) (Confirmation, error)
}

// SimulatedProvider settles every charge after Delay, or declines it when
// Decline is set.
type SimulatedProvider struct {
	Delay   time.Duration
	Decline bool
}

func (p SimulatedProvider) Charge(ctx context.Context, order Order) (Confirmation, error) {
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Confirmation{}, ctx.Err()
	case <-timer.C:
	}

	if p.Decline {
		return Confirmation{}, fmt.Errorf("%w for %s", ErrDeclined, order.Payee)
	}
	return Confirmation{
		Reference:   "SIM-" + order.ID.String()[:8],
		ProcessedAt: time.Now(),
	}, nil
}
