package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OperationKind names what a background operation does.
type OperationKind string

const (
	OpPayment    OperationKind = "payment"
	OpClearCache OperationKind = "clear-cache"
)

var ErrRunnerClosed = errors.New("runner is closed")

// Result reports the outcome of a background operation.
type Result struct {
	ID      uuid.UUID
	Kind    OperationKind
	Owner   string
	Value   any
	Err     error
	Elapsed time.Duration
}

type operation struct {
	kind   OperationKind
	owner  string
	cancel context.CancelFunc
}

// Runner runs delayed operations in the background. Every operation can be
// cancelled; a cancelled operation never reports a result.
type Runner struct {
	logger *zap.Logger

	mu     sync.Mutex
	ops    map[uuid.UUID]*operation
	closed bool

	wg      sync.WaitGroup
	results chan Result
	done    chan struct{}
}

func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		logger:  logger,
		ops:     make(map[uuid.UUID]*operation),
		results: make(chan Result, 16),
		done:    make(chan struct{}),
	}
}

// Results returns the channel receiving finished operations. It is closed by
// Close once every operation has stopped.
func (r *Runner) Results() <-chan Result {
	return r.results
}

// Start runs fn in the background on behalf of owner.
func (r *Runner) Start(owner string, kind OperationKind, fn func(ctx context.Context) (any, error)) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return uuid.Nil, ErrRunnerClosed
	}

	id := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	r.ops[id] = &operation{kind: kind, owner: owner, cancel: cancel}
	r.wg.Add(1)

	r.logger.Debug("Operation started", zap.Stringer("id", id), zap.String("kind", string(kind)), zap.String("owner", owner))

	go func() {
		defer r.wg.Done()
		defer cancel()

		start := time.Now()
		value, err := fn(ctx)
		r.finish(Result{
			ID:      id,
			Kind:    kind,
			Owner:   owner,
			Value:   value,
			Err:     err,
			Elapsed: time.Since(start),
		})
	}()
	return id, nil
}

func (r *Runner) finish(res Result) {
	r.mu.Lock()
	_, live := r.ops[res.ID]
	delete(r.ops, res.ID)
	r.mu.Unlock()

	if !live {
		r.logger.Debug("Dropping result of cancelled operation", zap.Stringer("id", res.ID))
		return
	}
	if res.Err != nil {
		r.logger.Warn("Operation failed", zap.Stringer("id", res.ID), zap.String("kind", string(res.Kind)), zap.Error(res.Err))
	}

	select {
	case r.results <- res:
	case <-r.done:
	}
}

// Cancel stops one operation. It reports whether the operation was running.
func (r *Runner) Cancel(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.ops[id]
	if !ok {
		return false
	}
	delete(r.ops, id)
	op.cancel()
	return true
}

// CancelOwner stops every operation started by owner and returns how many
// were stopped.
func (r *Runner) CancelOwner(owner string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, op := range r.ops {
		if op.owner == owner {
			delete(r.ops, id)
			op.cancel()
			n++
		}
	}
	return n
}

// Running counts the live operations of owner.
func (r *Runner) Running(owner string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.owner == owner {
			n++
		}
	}
	return n
}

// Close cancels everything, waits for the goroutines and closes Results.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	for id, op := range r.ops {
		delete(r.ops, id)
		op.cancel()
	}
	r.mu.Unlock()

	close(r.done)
	r.wg.Wait()
	close(r.results)
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
