package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func receive(t *testing.T, r *Runner) Result {
	t.Helper()
	select {
	case res := <-r.Results():
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
		return Result{}
	}
}

func TestRunnerDeliversResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewRunner(nil)
	defer r.Close()

	id, err := r.Start("store", OpPayment, func(ctx context.Context) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)

	res := receive(t, r)
	assert.Equal(t, id, res.ID)
	assert.Equal(t, OpPayment, res.Kind)
	assert.Equal(t, "store", res.Owner)
	assert.Equal(t, "ok", res.Value)
	assert.NoError(t, res.Err)
	assert.Zero(t, r.Running("store"))
}

func TestRunnerDeliversError(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewRunner(nil)
	defer r.Close()

	boom := errors.New("boom")
	_, err := r.Start("admin", OpClearCache, func(ctx context.Context) (any, error) {
		return nil, boom
	})
	require.NoError(t, err)

	res := receive(t, r)
	assert.ErrorIs(t, res.Err, boom)
}

func TestRunnerCancelDropsResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewRunner(nil)

	started := make(chan struct{})
	id, err := r.Start("store", OpPayment, func(ctx context.Context) (any, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	require.NoError(t, err)
	<-started

	assert.True(t, r.Cancel(id))
	assert.False(t, r.Cancel(id))

	r.Close()
	_, open := <-r.Results()
	assert.False(t, open, "cancelled operation must not report")
}

func TestRunnerCancelOwner(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewRunner(nil)
	defer r.Close()

	block := func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	for i := 0; i < 3; i++ {
		_, err := r.Start("store", OpPayment, block)
		require.NoError(t, err)
	}
	_, err := r.Start("admin", OpClearCache, func(ctx context.Context) (any, error) {
		return nil, Sleep(ctx, 10*time.Millisecond)
	})
	require.NoError(t, err)

	assert.Equal(t, 3, r.Running("store"))
	assert.Equal(t, 3, r.CancelOwner("store"))
	assert.Zero(t, r.Running("store"))

	res := receive(t, r)
	assert.Equal(t, "admin", res.Owner)
	assert.NoError(t, res.Err)
}

func TestRunnerCloseStopsEverything(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewRunner(nil)
	for i := 0; i < 5; i++ {
		_, err := r.Start("store", OpPayment, func(ctx context.Context) (any, error) {
			return nil, Sleep(ctx, time.Hour)
		})
		require.NoError(t, err)
	}
	r.Close()
	r.Close()

	_, err := r.Start("store", OpPayment, func(context.Context) (any, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrRunnerClosed)
}

func TestSleep(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
}
