package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestWaitAdmitsUpToLimitImmediately(t *testing.T) {
	t.Parallel()
	clk := newFakeClock()
	l := New(3, 10*time.Second, clk)
	l.sleep = func(ctx context.Context, d time.Duration) error {
		t.Fatalf("unexpected sleep of %v", d)
		return nil
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
}

func TestWaitSleepsUntilOldestAgesOut(t *testing.T) {
	t.Parallel()
	clk := newFakeClock()
	l := New(2, 10*time.Second, clk)

	var slept []time.Duration
	l.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		clk.advance(d)
		return nil
	}

	require.NoError(t, l.Wait(context.Background()))
	clk.advance(4 * time.Second)
	require.NoError(t, l.Wait(context.Background()))

	// Window is full; the third call has to wait out the remaining
	// six seconds of the first call's window.
	require.NoError(t, l.Wait(context.Background()))
	require.Equal(t, []time.Duration{6 * time.Second}, slept)
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	t.Parallel()
	clk := newFakeClock()
	l := New(1, time.Minute, clk)

	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, l.Wait(ctx), context.Canceled)
}

func TestWaitRecordsAtMostWindowCount(t *testing.T) {
	t.Parallel()
	clk := newFakeClock()
	l := New(2, 10*time.Second, clk)
	l.sleep = func(ctx context.Context, d time.Duration) error {
		clk.advance(d)
		return nil
	}

	for i := 0; i < 6; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	require.LessOrEqual(t, len(l.stamps), 2)
}
