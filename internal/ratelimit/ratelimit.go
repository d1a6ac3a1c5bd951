// Package ratelimit provides a trailing-window request limiter used to
// keep marketplace fetches below detection thresholds.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/gpuradar/gpuradar/internal/clock"
)

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Limiter allows at most maxCalls timestamps inside a trailing window.
// Unlike a token bucket it never grants bursts beyond the window count:
// the (n+1)th call waits until the oldest of the last n calls ages out.
type Limiter struct {
	mu       sync.Mutex
	maxCalls int
	window   time.Duration
	stamps   []time.Time
	clk      clock.Clock
	sleep    SleepFunc
}

// New returns a limiter admitting maxCalls per window.
func New(maxCalls int, window time.Duration, clk clock.Clock) *Limiter {
	return &Limiter{
		maxCalls: maxCalls,
		window:   window,
		clk:      clk,
		sleep:    sleepWithContext,
	}
}

// Wait blocks until the caller may proceed, then records the call.
// Returns early with the context error when ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := l.clk.Now()
		l.prune(now)
		if len(l.stamps) < l.maxCalls {
			l.stamps = append(l.stamps, now)
			l.mu.Unlock()
			return nil
		}
		wait := l.window - now.Sub(l.stamps[0])
		l.mu.Unlock()

		if wait <= 0 {
			continue
		}
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// prune drops timestamps that have aged out of the window. Callers hold mu.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.stamps) && !l.stamps[i].After(cutoff) {
		i++
	}
	l.stamps = l.stamps[i:]
}
