// Package delay provides the latency boundary used by operations that
// simulate slow work, such as confirming a friend request.
package delay

import (
	"context"
	"sync"
	"time"
)

// A Sleeper waits for a duration or until ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Timer is a Sleeper backed by real time.
type Timer struct{}

// Sleep blocks for d. It returns ctx.Err() if ctx is done first.
func (Timer) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Instant is a Sleeper that returns immediately and records every requested
// duration. The zero value is ready to use.
type Instant struct {
	mu    sync.Mutex
	slept []time.Duration
}

// Sleep records d and returns ctx.Err(), if any.
func (i *Instant) Sleep(ctx context.Context, d time.Duration) error {
	i.mu.Lock()
	i.slept = append(i.slept, d)
	i.mu.Unlock()
	return ctx.Err()
}

// Slept returns the recorded durations in call order.
func (i *Instant) Slept() []time.Duration {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]time.Duration, len(i.slept))
	copy(out, i.slept)
	return out
}
