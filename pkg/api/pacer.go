package api

import (
	"context"
	"sync"
	"time"
)

// FixedDelayPacer guarantees a minimum interval between the start of
// consecutive calls. The first call never waits. Safe for concurrent use:
// waiting callers are served one at a time.
type FixedDelayPacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	started  bool

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewFixedDelayPacer creates a pacer with the given minimum interval
func NewFixedDelayPacer(interval time.Duration) *FixedDelayPacer {
	return &FixedDelayPacer{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait blocks until interval has elapsed since the previous call started.
func (p *FixedDelayPacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if p.started && p.interval > 0 {
		if remaining := p.interval - p.now().Sub(p.last); remaining > 0 {
			if err := p.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}

	p.last = p.now()
	p.started = true
	return nil
}

// Interval returns the configured minimum spacing
func (p *FixedDelayPacer) Interval() time.Duration {
	return p.interval
}

// NoopPacer never waits.
type NoopPacer struct{}

func (NoopPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
