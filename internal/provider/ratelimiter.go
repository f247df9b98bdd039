package provider

import (
	"context"
	"sync"
	"time"
)

// Default pacing per upstream plan, in calls per minute.
const (
	DefaultCoinMarketCapCallsPerMinute = 30
	DefaultCoinglassCallsPerMinute     = 30
)

// WaitObserver receives how long each call waited for its slot. rejected is
// set when the caller's context ended before a slot opened.
type WaitObserver interface {
	ObserveLimiterWait(provider string, waited time.Duration, rejected bool)
}

// RateLimiter paces calls to a single upstream. The bucket holds one
// minute's worth of calls and refills one slot every minute/callsPerMinute.
type RateLimiter struct {
	provider string
	interval time.Duration
	burst    int
	observer WaitObserver
	now      func() time.Time

	mu     sync.Mutex
	slots  int
	filled time.Time
}

type LimiterOption func(*RateLimiter)

func WithWaitObserver(o WaitObserver) LimiterOption {
	return func(r *RateLimiter) { r.observer = o }
}

// WithBurst caps how many calls may go out back to back.
func WithBurst(n int) LimiterOption {
	return func(r *RateLimiter) {
		if n > 0 {
			r.burst = n
		}
	}
}

// NewRateLimiter returns a limiter allowing callsPerMinute calls to provider.
// A non-positive rate returns nil, which doRequest treats as unpaced.
func NewRateLimiter(provider string, callsPerMinute int, opts ...LimiterOption) *RateLimiter {
	if callsPerMinute <= 0 {
		return nil
	}
	r := &RateLimiter{
		provider: provider,
		interval: time.Minute / time.Duration(callsPerMinute),
		burst:    callsPerMinute,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.slots = r.burst
	r.filled = r.now()
	return r
}

// Wait blocks until a slot is free or ctx ends.
func (r *RateLimiter) Wait(ctx context.Context) error {
	start := r.now()
	for {
		delay := r.take()
		if delay == 0 {
			r.observe(r.now().Sub(start), false)
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.observe(r.now().Sub(start), true)
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// take claims a slot and returns 0, or returns how long until the next one.
func (r *RateLimiter) take() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if n := int(now.Sub(r.filled) / r.interval); n > 0 {
		r.slots += n
		r.filled = r.filled.Add(time.Duration(n) * r.interval)
		if r.slots >= r.burst {
			r.slots = r.burst
			r.filled = now
		}
	}
	if r.slots > 0 {
		r.slots--
		return 0
	}
	return r.filled.Add(r.interval).Sub(now)
}

func (r *RateLimiter) observe(waited time.Duration, rejected bool) {
	if r.observer != nil {
		r.observer.ObserveLimiterWait(r.provider, waited, rejected)
	}
}
