package oracle

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Default retry parameters.
const (
	DefaultBackoffBase = 5 * time.Second
	DefaultMaxAttempts = 5
	DefaultMinInterval = 1 * time.Second
)

// Retrier wraps upstream oracle calls with exponential backoff on rate
// limits and a courtesy delay between independent calls.
type Retrier struct {
	Base        time.Duration // backoff base; wait is Base*2^attempt + jitter[0,Base)
	MaxAttempts int           // total attempts including the first
	MinInterval time.Duration // minimum delay between independent calls

	// OnRetry, when set, is told about each backoff wait so the operator
	// sees a countdown instead of a silent stall.
	OnRetry func(attempt, maxAttempts int, wait time.Duration)

	sleep    func(context.Context, time.Duration)
	jitter   func(time.Duration) time.Duration
	lastCall time.Time
}

// NewRetrier returns a Retrier with the default schedule.
func NewRetrier() *Retrier {
	return &Retrier{
		Base:        DefaultBackoffBase,
		MaxAttempts: DefaultMaxAttempts,
		MinInterval: DefaultMinInterval,
	}
}

// InvokeScore calls fn with rate-limit resilience.
//
//   - ErrRateLimited: wait Base*2^attempt plus jitter, retry, at most
//     MaxAttempts attempts total. If the final attempt is still rate
//     limited, return the neutral fallback result instead of an error --
//     scoring degrades, the session never aborts on rate limits.
//   - Any other error: propagate immediately, no retry.
//
// A courtesy MinInterval delay is enforced before the first attempt of
// each invocation, independent of the backoff-on-failure schedule.
func (r *Retrier) InvokeScore(ctx context.Context, fn func() (ScoreResult, error)) (ScoreResult, error) {
	r.throttle(ctx)
	defer func() { r.lastCall = time.Now() }()

	for attempt := 0; attempt < r.maxAttempts(); attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return ScoreResult{}, err
		}
		if attempt == r.maxAttempts()-1 {
			break
		}
		wait := r.backoff(attempt)
		if r.OnRetry != nil {
			r.OnRetry(attempt+1, r.maxAttempts(), wait)
		}
		r.doSleep(ctx, wait)
	}
	return NeutralResult("rate limited"), nil
}

// InvokeEnhance calls fn with the same backoff schedule. Enhancement has
// no meaningful fallback content, so exhausted retries surface the last
// rate-limit error instead of degrading.
func (r *Retrier) InvokeEnhance(ctx context.Context, fn func() (string, error)) (string, error) {
	r.throttle(ctx)
	defer func() { r.lastCall = time.Now() }()

	var lastErr error
	for attempt := 0; attempt < r.maxAttempts(); attempt++ {
		out, err := fn()
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return "", err
		}
		lastErr = err
		if attempt == r.maxAttempts()-1 {
			break
		}
		wait := r.backoff(attempt)
		if r.OnRetry != nil {
			r.OnRetry(attempt+1, r.maxAttempts(), wait)
		}
		r.doSleep(ctx, wait)
	}
	return "", lastErr
}

func (r *Retrier) maxAttempts() int {
	if r.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return r.MaxAttempts
}

// backoff computes the wait before retry number attempt+1.
func (r *Retrier) backoff(attempt int) time.Duration {
	base := r.Base
	if base <= 0 {
		base = DefaultBackoffBase
	}
	wait := base * (1 << attempt)
	if r.jitter != nil {
		return wait + r.jitter(base)
	}
	return wait + rand.N(base)
}

// throttle enforces MinInterval since the previous invocation completed.
func (r *Retrier) throttle(ctx context.Context) {
	if r.MinInterval <= 0 || r.lastCall.IsZero() {
		return
	}
	elapsed := time.Since(r.lastCall)
	if elapsed < r.MinInterval {
		r.doSleep(ctx, r.MinInterval-elapsed)
	}
}

func (r *Retrier) doSleep(ctx context.Context, d time.Duration) {
	if r.sleep != nil {
		r.sleep(ctx, d)
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
