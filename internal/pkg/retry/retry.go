// Package retry runs store operations again when they fail with a
// TransientStoreError, using bounded exponential backoff with jitter.
package retry

import (
	"context"
	"errors"
	"time"

	"bidding/internal/pkg/errs"

	goretry "github.com/sethvargo/go-retry"
)

// Policy bounds the retry loop. The zero value is replaced by DefaultPolicy.
type Policy struct {
	// Base is the first backoff delay; each retry doubles it.
	Base time.Duration
	// MaxDelay caps a single delay.
	MaxDelay time.Duration
	// Jitter adds up to +/- Jitter to each delay.
	Jitter time.Duration
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64
	// OnRetry, when set, is called before each retry with the transient error.
	OnRetry func(attempt uint64, err error)
}

// DefaultPolicy retries up to five times starting at 10ms.
func DefaultPolicy() Policy {
	return Policy{
		Base:       10 * time.Millisecond,
		MaxDelay:   500 * time.Millisecond,
		Jitter:     5 * time.Millisecond,
		MaxRetries: 5,
	}
}

// WithOnRetry returns a copy of p that calls fn before each retry.
func (p Policy) WithOnRetry(fn func(attempt uint64, err error)) Policy {
	p.OnRetry = fn
	return p
}

func (p Policy) normalized() Policy {
	if p.Base <= 0 {
		return DefaultPolicy().WithOnRetry(p.OnRetry)
	}
	return p
}

func (p Policy) backoff() goretry.Backoff {
	b := goretry.NewExponential(p.Base)
	if p.MaxDelay > 0 {
		b = goretry.WithCappedDuration(p.MaxDelay, b)
	}
	if p.Jitter > 0 {
		b = goretry.WithJitter(p.Jitter, b)
	}
	return goretry.WithMaxRetries(p.MaxRetries, b)
}

// Do calls fn until it succeeds, returns a non-transient error, the policy is
// exhausted, or ctx is done. The last error is returned unchanged. OnRetry
// is not called for the failure that exhausts the policy.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	p = p.normalized()
	var attempt uint64
	return goretry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil || !errors.Is(err, errs.ErrTransientStore) {
			return err
		}
		attempt++
		if p.OnRetry != nil && attempt <= p.MaxRetries {
			p.OnRetry(attempt, err)
		}
		return goretry.RetryableError(err)
	})
}
