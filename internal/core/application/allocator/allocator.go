// Package allocator issues order identifiers: RX + YYMMDD + "-" + a per-day
// sequence from 001 to 999. Sequences come from a persistent counter, so
// identifiers are unique across processes and restarts. Gaps are possible
// when an order transaction fails after allocation; reuse is not.
package allocator

import (
	"context"
	"time"

	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/ports"
	"bidding/internal/pkg/retry"

	"go.uber.org/zap"
)

// Allocator is safe for concurrent use.
type Allocator struct {
	sequences ports.SequenceRepository
	location  *time.Location
	policy    retry.Policy
	logger    *zap.Logger
}

// New returns an Allocator that computes the calendar day in location.
// A nil location means time.Local.
func New(sequences ports.SequenceRepository, location *time.Location, policy retry.Policy, logger *zap.Logger) *Allocator {
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{
		sequences: sequences,
		location:  location,
		policy:    policy,
		logger:    logger,
	}
}

// Allocate returns the next identifier for the calendar day of at.
//
// Transient store errors are retried with bounded backoff. Once the day has
// issued order.MaxSequence identifiers every call fails with
// errs.CapacityExceededError; the sequence never wraps.
func (a *Allocator) Allocate(ctx context.Context, at time.Time) (order.ID, error) {
	day := at.In(a.location)
	key := order.DayKey(day)

	policy := a.policy.WithOnRetry(func(attempt uint64, err error) {
		a.logger.Warn("retrying order id allocation",
			zap.String("day", key),
			zap.Uint64("attempt", attempt),
			zap.Error(err),
		)
		if a.policy.OnRetry != nil {
			a.policy.OnRetry(attempt, err)
		}
	})

	var seq int
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		var nextErr error
		seq, nextErr = a.sequences.Next(ctx, key, order.MaxSequence)
		return nextErr
	})
	if err != nil {
		return order.ID{}, err
	}

	return order.NewID(day, seq)
}
