package ports

import "context"

// SequenceRepository hands out per-day order sequence numbers.
type SequenceRepository interface {
	// Next atomically increments the counter of dayKey (YYYYMMDD) and
	// returns the new value, starting at 1. When the counter already holds
	// limit it returns errs.CapacityExceededError and leaves the counter
	// unchanged. Each call runs in its own short transaction.
	Next(ctx context.Context, dayKey string, limit int) (int, error)
}
