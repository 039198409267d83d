package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bidding/internal/pkg/errs"
	"bidding/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(maxRetries uint64) retry.Policy {
	return retry.Policy{
		Base:       time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
		Jitter:     time.Millisecond,
		MaxRetries: maxRetries,
	}
}

func TestDo_SucceedsFirstTime(t *testing.T) {
	calls := 0

	err := retry.Do(t.Context(), fastPolicy(3), func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientErrors(t *testing.T) {
	calls := 0
	var retried []uint64

	policy := fastPolicy(3).WithOnRetry(func(attempt uint64, _ error) {
		retried = append(retried, attempt)
	})

	err := retry.Do(t.Context(), policy, func(context.Context) error {
		calls++
		if calls < 3 {
			return errs.NewTransientStoreError("sequence.next", errors.New("deadlock detected"))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []uint64{1, 2}, retried)
}

func TestDo_StopsAfterMaxRetries(t *testing.T) {
	calls := 0
	var retried []uint64

	policy := fastPolicy(2).WithOnRetry(func(attempt uint64, _ error) {
		retried = append(retried, attempt)
	})

	err := retry.Do(t.Context(), policy, func(context.Context) error {
		calls++
		return errs.NewTransientStoreError("quote.update", errors.New("serialization failure"))
	})

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrTransientStore)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []uint64{1, 2}, retried)
}

func TestDo_NoRetriesNeverReportsRetry(t *testing.T) {
	calls := 0
	retried := 0

	policy := fastPolicy(0).WithOnRetry(func(uint64, error) {
		retried++
	})

	err := retry.Do(t.Context(), policy, func(context.Context) error {
		calls++
		return errs.NewTransientStoreError("sequence.next", nil)
	})

	require.ErrorIs(t, err, errs.ErrTransientStore)
	assert.Equal(t, 1, calls)
	assert.Zero(t, retried)
}

func TestDo_DoesNotRetryOtherErrors(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{"fatal store", errs.NewFatalStoreError("order.get", errors.New("syntax error"))},
		{"invalid state", errs.NewInvalidStateError("order", "RX250526-001", "Closed", "select quote for")},
		{"capacity", errs.NewCapacityExceededError("order sequence 20250526", 999)},
		{"plain", errors.New("boom")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0

			err := retry.Do(t.Context(), fastPolicy(5), func(context.Context) error {
				calls++
				return tc.err
			})

			require.ErrorIs(t, err, tc.err)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestDo_ZeroPolicyUsesDefault(t *testing.T) {
	calls := 0

	err := retry.Do(t.Context(), retry.Policy{}, func(context.Context) error {
		calls++
		if calls == 1 {
			return errs.NewTransientStoreError("sequence.next", nil)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo_RespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := retry.Do(ctx, fastPolicy(5), func(context.Context) error {
		return errs.NewTransientStoreError("sequence.next", nil)
	})

	require.Error(t, err)
}
