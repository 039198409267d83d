// Package errs provides standardized error types for the bidding core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the full error taxonomy of the marketplace:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures
//   - ObjectNotFoundError: an order, quote or provider does not exist
//   - ForbiddenError: the caller may not act on the object
//   - InvalidStateError: an illegal lifecycle transition (e.g. quoting on a closed order)
//   - ConflictError: a stale precondition (e.g. selecting a quote whose price changed)
//   - CapacityExceededError: a bounded resource is exhausted (daily order sequence)
//   - TransientStoreError: lock contention or deadlock, safe to retry
//   - FatalStoreError: unexpected store failure, never retried
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is support against the sentinel
//
// InvalidStateError and ConflictError carry the current authoritative state of
// the object in Current so callers can refresh instead of blindly retrying.
package errs
