// Package ports defines the contracts between the bidding core and its
// infrastructure: persistence, identity, time and event publishing.
package ports

import (
	"context"

	"bidding/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every method fails with errs.ObjectNotFoundError for an unknown order and
// with errs.TransientStoreError or errs.FatalStoreError for store failures.
type OrderRepository interface {
	// Add persists a new order. The ID must not exist yet.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get reads an order without locking it.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// GetForUpdate reads an order and holds an exclusive row lock until the
	// transaction ends. Mutating commands lock the order row before any
	// quote row.
	GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error)

	// GetForShare reads an order under a shared row lock, so a concurrent
	// GetForUpdate waits for the reader's transaction.
	GetForShare(ctx context.Context, id order.ID) (*order.Order, error)
}
