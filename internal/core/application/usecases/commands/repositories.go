// Package commands contains the write operations of the bidding marketplace.
// Every handler follows one pattern: validate the command, open a unit of
// work, load and lock aggregates, apply domain behaviour, persist, commit.
package commands

import (
	"context"
	"time"

	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	QuoteRepoFactory interface {
		QuoteRepository() ports.QuoteRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW is used by commands that only modify orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW spans orders and quotes. Handlers always lock the order row
	// before any quote row.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   q, err := uow.QuoteRepository().GetForUpdate(ctx, quoteID)
	//   // ... apply domain behaviour, persist
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		QuoteRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// IDAllocator issues order identifiers in its own transaction.
	IDAllocator interface {
		Allocate(ctx context.Context, at time.Time) (order.ID, error)
	}
)
