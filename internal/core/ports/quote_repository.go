package ports

import (
	"context"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/domain/model/quote"
)

// QuoteRepository defines the persistence contract for quote aggregates.
type QuoteRepository interface {
	// Save upserts on (order, provider): a new pair inserts the quote, an
	// existing pair overwrites provider name, price, estimated delivery,
	// remarks and updatedAt while keeping the stored id and createdAt.
	// It returns the quote as stored.
	Save(ctx context.Context, aggregate *quote.Quote) (*quote.Quote, error)

	// Update persists a status change of an existing quote.
	Update(ctx context.Context, aggregate *quote.Quote) error

	Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error)

	// GetForUpdate reads a quote under an exclusive row lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*quote.Quote, error)

	// GetByOrderAndProvider returns errs.ObjectNotFoundError when the
	// provider has not quoted on the order yet.
	GetByOrderAndProvider(ctx context.Context, orderID order.ID, providerID kernel.UUID) (*quote.Quote, error)

	// GetAllActiveByOrder returns the active quotes of an order, locked for
	// update. An order without active quotes yields an empty slice.
	GetAllActiveByOrder(ctx context.Context, orderID order.ID) ([]*quote.Quote, error)
}
