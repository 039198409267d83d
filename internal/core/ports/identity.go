package ports

import (
	"context"
	"time"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
)

// Identity answers authorization questions about callers. Authentication
// itself happens outside the core.
type Identity interface {
	// IsOwner reports whether userID created orderID. An unknown order
	// yields false.
	IsOwner(ctx context.Context, userID kernel.UUID, orderID order.ID) (bool, error)

	// IsActiveProvider reports whether providerID may submit quotes.
	IsActiveProvider(ctx context.Context, providerID kernel.UUID) (bool, error)
}

// Clock is the source of "now" for every timestamp the core writes.
type Clock interface {
	Now() time.Time
}
