// Package queries contains the read side of the bidding marketplace. Query
// handlers read straight from the database with SQL and never lock rows.
package queries

import (
	"errors"
	"time"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its selection, if any.
type GetOrderQuery struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID order.ID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() order.ID {
	return q.orderID
}

// OrderResponse is the read model of an order. Selection is nil unless the
// order was closed by accepting a quote.
type OrderResponse struct {
	ID        order.ID
	OwnerID   kernel.UUID
	Details   order.Details
	Status    order.Status
	Selection *order.Selection
	CreatedAt time.Time
	UpdatedAt time.Time
}
