package order

import "time"

const (
	CreatedEventName   = "order.created"
	ClosedEventName    = "order.closed"
	CancelledEventName = "order.cancelled"
)

// CreatedEvent is raised when a shipper publishes a new order.
type CreatedEvent struct {
	OrderID string    `json:"orderId"`
	OwnerID string    `json:"ownerId"`
	At      time.Time `json:"at"`
}

func NewCreatedEvent(o *Order, at time.Time) CreatedEvent {
	return CreatedEvent{OrderID: o.id.String(), OwnerID: o.ownerID.String(), At: at}
}

func (e CreatedEvent) EventName() string     { return CreatedEventName }
func (e CreatedEvent) AggregateID() string   { return e.OrderID }
func (e CreatedEvent) OccurredAt() time.Time { return e.At }

// ClosedEvent is raised when an order closes, with or without a selection.
type ClosedEvent struct {
	OrderID          string    `json:"orderId"`
	SelectedQuoteID  string    `json:"selectedQuoteId,omitempty"`
	SelectedProvider string    `json:"selectedProvider,omitempty"`
	SelectedPrice    string    `json:"selectedPrice,omitempty"`
	At               time.Time `json:"at"`
}

func NewClosedEvent(o *Order, at time.Time) ClosedEvent {
	e := ClosedEvent{OrderID: o.id.String(), At: at}
	if sel := o.selection; sel != nil {
		e.SelectedQuoteID = sel.QuoteID.String()
		e.SelectedProvider = sel.Provider
		e.SelectedPrice = sel.Price.String()
	}
	return e
}

func (e ClosedEvent) EventName() string     { return ClosedEventName }
func (e ClosedEvent) AggregateID() string   { return e.OrderID }
func (e ClosedEvent) OccurredAt() time.Time { return e.At }

// CancelledEvent is raised when the shipper withdraws an order.
type CancelledEvent struct {
	OrderID string    `json:"orderId"`
	At      time.Time `json:"at"`
}

func NewCancelledEvent(o *Order, at time.Time) CancelledEvent {
	return CancelledEvent{OrderID: o.id.String(), At: at}
}

func (e CancelledEvent) EventName() string     { return CancelledEventName }
func (e CancelledEvent) AggregateID() string   { return e.OrderID }
func (e CancelledEvent) OccurredAt() time.Time { return e.At }
