package quote

import "time"

const SubmittedEventName = "quote.submitted"

// SubmittedEvent is raised on first submission and on every revision.
type SubmittedEvent struct {
	QuoteID      string    `json:"quoteId"`
	OrderID      string    `json:"orderId"`
	ProviderID   string    `json:"providerId"`
	ProviderName string    `json:"providerName"`
	Price        string    `json:"price"`
	Revision     bool      `json:"revision"`
	At           time.Time `json:"at"`
}

func NewSubmittedEvent(q *Quote, revision bool) SubmittedEvent {
	return SubmittedEvent{
		QuoteID:      q.id.String(),
		OrderID:      q.orderID.String(),
		ProviderID:   q.providerID.String(),
		ProviderName: q.terms.ProviderName,
		Price:        q.terms.Price.String(),
		Revision:     revision,
		At:           q.updatedAt,
	}
}

func (e SubmittedEvent) EventName() string     { return SubmittedEventName }
func (e SubmittedEvent) AggregateID() string   { return e.QuoteID }
func (e SubmittedEvent) OccurredAt() time.Time { return e.At }
