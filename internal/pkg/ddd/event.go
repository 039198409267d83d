// Package ddd holds the domain event plumbing shared by aggregates and the
// unit of work that persists them.
package ddd

import "time"

// DomainEvent is a fact recorded by an aggregate. Events are serialized to
// JSON into the outbox, so implementations should be plain structs with
// exported, json-tagged fields.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// Aggregate is anything that records domain events.
type Aggregate interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// EventRecorder is embedded in aggregates to implement Aggregate.
type EventRecorder struct {
	events []DomainEvent
}

// RaiseDomainEvent appends event to the pending list.
func (r *EventRecorder) RaiseDomainEvent(event DomainEvent) {
	r.events = append(r.events, event)
}

// DomainEvents returns a copy of the pending events in the order they were raised.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// ClearDomainEvents drops all pending events. Called after they were persisted.
func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
