package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxMessage is a serialized domain event waiting to be relayed.
type OutboxMessage struct {
	ID          uuid.UUID
	EventName   string
	AggregateID string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository reads and acknowledges pending outbox messages.
type OutboxRepository interface {
	// GetUnpublished locks up to limit pending messages, oldest first,
	// skipping rows already locked by another relay.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
