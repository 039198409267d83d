// Package postgres provides the GORM-based Unit of Work. It hands out
// repositories bound to one transaction and, on Commit, writes the domain
// events of every aggregate those repositories persisted into the outbox
// table before the transaction is committed.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns at most one transaction and must not be
// shared between goroutines.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"bidding/internal/adapters/out/postgres/orderrepo"
	"bidding/internal/adapters/out/postgres/outboxrepo"
	"bidding/internal/adapters/out/postgres/pgerr"
	"bidding/internal/adapters/out/postgres/quoterepo"
	"bidding/internal/core/ports"
	"bidding/internal/pkg/ddd"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a UnitOfWork with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]ddd.Aggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// persisted inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []ddd.Aggregate
}

// Begin opens the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Classify("begin transaction", tx.Error)
	}

	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit stores pending domain events in the outbox and commits. On any
// failure the transaction is rolled back and closed.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.flushEvents(ctx); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return pgerr.Classify("commit transaction", err)
}

// Rollback discards the transaction. Calling it after Commit returns
// gorm.ErrInvalidTransaction, which deferred rollbacks ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) QuoteRepository() ports.QuoteRepository {
	return quoterepo.NewGormQuoteRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate whose events must reach the outbox.
// Repositories call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(aggregate ddd.Aggregate) {
	for _, tracked := range uow.trackedAggregates {
		if tracked == aggregate {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, aggregate)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) flushEvents(ctx context.Context) error {
	messages := make([]ports.OutboxMessage, 0)
	for _, aggregate := range uow.trackedAggregates {
		for _, event := range aggregate.DomainEvents() {
			msg, err := toOutboxMessage(event)
			if err != nil {
				return err
			}
			messages = append(messages, msg)
		}
	}

	if err := outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages...); err != nil {
		return err
	}

	for _, aggregate := range uow.trackedAggregates {
		aggregate.ClearDomainEvents()
	}
	return nil
}

func toOutboxMessage(event ddd.DomainEvent) (ports.OutboxMessage, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return ports.OutboxMessage{}, fmt.Errorf("marshal %s: %w", event.EventName(), err)
	}

	return ports.OutboxMessage{
		ID:          uuid.New(),
		EventName:   event.EventName(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		OccurredAt:  event.OccurredAt(),
	}, nil
}
