package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	postgres_adapter "bidding/internal/adapters/out/postgres"
	"bidding/internal/adapters/out/postgres/outboxrepo"
	"bidding/internal/adapters/out/postgres/pgtest"
	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/domain/model/quote"
	"bidding/internal/core/ports"
	"bidding/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var createdAt = time.Date(2025, time.May, 26, 9, 0, 0, 0, time.UTC)

// UnitOfWorkTestSuite checks transaction boundaries and outbox writes of the
// GORM unit of work on an in-memory SQLite database.
type UnitOfWorkTestSuite struct {
	suite.Suite
	db      *gorm.DB
	factory ports.UnitOfWorkFactory
}

func TestUnitOfWork(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}

func (suite *UnitOfWorkTestSuite) SetupTest() {
	suite.db = pgtest.OpenSQLite(suite.T())
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.QuoteRepository())
	suite.NotNil(uow1.OutboxRepository())
}

func (suite *UnitOfWorkTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Error(uow.Commit(ctx), "commit without transaction")
	suite.Require().Error(uow.Rollback(ctx), "rollback without transaction")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkTestSuite) TestCommit_WritesDomainEventsToOutbox() {
	ctx := context.Background()
	o := suite.newOrder("RX250526-001")
	q, err := quote.NewQuote(kernel.NewUUID(), o.ID(), kernel.NewUUID(), quote.Terms{
		ProviderName:      "Carrier A",
		Price:             kernel.MustParsePrice("25.50"),
		EstimatedDelivery: "4 days",
	}, createdAt.Add(time.Minute))
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	_, err = uow.QuoteRepository().Save(ctx, q)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))

	suite.Empty(o.DomainEvents())
	suite.Empty(q.DomainEvents())

	var rows []outboxrepo.OutboxMessageDTO
	suite.Require().NoError(suite.db.Order("occurred_at ASC").Find(&rows).Error)
	suite.Require().Len(rows, 2)
	suite.Equal(order.CreatedEventName, rows[0].EventName)
	suite.Equal(o.ID().String(), rows[0].AggregateID)
	suite.Equal(quote.SubmittedEventName, rows[1].EventName)
	suite.Nil(rows[0].PublishedAt)

	var created order.CreatedEvent
	suite.Require().NoError(json.Unmarshal(rows[0].Payload, &created))
	suite.Equal(o.OwnerID().String(), created.OwnerID)
}

func (suite *UnitOfWorkTestSuite) TestRollback_DiscardsChangesAndEvents() {
	ctx := context.Background()
	o := suite.newOrder("RX250526-002")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	_, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err, "visible inside the transaction")
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var count int64
	suite.Require().NoError(suite.db.Model(&outboxrepo.OutboxMessageDTO{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *UnitOfWorkTestSuite) TestCommit_AfterClose_WritesClosedEvent() {
	ctx := context.Background()
	o := suite.newOrder("RX250526-003")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	alreadyClosed, err := o.Close(createdAt.Add(time.Hour))
	suite.Require().NoError(err)
	suite.False(alreadyClosed)

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	var names []string
	suite.Require().NoError(suite.db.Model(&outboxrepo.OutboxMessageDTO{}).
		Order("occurred_at ASC").Pluck("event_name", &names).Error)
	suite.Equal([]string{order.CreatedEventName, order.ClosedEventName}, names)
}

func (suite *UnitOfWorkTestSuite) TestWithoutTransaction_AutoCommits() {
	ctx := context.Background()
	o := suite.newOrder("RX250526-004")

	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), got.ID())
}

func (suite *UnitOfWorkTestSuite) newOrder(id string) *order.Order {
	o, err := order.NewOrder(order.MustParseID(id), kernel.NewUUID(), order.Details{
		Warehouse:       "Shanghai WH-3",
		Goods:           "12 pallets of ceramics",
		DeliveryAddress: "Rotterdam, Waalhaven 21",
	}, createdAt)
	suite.Require().NoError(err)
	return o
}
