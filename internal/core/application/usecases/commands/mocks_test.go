package commands_test

import (
	"context"
	"testing"
	"time"

	"bidding/internal/core/application/usecases/commands"
	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/domain/model/quote"
	"bidding/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.May, 26, 12, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, id))
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, id))
}

func (m *MockOrderRepository) GetForShare(ctx context.Context, id order.ID) (*order.Order, error) {
	return m.orderResult(m.Called(ctx, id))
}

func (m *MockOrderRepository) orderResult(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockQuoteRepository struct{ mock.Mock }

// Save accepts either a *quote.Quote or a func(*quote.Quote) *quote.Quote
// as its first return value.
func (m *MockQuoteRepository) Save(ctx context.Context, q *quote.Quote) (*quote.Quote, error) {
	args := m.Called(ctx, q)
	if fn, ok := args.Get(0).(func(*quote.Quote) *quote.Quote); ok {
		return fn(q), args.Error(1)
	}
	return m.quoteResult(args)
}

func (m *MockQuoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	return m.quoteResult(m.Called(ctx, id))
}

func (m *MockQuoteRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	return m.quoteResult(m.Called(ctx, id))
}

func (m *MockQuoteRepository) GetByOrderAndProvider(
	ctx context.Context,
	orderID order.ID,
	providerID kernel.UUID,
) (*quote.Quote, error) {
	return m.quoteResult(m.Called(ctx, orderID, providerID))
}

func (m *MockQuoteRepository) GetAllActiveByOrder(ctx context.Context, orderID order.ID) ([]*quote.Quote, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*quote.Quote), args.Error(1)
}

func (m *MockQuoteRepository) quoteResult(args mock.Arguments) (*quote.Quote, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) QuoteRepository() ports.QuoteRepository {
	args := m.Called()
	return args.Get(0).(ports.QuoteRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockIdentity struct{ mock.Mock }

func (m *MockIdentity) IsOwner(ctx context.Context, userID kernel.UUID, orderID order.ID) (bool, error) {
	args := m.Called(ctx, userID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentity) IsActiveProvider(ctx context.Context, providerID kernel.UUID) (bool, error) {
	args := m.Called(ctx, providerID)
	return args.Bool(0), args.Error(1)
}

type MockAllocator struct{ mock.Mock }

func (m *MockAllocator) Allocate(ctx context.Context, at time.Time) (order.ID, error) {
	args := m.Called(ctx, at)
	return args.Get(0).(order.ID), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func newOrder(t *testing.T, id string, ownerID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.MustParseID(id), ownerID, order.Details{
		Warehouse:       "Shanghai WH-3",
		Goods:           "12 pallets of ceramics",
		DeliveryAddress: "Rotterdam, Waalhaven 21",
	}, now.Add(-time.Hour))
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func newQuote(t *testing.T, orderID order.ID, name, price string) *quote.Quote {
	t.Helper()
	q, err := quote.NewQuote(kernel.NewUUID(), orderID, kernel.NewUUID(), quote.Terms{
		ProviderName:      name,
		Price:             kernel.MustParsePrice(price),
		EstimatedDelivery: "3 days",
	}, now.Add(-30*time.Minute))
	require.NoError(t, err)
	q.ClearDomainEvents()
	return q
}
