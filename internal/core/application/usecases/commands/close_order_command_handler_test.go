package commands_test

import (
	"testing"
	"time"

	"bidding/internal/core/application/usecases/commands"
	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/pkg/clock"
	"bidding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCloseOrderCommand(t *testing.T) {
	_, err := commands.NewCloseOrderCommand(order.ID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewCloseOrderCommand(order.MustParseID("RX250526-001"))
	require.NoError(t, err)
	assert.Equal(t, "RX250526-001", cmd.OrderID().String())
}

func TestCloseOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t, "RX250526-001", kernel.NewUUID())
	cmd, _ := commands.NewCloseOrderCommand(o.ID())

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCloseOrderCommandHandler(factory, clock.Fixed{At: now})
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.AlreadyClosed)
	assert.Equal(t, order.Closed, result.Order.Status())
	assert.Nil(t, result.Order.Selection())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCloseOrderCommandHandler_Handle_AlreadyClosed(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t, "RX250526-001", kernel.NewUUID())
	_, err := o.Close(now.Add(-time.Minute))
	require.NoError(t, err)
	before := o.Snapshot()
	cmd, _ := commands.NewCloseOrderCommand(o.ID())

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCloseOrderCommandHandler(factory, clock.Fixed{At: now})
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.AlreadyClosed)
	assert.Equal(t, before, result.Order.Snapshot())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCloseOrderCommandHandler_Handle_Cancelled(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t, "RX250526-001", kernel.NewUUID())
	require.NoError(t, o.Cancel(now))
	cmd, _ := commands.NewCloseOrderCommand(o.ID())

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCloseOrderCommandHandler(factory, clock.Fixed{At: now})
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
}
