package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func placeOrderCommand(t *testing.T) commands.PlaceOrderCommand {
	t.Helper()
	amount, err := kernel.NewMoney(99900, "INR")
	require.NoError(t, err)
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		testActor(t, kernel.NewUUID(), actor.Buyer),
		order.Parties{Vendor: kernel.NewUUID(), Service: kernel.NewUUID()},
		order.Terms{DeliveryType: order.Physical, Amount: amount, Requirements: "Two ceramic mugs"},
	)
	require.NoError(t, err)
	return cmd
}

func TestNewPlaceOrderCommand(t *testing.T) {
	t.Run("should take the buyer from the actor", func(t *testing.T) {
		cmd := placeOrderCommand(t)

		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.Parties().Buyer.IsEqual(cmd.Buyer().UserID()))
	})

	t.Run("should refuse vendors", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand(kernel.NewUUID(),
			testActor(t, kernel.NewUUID(), actor.Vendor), order.Parties{}, order.Terms{})
		require.ErrorIs(t, err, services.ErrNotPermitted)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		assert.ErrorIs(t, commands.PlaceOrderCommand{}.Validate(), commands.ErrPlaceOrderCommandIsNotConstructed)
	})
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := placeOrderCommand(t)

	uow, r := newUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		r.events.On("Append", ctx, mock.MatchedBy(func(e *order.Event) bool {
			_, hasFrom := e.StatusFrom()
			return !hasFrom && e.StatusTo() == order.Placed && e.Note() == order.PlacementNote
		})).Return(nil).Once(),
		r.outbox.On("Add", ctx, mock.MatchedBy(func(m *outbox.Message) bool {
			return m.EventType() == outbox.EventOrderPlaced
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Placed, o.Status())
	assert.Equal(t, order.Physical, o.DeliveryType())
	assert.True(t, o.ID().IsEqual(cmd.OrderID()))
	uow.AssertExpectations(t)
	r.orders.AssertExpectations(t)
	r.events.AssertExpectations(t)
	r.outbox.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_InvalidTermsNeverOpenTransaction(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		testActor(t, kernel.NewUUID(), actor.Buyer),
		order.Parties{Vendor: kernel.NewUUID(), Service: kernel.NewUUID()},
		order.Terms{DeliveryType: order.DeliveryUnknown},
	)
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	h := commands.NewPlaceOrderCommandHandler(factory)

	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidDeliveryType)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := placeOrderCommand(t)

	uow, r := newUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		r.orders.On("Add", ctx, mock.Anything).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "add error")
	uow.AssertNotCalled(t, "Commit", ctx)
	r.events.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := placeOrderCommand(t)

	uow, _ := newUoW()
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "Rollback", ctx)
}
