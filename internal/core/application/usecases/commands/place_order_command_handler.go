package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/outbox"
)

// PlaceOrderCommandHandler creates the order, its placement event and the
// order.placed outbox message in one transaction.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the placed order.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Parties(), cmd.Terms())
	if err != nil {
		return nil, err
	}
	event, err := order.NewPlacementEvent(o)
	if err != nil {
		return nil, err
	}
	msg, err := outbox.NewOrderMessage(o, event)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.OrderEventRepository().Append(ctx, event); err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Add(ctx, msg); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
