package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/core/domain/services"
)

type ResolveDisputeCommandHandler struct {
	uowFactory DisputeUoWFactory
	policy     services.TransitionPolicy
}

func NewResolveDisputeCommandHandler(
	uowFactory DisputeUoWFactory,
	policy services.TransitionPolicy,
) ResolveDisputeCommandHandler {
	return ResolveDisputeCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle resolves the dispute and completes the order with the resolution
// as event note.
func (h *ResolveDisputeCommandHandler) Handle(ctx context.Context, cmd ResolveDisputeCommand) (DisputeResult, error) {
	if err := cmd.Validate(); err != nil {
		return DisputeResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DisputeResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, err := uow.DisputeRepository().Get(ctx, cmd.DisputeID())
	if err != nil {
		return DisputeResult{}, err
	}
	o, err := uow.OrderRepository().GetForUpdate(ctx, d.OrderID())
	if err != nil {
		return DisputeResult{}, err
	}

	if o.Status() != order.DisputeOpen {
		return DisputeResult{}, &order.InvalidTransitionError{From: o.Status(), To: order.Completed}
	}

	if err = d.Resolve(cmd.Actor().UserID(), cmd.Resolution()); err != nil {
		return DisputeResult{}, err
	}
	tr, err := applyTransition(ctx, uow, h.policy, cmd.Actor(), o, order.Completed, cmd.Resolution(), "")
	if err != nil {
		return DisputeResult{}, err
	}
	if err = uow.DisputeRepository().Update(ctx, d); err != nil {
		return DisputeResult{}, err
	}

	msg, err := outbox.NewDisputeMessage(d)
	if err != nil {
		return DisputeResult{}, err
	}
	if err = uow.OutboxRepository().Add(ctx, msg); err != nil {
		return DisputeResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DisputeResult{}, err
	}

	return DisputeResult{Dispute: d, Transition: tr}, nil
}
