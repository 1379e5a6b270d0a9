package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/dispute"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

type OpenDisputeCommandHandler struct {
	uowFactory DisputeUoWFactory
	policy     services.TransitionPolicy
}

func NewOpenDisputeCommandHandler(
	uowFactory DisputeUoWFactory,
	policy services.TransitionPolicy,
) OpenDisputeCommandHandler {
	return OpenDisputeCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle stores the dispute and moves the order to DISPUTE_OPEN with the
// reason as event note. The storage unique index rejects a second open
// dispute with ports.ErrOpenDisputeExists even under concurrent requests.
func (h *OpenDisputeCommandHandler) Handle(ctx context.Context, cmd OpenDisputeCommand) (DisputeResult, error) {
	if err := cmd.Validate(); err != nil {
		return DisputeResult{}, err
	}

	d, err := dispute.Open(cmd.DisputeID(), cmd.OrderID(), cmd.Actor().UserID(), cmd.Reason())
	if err != nil {
		return DisputeResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return DisputeResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return DisputeResult{}, err
	}
	if !h.policy.CanView(cmd.Actor(), o) {
		return DisputeResult{}, errs.NewObjectNotFoundError("orderID", cmd.OrderID().String())
	}

	tr, err := applyTransition(ctx, uow, h.policy, cmd.Actor(), o, order.DisputeOpen,
		fmt.Sprintf("Dispute opened: %s", d.Reason()), "")
	if err != nil {
		return DisputeResult{}, err
	}

	if err = uow.DisputeRepository().Add(ctx, d); err != nil {
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
