package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/dispute"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/core/domain/services"
)

// ErrDisputeFlowRequired is returned when a plain status change tries to
// enter or leave DISPUTE_OPEN. Those moves go through OpenDispute and
// ResolveDispute so that the dispute record stays in step with the order.
var ErrDisputeFlowRequired = errors.New("use the dispute endpoints to open or resolve a dispute")

// TransitionResult describes an accepted status change.
type TransitionResult struct {
	From    order.Status
	To      order.Status
	Version int
	Event   *order.Event
}

// DisputeResult pairs a stored dispute with the order transition it caused.
type DisputeResult struct {
	Dispute    *dispute.Dispute
	Transition TransitionResult
}

// applyTransition is the shared write path of every status change, run
// inside an open unit of work on an order loaded with GetForUpdate:
// authorize, apply on the aggregate, conditional update on the version,
// append the audit event and queue the outbox message.
func applyTransition(
	ctx context.Context,
	uow OrderUoW,
	policy services.TransitionPolicy,
	by actor.Actor,
	o *order.Order,
	to order.Status,
	note, proofURL string,
) (TransitionResult, error) {
	if err := policy.Authorize(by, o, to); err != nil {
		return TransitionResult{}, err
	}

	from := o.Status()
	event, err := o.ChangeStatus(to, by.UserID(), note, proofURL)
	if err != nil {
		return TransitionResult{}, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return TransitionResult{}, err
	}
	if err = uow.OrderEventRepository().Append(ctx, event); err != nil {
		return TransitionResult{}, fmt.Errorf("append order event: %w", err)
	}

	msg, err := outbox.NewOrderMessage(o, event)
	if err != nil {
		return TransitionResult{}, err
	}
	if err = uow.OutboxRepository().Add(ctx, msg); err != nil {
		return TransitionResult{}, fmt.Errorf("enqueue outbox message: %w", err)
	}

	return TransitionResult{From: from, To: to, Version: o.Version(), Event: event}, nil
}
