package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies one status change under a row lock.
//
// The transaction reads the order with FOR UPDATE, checks the transition
// table and the caller's rights, writes the order conditionally on its
// version, appends the audit event and queues the outbox message. Two
// concurrent requests for the same order therefore serialize, and the second
// sees the first one's status.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.TransitionPolicy
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.TransitionPolicy,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}
	if cmd.To() == order.DisputeOpen {
		return TransitionResult{}, ErrDisputeFlowRequired
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}
	if !h.policy.CanView(cmd.Actor(), o) {
		return TransitionResult{}, errs.NewObjectNotFoundError("orderID", cmd.OrderID().String())
	}
	if o.Status() == order.DisputeOpen {
		return TransitionResult{}, ErrDisputeFlowRequired
	}
	if v := cmd.ExpectedVersion(); v > 0 && v != o.Version() {
		return TransitionResult{}, errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("order is at version %d, request was made against %d", o.Version(), v))
	}

	result, err := applyTransition(ctx, uow, h.policy, cmd.Actor(), o, cmd.To(), cmd.Note(), cmd.ProofURL())
	if err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	return result, nil
}
