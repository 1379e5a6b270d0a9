package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrOpenDisputeCommandIsNotConstructed = errors.New(
	"OpenDisputeCommand must be created via NewOpenDisputeCommand constructor",
)

// OpenDisputeCommand raises a dispute on an order and moves it to DISPUTE_OPEN.
type OpenDisputeCommand struct { //nolint:recvcheck //using for validation
	disputeID kernel.UUID
	orderID   kernel.UUID
	by        actor.Actor
	reason    string

	guard guard.ConstructorGuard
}

func NewOpenDisputeCommand(disputeID, orderID kernel.UUID, by actor.Actor, reason string) (OpenDisputeCommand, error) {
	cmd := OpenDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDisputeID(disputeID),
		cmd.setOrderID(orderID),
		cmd.setActor(by),
		cmd.setReason(reason),
	); err != nil {
		return OpenDisputeCommand{}, err
	}

	return cmd, nil
}

func (c OpenDisputeCommand) Validate() error {
	return c.guard.Validate(ErrOpenDisputeCommandIsNotConstructed)
}

func (c OpenDisputeCommand) DisputeID() kernel.UUID {
	return c.disputeID
}

func (c OpenDisputeCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c OpenDisputeCommand) Actor() actor.Actor {
	return c.by
}

func (c OpenDisputeCommand) Reason() string {
	return c.reason
}

func (c *OpenDisputeCommand) setDisputeID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.disputeID = id
	return nil
}

func (c *OpenDisputeCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	c.orderID = id
	return nil
}

func (c *OpenDisputeCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	c.by = a
	return nil
}

func (c *OpenDisputeCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
