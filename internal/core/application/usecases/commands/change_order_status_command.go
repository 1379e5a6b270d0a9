package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand asks to move an order one step along its lifecycle.
//
// ExpectedVersion is optional. When set (> 0) the change is refused unless
// the order is still at that version, which lets a client that rendered
// version N reject a concurrent edit instead of overwriting it.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	by              actor.Actor
	to              order.Status
	note            string
	proofURL        string
	expectedVersion int

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	by actor.Actor,
	to order.Status,
	note, proofURL string,
	expectedVersion int,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		note:     note,
		proofURL: proofURL,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(by),
		cmd.setTo(to),
		cmd.setExpectedVersion(expectedVersion),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Actor() actor.Actor {
	return c.by
}

func (c ChangeOrderStatusCommand) To() order.Status {
	return c.to
}

func (c ChangeOrderStatusCommand) Note() string {
	return c.note
}

func (c ChangeOrderStatusCommand) ProofURL() string {
	return c.proofURL
}

// ExpectedVersion returns the version the caller saw, or 0 when not given.
func (c ChangeOrderStatusCommand) ExpectedVersion() int {
	return c.expectedVersion
}

func (c *ChangeOrderStatusCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	c.by = a
	return nil
}

func (c *ChangeOrderStatusCommand) setTo(to order.Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	c.to = to
	return nil
}

func (c *ChangeOrderStatusCommand) setExpectedVersion(v int) error {
	if v < 0 {
		return errs.NewValueIsOutOfRangeError("expectedVersion", v, 0, "unbounded")
	}
	c.expectedVersion = v
	return nil
}
