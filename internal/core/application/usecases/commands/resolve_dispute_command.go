package commands

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrResolveDisputeCommandIsNotConstructed = errors.New(
	"ResolveDisputeCommand must be created via NewResolveDisputeCommand constructor",
)

// ResolveDisputeCommand closes a dispute. Only admins resolve disputes; the
// order then moves to COMPLETED.
type ResolveDisputeCommand struct { //nolint:recvcheck //using for validation
	disputeID  kernel.UUID
	by         actor.Actor
	resolution string

	guard guard.ConstructorGuard
}

func NewResolveDisputeCommand(disputeID kernel.UUID, by actor.Actor, resolution string) (ResolveDisputeCommand, error) {
	cmd := ResolveDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDisputeID(disputeID),
		cmd.setActor(by),
		cmd.setResolution(resolution),
	); err != nil {
		return ResolveDisputeCommand{}, err
	}

	return cmd, nil
}

func (c ResolveDisputeCommand) Validate() error {
	return c.guard.Validate(ErrResolveDisputeCommandIsNotConstructed)
}

func (c ResolveDisputeCommand) DisputeID() kernel.UUID {
	return c.disputeID
}

func (c ResolveDisputeCommand) Actor() actor.Actor {
	return c.by
}

func (c ResolveDisputeCommand) Resolution() string {
	return c.resolution
}

func (c *ResolveDisputeCommand) setDisputeID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.disputeID = id
	return nil
}

func (c *ResolveDisputeCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.IsAdmin() {
		return fmt.Errorf("%w: only an admin can resolve a dispute", services.ErrNotPermitted)
	}
	c.by = a
	return nil
}

func (c *ResolveDisputeCommand) setResolution(resolution string) error {
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return errs.NewValueIsRequiredError("resolution")
	}
	c.resolution = resolution
	return nil
}
