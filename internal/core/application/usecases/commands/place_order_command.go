package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand is a buyer's request to order a vendor's service.
//
// Example:
//
//	amount, _ := kernel.NewMoney(149900, "INR")
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), buyer,
//	    order.Parties{Vendor: vendorID, Service: serviceID},
//	    order.Terms{DeliveryType: order.Digital, Amount: amount, RevisionsAllowed: 2})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	buyer   actor.Actor
	parties order.Parties
	terms   order.Terms

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand builds the command. parties.Buyer is always taken from
// the acting buyer.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	buyer actor.Actor,
	parties order.Parties,
	terms order.Terms,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		parties: parties,
		terms:   terms,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyer(buyer),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	cmd.parties.Buyer = buyer.UserID()
	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PlaceOrderCommand) Buyer() actor.Actor {
	return c.buyer
}

func (c PlaceOrderCommand) Parties() order.Parties {
	return c.parties
}

func (c PlaceOrderCommand) Terms() order.Terms {
	return c.terms
}

func (c *PlaceOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *PlaceOrderCommand) setBuyer(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.Role() != actor.Buyer {
		return fmt.Errorf("%w: only buyers place orders", services.ErrNotPermitted)
	}
	c.buyer = a
	return nil
}
