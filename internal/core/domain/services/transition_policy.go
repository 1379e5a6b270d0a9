package services

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/order"
)

// ErrNotPermitted is matched by every authorization failure of TransitionPolicy.
var ErrNotPermitted = errors.New("not permitted")

// TransitionPolicy decides who may request which status change. It runs on
// top of the transition table and never widens it: a move the table rejects
// is reported as order.ErrInvalidTransition regardless of the actor.
//
// Rules:
//   - admins may request any legal move
//   - buyers and vendors must be the order's own buyer or vendor
//   - buyers may open a dispute, ask for a revision or accept the milestone
//     (M1_SUBMITTED -> FINAL_DELIVERED)
//   - vendors may request every legal move except a revision
//   - only admins take an order out of DISPUTE_OPEN
//
// Example usage:
//
//	policy := services.NewTransitionPolicy()
//	if err := policy.Authorize(caller, o, order.FinalDelivered); err != nil {
//	    // errors.Is(err, services.ErrNotPermitted) or order.ErrInvalidTransition
//	}
type TransitionPolicy struct{}

func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// Authorize returns nil when a may move o to `to`.
func (p TransitionPolicy) Authorize(a actor.Actor, o *order.Order, to order.Status) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if err := order.ValidateTransition(o.Status(), to); err != nil {
		return err
	}

	if a.IsAdmin() {
		return nil
	}

	if o.Status() == order.DisputeOpen {
		return fmt.Errorf("%w: only an admin can resolve a dispute", ErrNotPermitted)
	}

	switch a.Role() {
	case actor.Buyer:
		if !o.IsBuyer(a.UserID()) {
			return fmt.Errorf("%w: caller is not the buyer of this order", ErrNotPermitted)
		}
		if !buyerMayRequest(o.Status(), to) {
			return fmt.Errorf("%w: buyer cannot move %s to %s", ErrNotPermitted, o.Status(), to)
		}
	case actor.Vendor:
		// A vendor may open a dispute as well as drive the work.
		if !o.IsVendor(a.UserID()) {
			return fmt.Errorf("%w: caller is not the vendor of this order", ErrNotPermitted)
		}
		if to == order.RevisionRequested {
			return fmt.Errorf("%w: only the buyer can request a revision", ErrNotPermitted)
		}
	default:
		return fmt.Errorf("%w: role %q", ErrNotPermitted, a.Role())
	}

	return nil
}

// CanView reports whether a may read o.
func (p TransitionPolicy) CanView(a actor.Actor, o *order.Order) bool {
	return a.IsAdmin() || o.IsParticipant(a.UserID())
}

// AllowedNext lists the statuses a may move o to right now.
func (p TransitionPolicy) AllowedNext(a actor.Actor, o *order.Order) []order.Status {
	var out []order.Status
	for _, to := range o.Status().NextStatuses() {
		if p.Authorize(a, o, to) == nil {
			out = append(out, to)
		}
	}
	return out
}

func buyerMayRequest(from, to order.Status) bool {
	switch to {
	case order.DisputeOpen, order.RevisionRequested:
		return true
	case order.FinalDelivered:
		return from == order.M1Submitted
	default:
		return false
	}
}
