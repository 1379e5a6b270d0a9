// Package actor identifies who is acting on an order.
package actor

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Role is the marketplace role a user acts in.
type Role string

const (
	Buyer  Role = "buyer"
	Vendor Role = "vendor"
	Admin  Role = "admin"
)

// ParseRole accepts the role names in any case. "customer" and "seller" are
// accepted as aliases of buyer and vendor, as older tokens still carry them.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buyer", "customer":
		return Buyer, nil
	case "vendor", "seller":
		return Vendor, nil
	case "admin":
		return Admin, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

func (r Role) Validate() error {
	switch r {
	case Buyer, Vendor, Admin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor is an authenticated user acting in one role.
type Actor struct {
	userID kernel.UUID
	role   Role
}

var ErrActorIsNotConstructed = errors.New("actor must be created via NewActor")

func NewActor(userID kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{userID: userID, role: role}, nil
}

func (a Actor) UserID() kernel.UUID {
	return a.userID
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) IsAdmin() bool {
	return a.role == Admin
}

func (a Actor) Validate() error {
	if a.userID.IsZero() || a.role == "" {
		return ErrActorIsNotConstructed
	}
	return nil
}
