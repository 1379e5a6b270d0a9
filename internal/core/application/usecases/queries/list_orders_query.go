package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery returns the viewer's most recently created orders, the ones
// where they are buyer or vendor. Admins see every order.
type ListOrdersQuery struct {
	viewer actor.Actor
	limit  int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery uses DefaultListLimit when limit is 0.
func NewListOrdersQuery(viewer actor.Actor, limit int) (ListOrdersQuery, error) {
	if err := viewer.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	return ListOrdersQuery{viewer: viewer, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Viewer() actor.Actor {
	return q.viewer
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

type ListOrdersQueryResponse struct {
	ID           kernel.UUID
	BuyerID      kernel.UUID
	VendorID     kernel.UUID
	ServiceID    kernel.UUID
	DeliveryType order.DeliveryType
	Status       order.Status
	Amount       kernel.Money
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
