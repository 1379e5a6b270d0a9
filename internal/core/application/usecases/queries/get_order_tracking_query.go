package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery loads the tracking view of one order for a viewer.
// Orders the viewer takes no part in are reported as not found.
type GetOrderTrackingQuery struct {
	orderID kernel.UUID
	viewer  actor.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderTrackingQuery(orderID kernel.UUID, viewer actor.Actor) (GetOrderTrackingQuery, error) {
	if err := errors.Join(orderID.Validate(), viewer.Validate()); err != nil {
		return GetOrderTrackingQuery{}, err
	}
	return GetOrderTrackingQuery{
		orderID: orderID,
		viewer:  viewer,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderTrackingQuery) Viewer() actor.Actor {
	return q.viewer
}

// TrackingStep is one milestone of the delivery type's tracking sequence.
// At is the time the order last entered the step, nil if it never did.
type TrackingStep struct {
	Status  order.Status
	Label   string
	Reached bool
	Current bool
	At      *time.Time
}

// TrackingEvent is one audit log row.
type TrackingEvent struct {
	ID         kernel.UUID
	StatusFrom *order.Status
	StatusTo   order.Status
	Note       string
	ProofURL   string
	CreatedBy  kernel.UUID
	CreatedAt  time.Time
}

// GetOrderTrackingQueryResponse is the tracking read model.
//
// Disputed is set while the order is in DISPUTE_OPEN; Progress is then
// order.NotOnPath and no step is current. AllowedNext lists what the viewer
// may request next.
type GetOrderTrackingQueryResponse struct {
	OrderID      kernel.UUID
	Status       order.Status
	DeliveryType order.DeliveryType
	Version      int
	Steps        []TrackingStep
	Progress     order.Progress
	Disputed     bool
	AllowedNext  []order.Status
	Events       []TrackingEvent
}
