package outbox

import (
	"time"

	"marketplace/internal/core/domain/model/dispute"
	"marketplace/internal/core/domain/model/order"
)

// Event types carried in Message.EventType and in the broker record headers.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventDisputeOpened      = "dispute.opened"
	EventDisputeResolved    = "dispute.resolved"
)

// OrderStatusChanged is the payload of order.placed and order.status_changed.
// StatusFrom is empty for order.placed.
type OrderStatusChanged struct {
	OrderID      string    `json:"order_id"`
	EventID      string    `json:"event_id"`
	BuyerID      string    `json:"buyer_id"`
	VendorID     string    `json:"vendor_id"`
	DeliveryType string    `json:"delivery_type"`
	StatusFrom   string    `json:"status_from,omitempty"`
	StatusTo     string    `json:"status_to"`
	Note         string    `json:"note,omitempty"`
	ProofURL     string    `json:"proof_url,omitempty"`
	ChangedBy    string    `json:"changed_by"`
	Version      int       `json:"version"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// DisputeChanged is the payload of dispute.opened and dispute.resolved.
type DisputeChanged struct {
	DisputeID  string    `json:"dispute_id"`
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason"`
	Resolution string    `json:"resolution,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewOrderMessage builds the outbox message for an accepted order event.
func NewOrderMessage(o *order.Order, e *order.Event) (*Message, error) {
	eventType := EventOrderStatusChanged
	from, hasFrom := e.StatusFrom()
	fromStr := ""
	if hasFrom {
		fromStr = from.String()
	} else {
		eventType = EventOrderPlaced
	}

	return NewMessage(o.ID(), eventType, OrderStatusChanged{
		OrderID:      o.ID().String(),
		EventID:      e.ID().String(),
		BuyerID:      o.BuyerID().String(),
		VendorID:     o.VendorID().String(),
		DeliveryType: o.DeliveryType().String(),
		StatusFrom:   fromStr,
		StatusTo:     e.StatusTo().String(),
		Note:         e.Note(),
		ProofURL:     e.ProofURL(),
		ChangedBy:    e.CreatedBy().String(),
		Version:      o.Version(),
		OccurredAt:   e.CreatedAt(),
	})
}

// NewDisputeMessage builds the outbox message for a dispute change.
func NewDisputeMessage(d *dispute.Dispute) (*Message, error) {
	eventType := EventDisputeOpened
	at := d.CreatedAt()
	if !d.IsOpen() {
		eventType = EventDisputeResolved
		if d.ResolvedAt() != nil {
			at = *d.ResolvedAt()
		}
	}

	return NewMessage(d.OrderID(), eventType, DisputeChanged{
		DisputeID:  d.ID().String(),
		OrderID:    d.OrderID().String(),
		Status:     d.Status().String(),
		Reason:     d.Reason(),
		Resolution: d.Resolution(),
		OccurredAt: at,
	})
}
