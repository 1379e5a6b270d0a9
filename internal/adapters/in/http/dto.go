package http

import (
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/dispute"
	"marketplace/internal/core/domain/model/order"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type PlaceOrderRequest struct {
	VendorID         openapi_types.UUID `json:"vendor_id"`
	ServiceID        openapi_types.UUID `json:"service_id"`
	DeliveryType     string             `json:"delivery_type"`
	AmountMinor      int64              `json:"amount_minor"`
	Currency         string             `json:"currency,omitempty"`
	Requirements     string             `json:"requirements,omitempty"`
	RevisionsAllowed int                `json:"revisions_allowed,omitempty"`
}

type TransitionRequest struct {
	StatusTo        string `json:"status_to"`
	Note            string `json:"note,omitempty"`
	ProofURL        string `json:"proof_url,omitempty"`
	ExpectedVersion int    `json:"expected_version,omitempty"`
}

type OpenDisputeRequest struct {
	Reason string `json:"reason"`
}

type ResolveDisputeRequest struct {
	Resolution string `json:"resolution"`
}

type ScopeRequest struct {
	Requirements string `json:"requirements,omitempty"`
	EtaDays      int    `json:"eta_days"`
	Revisions    int    `json:"revisions,omitempty"`
}

type Scope struct {
	Scope string `json:"scope"`
}

type Order struct {
	ID           openapi_types.UUID `json:"id"`
	BuyerID      openapi_types.UUID `json:"buyer_id"`
	VendorID     openapi_types.UUID `json:"vendor_id"`
	ServiceID    openapi_types.UUID `json:"service_id"`
	DeliveryType order.DeliveryType `json:"delivery_type"`
	Status       order.Status       `json:"status"`
	StatusLabel  string             `json:"status_label"`
	AmountMinor  int64              `json:"amount_minor"`
	Currency     string             `json:"currency"`
	Version      int                `json:"version"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type OrderEvent struct {
	ID         openapi_types.UUID `json:"id"`
	StatusFrom *order.Status      `json:"status_from"`
	StatusTo   order.Status       `json:"status_to"`
	Note       string             `json:"note"`
	ProofURL   string             `json:"proof_url,omitempty"`
	CreatedBy  openapi_types.UUID `json:"created_by"`
	CreatedAt  time.Time          `json:"created_at"`
}

type Transition struct {
	OrderID    openapi_types.UUID `json:"order_id"`
	StatusFrom order.Status       `json:"status_from"`
	StatusTo   order.Status       `json:"status_to"`
	Version    int                `json:"version"`
	Event      OrderEvent         `json:"event"`
}

type TrackingStep struct {
	Status  order.Status `json:"status"`
	Label   string       `json:"label"`
	Reached bool         `json:"reached"`
	Current bool         `json:"current"`
	At      *time.Time   `json:"at"`
}

type Tracking struct {
	OrderID       openapi_types.UUID `json:"order_id"`
	Status        order.Status       `json:"status"`
	StatusLabel   string             `json:"status_label"`
	DeliveryType  order.DeliveryType `json:"delivery_type"`
	Version       int                `json:"version"`
	Disputed      bool               `json:"disputed"`
	ProgressIndex *int               `json:"progress_index"`
	Steps         []TrackingStep     `json:"steps"`
	AllowedNext   []order.Status     `json:"allowed_next"`
	Events        []OrderEvent       `json:"events"`
}

type Dispute struct {
	ID         openapi_types.UUID  `json:"id"`
	OrderID    openapi_types.UUID  `json:"order_id"`
	OpenedBy   openapi_types.UUID  `json:"opened_by"`
	Reason     string              `json:"reason"`
	Status     string              `json:"status"`
	Resolution string              `json:"resolution,omitempty"`
	ResolvedBy *openapi_types.UUID `json:"resolved_by"`
	CreatedAt  time.Time           `json:"created_at"`
	ResolvedAt *time.Time          `json:"resolved_at"`
}

type StatusInfo struct {
	Status   order.Status   `json:"status"`
	Label    string         `json:"label"`
	Terminal bool           `json:"terminal"`
	Next     []order.Status `json:"next"`
}

type Lifecycle struct {
	Statuses []StatusInfo              `json:"statuses"`
	Tracking map[string][]order.Status `json:"tracking"`
}

func orderFromDomain(o *order.Order) Order {
	return Order{
		ID:           o.ID().Google(),
		BuyerID:      o.BuyerID().Google(),
		VendorID:     o.VendorID().Google(),
		ServiceID:    o.ServiceID().Google(),
		DeliveryType: o.DeliveryType(),
		Status:       o.Status(),
		StatusLabel:  o.Status().Label(),
		AmountMinor:  o.Amount().Minor(),
		Currency:     o.Amount().Currency(),
		Version:      o.Version(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func orderFromListRow(r queries.ListOrdersQueryResponse) Order {
	return Order{
		ID:           r.ID.Google(),
		BuyerID:      r.BuyerID.Google(),
		VendorID:     r.VendorID.Google(),
		ServiceID:    r.ServiceID.Google(),
		DeliveryType: r.DeliveryType,
		Status:       r.Status,
		StatusLabel:  r.Status.Label(),
		AmountMinor:  r.Amount.Minor(),
		Currency:     r.Amount.Currency(),
		Version:      r.Version,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func eventFromDomain(e *order.Event) OrderEvent {
	out := OrderEvent{
		ID:        e.ID().Google(),
		StatusTo:  e.StatusTo(),
		Note:      e.Note(),
		ProofURL:  e.ProofURL(),
		CreatedBy: e.CreatedBy().Google(),
		CreatedAt: e.CreatedAt(),
	}
	if from, ok := e.StatusFrom(); ok {
		out.StatusFrom = &from
	}
	return out
}

func transitionFromResult(r commands.TransitionResult) Transition {
	return Transition{
		OrderID:    r.Event.OrderID().Google(),
		StatusFrom: r.From,
		StatusTo:   r.To,
		Version:    r.Version,
		Event:      eventFromDomain(r.Event),
	}
}

func trackingFromResponse(r queries.GetOrderTrackingQueryResponse) Tracking {
	out := Tracking{
		OrderID:      r.OrderID.Google(),
		Status:       r.Status,
		StatusLabel:  r.Status.Label(),
		DeliveryType: r.DeliveryType,
		Version:      r.Version,
		Disputed:     r.Disputed,
		Steps:        make([]TrackingStep, 0, len(r.Steps)),
		AllowedNext:  r.AllowedNext,
		Events:       make([]OrderEvent, 0, len(r.Events)),
	}
	if out.AllowedNext == nil {
		out.AllowedNext = []order.Status{}
	}
	if i, ok := r.Progress.Index(); ok {
		out.ProgressIndex = &i
	}
	for _, s := range r.Steps {
		out.Steps = append(out.Steps, TrackingStep{
			Status:  s.Status,
			Label:   s.Label,
			Reached: s.Reached,
			Current: s.Current,
			At:      s.At,
		})
	}
	for _, e := range r.Events {
		out.Events = append(out.Events, OrderEvent{
			ID:         e.ID.Google(),
			StatusFrom: e.StatusFrom,
			StatusTo:   e.StatusTo,
			Note:       e.Note,
			ProofURL:   e.ProofURL,
			CreatedBy:  e.CreatedBy.Google(),
			CreatedAt:  e.CreatedAt,
		})
	}
	return out
}

func disputeFromDomain(d *dispute.Dispute) Dispute {
	out := Dispute{
		ID:         d.ID().Google(),
		OrderID:    d.OrderID().Google(),
		OpenedBy:   d.OpenedBy().Google(),
		Reason:     d.Reason(),
		Status:     d.Status().String(),
		Resolution: d.Resolution(),
		CreatedAt:  d.CreatedAt(),
		ResolvedAt: d.ResolvedAt(),
	}
	if by := d.ResolvedBy(); by != nil {
		id := by.Google()
		out.ResolvedBy = &id
	}
	return out
}

func lifecycle() Lifecycle {
	all := order.AllStatuses()
	out := Lifecycle{
		Statuses: make([]StatusInfo, 0, len(all)),
		Tracking: make(map[string][]order.Status, 3),
	}
	for _, s := range all {
		out.Statuses = append(out.Statuses, StatusInfo{
			Status:   s,
			Label:    s.Label(),
			Terminal: s.IsTerminal(),
			Next:     s.NextStatuses(),
		})
	}
	for _, d := range []order.DeliveryType{order.Digital, order.Physical, order.Hybrid} {
		seq, _ := order.TrackingSequence(d)
		out.Tracking[d.String()] = seq
	}
	return out
}
