package queries

import (
	"context"
	"database/sql"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderTrackingQueryHandler struct {
	db     *gorm.DB
	policy services.TransitionPolicy
}

func NewGetOrderTrackingQueryHandler(db *gorm.DB, policy services.TransitionPolicy) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db, policy: policy}
}

func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	o, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	if !h.policy.CanView(query.Viewer(), o) {
		return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}

	events, err := h.loadEvents(ctx, o.ID())
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	sequence, progress, err := o.Tracking()
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	enteredAt := make(map[order.Status]time.Time, len(events))
	for _, e := range events {
		enteredAt[e.StatusTo] = e.CreatedAt
	}

	current, _ := progress.Index()
	steps := make([]TrackingStep, 0, len(sequence))
	for i, s := range sequence {
		step := TrackingStep{
			Status:  s,
			Label:   s.Label(),
			Reached: progress.Reached(i),
			Current: progress.OnPath() && i == current,
		}
		if at, ok := enteredAt[s]; ok {
			step.At = &at
		}
		steps = append(steps, step)
	}

	return GetOrderTrackingQueryResponse{
		OrderID:      o.ID(),
		Status:       o.Status(),
		DeliveryType: o.DeliveryType(),
		Version:      o.Version(),
		Steps:        steps,
		Progress:     progress,
		Disputed:     o.Status() == order.DisputeOpen,
		AllowedNext:  h.policy.AllowedNext(query.Viewer(), o),
		Events:       events,
	}, nil
}

func (h GetOrderTrackingQueryHandler) loadOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	rows, err := h.db.WithContext(ctx).Raw(`SELECT`+orderColumns+`
		FROM orders
		WHERE id = ?`, id.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("orderID", id.String())
	}

	return scanOrder(rows)
}

func (h GetOrderTrackingQueryHandler) loadEvents(ctx context.Context, orderID kernel.UUID) ([]TrackingEvent, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status_from,
			status_to,
			note,
			proof_url,
			created_by,
			created_at
		FROM order_events
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]TrackingEvent, 0)
	for rows.Next() {
		var (
			id, createdBy uuid.UUID
			from          sql.NullString
			to            string
			e             TrackingEvent
		)
		if err = rows.Scan(&id, &from, &to, &e.Note, &e.ProofURL, &createdBy, &e.CreatedAt); err != nil {
			return nil, err
		}

		if e.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if e.CreatedBy, err = kernel.UUIDFromGoogle(createdBy); err != nil {
			return nil, err
		}
		if e.StatusFrom, err = nullableStatus(from); err != nil {
			return nil, err
		}
		if e.StatusTo, err = order.ParseStatus(to); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
