package queries

import (
	"database/sql"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

const orderColumns = `
	id,
	buyer_id,
	vendor_id,
	service_id,
	delivery_type,
	status,
	amount_minor,
	currency,
	requirements,
	revisions_allowed,
	revisions_used,
	version,
	created_at,
	updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanOrder reads one row selected with orderColumns into an aggregate.
func scanOrder(row rowScanner) (*order.Order, error) {
	var (
		id, buyerID, vendorID, serviceID uuid.UUID
		deliveryType, status, currency   string
		amountMinor                      int64
		requirements                     string
		revisionsAllowed, revisionsUsed  int
		version                          int
		createdAt, updatedAt             time.Time
	)

	if err := row.Scan(
		&id,
		&buyerID,
		&vendorID,
		&serviceID,
		&deliveryType,
		&status,
		&amountMinor,
		&currency,
		&requirements,
		&revisionsAllowed,
		&revisionsUsed,
		&version,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	orderID, idErr := kernel.UUIDFromGoogle(id)
	buyer, buyerErr := kernel.UUIDFromGoogle(buyerID)
	vendor, vendorErr := kernel.UUIDFromGoogle(vendorID)
	service, serviceErr := kernel.UUIDFromGoogle(serviceID)
	dt, dtErr := order.ParseDeliveryType(deliveryType)
	st, stErr := order.ParseStatus(status)
	amount, amountErr := kernel.NewMoney(amountMinor, currency)
	if err := errors.Join(idErr, buyerErr, vendorErr, serviceErr, dtErr, stErr, amountErr); err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		orderID,
		order.Parties{Buyer: buyer, Vendor: vendor, Service: service},
		order.Terms{
			DeliveryType:     dt,
			Amount:           amount,
			Requirements:     requirements,
			RevisionsAllowed: revisionsAllowed,
		},
		st,
		revisionsUsed,
		version,
		createdAt,
		updatedAt,
	)
}

func nullableStatus(s sql.NullString) (*order.Status, error) {
	if !s.Valid || s.String == "" {
		return nil, nil //nolint:nilnil // absent status_from is the placement event
	}
	st, err := order.ParseStatus(s.String)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
