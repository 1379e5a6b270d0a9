// Package eventrepo stores the append-only order_events audit trail.
package eventrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index:idx_order_events_order_created,priority:1"`
	StatusFrom *string   `gorm:"type:varchar(32)"`
	StatusTo   string    `gorm:"type:varchar(32);not null"`
	Note       string    `gorm:"type:text;not null;default:''"`
	ProofURL   string    `gorm:"type:text;not null;default:''"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time `gorm:"not null;index:idx_order_events_order_created,priority:2;autoCreateTime:false"`
}

func (OrderEventDTO) TableName() string {
	return "order_events"
}

func fromDomain(e *order.Event) OrderEventDTO {
	dto := OrderEventDTO{
		ID:        e.ID().Google(),
		OrderID:   e.OrderID().Google(),
		StatusTo:  e.StatusTo().String(),
		Note:      e.Note(),
		ProofURL:  e.ProofURL(),
		CreatedBy: e.CreatedBy().Google(),
		CreatedAt: e.CreatedAt(),
	}
	if from, ok := e.StatusFrom(); ok {
		s := from.String()
		dto.StatusFrom = &s
	}
	return dto
}

func toDomain(dto OrderEventDTO) (*order.Event, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromGoogle(dto.CreatedBy)
	if err != nil {
		return nil, err
	}

	var from *order.Status
	if dto.StatusFrom != nil {
		s, parseErr := order.ParseStatus(*dto.StatusFrom)
		if parseErr != nil {
			return nil, parseErr
		}
		from = &s
	}
	to, err := order.ParseStatus(dto.StatusTo)
	if err != nil {
		return nil, err
	}

	return order.RestoreEvent(id, orderID, from, to, createdBy, dto.Note, dto.ProofURL, dto.CreatedAt)
}
