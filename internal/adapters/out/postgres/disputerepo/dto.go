// Package disputerepo maps disputes to the disputes table. A partial unique
// index keeps at most one OPEN dispute per order.
package disputerepo

import (
	"time"

	"marketplace/internal/core/domain/model/dispute"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

const openDisputeIndex = "idx_disputes_open_order"

type DisputeDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID  `gorm:"type:uuid;not null;index;index:idx_disputes_open_order,unique,where:status = 'OPEN'"`
	OpenedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	Reason     string     `gorm:"type:text;not null"`
	Status     string     `gorm:"type:varchar(16);not null"`
	Resolution string     `gorm:"type:text;not null;default:''"`
	ResolvedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time  `gorm:"not null;autoCreateTime:false"`
	ResolvedAt *time.Time
}

func (DisputeDTO) TableName() string {
	return "disputes"
}

func fromDomain(d *dispute.Dispute) DisputeDTO {
	dto := DisputeDTO{
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
		raw := by.Google()
		dto.ResolvedBy = &raw
	}
	return dto
}

func toDomain(dto DisputeDTO) (*dispute.Dispute, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	openedBy, err := kernel.UUIDFromGoogle(dto.OpenedBy)
	if err != nil {
		return nil, err
	}

	var resolvedBy *kernel.UUID
	if dto.ResolvedBy != nil {
		by, byErr := kernel.UUIDFromGoogle(*dto.ResolvedBy)
		if byErr != nil {
			return nil, byErr
		}
		resolvedBy = &by
	}

	status, err := dispute.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return dispute.Restore(id, orderID, openedBy, dto.Reason, status, dto.Resolution,
		resolvedBy, dto.CreatedAt, dto.ResolvedAt)
}
