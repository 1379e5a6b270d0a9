// Package outboxrepo stores integration messages in outbox_messages, written
// in the same transaction as the change they announce.
package outboxrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType   string    `gorm:"type:varchar(64);not null"`
	Payload     string    `gorm:"type:jsonb;not null"`
	Status      string    `gorm:"type:varchar(16);not null;index:idx_outbox_status_created,priority:1"`
	Attempts    int       `gorm:"not null;default:0"`
	LastError   string    `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time `gorm:"not null;index:idx_outbox_status_created,priority:2;autoCreateTime:false"`
	PublishedAt *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          m.ID().Google(),
		AggregateID: m.AggregateID().Google(),
		EventType:   m.EventType(),
		Payload:     string(m.Payload()),
		Status:      m.Status().String(),
		Attempts:    m.Attempts(),
		LastError:   m.LastError(),
		CreatedAt:   m.CreatedAt(),
		PublishedAt: m.PublishedAt(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	aggregateID, err := kernel.UUIDFromGoogle(dto.AggregateID)
	if err != nil {
		return nil, err
	}
	status, err := outbox.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(id, aggregateID, dto.EventType, []byte(dto.Payload), status,
		dto.Attempts, dto.LastError, dto.CreatedAt, dto.PublishedAt)
}
