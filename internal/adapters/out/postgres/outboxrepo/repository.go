package outboxrepo

import (
	"context"

	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, m *outbox.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	dto := fromDomain(m)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ClaimPending must run inside a transaction for the locks to mean anything.
func (r *GormOutboxRepository) ClaimPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ?", outbox.StatusPending.String()).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}

func (r *GormOutboxRepository) Save(ctx context.Context, m *outbox.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	dto := fromDomain(m)
	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"attempts":     dto.Attempts,
			"last_error":   dto.LastError,
			"published_at": dto.PublishedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outboxMessage", m.ID().String())
	}
	return nil
}
