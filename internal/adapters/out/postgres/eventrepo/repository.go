package eventrepo

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormOrderEventRepository implements ports.OrderEventRepository. It only
// ever inserts.
type GormOrderEventRepository struct {
	db *gorm.DB
}

func NewGormOrderEventRepository(db *gorm.DB) *GormOrderEventRepository {
	return &GormOrderEventRepository{db: db}
}

func (r *GormOrderEventRepository) Append(ctx context.Context, event *order.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormOrderEventRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderEventDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Google()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]*order.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, nil
}
