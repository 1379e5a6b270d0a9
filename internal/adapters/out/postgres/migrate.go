package postgres

import (
	"marketplace/internal/adapters/out/postgres/disputerepo"
	"marketplace/internal/adapters/out/postgres/eventrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table of the service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&eventrepo.OrderEventDTO{},
		&disputerepo.DisputeDTO{},
		&outboxrepo.MessageDTO{},
	)
}

// Tables lists the service tables, children first.
func Tables() []string {
	return []string{
		outboxrepo.MessageDTO{}.TableName(),
		disputerepo.DisputeDTO{}.TableName(),
		eventrepo.OrderEventDTO{}.TableName(),
		orderrepo.OrderDTO{}.TableName(),
	}
}
