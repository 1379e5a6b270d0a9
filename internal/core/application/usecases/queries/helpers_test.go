package queries_test

import (
	"database/sql/driver"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var orderColumns = []string{
	"id", "buyer_id", "vendor_id", "service_id", "delivery_type", "status",
	"amount_minor", "currency", "requirements", "revisions_allowed", "revisions_used",
	"version", "created_at", "updated_at",
}

var eventColumns = []string{"id", "status_from", "status_to", "note", "proof_url", "created_by", "created_at"}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

type orderRow struct {
	id, buyer, vendor kernel.UUID
	deliveryType      string
	status            string
	version           int
	createdAt         time.Time
}

func newOrderRow(deliveryType, status string) orderRow {
	return orderRow{
		id:           kernel.NewUUID(),
		buyer:        kernel.NewUUID(),
		vendor:       kernel.NewUUID(),
		deliveryType: deliveryType,
		status:       status,
		version:      3,
		createdAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (r orderRow) values() []driver.Value {
	return []driver.Value{
		r.id.String(), r.buyer.String(), r.vendor.String(), kernel.NewUUID().String(),
		r.deliveryType, r.status, int64(250000), "INR", "Logo in three colours",
		int64(2), int64(0), int64(r.version), r.createdAt, r.createdAt.Add(time.Hour),
	}
}

func mustActor(t *testing.T, id kernel.UUID, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(id, role)
	require.NoError(t, err)
	return a
}
