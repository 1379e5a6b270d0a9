package queries_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectOrderByID = `FROM orders\s+WHERE id = \$1`
	selectEvents    = `FROM order_events\s+WHERE order_id = \$1\s+ORDER BY created_at, id`
)

func TestGetOrderTrackingQueryHandler_Handle_DigitalOrderMidway(t *testing.T) {
	db, mock := newMockDB(t)
	row := newOrderRow("digital", "M1_SUBMITTED")
	at := func(h int) time.Time { return row.createdAt.Add(time.Duration(h) * time.Hour) }

	mock.ExpectQuery(selectOrderByID).
		WithArgs(row.id.String()).
		WillReturnRows(sqlmock.NewRows(orderColumns).AddRow(row.values()...))
	mock.ExpectQuery(selectEvents).
		WithArgs(row.id.String()).
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow(kernel.NewUUID().String(), nil, "PLACED", order.PlacementNote, "", row.buyer.String(), at(0)).
			AddRow(kernel.NewUUID().String(), "PLACED", "ACCEPTED", "", "", row.vendor.String(), at(1)).
			AddRow(kernel.NewUUID().String(), "ACCEPTED", "IN_PROGRESS", "", "", row.vendor.String(), at(2)).
			AddRow(kernel.NewUUID().String(), "IN_PROGRESS", "M1_SUBMITTED", "Draft one", "https://files.example.com/m1.png", row.vendor.String(), at(3)))

	query, err := queries.NewGetOrderTrackingQuery(row.id, mustActor(t, row.buyer, actor.Buyer))
	require.NoError(t, err)
	handler := queries.NewGetOrderTrackingQueryHandler(db, services.NewTransitionPolicy())

	got, err := handler.Handle(t.Context(), query)

	require.NoError(t, err)
	assert.Equal(t, order.M1Submitted, got.Status)
	assert.Equal(t, order.Digital, got.DeliveryType)
	assert.False(t, got.Disputed)

	idx, ok := got.Progress.Index()
	require.True(t, ok)
	assert.Equal(t, 3, idx)

	require.Len(t, got.Steps, 6)
	for i, step := range got.Steps {
		assert.Equal(t, i <= 3, step.Reached, "step %d", i)
		assert.Equal(t, i == 3, step.Current, "step %d", i)
		assert.Equal(t, i <= 3, step.At != nil, "step %d", i)
	}
	assert.Equal(t, "Milestone Submitted", got.Steps[3].Label)
	assert.Equal(t, at(3), *got.Steps[3].At)

	require.Len(t, got.Events, 4)
	assert.Nil(t, got.Events[0].StatusFrom)
	require.NotNil(t, got.Events[3].StatusFrom)
	assert.Equal(t, order.InProgress, *got.Events[3].StatusFrom)
	assert.Equal(t, "https://files.example.com/m1.png", got.Events[3].ProofURL)

	assert.Equal(t, []order.Status{order.RevisionRequested, order.FinalDelivered, order.DisputeOpen}, got.AllowedNext)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderTrackingQueryHandler_Handle_DisputedOrderIsOffPath(t *testing.T) {
	db, mock := newMockDB(t)
	row := newOrderRow("physical", "DISPUTE_OPEN")

	mock.ExpectQuery(selectOrderByID).
		WithArgs(row.id.String()).
		WillReturnRows(sqlmock.NewRows(orderColumns).AddRow(row.values()...))
	mock.ExpectQuery(selectEvents).
		WithArgs(row.id.String()).
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow(kernel.NewUUID().String(), nil, "PLACED", order.PlacementNote, "", row.buyer.String(), row.createdAt).
			AddRow(kernel.NewUUID().String(), "PLACED", "DISPUTE_OPEN", "Dispute opened: no reply", "", row.buyer.String(), row.createdAt))

	query, err := queries.NewGetOrderTrackingQuery(row.id, mustActor(t, row.vendor, actor.Vendor))
	require.NoError(t, err)
	handler := queries.NewGetOrderTrackingQueryHandler(db, services.NewTransitionPolicy())

	got, err := handler.Handle(t.Context(), query)

	require.NoError(t, err)
	assert.True(t, got.Disputed)
	assert.Equal(t, order.NotOnPath, got.Progress)
	require.Len(t, got.Steps, 6)
	for _, step := range got.Steps {
		assert.False(t, step.Reached)
		assert.False(t, step.Current)
	}
	assert.NotNil(t, got.Steps[0].At)
	assert.Empty(t, got.AllowedNext)
}

func TestGetOrderTrackingQueryHandler_Handle_NotFound(t *testing.T) {
	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		id := kernel.NewUUID()
		mock.ExpectQuery(selectOrderByID).WithArgs(id.String()).WillReturnRows(sqlmock.NewRows(orderColumns))

		query, err := queries.NewGetOrderTrackingQuery(id, mustActor(t, kernel.NewUUID(), actor.Admin))
		require.NoError(t, err)
		handler := queries.NewGetOrderTrackingQueryHandler(db, services.NewTransitionPolicy())

		_, err = handler.Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("viewer is not a participant", func(t *testing.T) {
		db, mock := newMockDB(t)
		row := newOrderRow("hybrid", "PLACED")
		mock.ExpectQuery(selectOrderByID).
			WithArgs(row.id.String()).
			WillReturnRows(sqlmock.NewRows(orderColumns).AddRow(row.values()...))

		query, err := queries.NewGetOrderTrackingQuery(row.id, mustActor(t, kernel.NewUUID(), actor.Buyer))
		require.NoError(t, err)
		handler := queries.NewGetOrderTrackingQueryHandler(db, services.NewTransitionPolicy())

		_, err = handler.Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetOrderTrackingQueryHandler_Handle_CorruptedStatus(t *testing.T) {
	db, mock := newMockDB(t)
	row := newOrderRow("digital", "SHIPPED")
	mock.ExpectQuery(selectOrderByID).
		WithArgs(row.id.String()).
		WillReturnRows(sqlmock.NewRows(orderColumns).AddRow(row.values()...))

	query, err := queries.NewGetOrderTrackingQuery(row.id, mustActor(t, row.buyer, actor.Buyer))
	require.NoError(t, err)
	handler := queries.NewGetOrderTrackingQueryHandler(db, services.NewTransitionPolicy())

	_, err = handler.Handle(t.Context(), query)

	require.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestGetOrderTrackingQueryHandler_Handle_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	id := kernel.NewUUID()
	mock.ExpectQuery(selectOrderByID).WithArgs(id.String()).WillReturnError(errors.New("connection reset"))

	query, err := queries.NewGetOrderTrackingQuery(id, mustActor(t, kernel.NewUUID(), actor.Admin))
	require.NoError(t, err)
	handler := queries.NewGetOrderTrackingQueryHandler(db, services.NewTransitionPolicy())

	_, err = handler.Handle(t.Context(), query)

	require.ErrorContains(t, err, "connection reset")
}

func TestGetOrderTrackingQuery_NotConstructed(t *testing.T) {
	handler := queries.NewGetOrderTrackingQueryHandler(nil, services.NewTransitionPolicy())

	_, err := handler.Handle(t.Context(), queries.GetOrderTrackingQuery{})

	require.ErrorIs(t, err, queries.ErrGetOrderTrackingQueryIsNotConstructed)
}
