package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrdersQueryHandler_Handle_Participant(t *testing.T) {
	db, mock := newMockDB(t)
	first := newOrderRow("digital", "IN_PROGRESS")
	second := newOrderRow("physical", "OUT_FOR_DELIVERY")
	viewer := first.buyer
	second.vendor = viewer

	mock.ExpectQuery(`FROM orders\s+WHERE buyer_id = \$1 OR vendor_id = \$2\s+ORDER BY created_at DESC\s+LIMIT \$3`).
		WithArgs(viewer.String(), viewer.String(), queries.DefaultListLimit).
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow(first.values()...).
			AddRow(second.values()...))

	query, err := queries.NewListOrdersQuery(mustActor(t, viewer, actor.Buyer), 0)
	require.NoError(t, err)
	handler := queries.NewListOrdersQueryHandler(db)

	got, err := handler.Handle(t.Context(), query)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].ID.IsEqual(first.id))
	assert.Equal(t, order.InProgress, got[0].Status)
	assert.Equal(t, order.Physical, got[1].DeliveryType)
	assert.Equal(t, int64(250000), got[1].Amount.Minor())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrdersQueryHandler_Handle_AdminSeesAll(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM orders\s+ORDER BY created_at DESC\s+LIMIT \$1`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(orderColumns))

	query, err := queries.NewListOrdersQuery(mustActor(t, kernel.NewUUID(), actor.Admin), 10)
	require.NoError(t, err)
	handler := queries.NewListOrdersQueryHandler(db)

	got, err := handler.Handle(t.Context(), query)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewListOrdersQuery_Limit(t *testing.T) {
	a := mustActor(t, kernel.NewUUID(), actor.Vendor)

	q, err := queries.NewListOrdersQuery(a, 0)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultListLimit, q.Limit())

	_, err = queries.NewListOrdersQuery(a, queries.MaxListLimit+1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewListOrdersQuery(actor.Actor{}, 5)
	require.ErrorIs(t, err, actor.ErrActorIsNotConstructed)
}
