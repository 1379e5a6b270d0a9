package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func testOrder(t *testing.T, status order.Status, version int) *order.Order {
	t.Helper()
	amount, err := kernel.NewMoney(120000, "INR")
	require.NoError(t, err)
	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		order.Parties{Buyer: kernel.NewUUID(), Vendor: kernel.NewUUID(), Service: kernel.NewUUID()},
		order.Terms{DeliveryType: order.Digital, Amount: amount, RevisionsAllowed: 1},
		status, 0, version, time.Now().UTC(), time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

func testActor(t *testing.T, id kernel.UUID, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(id, role)
	require.NoError(t, err)
	return a
}
