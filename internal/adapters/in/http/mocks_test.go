package http_test

import (
	"context"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockPlaceOrderHandler struct{ mock.Mock }

func (m *MockPlaceOrderHandler) Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockChangeOrderStatusHandler struct{ mock.Mock }

func (m *MockChangeOrderStatusHandler) Handle(
	ctx context.Context,
	cmd commands.ChangeOrderStatusCommand,
) (commands.TransitionResult, error) {
	args := m.Called(ctx, cmd)
	r, _ := args.Get(0).(commands.TransitionResult)
	return r, args.Error(1)
}

type MockOpenDisputeHandler struct{ mock.Mock }

func (m *MockOpenDisputeHandler) Handle(ctx context.Context, cmd commands.OpenDisputeCommand) (commands.DisputeResult, error) {
	args := m.Called(ctx, cmd)
	res, _ := args.Get(0).(commands.DisputeResult)
	return res, args.Error(1)
}

type MockResolveDisputeHandler struct{ mock.Mock }

func (m *MockResolveDisputeHandler) Handle(
	ctx context.Context,
	cmd commands.ResolveDisputeCommand,
) (commands.DisputeResult, error) {
	args := m.Called(ctx, cmd)
	res, _ := args.Get(0).(commands.DisputeResult)
	return res, args.Error(1)
}

type MockGetOrderTrackingHandler struct{ mock.Mock }

func (m *MockGetOrderTrackingHandler) Handle(
	ctx context.Context,
	q queries.GetOrderTrackingQuery,
) (queries.GetOrderTrackingQueryResponse, error) {
	args := m.Called(ctx, q)
	r, _ := args.Get(0).(queries.GetOrderTrackingQueryResponse)
	return r, args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(
	ctx context.Context,
	q queries.ListOrdersQuery,
) ([]queries.ListOrdersQueryResponse, error) {
	args := m.Called(ctx, q)
	r, _ := args.Get(0).([]queries.ListOrdersQueryResponse)
	return r, args.Error(1)
}
