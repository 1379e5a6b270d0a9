package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type PlaceOrderHandler interface {
	Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (*order.Order, error)
}

type ChangeOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (commands.TransitionResult, error)
}

type OpenDisputeHandler interface {
	Handle(ctx context.Context, cmd commands.OpenDisputeCommand) (commands.DisputeResult, error)
}

type ResolveDisputeHandler interface {
	Handle(ctx context.Context, cmd commands.ResolveDisputeCommand) (commands.DisputeResult, error)
}

type GetOrderTrackingHandler interface {
	Handle(ctx context.Context, q queries.GetOrderTrackingQuery) (queries.GetOrderTrackingQueryResponse, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, q queries.ListOrdersQuery) ([]queries.ListOrdersQueryResponse, error)
}

type ScopeGenerator interface {
	Generate(requirements string, etaDays, revisions int) (string, error)
}

// Handlers are the use cases the server exposes.
type Handlers struct {
	PlaceOrder        PlaceOrderHandler
	ChangeOrderStatus ChangeOrderStatusHandler
	OpenDispute       OpenDisputeHandler
	ResolveDispute    ResolveDisputeHandler
	GetOrderTracking  GetOrderTrackingHandler
	ListOrders        ListOrdersHandler
	Scope             ScopeGenerator
}

// ListOrdersParams are the query parameters of GET /api/v1/orders.
type ListOrdersParams struct {
	Limit *int
}

type Server struct {
	h       Handlers
	metrics *metrics.Metrics
}

func NewServer(h Handlers, m *metrics.Metrics) (*Server, error) {
	if h.PlaceOrder == nil || h.ChangeOrderStatus == nil || h.OpenDispute == nil ||
		h.ResolveDispute == nil || h.GetOrderTracking == nil || h.ListOrders == nil || h.Scope == nil {
		return nil, errors.New("every handler is required")
	}
	if m == nil {
		return nil, errors.New("metrics are required")
	}
	return &Server{h: h, metrics: m}, nil
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

func (s *Server) GetLifecycle(c echo.Context) error {
	return c.JSON(http.StatusOK, lifecycle())
}

func (s *Server) PlaceOrder(c echo.Context) error {
	a, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}

	var req PlaceOrderRequest
	if err = bind(c, &req); err != nil {
		return writeError(c, err)
	}

	deliveryType, err := order.ParseDeliveryType(req.DeliveryType)
	if err != nil {
		return writeError(c, err)
	}
	amount, err := kernel.NewMoney(req.AmountMinor, req.Currency)
	if err != nil {
		return writeError(c, err)
	}
	vendorID, err := uuidParam("vendor_id", req.VendorID)
	if err != nil {
		return writeError(c, err)
	}
	serviceID, err := uuidParam("service_id", req.ServiceID)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), a,
		order.Parties{Vendor: vendorID, Service: serviceID},
		order.Terms{
			DeliveryType:     deliveryType,
			Amount:           amount,
			Requirements:     req.Requirements,
			RevisionsAllowed: req.RevisionsAllowed,
		})
	if err != nil {
		return writeError(c, err)
	}

	o, err := s.h.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, orderFromDomain(o))
}

func (s *Server) ListOrders(c echo.Context, params ListOrdersParams) error {
	a, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}

	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}
	q, err := queries.NewListOrdersQuery(a, limit)
	if err != nil {
		return writeError(c, err)
	}

	rows, err := s.h.ListOrders.Handle(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}

	out := make([]Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, orderFromListRow(r))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) GetOrderTracking(c echo.Context, orderID openapi_types.UUID) error {
	a, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := uuidParam("orderId", orderID)
	if err != nil {
		return writeError(c, err)
	}

	q, err := queries.NewGetOrderTrackingQuery(id, a)
	if err != nil {
		return writeError(c, err)
	}

	resp, err := s.h.GetOrderTracking.Handle(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, trackingFromResponse(resp))
}

// ChangeOrderStatus appends an order event, which is how a status change is
// requested.
func (s *Server) ChangeOrderStatus(c echo.Context, orderID openapi_types.UUID) error {
	a, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := uuidParam("orderId", orderID)
	if err != nil {
		return writeError(c, err)
	}

	var req TransitionRequest
	if err = bind(c, &req); err != nil {
		return writeError(c, err)
	}
	to, err := order.ParseStatus(req.StatusTo)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, a, to, req.Note, req.ProofURL, req.ExpectedVersion)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.h.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		s.metrics.TransitionRejected(rejectionReason(err))
		return writeError(c, err)
	}
	s.metrics.TransitionApplied(result.From.String(), result.To.String())

	return c.JSON(http.StatusCreated, transitionFromResult(result))
}

func (s *Server) OpenDispute(c echo.Context, orderID openapi_types.UUID) error {
	a, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := uuidParam("orderId", orderID)
	if err != nil {
		return writeError(c, err)
	}

	var req OpenDisputeRequest
	if err = bind(c, &req); err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewOpenDisputeCommand(kernel.NewUUID(), id, a, req.Reason)
	if err != nil {
		return writeError(c, err)
	}

	res, err := s.h.OpenDispute.Handle(c.Request().Context(), cmd)
	if err != nil {
		s.metrics.TransitionRejected(rejectionReason(err))
		return writeError(c, err)
	}
	s.metrics.TransitionApplied(res.Transition.From.String(), res.Transition.To.String())

	return c.JSON(http.StatusCreated, disputeFromDomain(res.Dispute))
}

func (s *Server) ResolveDispute(c echo.Context, disputeID openapi_types.UUID) error {
	a, err := actorFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	id, err := uuidParam("disputeId", disputeID)
	if err != nil {
		return writeError(c, err)
	}

	var req ResolveDisputeRequest
	if err = bind(c, &req); err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewResolveDisputeCommand(id, a, req.Resolution)
	if err != nil {
		return writeError(c, err)
	}

	res, err := s.h.ResolveDispute.Handle(c.Request().Context(), cmd)
	if err != nil {
		s.metrics.TransitionRejected(rejectionReason(err))
		return writeError(c, err)
	}
	s.metrics.TransitionApplied(res.Transition.From.String(), res.Transition.To.String())

	return c.JSON(http.StatusOK, disputeFromDomain(res.Dispute))
}

func (s *Server) GenerateScope(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return writeError(c, err)
	}

	var req ScopeRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}

	text, err := s.h.Scope.Generate(req.Requirements, req.EtaDays, req.Revisions)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, Scope{Scope: text})
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

func uuidParam(name string, id openapi_types.UUID) (kernel.UUID, error) {
	u, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%s: %w", name, err)
	}
	return u, nil
}
