package http

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"marketplace/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

// ServerInterface lists the operations of api/openapi.yaml.
type ServerInterface interface {
	Health(ctx echo.Context) error
	GetLifecycle(ctx echo.Context) error
	PlaceOrder(ctx echo.Context) error
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	GetOrderTracking(ctx echo.Context, orderID openapi_types.UUID) error
	ChangeOrderStatus(ctx echo.Context, orderID openapi_types.UUID) error
	OpenDispute(ctx echo.Context, orderID openapi_types.UUID) error
	ResolveDispute(ctx echo.Context, disputeID openapi_types.UUID) error
	GenerateScope(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return writeError(ctx, fmt.Errorf("%w: invalid format for parameter limit: %w", errBadRequest, err))
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrderTracking(ctx echo.Context) error {
	orderID, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.GetOrderTracking(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.ChangeOrderStatus(ctx, orderID)
}

func (w *ServerInterfaceWrapper) OpenDispute(ctx echo.Context) error {
	orderID, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.OpenDispute(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ResolveDispute(ctx echo.Context) error {
	disputeID, err := bindUUIDPath(ctx, "disputeId")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.ResolveDispute(ctx, disputeID)
}

func bindUUIDPath(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, fmt.Errorf("%w: invalid format for parameter %s: %w", errBadRequest, name, err)
	}
	return id, nil
}

type RouterConfig struct {
	Doc     *openapi3.T
	Auth    *Authenticator
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	// RateLimit is the sustained number of mutating requests per second
	// allowed per client IP. Zero disables limiting.
	RateLimit float64
}

// NewRouter builds the echo instance serving s.
func NewRouter(s ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	if cfg.Doc == nil || cfg.Auth == nil || cfg.Metrics == nil {
		return nil, errors.New("router needs the openapi document, an authenticator and metrics")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	validate, err := RequestValidator(cfg.Doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(cfg.Doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler
	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		requestLogger(logger.With("component", "http")),
		metricsMiddleware(cfg.Metrics),
	)

	mutating := []echo.MiddlewareFunc{}
	if cfg.RateLimit > 0 {
		mutating = append(mutating, middleware.RateLimiter(
			middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:  rate.Limit(cfg.RateLimit),
				Burst: int(math.Max(1, math.Ceil(cfg.RateLimit))),
			}),
		))
	}

	w := &ServerInterfaceWrapper{Handler: s}

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	e.GET("/openapi.json", openAPIHandler(cfg.Doc))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/api/v1/lifecycle", s.GetLifecycle)

	api := e.Group("/api/v1", cfg.Auth.Middleware(), validate)
	api.POST("/orders", s.PlaceOrder, mutating...)
	api.GET("/orders", w.ListOrders)
	api.GET("/orders/:orderId/tracking", w.GetOrderTracking)
	api.POST("/orders/:orderId/events", w.ChangeOrderStatus, mutating...)
	api.POST("/orders/:orderId/disputes", w.OpenDispute, mutating...)
	api.POST("/disputes/:disputeId/resolve", w.ResolveDispute, mutating...)
	api.POST("/scope", s.GenerateScope)

	return e, nil
}

// errorHandler renders errors that escape handlers, such as echo's own 404
// and 405, in the Error shape.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}
	_ = c.JSON(code, Error{Code: code, Message: msg})
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

func metricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			done := m.StartRequest(c.Request().Method, c.Path())
			err := next(c)

			status := c.Response().Status
			var he *echo.HTTPError
			if err != nil && errors.As(err, &he) {
				status = he.Code
			}
			done(strconv.Itoa(status))
			return err
		}
	}
}
