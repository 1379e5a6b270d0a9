package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace/api"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	policy     services.TransitionPolicy
	metrics    *metrics.Metrics
	logger     *slog.Logger

	closers []func()
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     services.NewTransitionPolicy(),
		metrics:    metrics.New(),
		logger:     logger,
	}
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) disputeUoWFactory() commands.DisputeUoWFactory {
	return FuncDisputeUoWFactory(func() commands.DisputeUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() *commands.PlaceOrderCommandHandler {
	h := commands.NewPlaceOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	h := commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.policy)
	return &h
}

func (c *CompositionRoot) CreateOpenDisputeCommandHandler() *commands.OpenDisputeCommandHandler {
	h := commands.NewOpenDisputeCommandHandler(c.disputeUoWFactory(), c.policy)
	return &h
}

func (c *CompositionRoot) CreateResolveDisputeCommandHandler() *commands.ResolveDisputeCommandHandler {
	h := commands.NewResolveDisputeCommandHandler(c.disputeUoWFactory(), c.policy)
	return &h
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() (*httpin.Server, error) {
	return httpin.NewServer(httpin.Handlers{
		PlaceOrder:        c.CreatePlaceOrderCommandHandler(),
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		OpenDispute:       c.CreateOpenDisputeCommandHandler(),
		ResolveDispute:    c.CreateResolveDisputeCommandHandler(),
		GetOrderTracking:  c.CreateGetOrderTrackingQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		Scope:             services.NewScopeGenerator(),
	}, c.metrics)
}

func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	doc, err := api.Load(ctx)
	if err != nil {
		return nil, err
	}
	auth, err := httpin.NewAuthenticator(c.cfg.JWTSecret, c.cfg.JWTAudience)
	if err != nil {
		return nil, err
	}
	srv, err := c.CreateHTTPServer()
	if err != nil {
		return nil, err
	}
	return httpin.NewRouter(srv, httpin.RouterConfig{
		Doc:       doc,
		Auth:      auth,
		Metrics:   c.metrics,
		Logger:    c.logger,
		RateLimit: c.cfg.RateLimit,
	})
}

// CreateJobManager wires the outbox relay to Kafka. Without brokers the
// manager has no jobs and messages stay queued.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	brokers := c.cfg.KafkaBrokers()
	if len(brokers) == 0 {
		c.logger.Warn("KAFKA_HOST is empty, outbox relay disabled")
		return jobs.NewJobManager(nil), nil
	}

	publisher, err := kafka.NewPublisher(brokers, c.cfg.KafkaOrderEventsTopic, c.cfg.KafkaClientID)
	if err != nil {
		return nil, fmt.Errorf("kafka publisher: %w", err)
	}
	c.closers = append(c.closers, publisher.Close)

	h := commands.NewPublishOutboxCommandHandler(c.outboxUoWFactory(), publisher)
	relay, err := jobs.NewOutboxRelayJob(&h, c.metrics, jobs.OutboxRelayConfig{
		Schedule:  c.cfg.OutboxSchedule,
		BatchSize: c.cfg.OutboxBatch,
		Timeout:   c.cfg.OutboxTimeout,
	}, c.logger)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(relay), nil
}

// Close releases the clients created by the root, last created first.
func (c *CompositionRoot) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDisputeUoWFactory func() commands.DisputeUoW

func (f FuncDisputeUoWFactory) Create() commands.DisputeUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
