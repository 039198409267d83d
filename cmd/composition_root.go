package cmd

import (
	"context"
	"errors"

	httpin "bidding/internal/adapters/in/http"
	"bidding/internal/adapters/out/broker"
	"bidding/internal/adapters/out/postgres"
	"bidding/internal/adapters/out/postgres/identityrepo"
	"bidding/internal/adapters/out/postgres/sequencerepo"
	"bidding/internal/adapters/out/redis"
	"bidding/internal/core/application/allocator"
	"bidding/internal/core/application/usecases/commands"
	"bidding/internal/core/application/usecases/queries"
	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/ports"
	"bidding/internal/jobs"
	"bidding/internal/observability"
	"bidding/internal/pkg/clock"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	clock      ports.Clock
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *observability.Metrics
	identity   ports.Identity
	publisher  *broker.Publisher
	redis      *goredis.Client
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	root := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		clock:      clock.System{},
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    observability.NewMetrics(registry),
		publisher:  broker.NewPublisher(cfg.KafkaHost, cfg.KafkaOrderEventsTopic, logger),
	}

	var identity ports.Identity = identityrepo.NewGormIdentity(gormDB)
	if cfg.RedisAddr != "" {
		root.redis = goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		identity = redis.NewCachedIdentity(identity, root.redis, cfg.ProviderCacheTTL, logger)
	}
	root.identity = identity

	return root
}

// Close releases the broker writer and the cache client.
func (c *CompositionRoot) Close() error {
	var errList []error
	if err := c.publisher.Close(); err != nil {
		errList = append(errList, err)
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// RegisterProvider stores the provider and drops its cached activity.
func (c *CompositionRoot) RegisterProvider(ctx context.Context, providerID kernel.UUID, name string, active bool) error {
	if err := identityrepo.NewGormIdentity(c.gormDB).RegisterProvider(ctx, providerID, name, active); err != nil {
		return err
	}

	if cached, ok := c.identity.(*redis.CachedIdentity); ok {
		if err := cached.Invalidate(ctx, providerID); err != nil {
			c.logger.Warn("failed to invalidate provider cache",
				zap.String("provider_id", providerID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateIDAllocator() *allocator.Allocator {
	// Location is validated by LoadConfig.
	location, _ := c.cfg.Location()
	policy := c.cfg.RetryPolicy().WithOnRetry(func(uint64, error) {
		c.metrics.StoreRetry("allocate_order_id")
	})
	return allocator.New(sequencerepo.NewGormSequenceRepository(c.gormDB, c.clock), location, policy, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.CreateIDAllocator(), c.clock, c.metrics)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.identity, c.clock)
}

func (c *CompositionRoot) CreateCloseOrderCommandHandler() commands.CloseOrderCommandHandler {
	return commands.NewCloseOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uoWFactory(), c.identity, c.clock)
}

func (c *CompositionRoot) CreateSubmitQuoteCommandHandler() commands.SubmitQuoteCommandHandler {
	return commands.NewSubmitQuoteCommandHandler(c.uoWFactory(), c.identity, c.clock, c.metrics)
}

func (c *CompositionRoot) CreateSelectQuoteCommandHandler() commands.SelectQuoteCommandHandler {
	return commands.NewSelectQuoteCommandHandler(
		c.uoWFactory(),
		c.identity,
		c.clock,
		c.cfg.RetryPolicy(),
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), c.publisher, c.clock, c.metrics)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListQuotesQueryHandler() queries.ListQuotesQueryHandler {
	return queries.NewListQuotesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateLowestQuoteQueryHandler() queries.LowestQuoteQueryHandler {
	return queries.NewLowestQuoteQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayOutboxCommandHandler(),
		c.cfg.OutboxRelaySchedule,
		c.cfg.OutboxRelayBatchSize,
		c.logger,
	)
}

func (c *CompositionRoot) CreateEcho() *echo.Echo {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder: c.CreateCreateOrderCommandHandler(),
		UpdateOrder: c.CreateUpdateOrderCommandHandler(),
		CloseOrder:  c.CreateCloseOrderCommandHandler(),
		CancelOrder: c.CreateCancelOrderCommandHandler(),
		SubmitQuote: c.CreateSubmitQuoteCommandHandler(),
		SelectQuote: c.CreateSelectQuoteCommandHandler(),
		GetOrder:    c.CreateGetOrderQueryHandler(),
		ListQuotes:  c.CreateListQuotesQueryHandler(),
		LowestQuote: c.CreateLowestQuoteQueryHandler(),
	}, c.logger)
	return httpin.NewEcho(server, c.metrics.Handler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
