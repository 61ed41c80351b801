package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fieldservice/api"
	httpadapter "fieldservice/internal/adapters/in/http"
	"fieldservice/internal/adapters/out/kafka"
	"fieldservice/internal/adapters/out/postgres"
	"fieldservice/internal/adapters/out/postgres/historyrepo"
	"fieldservice/internal/adapters/out/routecache"
	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/jobs"
	"fieldservice/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot owns the process-wide dependencies and builds handlers
// from them. Optional infrastructure is replaced by no-op implementations:
// without Redis routes are read from the database every time, without Kafka
// the outbox only accumulates.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	routeCache ports.RouteCache
	publisher  *kafka.EventPublisher
	clock      kernel.Clock
	logger     *zap.Logger

	closers []func() error
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		routeCache: routecache.NoopRouteCache{},
		clock:      kernel.SystemClock{},
		logger:     logger,
	}

	if cfg.CacheEnabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		c.routeCache = routecache.NewRedisRouteCache(client, cfg.RouteCacheTTL)
		c.closers = append(c.closers, client.Close)
	}

	if cfg.RelayEnabled() {
		c.publisher = kafka.NewEventPublisher(cfg.KafkaBrokers, cfg.KafkaOrderEventsTopic)
		c.closers = append(c.closers, c.publisher.Close)
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB,
		metrics.CommittedEventsHook(),
		routecache.InvalidationHook(c.routeCache, logger),
	)

	return c
}

// Close releases the Redis client and the Kafka writer.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

func (c *CompositionRoot) CreateCreateTechnicianCommandHandler() commands.CreateTechnicianCommandHandler {
	var f commands.TechnicianUoWFactory = FuncTechnicianUoWFactory(func() commands.TechnicianUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateTechnicianCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateDeleteTechnicianCommandHandler() commands.DeleteTechnicianCommandHandler {
	var f commands.TechnicianUoWFactory = FuncTechnicianUoWFactory(func() commands.TechnicianUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteTechnicianCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateCreateServiceOrderCommandHandler() commands.CreateServiceOrderCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateServiceOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateUpdateServiceOrderStatusCommandHandler() commands.UpdateServiceOrderStatusCommandHandler {
	var f commands.LifecycleUoWFactory = FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateServiceOrderStatusCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateTransferServiceOrderCommandHandler() commands.TransferServiceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransferServiceOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateReorderRouteCommandHandler() commands.ReorderRouteCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReorderRouteCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateDeleteServiceOrderCommandHandler() commands.DeleteServiceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteServiceOrderCommandHandler(f, c.clock)
}

// CreateRelayOutboxCommandHandler needs a publisher; callers check
// Config.RelayEnabled first.
func (c *CompositionRoot) CreateRelayOutboxCommandHandler(publisher ports.EventPublisher) commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, publisher, c.clock)
}

func (c *CompositionRoot) CreateListTechniciansQueryHandler() queries.ListTechniciansQueryHandler {
	return queries.NewListTechniciansQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListServiceOrdersQueryHandler() queries.ListServiceOrdersQueryHandler {
	return queries.NewListServiceOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListRouteQueryHandler() queries.ListRouteQueryHandler {
	return queries.NewListRouteQueryHandler(c.gormDB, c.routeCache, c.logger)
}

func (c *CompositionRoot) CreateGetServiceOrderHistoryQueryHandler() queries.GetServiceOrderHistoryQueryHandler {
	return queries.NewGetServiceOrderHistoryQueryHandler(c.gormDB, historyrepo.NewGormHistoryRepository(c.gormDB))
}

// CreateHTTPHandlers wires every use case exposed over HTTP.
func (c *CompositionRoot) CreateHTTPHandlers() httpadapter.Handlers {
	createTechnician := c.CreateCreateTechnicianCommandHandler()
	deleteTechnician := c.CreateDeleteTechnicianCommandHandler()
	createOrder := c.CreateCreateServiceOrderCommandHandler()
	updateStatus := c.CreateUpdateServiceOrderStatusCommandHandler()
	transfer := c.CreateTransferServiceOrderCommandHandler()
	reorder := c.CreateReorderRouteCommandHandler()
	deleteOrder := c.CreateDeleteServiceOrderCommandHandler()

	return httpadapter.Handlers{
		CreateTechnician:         &createTechnician,
		DeleteTechnician:         &deleteTechnician,
		CreateServiceOrder:       &createOrder,
		UpdateServiceOrderStatus: &updateStatus,
		TransferServiceOrder:     &transfer,
		ReorderRoute:             &reorder,
		DeleteServiceOrder:       &deleteOrder,

		ListTechnicians:        c.CreateListTechniciansQueryHandler(),
		ListServiceOrders:      c.CreateListServiceOrdersQueryHandler(),
		ListRoute:              c.CreateListRouteQueryHandler(),
		GetServiceOrderHistory: c.CreateGetServiceOrderHistoryQueryHandler(),
	}
}

// CreateHTTPServer builds the HTTP server listening on Config.Addr.
func (c *CompositionRoot) CreateHTTPServer(ctx context.Context) (*http.Server, error) {
	e, err := httpadapter.NewRouter(ctx, httpadapter.NewServer(c.CreateHTTPHandlers()), api.OpenAPISpec, c.logger)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              c.cfg.Addr(),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}, nil
}

// CreateJobManager schedules the outbox relay when Kafka is configured.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	if c.publisher == nil {
		c.logger.Info("outbox relay disabled: KAFKA_BROKERS is not set")
		return jobs.NewJobManager()
	}

	relay := c.CreateRelayOutboxCommandHandler(c.publisher)
	return jobs.NewJobManager(
		jobs.NewOutboxRelayJob(&relay, c.cfg.OutboxRelayInterval, c.cfg.OutboxBatchSize, c.logger),
	)
}

type FuncTechnicianUoWFactory func() commands.TechnicianUoW

func (f FuncTechnicianUoWFactory) Create() commands.TechnicianUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
