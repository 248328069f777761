package cmd

import (
	"log/slog"

	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/in/ws"
	"orderflow/internal/adapters/out/auth"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/jobs"
	"orderflow/internal/notifications"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *notifications.Registry
	dispatcher *notifications.Dispatcher
	verifier   *auth.JWTVerifier
	policy     services.EligibilityPolicy
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	verifier, err := auth.NewJWTVerifier(config.JWTSecret)
	if err != nil {
		return CompositionRoot{}, err
	}

	policy := services.NewEligibilityPolicy()
	registry := notifications.NewRegistry()
	dispatcher := notifications.NewDispatcher(registry, policy, config.DispatchTimeout, logger)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		dispatcher: dispatcher,
		verifier:   verifier,
		policy:     policy,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateGetStaleCreatedOrdersQueryHandler() queries.GetStaleCreatedOrdersQueryHandler {
	return queries.NewGetStaleCreatedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.verifier,
	)
}

func (c *CompositionRoot) CreateWSGateway() *ws.Gateway {
	return ws.NewGateway(c.registry, c.verifier, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetStaleCreatedOrdersQueryHandler(),
		c.registry,
		c.config.ReminderAge,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
