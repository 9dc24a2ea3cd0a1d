// Package container is the dependency injection container.
//
// The container owns the lifecycle of every dependency: creation,
// access and cleanup.
//
// Pattern: Composition Root
package container

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzurek/tripdesk/internal/adapters/http"
	"github.com/mzurek/tripdesk/internal/application/ports"
	clientUC "github.com/mzurek/tripdesk/internal/application/usecases/client"
	tripUC "github.com/mzurek/tripdesk/internal/application/usecases/trip"
	"github.com/mzurek/tripdesk/internal/config"
	"github.com/mzurek/tripdesk/internal/infrastructure/persistence/postgres"
	"github.com/mzurek/tripdesk/internal/pkg/clock"
	"github.com/mzurek/tripdesk/internal/pkg/logger"
)

// ============================================
// Container
// ============================================

// Container is the application DI container.
type Container struct {
	config *config.Config
	logger *slog.Logger

	// Infrastructure
	pool *pgxpool.Pool
	clk  clock.Clock

	// Repositories
	clientRepo ports.ClientRepository
	tripRepo   ports.TripRepository

	// Unit of Work
	uow ports.UnitOfWork

	// Use Cases
	createClientUC    *clientUC.CreateClientUseCase
	listClientTripsUC *clientUC.ListClientTripsUseCase
	listTripsUC       *tripUC.ListTripsUseCase
	registerClientUC  *tripUC.RegisterClientUseCase

	// HTTP
	httpServer *http.Server
}

// New creates a container with the given configuration.
func New(cfg *config.Config) *Container {
	return &Container{
		config: cfg,
		clk:    clock.NewSystemClock(),
	}
}

// ============================================
// Initialization
// ============================================

// Initialize wires every dependency.
func (c *Container) Initialize(ctx context.Context) error {
	c.logger = c.initLogger()
	c.logger.Info("Initializing application container...")

	if err := c.initDatabase(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.logger.Info("Database connected")

	c.initRepositories()
	c.logger.Info("Repositories initialized")

	c.initUseCases()
	c.logger.Info("Use cases initialized")

	c.initHTTPServer()
	c.logger.Info("HTTP server initialized")

	c.logger.Info("Container initialization complete")
	return nil
}

func (c *Container) initLogger() *slog.Logger {
	l := logger.New(&logger.Config{
		Level:     c.config.Log.Level,
		Format:    c.config.Log.Format,
		Output:    os.Stdout,
		AddSource: c.config.App.Debug,
	})
	slog.SetDefault(l)
	return l
}

func (c *Container) initDatabase(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(c.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = c.config.Database.MaxConnections
	poolConfig.MinConns = c.config.Database.MinConnections
	poolConfig.MaxConnLifetime = c.config.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = c.config.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.pool = pool
	return nil
}

func (c *Container) initRepositories() {
	c.clientRepo = postgres.NewClientRepository(c.pool)
	c.tripRepo = postgres.NewTripRepository(c.pool)
	c.uow = postgres.NewUnitOfWork(c.pool)
}

func (c *Container) initUseCases() {
	c.createClientUC = clientUC.NewCreateClientUseCase(c.clientRepo, c.uow)
	c.listClientTripsUC = clientUC.NewListClientTripsUseCase(c.clientRepo)
	c.listTripsUC = tripUC.NewListTripsUseCase(c.tripRepo)
	c.registerClientUC = tripUC.NewRegisterClientUseCase(c.clientRepo, c.tripRepo, c.clk, c.uow)
}

func (c *Container) initHTTPServer() {
	routerConfig := &http.RouterConfig{
		Logger:         c.logger,
		Pool:           c.pool,
		Version:        c.config.App.Version,
		BuildTime:      c.config.App.BuildTime,
		Environment:    c.config.App.Environment,
		AllowedOrigins: c.config.CORS.AllowedOrigins,
	}

	router := http.NewRouterBuilder(routerConfig).
		WithClientUseCases(&http.ClientUseCases{
			CreateClient:    c.createClientUC,
			ListClientTrips: c.listClientTripsUC,
		}).
		WithTripUseCases(&http.TripUseCases{
			ListTrips:      c.listTripsUC,
			RegisterClient: c.registerClientUC,
		}).
		Build()

	serverConfig := &http.ServerConfig{
		Host:            c.config.Server.Host,
		Port:            fmt.Sprintf("%d", c.config.Server.Port),
		ReadTimeout:     c.config.Server.ReadTimeout,
		WriteTimeout:    c.config.Server.WriteTimeout,
		IdleTimeout:     c.config.Server.IdleTimeout,
		ShutdownTimeout: c.config.Server.ShutdownTimeout,
		Logger:          c.logger,
	}

	c.httpServer = http.NewServer(serverConfig, router)
}

// ============================================
// Getters
// ============================================

// Config returns the configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Pool returns the database connection pool.
func (c *Container) Pool() *pgxpool.Pool {
	return c.pool
}

// HTTPServer returns the HTTP server.
func (c *Container) HTTPServer() *http.Server {
	return c.httpServer
}

// ClientRepository returns the client repository.
func (c *Container) ClientRepository() ports.ClientRepository {
	return c.clientRepo
}

// TripRepository returns the trip repository.
func (c *Container) TripRepository() ports.TripRepository {
	return c.tripRepo
}

// UnitOfWork returns the unit of work.
func (c *Container) UnitOfWork() ports.UnitOfWork {
	return c.uow
}

// ============================================
// Shutdown
// ============================================

// Shutdown stops every component gracefully.
func (c *Container) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down container...")

	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		}
	}

	if c.pool != nil {
		// pool.Close blocks until acquired connections are released,
		// so bound it with the shutdown context.
		done := make(chan struct{})
		go func() {
			c.pool.Close()
			close(done)
		}()

		select {
		case <-done:
			c.logger.Info("Database connection closed")
		case <-ctx.Done():
			c.logger.Warn("Database close timeout")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	c.logger.Info("Container shutdown complete")
	return nil
}

// ============================================
// Run
// ============================================

// Run starts the application and blocks until a shutdown signal.
func (c *Container) Run() error {
	c.logger.Info("Starting TripDesk API Server",
		slog.String("version", c.config.App.Version),
		slog.String("environment", c.config.App.Environment),
		slog.String("address", c.config.Server.Address()),
	)

	return c.httpServer.Run()
}
