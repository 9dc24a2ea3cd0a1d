// Package http wires routes, handlers and middleware into the REST API
// entrypoint.
//
// Pattern: Composition Root
// - all HTTP dependencies come together here
// - handlers receive only the use cases they need
// - middleware applies per route group
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mzurek/tripdesk/internal/adapters/http/common"
	"github.com/mzurek/tripdesk/internal/adapters/http/handlers"
	"github.com/mzurek/tripdesk/internal/adapters/http/middleware"
)

// ============================================
// Router Configuration
// ============================================

// RouterConfig configures the router.
type RouterConfig struct {
	Logger         *slog.Logger
	Pool           *pgxpool.Pool // for health checks
	Version        string
	BuildTime      string
	Environment    string // development, staging, production
	AllowedOrigins []string
}

// DefaultRouterConfig is the development default.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Logger:         slog.Default(),
		Version:        "dev",
		BuildTime:      "unknown",
		Environment:    "development",
		AllowedOrigins: []string{"*"},
	}
}

// ============================================
// Use Case Providers
// ============================================

// ClientUseCases groups the client-side use cases.
type ClientUseCases struct {
	CreateClient    handlers.CreateClientUseCase
	ListClientTrips handlers.ListClientTripsUseCase
}

// TripUseCases groups the trip-side use cases.
type TripUseCases struct {
	ListTrips      handlers.ListTripsUseCase
	RegisterClient handlers.RegisterClientUseCase
}

// ============================================
// Router Builder
// ============================================

// RouterBuilder assembles the gin engine step by step.
type RouterBuilder struct {
	config  *RouterConfig
	clients *ClientUseCases
	trips   *TripUseCases
}

// NewRouterBuilder creates a new builder.
func NewRouterBuilder(config *RouterConfig) *RouterBuilder {
	if config == nil {
		config = DefaultRouterConfig()
	}
	return &RouterBuilder{
		config: config,
	}
}

// WithClientUseCases adds the client use cases.
func (b *RouterBuilder) WithClientUseCases(useCases *ClientUseCases) *RouterBuilder {
	b.clients = useCases
	return b
}

// WithTripUseCases adds the trip use cases.
func (b *RouterBuilder) WithTripUseCases(useCases *TripUseCases) *RouterBuilder {
	b.trips = useCases
	return b
}

// Build creates the configured gin engine.
func (b *RouterBuilder) Build() *gin.Engine {
	if b.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	handlers.SetupValidator()

	// ============================================
	// Global Middleware
	// ============================================

	// Recovery goes first so it wraps everything below.
	router.Use(middleware.Recovery(&middleware.RecoveryConfig{
		Logger:           b.config.Logger,
		EnableStackTrace: b.config.Environment != "production",
	}))

	router.Use(middleware.RequestID())

	if b.config.Environment == "production" {
		router.Use(middleware.CORS(middleware.ProductionCORSConfig(b.config.AllowedOrigins)))
	} else {
		router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	}

	router.Use(middleware.Logging(&middleware.LoggingConfig{
		Logger:    b.config.Logger,
		SkipPaths: []string{"/health", "/live", "/ready", "/metrics"},
	}))

	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))

	router.Use(middleware.Metrics())

	// ============================================
	// Metrics Endpoint
	// ============================================

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ============================================
	// Health Check Routes
	// ============================================

	healthHandler := handlers.NewHealthHandler(
		b.config.Pool,
		b.config.Version,
		b.config.BuildTime,
	)
	healthHandler.RegisterRoutes(router)

	// ============================================
	// API Routes
	// ============================================

	api := router.Group("/api")
	{
		if b.trips != nil {
			tripHandler := handlers.NewTripHandler(
				b.trips.ListTrips,
				b.trips.RegisterClient,
			)
			api.GET("/trips", tripHandler.ListTrips)

			if b.clients != nil {
				// Registration mutates trip state, so it gets the
				// stricter per-endpoint limit.
				registrations := api.Group("")
				registrations.Use(middleware.WriteEndpointRateLimit())
				registrations.PUT("/clients/:clientId/trips/:tripId", tripHandler.RegisterClient)
			}
		}

		if b.clients != nil {
			clientHandler := handlers.NewClientHandler(
				b.clients.CreateClient,
				b.clients.ListClientTrips,
			)
			api.POST("/clients", clientHandler.CreateClient)
			api.GET("/clients/:clientId/trips", clientHandler.ListClientTrips)
		}
	}

	// ============================================
	// 404 Handler
	// ============================================

	router.NoRoute(func(c *gin.Context) {
		common.Error(c, 404, &common.APIError{
			Code:    common.ErrCodeNotFound,
			Message: "Endpoint not found",
			Details: map[string]interface{}{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			},
		})
	})

	return router
}

// NewRouter creates a router from a config in one call.
func NewRouter(config *RouterConfig) *gin.Engine {
	return NewRouterBuilder(config).Build()
}
