// Package server wires the Fiber apps for the REST and GraphQL services.
package server

import (
	"github.com/whoismarios/sa-gateway-demo/internal/config"
	gql "github.com/whoismarios/sa-gateway-demo/internal/graphql"
	"github.com/whoismarios/sa-gateway-demo/internal/middleware"
	"github.com/whoismarios/sa-gateway-demo/internal/repository"
	"github.com/whoismarios/sa-gateway-demo/internal/seed"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server holds the shared dependencies of both query layers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	init           *seed.Initializer
	userRepo       repository.UserRepository
	orderRepo      repository.OrderRepository
	promMiddleware *fiberprometheus.FiberPrometheus
}

// NewServer creates a server bound to an already-connected database.
func NewServer(cfg *config.Config, db *gorm.DB, serviceName string) *Server {
	return &Server{
		config:         cfg,
		db:             db,
		init:           seed.NewInitializer(db),
		userRepo:       repository.NewUserRepository(db),
		orderRepo:      repository.NewOrderRepository(db),
		promMiddleware: middleware.InitMetrics(serviceName),
	}
}

// SetupMiddleware configures the shared middleware stack for a Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery: a failing request must never take the process down.
	app.Use(recover.New())

	// Request ID for log correlation
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Structured logging after requestid/context so the id is attached
	app.Use(middleware.StructuredLogger())

	// CORS is open to every origin and method; the comparison UI is served
	// from an arbitrary dev port.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
		AllowHeaders: "Origin, X-Requested-With, Content-Type, Accept, Authorization",
	}))
}

// SetupRESTRoutes registers the REST query layer endpoints.
func (s *Server) SetupRESTRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/hello", s.GetHello)
	api.Get("/orders/:userId", s.GetOrdersByUser)
}

// SetupGraphQLRoutes registers the GraphQL endpoint on its own app.
func (s *Server) SetupGraphQLRoutes(app *fiber.App, schema *gql.Schema) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Post("/graphql", schema.Handler())
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the store is reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
