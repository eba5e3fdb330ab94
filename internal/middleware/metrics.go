package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SeedRuns counts initializer invocations by outcome. "seeded" means rows
	// were actually inserted, "noop" means the count guard found data.
	SeedRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_seed_runs_total",
		Help: "Total schema/seed initializer runs by outcome",
	}, []string{"outcome"})

	// GraphQLQueries counts executed root queries by field name.
	GraphQLQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_graphql_queries_total",
		Help: "Total GraphQL root query executions by field",
	}, []string{"field"})
)

// InitMetrics creates the Prometheus middleware for a service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-instrumentation handler for the given
// Prometheus middleware instance.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
