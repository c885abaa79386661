package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/CosimoLM/InteligenciaArtificialV3/docs"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api/handler"
	apimiddleware "github.com/CosimoLM/InteligenciaArtificialV3/internal/api/middleware"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/infrastructure/http/handlers"
)

// Config holds what the router needs besides the API services.
type Config struct {
	Log zerolog.Logger
	// Development exposes internal error details in 500 responses.
	Development bool
	JWTSecret   string

	Postgres handlers.Pinger
	Mongo    *mongo.Database // optional
	Redis    *redis.Client   // optional

	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds the Echo instance with probes, metrics, docs and the API.
func NewRouter(cfg Config, svc api.Services) *echo.Echo {
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(cfg.Log, cfg.Development)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(apimiddleware.RequestLogger(cfg.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "textapi",
		Registerer: cfg.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(cfg.Postgres, cfg.Mongo, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: cfg.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api.RegisterRoutes(e, svc, cfg.JWTSecret)

	return e
}
