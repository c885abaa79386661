package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const readinessTimeout = 3 * time.Second

// HealthHandler handles GET /health, the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type dependency struct {
	name string
	ping func(ctx context.Context) error
}

// HealthDependenciesHandler handles GET /health/ready, the readiness probe.
// PostgreSQL is required. MongoDB and Redis are checked only when configured.
type HealthDependenciesHandler struct {
	deps     []dependency
	disabled []string
}

// NewHealthDependenciesHandler builds the probe. A nil mongo database or
// redis client is reported as disabled and does not affect readiness.
func NewHealthDependenciesHandler(pg Pinger, db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	h := &HealthDependenciesHandler{}
	h.deps = append(h.deps, dependency{name: "postgres", ping: pg.Ping})

	if db != nil {
		h.deps = append(h.deps, dependency{name: "mongodb", ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, readpref.Primary())
		}})
	} else {
		h.disabled = append(h.disabled, "mongodb")
	}

	if rdb != nil {
		h.deps = append(h.deps, dependency{name: "redis", ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	} else {
		h.disabled = append(h.disabled, "redis")
	}
	return h
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness pings every configured dependency.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.deps)+len(h.disabled))
	healthy := true

	for _, d := range h.deps {
		if err := d.ping(ctx); err != nil {
			deps[d.name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[d.name] = dependencyStatus{Status: "ok"}
	}
	for _, name := range h.disabled {
		deps[name] = dependencyStatus{Status: "disabled"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
