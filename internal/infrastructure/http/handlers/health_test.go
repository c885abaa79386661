package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

func readiness(t *testing.T, h *HealthDependenciesHandler) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_OptionalDependenciesDisabled(t *testing.T) {
	code, resp := readiness(t, NewHealthDependenciesHandler(stubPinger{}, nil, nil))

	if code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("expected ok, got %d %+v", code, resp)
	}
	if resp.Dependencies["postgres"].Status != "ok" {
		t.Fatalf("unexpected postgres status: %+v", resp.Dependencies)
	}
	if resp.Dependencies["mongodb"].Status != "disabled" || resp.Dependencies["redis"].Status != "disabled" {
		t.Fatalf("optional deps must be disabled: %+v", resp.Dependencies)
	}
}

func TestReadiness_PostgresDown(t *testing.T) {
	code, resp := readiness(t, NewHealthDependenciesHandler(stubPinger{err: errors.New("connection refused")}, nil, nil))

	if code != http.StatusServiceUnavailable || resp.Status != "degraded" {
		t.Fatalf("expected degraded, got %d %+v", code, resp)
	}
	if resp.Dependencies["postgres"].Error != "connection refused" {
		t.Fatalf("missing error detail: %+v", resp.Dependencies)
	}
}

func TestReadiness_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	code, resp := readiness(t, NewHealthDependenciesHandler(stubPinger{}, nil, rdb))
	if code != http.StatusOK || resp.Dependencies["redis"].Status != "ok" {
		t.Fatalf("expected redis ok, got %d %+v", code, resp)
	}

	mr.Close()
	code, resp = readiness(t, NewHealthDependenciesHandler(stubPinger{}, nil, rdb))
	if code != http.StatusServiceUnavailable || resp.Dependencies["redis"].Status != "unhealthy" {
		t.Fatalf("expected redis unhealthy, got %d %+v", code, resp)
	}
}
