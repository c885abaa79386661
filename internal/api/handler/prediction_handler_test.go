package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

func TestPredictionHandler_List_ParsesFilters(t *testing.T) {
	stub := &stubPredictionService{
		listFn: func(ctx context.Context, f ports.ListPredictionsFilter) (*pagination.Page[*domain.Prediction], error) {
			if f.UserID == nil || *f.UserID != 3 || f.TextID == nil || *f.TextID != 4 {
				t.Fatalf("ids not parsed: %+v", f)
			}
			if f.MinProbability == nil || *f.MinProbability != 0.75 || f.Result != "Pos" {
				t.Fatalf("filters not parsed: %+v", f)
			}
			items := []*domain.Prediction{{ID: 1, UserID: int64Ptr(3), TextID: int64Ptr(4), Result: "Positivo", Probability: 0.9}}
			return pagination.New(items, f.PageNumber, f.PageSize), nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/v1/predictions?pageNumber=1&pageSize=10&userId=3&textId=4&result=Pos&minProbability=0.75", "")

	if err := NewPredictionHandler(stub, nil).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Data []predictionResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || *resp.Data[0].UserID != 3 {
		t.Fatalf("unexpected data: %s", rec.Body.String())
	}
}

func TestPredictionHandler_Predict(t *testing.T) {
	stub := &stubClassificationService{
		predictFn: func(ctx context.Context, in ports.PredictInput) (*domain.Prediction, error) {
			if in.TextID != 12 || in.IdempotencyKey != "abc-123" || in.RequestID != "req-1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Prediction{ID: 5, TextID: int64Ptr(12), Result: "Positivo", Probability: 0.8, Date: time.Now()}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/", "")
	c.SetParamNames("textId")
	c.SetParamValues("12")
	c.Request().Header.Set(HeaderIdempotencyKey, " abc-123 ")
	c.Response().Header().Set(echo.HeaderXRequestID, "req-1")

	if err := NewPredictionHandler(nil, stub).Predict(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "text 12 classified as Positivo") {
		t.Fatalf("missing message: %s", rec.Body.String())
	}
}

func TestPredictionHandler_Predict_KeyTooLong(t *testing.T) {
	stub := &stubClassificationService{
		predictFn: func(ctx context.Context, in ports.PredictInput) (*domain.Prediction, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newContext(http.MethodPost, "/", "")
	c.SetParamNames("textId")
	c.SetParamValues("1")
	c.Request().Header.Set(HeaderIdempotencyKey, strings.Repeat("k", maxIdempotencyKeyLength+1))

	err := NewPredictionHandler(nil, stub).Predict(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestPredictionHandler_Stats(t *testing.T) {
	trained := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	stub := &stubClassificationService{
		statsFn: func(ctx context.Context) (*domain.ModelStats, error) {
			return &domain.ModelStats{
				TotalPredictions:   3,
				AverageProbability: 0.7,
				Categories:         []domain.CategoryStats{{Name: "Positivo", Count: 2, AverageProbability: 0.8}},
				LastTrainedAt:      &trained,
				ModelVersion:       "v1",
			}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/", "")

	if err := NewPredictionHandler(nil, stub).Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Data statsResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data.TotalPredictions != 3 || len(resp.Data.Categories) != 1 || !resp.Data.LastTrainedAt.Equal(trained) {
		t.Fatalf("unexpected stats: %+v", resp.Data)
	}
}

func TestPredictionHandler_Retrain(t *testing.T) {
	called := false
	stub := &stubClassificationService{
		retrainFn: func(ctx context.Context) error {
			called = true
			return nil
		},
	}
	c, rec := newContext(http.MethodPost, "/", "")

	if err := NewPredictionHandler(nil, stub).Retrain(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 after enqueue, got %d (called=%v)", rec.Code, called)
	}
}

func TestPredictionHandler_GetAndDelete(t *testing.T) {
	stub := &stubPredictionService{
		getFn: func(ctx context.Context, id int64) (*domain.Prediction, error) {
			return &domain.Prediction{ID: id, Result: "Negativo"}, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			return domain.NewNotFoundError("prediction", id)
		},
	}
	h := NewPredictionHandler(stub, nil)

	c, rec := newContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := h.Get(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("get: %v %d", err, rec.Code)
	}

	c, _ = newContext(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := h.Delete(c); domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
