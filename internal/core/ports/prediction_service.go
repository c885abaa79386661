package ports

import (
	"context"
	"time"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
)

// ListPredictionsFilter carries the optional filters of the prediction list.
type ListPredictionsFilter struct {
	UserID         *int64
	TextID         *int64
	Result         string // substring of the result label
	MinProbability *float64
	FromDate       *time.Time
	PageNumber     int
	PageSize       int
}

type PredictionService interface {
	List(ctx context.Context, filter ListPredictionsFilter) (*pagination.Page[*domain.Prediction], error)
	Get(ctx context.Context, id int64) (*domain.Prediction, error)
	Delete(ctx context.Context, id int64) error
}

// PredictInput identifies the text to classify. IdempotencyKey and
// RequestID are optional.
type PredictInput struct {
	TextID         int64
	IdempotencyKey string
	RequestID      string
}

// ClassificationService turns stored texts into persisted predictions and
// manages the model lifecycle.
type ClassificationService interface {
	Predict(ctx context.Context, input PredictInput) (*domain.Prediction, error)
	Stats(ctx context.Context) (*domain.ModelStats, error)
	RequestRetrain(ctx context.Context) error
}
