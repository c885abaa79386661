package ports

import (
	"context"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

type PredictionRepository interface {
	GetAll(ctx context.Context) ([]*domain.Prediction, error)
	GetByID(ctx context.Context, id int64) (*domain.Prediction, error)
	// TrainingExamples joins predictions with their texts; a prediction
	// without result is labelled domain.DefaultLabel.
	TrainingExamples(ctx context.Context) ([]domain.TrainingExample, error)
	Add(prediction *domain.Prediction)
	Delete(id int64)
	// DeleteByText removes every prediction that references textID.
	DeleteByText(textID int64)
}
