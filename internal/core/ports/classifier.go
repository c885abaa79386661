package ports

import (
	"context"
	"errors"
	"time"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

// ErrModelNotFound is returned by a ModelStore that holds no artifact yet.
var ErrModelNotFound = errors.New("model artifact not found")

// Classification is the answer of a Classifier for one text.
type Classification struct {
	Label        string
	Score        float64
	ModelVersion string
}

// Classifier scores a text. Implementations are opaque to the services.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// ModelInfo describes the model currently loaded by a ModelTrainer.
type ModelInfo struct {
	Version   string
	TrainedAt time.Time
	Examples  int
	Source    string
	Labels    []string
}

// ModelTrainer fits a new model from scratch and reports the loaded one.
type ModelTrainer interface {
	Retrain(ctx context.Context) (ModelInfo, error)
	Info() (ModelInfo, bool)
}

// TrainingSource yields labelled examples from persisted data.
type TrainingSource interface {
	TrainingExamples(ctx context.Context) ([]domain.TrainingExample, error)
}

// ModelStore persists serialized model artifacts.
type ModelStore interface {
	// Load returns the artifact and its last modification time, or
	// ErrModelNotFound.
	Load(ctx context.Context) ([]byte, time.Time, error)
	Save(ctx context.Context, data []byte) error
}

// RetrainQueue schedules a background retrain. Enqueue reports false when a
// retrain is already pending.
type RetrainQueue interface {
	Enqueue(reason string) bool
}
