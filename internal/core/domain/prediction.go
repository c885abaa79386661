package domain

import "time"

const (
	// DefaultLabel is used for training pairs whose prediction has no result.
	DefaultLabel = "Neutral"
	// UncategorizedLabel groups predictions without result in statistics.
	UncategorizedLabel = "Sin categoría"
)

// Prediction is the persisted outcome of classifying a text.
type Prediction struct {
	ID          int64     `json:"id"`
	TextID      *int64    `json:"textId,omitempty"`
	UserID      *int64    `json:"userId,omitempty"`
	Result      string    `json:"result"`
	Probability float64   `json:"probability"`
	Date        time.Time `json:"date"`
}

// TrainingExample is a labelled text used to fit the classifier.
type TrainingExample struct {
	Text  string
	Label string
}

// CategoryStats aggregates predictions sharing one result label.
type CategoryStats struct {
	Name               string  `json:"name"`
	Count              int     `json:"count"`
	AverageProbability float64 `json:"averageProbability"`
}

// ModelStats summarises the prediction history and the current model.
type ModelStats struct {
	TotalPredictions   int             `json:"totalPredictions"`
	AverageProbability float64         `json:"averageProbability"`
	Categories         []CategoryStats `json:"categories"`
	LastTrainedAt      *time.Time      `json:"lastTrainedAt,omitempty"`
	ModelVersion       string          `json:"modelVersion,omitempty"`
}

// PredictionAudit is the record written for every classification.
type PredictionAudit struct {
	PredictionID int64
	TextID       int64
	UserID       int64
	Label        string
	Probability  float64
	ModelVersion string
	Latency      time.Duration
	RequestID    string
	CreatedAt    time.Time
}
