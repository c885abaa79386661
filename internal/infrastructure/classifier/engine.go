// Package classifier provides the text classification model behind the
// ports.Classifier port: a local naive Bayes engine that trains from stored
// predictions, and an optional OpenAI-backed classifier.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api/metrics"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

const (
	SourcePredictions = "predictions"
	SourceFallback    = "fallback"

	backendNaiveBayes = "naive_bayes"
)

// ErrModelNotLoaded is returned by Classify before EnsureModel or Retrain succeeded.
var ErrModelNotLoaded = errors.New("classification model not loaded")

// fallbackExamples seed the model when no prediction has been stored yet.
var fallbackExamples = []domain.TrainingExample{
	{Text: "El día está hermoso", Label: "Positivo"},
	{Text: "Odio este clima", Label: "Negativo"},
	{Text: "Amo mi trabajo", Label: "Positivo"},
	{Text: "Estoy cansado del tráfico", Label: "Negativo"},
	{Text: "Excelente servicio al cliente", Label: "Positivo"},
	{Text: "Pésima experiencia", Label: "Negativo"},
}

// Engine implements ports.Classifier and ports.ModelTrainer. The loaded
// model is swapped atomically on retrain.
type Engine struct {
	store  ports.ModelStore
	source ports.TrainingSource
	log    zerolog.Logger

	// trainMu serializes fits so two retrains never race on the store.
	trainMu sync.Mutex

	mu    sync.RWMutex
	model *model
}

var (
	_ ports.Classifier   = (*Engine)(nil)
	_ ports.ModelTrainer = (*Engine)(nil)
)

func NewEngine(store ports.ModelStore, source ports.TrainingSource, log zerolog.Logger) *Engine {
	return &Engine{store: store, source: source, log: log}
}

// EnsureModel loads the stored artifact. A missing or unreadable artifact
// triggers a full retrain.
func (e *Engine) EnsureModel(ctx context.Context) error {
	data, modTime, err := e.store.Load(ctx)
	switch {
	case errors.Is(err, ports.ErrModelNotFound):
		e.log.Info().Msg("no stored model, training a new one")
	case err != nil:
		return fmt.Errorf("load model: %w", err)
	default:
		m, decodeErr := decodeModel(data)
		if decodeErr == nil {
			m.TrainedAt = modTime
			e.swap(m)
			e.log.Info().Str("version", m.Version).Int("examples", m.Examples).Msg("model loaded")
			return nil
		}
		e.log.Warn().Err(decodeErr).Msg("stored model is unreadable, retraining")
	}

	_, err = e.Retrain(ctx)
	return err
}

// Retrain fits a new model from scratch, persists it and loads it. When the
// source fails or is empty the built-in examples are used instead.
func (e *Engine) Retrain(ctx context.Context) (ports.ModelInfo, error) {
	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	examples, err := e.source.TrainingExamples(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("training examples unavailable, using the built-in examples")
		examples = nil
	}
	source := SourcePredictions
	if len(examples) == 0 {
		examples, source = fallbackExamples, SourceFallback
	}

	m, err := fit(examples)
	if err != nil {
		return ports.ModelInfo{}, fmt.Errorf("fit model: %w", err)
	}
	m.Version = uuid.NewString()
	m.TrainedAt = time.Now().UTC()
	m.Source = source

	data, err := encodeModel(m)
	if err != nil {
		return ports.ModelInfo{}, err
	}
	if err := e.store.Save(ctx, data); err != nil {
		return ports.ModelInfo{}, fmt.Errorf("save model: %w", err)
	}

	e.swap(m)
	metrics.TrainingsTotal.WithLabelValues(source).Inc()

	e.log.Info().
		Str("version", m.Version).
		Str("source", source).
		Int("examples", m.Examples).
		Strs("labels", m.Labels).
		Msg("model trained")
	return infoOf(m), nil
}

func (e *Engine) swap(m *model) {
	e.mu.Lock()
	e.model = m
	e.mu.Unlock()
	metrics.TrainingExamples.Set(float64(m.Examples))
}

func (e *Engine) Classify(_ context.Context, text string) (ports.Classification, error) {
	e.mu.RLock()
	m := e.model
	e.mu.RUnlock()
	if m == nil {
		return ports.Classification{}, ErrModelNotLoaded
	}

	start := time.Now()
	label, score := m.predict(text)
	metrics.ClassificationDuration.WithLabelValues(backendNaiveBayes).Observe(time.Since(start).Seconds())

	return ports.Classification{Label: label, Score: score, ModelVersion: m.Version}, nil
}

func (e *Engine) Info() (ports.ModelInfo, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.model == nil {
		return ports.ModelInfo{}, false
	}
	return infoOf(e.model), true
}

// Labels returns the label set of the loaded model.
func (e *Engine) Labels() []string {
	info, _ := e.Info()
	return info.Labels
}

func infoOf(m *model) ports.ModelInfo {
	labels := make([]string, len(m.Labels))
	copy(labels, m.Labels)
	return ports.ModelInfo{
		Version:   m.Version,
		TrainedAt: m.TrainedAt,
		Examples:  m.Examples,
		Source:    m.Source,
		Labels:    labels,
	}
}
