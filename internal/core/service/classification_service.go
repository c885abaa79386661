package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api/metrics"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

const auditTimeout = 5 * time.Second

// ClassificationDeps groups the collaborators of the classification service.
// Idempotency, Auditor and Retrains are optional.
type ClassificationDeps struct {
	UnitOfWork  ports.UnitOfWorkFactory
	Classifier  ports.Classifier
	Trainer     ports.ModelTrainer
	Retrains    ports.RetrainQueue
	Idempotency ports.IdempotencyStore
	Auditor     ports.PredictionAuditor
}

type classificationService struct {
	deps ClassificationDeps
	log  zerolog.Logger
	now  func() time.Time
}

func NewClassificationService(deps ClassificationDeps, log zerolog.Logger) ports.ClassificationService {
	return &classificationService{deps: deps, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Predict classifies a stored text and persists the outcome. A replayed
// idempotency key returns the prediction it produced the first time, and
// only for the same text.
func (s *classificationService) Predict(ctx context.Context, in ports.PredictInput) (*domain.Prediction, error) {
	uow := s.deps.UnitOfWork.New()

	if existing := s.replay(ctx, uow, in.IdempotencyKey); existing != nil {
		if existing.TextID == nil || *existing.TextID != in.TextID {
			metrics.PredictionErrorsTotal.WithLabelValues("idempotency_conflict").Inc()
			return nil, domain.NewBusinessError("idempotency key %q was already used for a different text", in.IdempotencyKey)
		}
		return existing, nil
	}

	text, err := uow.Texts().GetByID(ctx, in.TextID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.PredictionErrorsTotal.WithLabelValues("text_not_found").Inc()
		}
		return nil, err
	}

	start := time.Now()
	result, err := s.deps.Classifier.Classify(ctx, text.Content)
	if err != nil {
		metrics.PredictionErrorsTotal.WithLabelValues("classify_failed").Inc()
		return nil, fmt.Errorf("classify text %d: %w", text.ID, err)
	}
	latency := time.Since(start)

	textID, userID := text.ID, text.UserID
	prediction := &domain.Prediction{
		TextID:      &textID,
		UserID:      &userID,
		Result:      result.Label,
		Probability: result.Score,
		Date:        s.now(),
	}
	uow.Predictions().Add(prediction)
	if _, err := uow.SaveChanges(ctx); err != nil {
		metrics.PredictionErrorsTotal.WithLabelValues("save_failed").Inc()
		return nil, fmt.Errorf("save prediction: %w", err)
	}
	metrics.PredictionsTotal.WithLabelValues(prediction.Result).Inc()

	if in.IdempotencyKey != "" && s.deps.Idempotency != nil {
		if err := s.deps.Idempotency.Remember(ctx, in.IdempotencyKey, prediction.ID); err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.audit(domain.PredictionAudit{
		PredictionID: prediction.ID,
		TextID:       textID,
		UserID:       userID,
		Label:        result.Label,
		Probability:  result.Score,
		ModelVersion: result.ModelVersion,
		Latency:      latency,
		RequestID:    in.RequestID,
		CreatedAt:    prediction.Date,
	})

	s.log.Info().
		Int64("prediction_id", prediction.ID).
		Int64("text_id", textID).
		Str("label", prediction.Result).
		Float64("probability", prediction.Probability).
		Msg("text classified")
	return prediction, nil
}

// replay returns the prediction stored under key, or nil when the key is
// unknown, the store is unavailable, or the prediction no longer exists.
func (s *classificationService) replay(ctx context.Context, uow ports.UnitOfWork, key string) *domain.Prediction {
	if key == "" || s.deps.Idempotency == nil {
		return nil
	}

	id, found, err := s.deps.Idempotency.Lookup(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, classifying anyway")
		return nil
	}
	if !found {
		metrics.IdempotencyTotal.WithLabelValues("miss").Inc()
		return nil
	}

	prediction, err := uow.Predictions().GetByID(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Int64("prediction_id", id).Msg("idempotent prediction unavailable, classifying again")
		metrics.IdempotencyTotal.WithLabelValues("miss").Inc()
		return nil
	}

	metrics.IdempotencyTotal.WithLabelValues("hit").Inc()
	s.log.Info().Str("idempotency_key", key).Int64("prediction_id", id).Msg("idempotent replay")
	return prediction
}

func (s *classificationService) audit(rec domain.PredictionAudit) {
	if s.deps.Auditor == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		if err := s.deps.Auditor.Record(ctx, rec); err != nil {
			s.log.Warn().Err(err).Int64("prediction_id", rec.PredictionID).Msg("failed to record prediction audit")
		}
	}()
}

// Stats aggregates every stored prediction. Categories are ordered by count,
// then by name.
func (s *classificationService) Stats(ctx context.Context) (*domain.ModelStats, error) {
	predictions, err := s.deps.UnitOfWork.New().Predictions().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("prediction stats: %w", err)
	}

	stats := &domain.ModelStats{TotalPredictions: len(predictions), Categories: []domain.CategoryStats{}}

	type bucket struct {
		count int
		sum   float64
	}
	buckets := make(map[string]*bucket)
	var total float64
	for _, p := range predictions {
		total += p.Probability
		name := p.Result
		if name == "" {
			name = domain.UncategorizedLabel
		}
		b, ok := buckets[name]
		if !ok {
			b = &bucket{}
			buckets[name] = b
		}
		b.count++
		b.sum += p.Probability
	}
	if len(predictions) > 0 {
		stats.AverageProbability = total / float64(len(predictions))
	}

	for name, b := range buckets {
		stats.Categories = append(stats.Categories, domain.CategoryStats{
			Name:               name,
			Count:              b.count,
			AverageProbability: b.sum / float64(b.count),
		})
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		ci, cj := stats.Categories[i], stats.Categories[j]
		if ci.Count != cj.Count {
			return ci.Count > cj.Count
		}
		return ci.Name < cj.Name
	})

	if s.deps.Trainer != nil {
		if info, ok := s.deps.Trainer.Info(); ok {
			trainedAt := info.TrainedAt
			stats.LastTrainedAt = &trainedAt
			stats.ModelVersion = info.Version
		}
	}
	return stats, nil
}

// RequestRetrain schedules a background retrain. A request made while
// another one is pending is absorbed by it.
func (s *classificationService) RequestRetrain(_ context.Context) error {
	if s.deps.Retrains == nil {
		return domain.NewBusinessError("model retraining is not available")
	}
	if !s.deps.Retrains.Enqueue("api") {
		s.log.Info().Msg("retrain already pending")
	}
	return nil
}
