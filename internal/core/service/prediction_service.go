package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

type predictionService struct {
	uows ports.UnitOfWorkFactory
	log  zerolog.Logger
}

func NewPredictionService(uows ports.UnitOfWorkFactory, log zerolog.Logger) ports.PredictionService {
	return &predictionService{uows: uows, log: log}
}

func (s *predictionService) List(ctx context.Context, f ports.ListPredictionsFilter) (*pagination.Page[*domain.Prediction], error) {
	predictions, err := s.uows.New().Predictions().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}

	var minProbability pagination.Predicate[*domain.Prediction]
	if f.MinProbability != nil {
		threshold := *f.MinProbability
		minProbability = func(p *domain.Prediction) bool { return p.Probability >= threshold }
	}

	matched := pagination.Filter(predictions,
		equalsID(f.UserID, func(p *domain.Prediction) *int64 { return p.UserID }),
		equalsID(f.TextID, func(p *domain.Prediction) *int64 { return p.TextID }),
		containsFold(f.Result, func(p *domain.Prediction) string { return p.Result }),
		minProbability,
		notBefore(f.FromDate, func(p *domain.Prediction) time.Time { return p.Date }),
	)
	return pagination.New(matched, f.PageNumber, f.PageSize), nil
}

func (s *predictionService) Get(ctx context.Context, id int64) (*domain.Prediction, error) {
	return s.uows.New().Predictions().GetByID(ctx, id)
}

func (s *predictionService) Delete(ctx context.Context, id int64) error {
	uow := s.uows.New()
	if _, err := uow.Predictions().GetByID(ctx, id); err != nil {
		return err
	}

	uow.Predictions().Delete(id)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return fmt.Errorf("delete prediction: %w", err)
	}
	return nil
}
