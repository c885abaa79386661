package handler

import (
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		TextCount: u.TextCount,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func toTextResponse(t *domain.Text) textResponse {
	return textResponse{
		ID:          t.ID,
		Content:     t.Content,
		UserID:      t.UserID,
		SubmittedAt: t.SubmittedAt.UTC(),
	}
}

func toPredictionResponse(p *domain.Prediction) predictionResponse {
	return predictionResponse{
		ID:          p.ID,
		TextID:      p.TextID,
		UserID:      p.UserID,
		Result:      p.Result,
		Probability: p.Probability,
		Date:        p.Date.UTC(),
	}
}

func toSecurityResponse(s *domain.Security) securityResponse {
	return securityResponse{
		ID:     s.ID,
		Login:  s.Login,
		Name:   s.Name,
		Role:   s.Role,
		UserID: s.UserID,
	}
}

func toStatsResponse(s *domain.ModelStats) statsResponse {
	cats := make([]categoryResponse, len(s.Categories))
	for i, c := range s.Categories {
		cats[i] = categoryResponse{Name: c.Name, Count: c.Count, AverageProbability: c.AverageProbability}
	}
	return statsResponse{
		TotalPredictions:   s.TotalPredictions,
		AverageProbability: s.AverageProbability,
		Categories:         cats,
		LastTrainedAt:      s.LastTrainedAt,
		ModelVersion:       s.ModelVersion,
	}
}
