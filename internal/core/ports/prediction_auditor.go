package ports

import (
	"context"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

// PredictionAuditor keeps an append-only trail of classifications.
type PredictionAuditor interface {
	Record(ctx context.Context, audit domain.PredictionAudit) error
}
