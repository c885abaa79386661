package ports

import (
	"context"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

type SecurityRepository interface {
	GetByLogin(ctx context.Context, login string) (*domain.Security, error)
	Add(security *domain.Security)
}
