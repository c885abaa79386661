package ports

import (
	"context"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

type TextRepository interface {
	GetAll(ctx context.Context) ([]*domain.Text, error)
	GetByID(ctx context.Context, id int64) (*domain.Text, error)
	Add(text *domain.Text)
	Update(text *domain.Text)
	Delete(id int64)
}
