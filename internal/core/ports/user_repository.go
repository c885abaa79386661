package ports

import (
	"context"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

// UserRepository reads users immediately and records writes in the owning
// unit of work until SaveChanges.
type UserRepository interface {
	// GetAll returns every user with its text count, ordered by id.
	GetAll(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByEmail matches case-insensitively and returns a not-found error
	// when no user has that email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Add(user *domain.User)
	Update(user *domain.User)
	Delete(id int64)
}
