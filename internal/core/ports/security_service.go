package ports

import (
	"context"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

// RegisterInput carries a new credential. An empty Role defaults to User.
type RegisterInput struct {
	Login    string
	Password string
	Name     string
	Role     string
	UserID   *int64
}

type SecurityService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Security, error)
	// Login verifies the credentials and returns a signed access token.
	Login(ctx context.Context, login, password string) (string, *domain.Security, error)
}
