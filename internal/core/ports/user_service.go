package ports

import (
	"context"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
)

// ListUsersFilter carries the optional filters of the user list. Unset
// fields are ignored.
type ListUsersFilter struct {
	SearchName  string // case-insensitive substring of name
	SearchEmail string // case-insensitive substring of email
	HasTexts    *bool
	PageNumber  int
	PageSize    int
}

// UserInput carries the writable fields of a user.
type UserInput struct {
	Name  string
	Email string
}

type UserService interface {
	List(ctx context.Context, filter ListUsersFilter) (*pagination.Page[*domain.User], error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, input UserInput) (*domain.User, error)
	Update(ctx context.Context, id int64, input UserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
