package ports

import (
	"context"
	"time"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
)

// ListTextsFilter carries the optional filters of the text list.
type ListTextsFilter struct {
	UserID     *int64
	SearchText string     // case-insensitive substring of content
	FromDate   *time.Time // submitted at or after
	ToDate     *time.Time // submitted at or before
	PageNumber int
	PageSize   int
}

// TextInput carries the writable fields of a text.
type TextInput struct {
	Content string
	UserID  int64
}

type TextService interface {
	List(ctx context.Context, filter ListTextsFilter) (*pagination.Page[*domain.Text], error)
	Get(ctx context.Context, id int64) (*domain.Text, error)
	Create(ctx context.Context, input TextInput) (*domain.Text, error)
	Update(ctx context.Context, id int64, input TextInput) (*domain.Text, error)
	// Delete removes the text and every prediction generated from it.
	Delete(ctx context.Context, id int64) error
}
