package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

type textService struct {
	uows ports.UnitOfWorkFactory
	log  zerolog.Logger
}

func NewTextService(uows ports.UnitOfWorkFactory, log zerolog.Logger) ports.TextService {
	return &textService{uows: uows, log: log}
}

func (s *textService) List(ctx context.Context, f ports.ListTextsFilter) (*pagination.Page[*domain.Text], error) {
	texts, err := s.uows.New().Texts().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list texts: %w", err)
	}

	var byUser pagination.Predicate[*domain.Text]
	if f.UserID != nil {
		userID := *f.UserID
		byUser = func(t *domain.Text) bool { return t.UserID == userID }
	}

	matched := pagination.Filter(texts,
		byUser,
		containsFold(f.SearchText, func(t *domain.Text) string { return t.Content }),
		notBefore(f.FromDate, func(t *domain.Text) time.Time { return t.SubmittedAt }),
		notAfter(f.ToDate, func(t *domain.Text) time.Time { return t.SubmittedAt }),
	)
	return pagination.New(matched, f.PageNumber, f.PageSize), nil
}

func (s *textService) Get(ctx context.Context, id int64) (*domain.Text, error) {
	return s.uows.New().Texts().GetByID(ctx, id)
}

func (s *textService) Create(ctx context.Context, in ports.TextInput) (*domain.Text, error) {
	uow := s.uows.New()
	if err := ensureUserExists(ctx, uow, in.UserID); err != nil {
		return nil, err
	}

	text := &domain.Text{Content: in.Content, UserID: in.UserID, SubmittedAt: time.Now().UTC()}
	if !text.HasValidLength() {
		return nil, errTextTooShort()
	}

	uow.Texts().Add(text)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("create text: %w", err)
	}

	s.log.Info().Int64("text_id", text.ID).Int64("user_id", text.UserID).Msg("text created")
	return text, nil
}

// Update replaces the content. A non-zero UserID moves the text to that
// user, who must exist.
func (s *textService) Update(ctx context.Context, id int64, in ports.TextInput) (*domain.Text, error) {
	uow := s.uows.New()
	text, err := uow.Texts().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.UserID != 0 && in.UserID != text.UserID {
		if err := ensureUserExists(ctx, uow, in.UserID); err != nil {
			return nil, err
		}
		text.UserID = in.UserID
	}
	text.Content = in.Content
	if !text.HasValidLength() {
		return nil, errTextTooShort()
	}

	uow.Texts().Update(text)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("update text: %w", err)
	}
	return text, nil
}

// Delete removes the text and its predictions in a single save.
func (s *textService) Delete(ctx context.Context, id int64) error {
	uow := s.uows.New()
	if _, err := uow.Texts().GetByID(ctx, id); err != nil {
		return err
	}

	uow.Predictions().DeleteByText(id)
	uow.Texts().Delete(id)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return fmt.Errorf("delete text: %w", err)
	}

	s.log.Info().Int64("text_id", id).Msg("text deleted")
	return nil
}

func ensureUserExists(ctx context.Context, uow ports.UnitOfWork, userID int64) error {
	_, err := uow.Users().GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewBusinessError("user %d does not exist", userID)
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	return nil
}

func errTextTooShort() error {
	return domain.NewBusinessError("text must have at least %d characters", domain.MinTextLength)
}
