package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

type userService struct {
	uows ports.UnitOfWorkFactory
	log  zerolog.Logger
}

func NewUserService(uows ports.UnitOfWorkFactory, log zerolog.Logger) ports.UserService {
	return &userService{uows: uows, log: log}
}

func (s *userService) List(ctx context.Context, f ports.ListUsersFilter) (*pagination.Page[*domain.User], error) {
	users, err := s.uows.New().Users().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	matched := pagination.Filter(users,
		containsFold(f.SearchName, func(u *domain.User) string { return u.Name }),
		containsFold(f.SearchEmail, func(u *domain.User) string { return u.Email }),
		hasTexts(f.HasTexts),
	)
	return pagination.New(matched, f.PageNumber, f.PageSize), nil
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.uows.New().Users().GetByID(ctx, id)
}

func (s *userService) Create(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	if err := requireUserFields(in); err != nil {
		return nil, err
	}

	uow := s.uows.New()
	_, err := uow.Users().FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, domain.NewBusinessError("email %s is already registered", in.Email)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := &domain.User{Name: strings.TrimSpace(in.Name), Email: strings.TrimSpace(in.Email)}
	uow.Users().Add(user)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *userService) Update(ctx context.Context, id int64, in ports.UserInput) (*domain.User, error) {
	uow := s.uows.New()
	user, err := uow.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireUserFields(in); err != nil {
		return nil, err
	}

	all, err := uow.Users().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	email := strings.TrimSpace(in.Email)
	for _, u := range all {
		if u.ID != id && strings.EqualFold(u.Email, email) {
			return nil, domain.NewBusinessError("email %s is already registered", email)
		}
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Email = email
	uow.Users().Update(user)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	uow := s.uows.New()
	if _, err := uow.Users().GetByID(ctx, id); err != nil {
		return err
	}

	uow.Users().Delete(id)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func requireUserFields(in ports.UserInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewBusinessError("name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return domain.NewBusinessError("email is required")
	}
	return nil
}

func hasTexts(want *bool) pagination.Predicate[*domain.User] {
	if want == nil {
		return nil
	}
	return func(u *domain.User) bool { return (u.TextCount > 0) == *want }
}
