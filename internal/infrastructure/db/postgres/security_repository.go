package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

// SecurityRepository implements ports.SecurityRepository.
type SecurityRepository struct {
	uow *UnitOfWork
}

func (r *SecurityRepository) GetByLogin(ctx context.Context, login string) (*domain.Security, error) {
	query := `
		SELECT id, login, password, name, role, user_id, created_at
		FROM securities
		WHERE login = $1`

	s := &domain.Security{}
	err := r.uow.db().QueryRow(ctx, query, login).
		Scan(&s.ID, &s.Login, &s.PasswordHash, &s.Name, &s.Role, &s.UserID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("security", login)
		}
		return nil, fmt.Errorf("failed to get security by login: %w", err)
	}
	return s, nil
}

func (r *SecurityRepository) Add(s *domain.Security) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	r.uow.enqueue("insert security", func(ctx context.Context, db DBTX) error {
		query := `
			INSERT INTO securities (login, password, name, role, user_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`
		err := db.QueryRow(ctx, query, s.Login, s.PasswordHash, s.Name, s.Role, s.UserID, s.CreatedAt).Scan(&s.ID)
		if err == nil {
			return nil
		}
		switch code, constraint := pgErrorCode(err); {
		case code == uniqueViolation && constraint == "ux_securities_user_id":
			return domain.NewBusinessError("user %d already has credentials", derefID(s.UserID))
		case code == uniqueViolation:
			return domain.NewBusinessError("login %s already exists", s.Login)
		case code == foreignKeyViolation:
			return domain.NewBusinessError("user %d does not exist", derefID(s.UserID))
		}
		return fmt.Errorf("failed to insert security: %w", err)
	})
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
