package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	uow *UnitOfWork
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.created_at,
		       (SELECT COUNT(*) FROM texts t WHERE t.user_id = u.id) AS text_count
		FROM users u
		ORDER BY u.id`

	rows, err := r.uow.db().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u := &domain.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.TextCount); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, name, email, created_at FROM users WHERE id = $1`

	u := &domain.User{}
	err := r.uow.db().QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user", id)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, created_at FROM users WHERE lower(email) = lower($1)`

	u := &domain.User{}
	err := r.uow.db().QueryRow(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user", email)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// Add records an insert. user.ID is set when the change set is saved.
func (r *UserRepository) Add(user *domain.User) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.uow.enqueue("insert user", func(ctx context.Context, db DBTX) error {
		query := `INSERT INTO users (name, email, created_at) VALUES ($1, $2, $3) RETURNING id`
		if err := db.QueryRow(ctx, query, user.Name, user.Email, user.CreatedAt).Scan(&user.ID); err != nil {
			return userWriteError("insert", user.Email, err)
		}
		return nil
	})
}

func (r *UserRepository) Update(user *domain.User) {
	r.uow.enqueue("update user", func(ctx context.Context, db DBTX) error {
		query := `UPDATE users SET name = $1, email = $2 WHERE id = $3`
		tag, err := db.Exec(ctx, query, user.Name, user.Email, user.ID)
		if err != nil {
			return userWriteError("update", user.Email, err)
		}
		if tag.RowsAffected() == 0 {
			return domain.NewNotFoundError("user", user.ID)
		}
		return nil
	})
}

func (r *UserRepository) Delete(id int64) {
	r.uow.enqueue("delete user", func(ctx context.Context, db DBTX) error {
		tag, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.NewNotFoundError("user", id)
		}
		return nil
	})
}

func userWriteError(op, email string, err error) error {
	if code, _ := pgErrorCode(err); code == uniqueViolation {
		return domain.NewBusinessError("email %s is already registered", email)
	}
	return fmt.Errorf("failed to %s user: %w", op, err)
}
