package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

// TextRepository implements ports.TextRepository.
type TextRepository struct {
	uow *UnitOfWork
}

func (r *TextRepository) GetAll(ctx context.Context) ([]*domain.Text, error) {
	query := `SELECT id, content, user_id, submitted_at FROM texts ORDER BY id`

	rows, err := r.uow.db().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list texts: %w", err)
	}
	defer rows.Close()

	var texts []*domain.Text
	for rows.Next() {
		t := &domain.Text{}
		if err := rows.Scan(&t.ID, &t.Content, &t.UserID, &t.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan text: %w", err)
		}
		texts = append(texts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list texts: %w", err)
	}
	return texts, nil
}

func (r *TextRepository) GetByID(ctx context.Context, id int64) (*domain.Text, error) {
	query := `SELECT id, content, user_id, submitted_at FROM texts WHERE id = $1`

	t := &domain.Text{}
	err := r.uow.db().QueryRow(ctx, query, id).Scan(&t.ID, &t.Content, &t.UserID, &t.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("text", id)
		}
		return nil, fmt.Errorf("failed to get text by id: %w", err)
	}
	return t, nil
}

func (r *TextRepository) Add(text *domain.Text) {
	if text.SubmittedAt.IsZero() {
		text.SubmittedAt = time.Now().UTC()
	}
	r.uow.enqueue("insert text", func(ctx context.Context, db DBTX) error {
		query := `INSERT INTO texts (content, user_id, submitted_at) VALUES ($1, $2, $3) RETURNING id`
		if err := db.QueryRow(ctx, query, text.Content, text.UserID, text.SubmittedAt).Scan(&text.ID); err != nil {
			return textWriteError("insert", text.UserID, err)
		}
		return nil
	})
}

func (r *TextRepository) Update(text *domain.Text) {
	r.uow.enqueue("update text", func(ctx context.Context, db DBTX) error {
		query := `UPDATE texts SET content = $1, user_id = $2 WHERE id = $3`
		tag, err := db.Exec(ctx, query, text.Content, text.UserID, text.ID)
		if err != nil {
			return textWriteError("update", text.UserID, err)
		}
		if tag.RowsAffected() == 0 {
			return domain.NewNotFoundError("text", text.ID)
		}
		return nil
	})
}

func (r *TextRepository) Delete(id int64) {
	r.uow.enqueue("delete text", func(ctx context.Context, db DBTX) error {
		tag, err := db.Exec(ctx, `DELETE FROM texts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete text: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.NewNotFoundError("text", id)
		}
		return nil
	})
}

func textWriteError(op string, userID int64, err error) error {
	if code, _ := pgErrorCode(err); code == foreignKeyViolation {
		return domain.NewBusinessError("user %d does not exist", userID)
	}
	return fmt.Errorf("failed to %s text: %w", op, err)
}
