package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
)

// PredictionRepository implements ports.PredictionRepository.
type PredictionRepository struct {
	uow *UnitOfWork
}

const predictionColumns = `id, text_id, user_id, result, probability, date`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrediction(row rowScanner) (*domain.Prediction, error) {
	p := &domain.Prediction{}
	var result *string
	if err := row.Scan(&p.ID, &p.TextID, &p.UserID, &result, &p.Probability, &p.Date); err != nil {
		return nil, err
	}
	if result != nil {
		p.Result = *result
	}
	return p, nil
}

func (r *PredictionRepository) GetAll(ctx context.Context) ([]*domain.Prediction, error) {
	rows, err := r.uow.db().Query(ctx, `SELECT `+predictionColumns+` FROM predictions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*domain.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	return predictions, nil
}

func (r *PredictionRepository) GetByID(ctx context.Context, id int64) (*domain.Prediction, error) {
	row := r.uow.db().QueryRow(ctx, `SELECT `+predictionColumns+` FROM predictions WHERE id = $1`, id)
	p, err := scanPrediction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("prediction", id)
		}
		return nil, fmt.Errorf("failed to get prediction by id: %w", err)
	}
	return p, nil
}

func (r *PredictionRepository) TrainingExamples(ctx context.Context) ([]domain.TrainingExample, error) {
	query := `
		SELECT t.content, COALESCE(NULLIF(p.result, ''), $1)
		FROM predictions p
		JOIN texts t ON t.id = p.text_id
		WHERE t.content <> ''
		ORDER BY p.id`

	rows, err := r.uow.db().Query(ctx, query, domain.DefaultLabel)
	if err != nil {
		return nil, fmt.Errorf("failed to load training examples: %w", err)
	}
	defer rows.Close()

	var examples []domain.TrainingExample
	for rows.Next() {
		var ex domain.TrainingExample
		if err := rows.Scan(&ex.Text, &ex.Label); err != nil {
			return nil, fmt.Errorf("failed to scan training example: %w", err)
		}
		examples = append(examples, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load training examples: %w", err)
	}
	return examples, nil
}

func (r *PredictionRepository) Add(p *domain.Prediction) {
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	r.uow.enqueue("insert prediction", func(ctx context.Context, db DBTX) error {
		query := `
			INSERT INTO predictions (text_id, user_id, result, probability, date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`
		if err := db.QueryRow(ctx, query, p.TextID, p.UserID, p.Result, p.Probability, p.Date).Scan(&p.ID); err != nil {
			return fmt.Errorf("failed to insert prediction: %w", err)
		}
		return nil
	})
}

func (r *PredictionRepository) Delete(id int64) {
	r.uow.enqueue("delete prediction", func(ctx context.Context, db DBTX) error {
		tag, err := db.Exec(ctx, `DELETE FROM predictions WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete prediction: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.NewNotFoundError("prediction", id)
		}
		return nil
	})
}

func (r *PredictionRepository) DeleteByText(textID int64) {
	r.uow.enqueue("delete predictions by text", func(ctx context.Context, db DBTX) error {
		if _, err := db.Exec(ctx, `DELETE FROM predictions WHERE text_id = $1`, textID); err != nil {
			return fmt.Errorf("failed to delete predictions of text %d: %w", textID, err)
		}
		return nil
	})
}
