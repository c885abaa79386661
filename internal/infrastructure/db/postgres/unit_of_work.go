package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

var (
	ErrTransactionInProgress = errors.New("a transaction is already in progress")
	ErrNoTransaction         = errors.New("no transaction in progress")
)

// operation is one pending write recorded by a repository.
type operation struct {
	name  string
	apply func(ctx context.Context, db DBTX) error
}

// UnitOfWork implements ports.UnitOfWork. Repositories are created once with
// the unit of work and resolve the active handle on every call, so reads see
// an open transaction and writes join the same change set.
type UnitOfWork struct {
	pool Pool
	log  zerolog.Logger

	mu      sync.Mutex
	tx      pgx.Tx
	pending []operation

	users       *UserRepository
	texts       *TextRepository
	predictions *PredictionRepository
	securities  *SecurityRepository
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

func NewUnitOfWork(pool Pool, log zerolog.Logger) *UnitOfWork {
	u := &UnitOfWork{pool: pool, log: log}
	u.users = &UserRepository{uow: u}
	u.texts = &TextRepository{uow: u}
	u.predictions = &PredictionRepository{uow: u}
	u.securities = &SecurityRepository{uow: u}
	return u
}

func (u *UnitOfWork) Users() ports.UserRepository             { return u.users }
func (u *UnitOfWork) Texts() ports.TextRepository             { return u.texts }
func (u *UnitOfWork) Predictions() ports.PredictionRepository { return u.predictions }
func (u *UnitOfWork) Securities() ports.SecurityRepository    { return u.securities }

// Conn returns the pool for raw queries outside the change set.
func (u *UnitOfWork) Conn() DBTX {
	return u.pool
}

// Tx returns the open transaction, or nil.
func (u *UnitOfWork) Tx() pgx.Tx {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.tx
}

// db is the handle reads should use right now.
func (u *UnitOfWork) db() DBTX {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		return u.tx
	}
	return u.pool
}

func (u *UnitOfWork) enqueue(name string, apply func(ctx context.Context, db DBTX) error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = append(u.pending, operation{name: name, apply: apply})
}

// SaveChanges applies the pending writes in order. Without an explicit
// transaction the batch runs in its own transaction and is all-or-nothing.
// The pending set is cleared whether or not the save succeeds.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.saveLocked(ctx)
}

func (u *UnitOfWork) SaveChangesAsync(ctx context.Context) <-chan ports.SaveResult {
	ch := make(chan ports.SaveResult, 1)
	go func() {
		defer close(ch)
		n, err := u.SaveChanges(ctx)
		ch <- ports.SaveResult{Affected: n, Err: err}
	}()
	return ch
}

func (u *UnitOfWork) saveLocked(ctx context.Context) (n int, err error) {
	ops := u.pending
	u.pending = nil
	if len(ops) == 0 {
		return 0, nil
	}

	if u.tx != nil {
		return applyAll(ctx, u.tx, ops)
	}

	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				u.log.Error().Err(rbErr).Interface("panic", p).Msg("failed to rollback transaction after panic")
			}
			panic(p)
		}
	}()

	if n, err = applyAll(ctx, tx, ops); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			u.log.Error().Err(rbErr).AnErr("original_error", err).Msg("failed to rollback transaction")
		}
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return n, nil
}

func applyAll(ctx context.Context, db DBTX, ops []operation) (int, error) {
	for i, op := range ops {
		if err := op.apply(ctx, db); err != nil {
			return i, err
		}
	}
	return len(ops), nil
}

// BeginTransaction opens an explicit transaction. Reads and SaveChanges use
// it until Commit or Rollback.
func (u *UnitOfWork) BeginTransaction(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx != nil {
		return ErrTransactionInProgress
	}
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	u.tx = tx
	return nil
}

// Commit saves pending writes and commits. On any failure the transaction is
// rolled back. The transaction reference is always cleared.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	tx := u.tx
	if tx == nil {
		return ErrNoTransaction
	}
	defer func() { u.tx = nil }()

	if _, err := u.saveLocked(ctx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			u.log.Error().Err(rbErr).AnErr("original_error", err).Msg("failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards pending writes and the open transaction, if any. The
// transaction reference is cleared even when the rollback itself fails.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	tx := u.tx
	u.tx = nil
	u.pending = nil
	if tx == nil {
		return nil
	}

	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// UnitOfWorkFactory implements ports.UnitOfWorkFactory over one pool.
type UnitOfWorkFactory struct {
	pool Pool
	log  zerolog.Logger
}

func NewUnitOfWorkFactory(pool Pool, log zerolog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{pool: pool, log: log}
}

func (f *UnitOfWorkFactory) New() ports.UnitOfWork {
	return NewUnitOfWork(f.pool, f.log)
}

// TrainingExamples reads the current labelled examples in a fresh scope, so
// the factory can serve as a ports.TrainingSource.
func (f *UnitOfWorkFactory) TrainingExamples(ctx context.Context) ([]domain.TrainingExample, error) {
	return f.New().Predictions().TrainingExamples(ctx)
}
