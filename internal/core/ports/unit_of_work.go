package ports

import "context"

// SaveResult is delivered by SaveChangesAsync.
type SaveResult struct {
	Affected int
	Err      error
}

// UnitOfWork groups the repositories of one request behind a single change
// set. Writes made through any repository are applied, in order, by
// SaveChanges; inside an explicit transaction they are committed by Commit.
type UnitOfWork interface {
	Users() UserRepository
	Texts() TextRepository
	Predictions() PredictionRepository
	Securities() SecurityRepository

	// SaveChanges applies the pending writes and returns how many were applied.
	SaveChanges(ctx context.Context) (int, error)
	SaveChangesAsync(ctx context.Context) <-chan SaveResult

	BeginTransaction(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWorkFactory hands out a fresh UnitOfWork per operation.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
