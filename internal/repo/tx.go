package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Repos bundles the repositories that take part in a multi-step write.
// Inside TxRunner.WithinTx every field is bound to the same transaction.
type Repos struct {
	Trips    TripRepo
	TripGear TripGearRepo
	Stats    StatsRepo
}

// NewRepos binds the transactional repositories to db.
func NewRepos(db db) Repos {
	return Repos{
		Trips:    NewTripRepo(db),
		TripGear: NewTripGearRepo(db),
		Stats:    NewStatsRepo(db),
	}
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(Repos) error) error
}

// beginner is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx (as a savepoint).
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type pgTxRunner struct {
	db beginner
}

// NewTxRunner constructs a TxRunner that opens transactions on db.
// Passing a pgx.Tx nests the work in a savepoint, which keeps integration
// tests rollback-isolated.
func NewTxRunner(db beginner) TxRunner {
	return &pgTxRunner{db: db}
}

func (r *pgTxRunner) WithinTx(ctx context.Context, fn func(Repos) error) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(NewRepos(tx))
	})
	if err != nil {
		return fmt.Errorf("repo.TxRunner.WithinTx: %w", err)
	}
	return nil
}
