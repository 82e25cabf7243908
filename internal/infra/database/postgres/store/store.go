package store

import (
	"context"
	"fmt"

	"github.com/finmart/warehouse/internal/infra/database/postgres"
	pgdimension "github.com/finmart/warehouse/internal/infra/database/postgres/dimension"
	pgfact "github.com/finmart/warehouse/internal/infra/database/postgres/fact"
	pgstaging "github.com/finmart/warehouse/internal/infra/database/postgres/staging"
	pgsummary "github.com/finmart/warehouse/internal/infra/database/postgres/summary"
	"github.com/finmart/warehouse/internal/service/transform"
)

// Store adapts the connection pool to the transform service's unit of work.
// Every repository handed to the callback is bound to one transaction.
type Store struct {
	pool *postgres.Pool
}

// New creates a transactional store over the pool.
func New(pool *postgres.Pool) *Store {
	return &Store{pool: pool}
}

// WithinTx opens a transaction, builds the repository set over it and runs
// fn. An error (or panic) rolls everything back; otherwise the transaction
// commits.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, st transform.Stores) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	stores := transform.Stores{
		StagedPrices: pgstaging.NewPriceRepository(tx),
		StagedNews:   pgstaging.NewNewsRepository(tx),
		StagedEcon:   pgstaging.NewEconRepository(tx),
		Dates:        pgdimension.NewDateRepository(tx),
		Securities:   pgdimension.NewSecurityRepository(tx),
		Indicators:   pgdimension.NewIndicatorRepository(tx),
		Prices:       pgfact.NewPriceRepository(tx),
		News:         pgfact.NewNewsRepository(tx),
		Economics:    pgfact.NewEconomicsRepository(tx),
		Summary:      pgsummary.NewRepository(tx),
	}

	if err := fn(ctx, stores); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
