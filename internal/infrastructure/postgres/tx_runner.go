package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
)

// TxRunner wraps the pool and runs callbacks inside a transaction with
// transaction-bound repositories, so multi-statement flows (outstanding
// balance, then insert) are atomic.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, hands tx-bound pembelian and pembayaran
// repositories to fn, and commits on success. Any error rolls back.
func (r *TxRunner) Run(ctx context.Context, fn func(
	pembelianRepo repository.PembelianRepository,
	pembayaranRepo repository.PembayaranRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewPembelianRepository(tx), NewPembayaranRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
