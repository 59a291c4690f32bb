package pg

import (
	"context"
	"fmt"

	"inventory-admin/internal/transaction"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type txKey struct{}

func txFromCtx(ctx context.Context) pgx.Tx {
	if v := ctx.Value(txKey{}); v != nil {
		if tx, ok := v.(pgx.Tx); ok {
			return tx
		}
	}
	return nil
}

// querier is the part of pgx.Tx and pgxpool.Pool the repositories use.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// q returns the transaction in ctx, or the pool outside one.
func (d *DB) q(ctx context.Context) querier {
	if tx := txFromCtx(ctx); tx != nil {
		return tx
	}
	return d.Pool
}

func txOptions(mode transaction.Mode) pgx.TxOptions {
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadWrite}
	if mode.ReadOnly() {
		opts.AccessMode = pgx.ReadOnly
	}
	return opts
}

// TxManager implements transaction.Manager with pgx transactions.
type TxManager struct {
	db *DB
}

func NewTxManager(db *DB) *TxManager { return &TxManager{db: db} }

// Do joins a transaction already carried by ctx instead of opening a new
// one. The orchestrator runs such nested calls once, without retries.
func (m *TxManager) Do(ctx context.Context, mode transaction.Mode, fn func(ctx context.Context) error) error {
	if txFromCtx(ctx) != nil {
		return fn(ctx)
	}
	tx, err := m.db.Pool.BeginTx(ctx, txOptions(mode))
	if err != nil {
		return fmt.Errorf("%w: %w", transaction.ErrTxUnavailable, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()
	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
