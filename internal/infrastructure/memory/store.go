// Package memory is an in-process storage backend with snapshot
// transactions. It backs STORAGE=memory and the service and router tests.
package memory

import (
	"context"
	"errors"

	"inventory-admin/internal/domain"
	"inventory-admin/internal/transaction"
)

var ErrReadOnlyTransaction = errors.New("memory: write in read-only transaction")

type state struct {
	brands     map[string]domain.Brand
	providers  map[string]domain.Provider
	warehouses map[string]domain.Warehouse
	products   map[string]domain.Product
	inventory  map[string]domain.InventoryRecord
}

func newState() state {
	return state{
		brands:     map[string]domain.Brand{},
		providers:  map[string]domain.Provider{},
		warehouses: map[string]domain.Warehouse{},
		products:   map[string]domain.Product{},
		inventory:  map[string]domain.InventoryRecord{},
	}
}

func cloneMap[E any](m map[string]E) map[string]E {
	out := make(map[string]E, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s state) clone() state {
	return state{
		brands:     cloneMap(s.brands),
		providers:  cloneMap(s.providers),
		warehouses: cloneMap(s.warehouses),
		products:   cloneMap(s.products),
		inventory:  cloneMap(s.inventory),
	}
}

// Store holds the committed state. Transactions run one at a time.
type Store struct {
	sem       chan struct{}
	committed state
}

func NewStore() *Store {
	return &Store{sem: make(chan struct{}, 1), committed: newState()}
}

func (s *Store) Ping(context.Context) error { return nil }

type txKey struct{}

type memTx struct {
	st       *state
	readOnly bool
}

func txFromCtx(ctx context.Context) *memTx {
	if v := ctx.Value(txKey{}); v != nil {
		if tx, ok := v.(*memTx); ok {
			return tx
		}
	}
	return nil
}

// TxManager implements transaction.Manager on top of a Store. Each
// transaction works on a private copy of the committed state; commit swaps
// it in, rollback drops it.
type TxManager struct{ store *Store }

func NewTxManager(s *Store) *TxManager { return &TxManager{store: s} }

func (m *TxManager) Do(ctx context.Context, mode transaction.Mode, fn func(ctx context.Context) error) error {
	if txFromCtx(ctx) != nil {
		return fn(ctx)
	}
	select {
	case m.store.sem <- struct{}{}:
	case <-ctx.Done():
		return errors.Join(transaction.ErrTxUnavailable, ctx.Err())
	}
	defer func() { <-m.store.sem }()

	snap := m.store.committed.clone()
	tx := &memTx{st: &snap, readOnly: mode.ReadOnly()}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if !tx.readOnly {
		m.store.committed = snap
	}
	return nil
}

// within runs fn against the transaction in ctx, or in a transaction of
// its own when there is none.
func (s *Store) within(ctx context.Context, write bool, fn func(st *state) error) error {
	if tx := txFromCtx(ctx); tx != nil {
		if write && tx.readOnly {
			return ErrReadOnlyTransaction
		}
		return fn(tx.st)
	}
	mode := transaction.ReadOnlyMode
	if write {
		mode = transaction.ReadWriteMode
	}
	return NewTxManager(s).Do(ctx, mode, func(ctx context.Context) error {
		return fn(txFromCtx(ctx).st)
	})
}
