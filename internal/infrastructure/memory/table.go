package memory

import (
	"context"
	"fmt"
	"sort"

	"inventory-admin/internal/application"
	"inventory-admin/internal/domain"
	"inventory-admin/internal/transaction"
)

// table is the shared row logic behind the typed repositories.
type table[E any] struct {
	store  *Store
	rows   func(*state) map[string]E
	record func(*E) *domain.Record
	// same reports whether two rows collide on a unique key.
	same  func(a, b E) bool
	match func(E, domain.ListFilter) bool
}

func (t table[E]) get(ctx context.Context, id string) (E, error) {
	var out E
	err := t.store.within(ctx, false, func(st *state) error {
		e, ok := t.rows(st)[id]
		if !ok {
			return application.ErrNotFound
		}
		out = e
		return nil
	})
	return out, err
}

func (t table[E]) find(ctx context.Context, pred func(E) bool) (E, error) {
	var out E
	err := t.store.within(ctx, false, func(st *state) error {
		for _, e := range t.rows(st) {
			if pred(e) {
				out = e
				return nil
			}
		}
		return application.ErrNotFound
	})
	return out, err
}

func (t table[E]) list(ctx context.Context, f domain.ListFilter) ([]E, error) {
	var out []E
	err := t.store.within(ctx, false, func(st *state) error {
		for _, e := range t.rows(st) {
			if f.ActiveOnly && !t.record(&e).Active {
				continue
			}
			if t.match != nil && !t.match(e, f) {
				continue
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := t.record(&out[i]), t.record(&out[j])
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	f = f.Normalize()
	if f.Offset >= len(out) {
		return []E{}, nil
	}
	out = out[f.Offset:]
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (t table[E]) unique(rows map[string]E, e E) error {
	id := t.record(&e).ID
	for k, other := range rows {
		if k != id && t.same(other, e) {
			return fmt.Errorf("memory: %w", transaction.ErrUniqueViolation)
		}
	}
	return nil
}

func (t table[E]) create(ctx context.Context, e E) (E, error) {
	err := t.store.within(ctx, true, func(st *state) error {
		rows := t.rows(st)
		if _, ok := rows[t.record(&e).ID]; ok {
			return fmt.Errorf("memory: %w", transaction.ErrUniqueViolation)
		}
		if err := t.unique(rows, e); err != nil {
			return err
		}
		rows[t.record(&e).ID] = e
		return nil
	})
	if err != nil {
		var zero E
		return zero, err
	}
	return e, nil
}

func (t table[E]) update(ctx context.Context, e E) (E, error) {
	err := t.store.within(ctx, true, func(st *state) error {
		rows := t.rows(st)
		rec := t.record(&e)
		cur, ok := rows[rec.ID]
		if !ok {
			return application.ErrNotFound
		}
		if t.record(&cur).Version != rec.Version {
			return fmt.Errorf("memory: %s: %w", rec.ID, transaction.ErrOptimisticLock)
		}
		if err := t.unique(rows, e); err != nil {
			return err
		}
		rec.Version++
		rows[rec.ID] = e
		return nil
	})
	if err != nil {
		var zero E
		return zero, err
	}
	return e, nil
}

func (t table[E]) delete(ctx context.Context, id string) error {
	return t.store.within(ctx, true, func(st *state) error {
		rows := t.rows(st)
		if _, ok := rows[id]; !ok {
			return application.ErrNotFound
		}
		delete(rows, id)
		return nil
	})
}
