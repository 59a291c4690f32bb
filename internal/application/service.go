package application

import (
	"context"
	"errors"
	"fmt"

	"inventory-admin/internal/domain"
	"inventory-admin/internal/transaction"
)

// AdminService implements the catalog and inventory administration use cases.
// Every operation validates its input first and then runs through the
// transaction orchestrator, so units of work below must be safe to re-run.
type AdminService struct {
	repos Repos
	tx    *transaction.Orchestrator
	clock Clock
	idgen IDGen
}

type Option func(*AdminService)

func WithClock(c Clock) Option { return func(s *AdminService) { s.clock = c } }
func WithIDGen(g IDGen) Option { return func(s *AdminService) { s.idgen = g } }

func NewAdminService(repos Repos, tx *transaction.Orchestrator, opts ...Option) *AdminService {
	s := &AdminService{
		repos: repos,
		tx:    tx,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.idgen == nil {
		s.idgen = defaultIDGen{}
	}
	return s
}

func (s *AdminService) newRecord() domain.Record {
	now := s.clock.Now()
	return domain.Record{
		ID:        s.idgen.NewID(),
		Active:    true,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ensureAbsent turns a lookup error into ErrConflict when the row exists.
func ensureAbsent(err error) error {
	switch {
	case err == nil:
		return ErrConflict
	case errors.Is(err, ErrNotFound):
		return nil
	default:
		return err
	}
}

// ensureUnique is ensureAbsent for updates: the row found may be the one
// being updated.
func ensureUnique(foundID string, err error, selfID string) error {
	switch {
	case err == nil && foundID != selfID:
		return ErrConflict
	case err == nil, errors.Is(err, ErrNotFound):
		return nil
	default:
		return err
	}
}

// ensureUnreferenced fails with ErrConflict when any row refers to the
// entity about to be deleted.
func ensureUnreferenced[E any](rows []E, err error, what string) error {
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		return fmt.Errorf("%w: still referenced by %s", ErrConflict, what)
	}
	return nil
}

func validateID(id string) error {
	return transaction.Validate(id, domain.ValidID, domain.MsgID)
}

func validateFilter(f domain.ListFilter) error {
	var v transaction.Validator
	v.Check(f.BrandID == "" || domain.ValidID(f.BrandID), domain.MsgBrandID).
		Check(f.ProviderID == "" || domain.ValidID(f.ProviderID), domain.MsgProviderID).
		Check(f.ProductID == "" || domain.ValidID(f.ProductID), domain.MsgProductID).
		Check(f.WarehouseID == "" || domain.ValidID(f.WarehouseID), domain.MsgWarehouseID)
	return v.Err()
}

func get[E any](ctx context.Context, s *AdminService, id string, fetch func(context.Context, string) (E, error)) (E, error) {
	if err := validateID(id); err != nil {
		var zero E
		return zero, err
	}
	return transaction.ReadOnly(ctx, s.tx, func(ctx context.Context) (E, error) {
		return fetch(ctx, id)
	})
}

func list[E any](ctx context.Context, s *AdminService, f domain.ListFilter, fetch func(context.Context, domain.ListFilter) ([]E, error)) ([]E, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	f = f.Normalize()
	return transaction.ReadOnly(ctx, s.tx, func(ctx context.Context) ([]E, error) {
		rows, err := fetch(ctx, f)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []E{}
		}
		return rows, nil
	})
}

// activator describes how to flip the Active flag of one entity type.
type activator[E any] struct {
	get    func(context.Context, string) (E, error)
	update func(context.Context, E) (E, error)
	record func(*E) *domain.Record
}

// setActive flips the Active flag of every id in one transaction. An empty
// id set returns an empty result without validating or opening a
// transaction.
func setActive[E any](ctx context.Context, s *AdminService, ids []string, active bool, a activator[E]) ([]E, error) {
	if len(ids) == 0 {
		return []E{}, nil
	}
	if err := transaction.Validate(ids, domain.ValidIDs, domain.MsgIDs); err != nil {
		return nil, err
	}
	ids = dedupe(ids)
	return transaction.ReadWrite(ctx, s.tx, func(ctx context.Context) ([]E, error) {
		out := make([]E, 0, len(ids))
		for _, id := range ids {
			e, err := a.get(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("id %s: %w", id, err)
			}
			if r := a.record(&e); r.Active != active {
				r.Active = active
				r.UpdatedAt = s.clock.Now()
				if e, err = a.update(ctx, e); err != nil {
					return nil, fmt.Errorf("id %s: %w", id, err)
				}
			}
			out = append(out, e)
		}
		return out, nil
	})
}

func setOneActive[E any](ctx context.Context, s *AdminService, id string, active bool, a activator[E]) (E, error) {
	var zero E
	if err := validateID(id); err != nil {
		return zero, err
	}
	out, err := setActive(ctx, s, []string{id}, active, a)
	if err != nil {
		return zero, err
	}
	return out[0], nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
