package pg

import (
	"context"
	"errors"

	"inventory-admin/internal/domain"

	"github.com/jackc/pgx/v5"
)

const providerCols = `id::text, name, email, phone, active, version, created_at, updated_at`

type ProviderRepo struct{ db *DB }

func NewProviderRepo(db *DB) *ProviderRepo { return &ProviderRepo{db: db} }

func scanProvider(row pgx.Row) (domain.Provider, error) {
	var p domain.Provider
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Active, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *ProviderRepo) Get(ctx context.Context, id string) (domain.Provider, error) {
	p, err := scanProvider(r.db.q(ctx).QueryRow(ctx, `SELECT `+providerCols+` FROM providers WHERE id=$1`, id))
	return p, notFound(err)
}

func (r *ProviderRepo) GetByName(ctx context.Context, name string) (domain.Provider, error) {
	p, err := scanProvider(r.db.q(ctx).QueryRow(ctx, `SELECT `+providerCols+` FROM providers WHERE name=$1`, name))
	return p, notFound(err)
}

func (r *ProviderRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Provider, error) {
	var w where
	w.activeOnly(f)
	q, args := w.query(`SELECT `+providerCols+` FROM providers`, f)
	rows, err := r.db.q(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Provider, error) { return scanProvider(row) })
}

func (r *ProviderRepo) Create(ctx context.Context, p domain.Provider) (domain.Provider, error) {
	const ins = `
        INSERT INTO providers(id, name, email, phone, active, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.q(ctx).Exec(ctx, ins, p.ID, p.Name, p.Email, p.Phone, p.Active, p.Version, p.CreatedAt, p.UpdatedAt); err != nil {
		logFailed(ctx, "providers", "Create", err)
		return domain.Provider{}, err
	}
	return p, nil
}

func (r *ProviderRepo) Update(ctx context.Context, p domain.Provider) (domain.Provider, error) {
	const up = `
        UPDATE providers SET name=$2, email=$3, phone=$4, active=$5, updated_at=$6, version=version+1
        WHERE id=$1 AND version=$7
        RETURNING version`
	err := r.db.q(ctx).QueryRow(ctx, up, p.ID, p.Name, p.Email, p.Phone, p.Active, p.UpdatedAt, p.Version).Scan(&p.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Provider{}, r.db.versionMiss(ctx, "providers", p.ID)
	}
	if err != nil {
		logFailed(ctx, "providers", "Update", err)
		return domain.Provider{}, err
	}
	return p, nil
}

func (r *ProviderRepo) Delete(ctx context.Context, id string) error {
	return r.db.deleteByID(ctx, "providers", id)
}
