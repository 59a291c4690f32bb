package pg

import (
	"context"
	"errors"

	"inventory-admin/internal/domain"

	"github.com/jackc/pgx/v5"
)

const brandCols = `id::text, name, description, active, version, created_at, updated_at`

type BrandRepo struct{ db *DB }

func NewBrandRepo(db *DB) *BrandRepo { return &BrandRepo{db: db} }

func scanBrand(row pgx.Row) (domain.Brand, error) {
	var b domain.Brand
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Active, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *BrandRepo) Get(ctx context.Context, id string) (domain.Brand, error) {
	b, err := scanBrand(r.db.q(ctx).QueryRow(ctx, `SELECT `+brandCols+` FROM brands WHERE id=$1`, id))
	return b, notFound(err)
}

func (r *BrandRepo) GetByName(ctx context.Context, name string) (domain.Brand, error) {
	b, err := scanBrand(r.db.q(ctx).QueryRow(ctx, `SELECT `+brandCols+` FROM brands WHERE name=$1`, name))
	return b, notFound(err)
}

func (r *BrandRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Brand, error) {
	var w where
	w.activeOnly(f)
	q, args := w.query(`SELECT `+brandCols+` FROM brands`, f)
	rows, err := r.db.q(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Brand, error) { return scanBrand(row) })
}

func (r *BrandRepo) Create(ctx context.Context, b domain.Brand) (domain.Brand, error) {
	const ins = `
        INSERT INTO brands(id, name, description, active, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.q(ctx).Exec(ctx, ins, b.ID, b.Name, b.Description, b.Active, b.Version, b.CreatedAt, b.UpdatedAt); err != nil {
		logFailed(ctx, "brands", "Create", err)
		return domain.Brand{}, err
	}
	return b, nil
}

func (r *BrandRepo) Update(ctx context.Context, b domain.Brand) (domain.Brand, error) {
	const up = `
        UPDATE brands SET name=$2, description=$3, active=$4, updated_at=$5, version=version+1
        WHERE id=$1 AND version=$6
        RETURNING version`
	err := r.db.q(ctx).QueryRow(ctx, up, b.ID, b.Name, b.Description, b.Active, b.UpdatedAt, b.Version).Scan(&b.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Brand{}, r.db.versionMiss(ctx, "brands", b.ID)
	}
	if err != nil {
		logFailed(ctx, "brands", "Update", err)
		return domain.Brand{}, err
	}
	return b, nil
}

func (r *BrandRepo) Delete(ctx context.Context, id string) error {
	return r.db.deleteByID(ctx, "brands", id)
}
