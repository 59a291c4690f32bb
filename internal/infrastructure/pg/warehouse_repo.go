package pg

import (
	"context"
	"errors"

	"inventory-admin/internal/domain"

	"github.com/jackc/pgx/v5"
)

const warehouseCols = `id::text, code, name, address, active, version, created_at, updated_at`

type WarehouseRepo struct{ db *DB }

func NewWarehouseRepo(db *DB) *WarehouseRepo { return &WarehouseRepo{db: db} }

func scanWarehouse(row pgx.Row) (domain.Warehouse, error) {
	var w domain.Warehouse
	err := row.Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.Active, &w.Version, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

func (r *WarehouseRepo) Get(ctx context.Context, id string) (domain.Warehouse, error) {
	w, err := scanWarehouse(r.db.q(ctx).QueryRow(ctx, `SELECT `+warehouseCols+` FROM warehouses WHERE id=$1`, id))
	return w, notFound(err)
}

func (r *WarehouseRepo) GetByCode(ctx context.Context, code string) (domain.Warehouse, error) {
	w, err := scanWarehouse(r.db.q(ctx).QueryRow(ctx, `SELECT `+warehouseCols+` FROM warehouses WHERE code=$1`, code))
	return w, notFound(err)
}

func (r *WarehouseRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Warehouse, error) {
	var w where
	w.activeOnly(f)
	q, args := w.query(`SELECT `+warehouseCols+` FROM warehouses`, f)
	rows, err := r.db.q(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Warehouse, error) { return scanWarehouse(row) })
}

func (r *WarehouseRepo) Create(ctx context.Context, w domain.Warehouse) (domain.Warehouse, error) {
	const ins = `
        INSERT INTO warehouses(id, code, name, address, active, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.q(ctx).Exec(ctx, ins, w.ID, w.Code, w.Name, w.Address, w.Active, w.Version, w.CreatedAt, w.UpdatedAt); err != nil {
		logFailed(ctx, "warehouses", "Create", err)
		return domain.Warehouse{}, err
	}
	return w, nil
}

func (r *WarehouseRepo) Update(ctx context.Context, w domain.Warehouse) (domain.Warehouse, error) {
	const up = `
        UPDATE warehouses SET code=$2, name=$3, address=$4, active=$5, updated_at=$6, version=version+1
        WHERE id=$1 AND version=$7
        RETURNING version`
	err := r.db.q(ctx).QueryRow(ctx, up, w.ID, w.Code, w.Name, w.Address, w.Active, w.UpdatedAt, w.Version).Scan(&w.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Warehouse{}, r.db.versionMiss(ctx, "warehouses", w.ID)
	}
	if err != nil {
		logFailed(ctx, "warehouses", "Update", err)
		return domain.Warehouse{}, err
	}
	return w, nil
}

func (r *WarehouseRepo) Delete(ctx context.Context, id string) error {
	return r.db.deleteByID(ctx, "warehouses", id)
}
