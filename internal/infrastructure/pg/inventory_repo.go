package pg

import (
	"context"
	"errors"

	"inventory-admin/internal/domain"

	"github.com/jackc/pgx/v5"
)

const inventoryCols = `id::text, product_id::text, warehouse_id::text, quantity, reorder_level, active, version, created_at, updated_at`

type InventoryRepo struct{ db *DB }

func NewInventoryRepo(db *DB) *InventoryRepo { return &InventoryRepo{db: db} }

func scanInventory(row pgx.Row) (domain.InventoryRecord, error) {
	var r domain.InventoryRecord
	err := row.Scan(&r.ID, &r.ProductID, &r.WarehouseID, &r.Quantity, &r.ReorderLevel,
		&r.Active, &r.Version, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (r *InventoryRepo) Get(ctx context.Context, id string) (domain.InventoryRecord, error) {
	rec, err := scanInventory(r.db.q(ctx).QueryRow(ctx, `SELECT `+inventoryCols+` FROM inventory WHERE id=$1`, id))
	return rec, notFound(err)
}

func (r *InventoryRepo) GetByLocation(ctx context.Context, productID, warehouseID string) (domain.InventoryRecord, error) {
	const q = `SELECT ` + inventoryCols + ` FROM inventory WHERE product_id=$1 AND warehouse_id=$2`
	rec, err := scanInventory(r.db.q(ctx).QueryRow(ctx, q, productID, warehouseID))
	return rec, notFound(err)
}

func (r *InventoryRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.InventoryRecord, error) {
	var w where
	w.activeOnly(f)
	if f.ProductID != "" {
		w.add("product_id = $%d", f.ProductID)
	}
	if f.WarehouseID != "" {
		w.add("warehouse_id = $%d", f.WarehouseID)
	}
	q, args := w.query(`SELECT `+inventoryCols+` FROM inventory`, f)
	rows, err := r.db.q(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InventoryRecord, error) { return scanInventory(row) })
}

func (r *InventoryRepo) Create(ctx context.Context, rec domain.InventoryRecord) (domain.InventoryRecord, error) {
	const ins = `
        INSERT INTO inventory(id, product_id, warehouse_id, quantity, reorder_level, active, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.q(ctx).Exec(ctx, ins, rec.ID, rec.ProductID, rec.WarehouseID, rec.Quantity, rec.ReorderLevel,
		rec.Active, rec.Version, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		logFailed(ctx, "inventory", "Create", err)
		return domain.InventoryRecord{}, err
	}
	return rec, nil
}

func (r *InventoryRepo) Update(ctx context.Context, rec domain.InventoryRecord) (domain.InventoryRecord, error) {
	const up = `
        UPDATE inventory
           SET quantity=$2, reorder_level=$3, active=$4, updated_at=$5, version=version+1
        WHERE id=$1 AND version=$6
        RETURNING version`
	err := r.db.q(ctx).QueryRow(ctx, up, rec.ID, rec.Quantity, rec.ReorderLevel, rec.Active, rec.UpdatedAt, rec.Version).
		Scan(&rec.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.InventoryRecord{}, r.db.versionMiss(ctx, "inventory", rec.ID)
	}
	if err != nil {
		logFailed(ctx, "inventory", "Update", err)
		return domain.InventoryRecord{}, err
	}
	return rec, nil
}

func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	return r.db.deleteByID(ctx, "inventory", id)
}
