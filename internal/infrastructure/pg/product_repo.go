package pg

import (
	"context"
	"errors"

	"inventory-admin/internal/domain"

	"github.com/jackc/pgx/v5"
)

const productCols = `id::text, sku, name, description, brand_id::text, provider_id::text, price_cents, active, version, created_at, updated_at`

type ProductRepo struct{ db *DB }

func NewProductRepo(db *DB) *ProductRepo { return &ProductRepo{db: db} }

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.BrandID, &p.ProviderID, &p.PriceCents,
		&p.Active, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	p, err := scanProduct(r.db.q(ctx).QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id))
	return p, notFound(err)
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (domain.Product, error) {
	p, err := scanProduct(r.db.q(ctx).QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE sku=$1`, sku))
	return p, notFound(err)
}

func (r *ProductRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Product, error) {
	var w where
	w.activeOnly(f)
	if f.BrandID != "" {
		w.add("brand_id = $%d", f.BrandID)
	}
	if f.ProviderID != "" {
		w.add("provider_id = $%d", f.ProviderID)
	}
	q, args := w.query(`SELECT `+productCols+` FROM products`, f)
	rows, err := r.db.q(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Product, error) { return scanProduct(row) })
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	const ins = `
        INSERT INTO products(id, sku, name, description, brand_id, provider_id, price_cents, active, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.q(ctx).Exec(ctx, ins, p.ID, p.SKU, p.Name, p.Description, p.BrandID, p.ProviderID, p.PriceCents,
		p.Active, p.Version, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		logFailed(ctx, "products", "Create", err)
		return domain.Product{}, err
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	const up = `
        UPDATE products
           SET sku=$2, name=$3, description=$4, brand_id=$5, provider_id=$6, price_cents=$7,
               active=$8, updated_at=$9, version=version+1
        WHERE id=$1 AND version=$10
        RETURNING version`
	err := r.db.q(ctx).QueryRow(ctx, up, p.ID, p.SKU, p.Name, p.Description, p.BrandID, p.ProviderID, p.PriceCents,
		p.Active, p.UpdatedAt, p.Version).Scan(&p.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, r.db.versionMiss(ctx, "products", p.ID)
	}
	if err != nil {
		logFailed(ctx, "products", "Update", err)
		return domain.Product{}, err
	}
	return p, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.db.deleteByID(ctx, "products", id)
}
