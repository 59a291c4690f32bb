package memory

import (
	"context"

	"inventory-admin/internal/application"
	"inventory-admin/internal/domain"
)

type BrandRepo struct{ t table[domain.Brand] }

func NewBrandRepo(s *Store) *BrandRepo {
	return &BrandRepo{t: table[domain.Brand]{
		store:  s,
		rows:   func(st *state) map[string]domain.Brand { return st.brands },
		record: func(b *domain.Brand) *domain.Record { return &b.Record },
		same:   func(a, b domain.Brand) bool { return a.Name == b.Name },
	}}
}

func (r *BrandRepo) Get(ctx context.Context, id string) (domain.Brand, error) {
	return r.t.get(ctx, id)
}

func (r *BrandRepo) GetByName(ctx context.Context, name string) (domain.Brand, error) {
	return r.t.find(ctx, func(b domain.Brand) bool { return b.Name == name })
}

func (r *BrandRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Brand, error) {
	return r.t.list(ctx, f)
}

func (r *BrandRepo) Create(ctx context.Context, b domain.Brand) (domain.Brand, error) {
	return r.t.create(ctx, b)
}

func (r *BrandRepo) Update(ctx context.Context, b domain.Brand) (domain.Brand, error) {
	return r.t.update(ctx, b)
}

func (r *BrandRepo) Delete(ctx context.Context, id string) error { return r.t.delete(ctx, id) }

type ProviderRepo struct{ t table[domain.Provider] }

func NewProviderRepo(s *Store) *ProviderRepo {
	return &ProviderRepo{t: table[domain.Provider]{
		store:  s,
		rows:   func(st *state) map[string]domain.Provider { return st.providers },
		record: func(p *domain.Provider) *domain.Record { return &p.Record },
		same:   func(a, b domain.Provider) bool { return a.Name == b.Name },
	}}
}

func (r *ProviderRepo) Get(ctx context.Context, id string) (domain.Provider, error) {
	return r.t.get(ctx, id)
}

func (r *ProviderRepo) GetByName(ctx context.Context, name string) (domain.Provider, error) {
	return r.t.find(ctx, func(p domain.Provider) bool { return p.Name == name })
}

func (r *ProviderRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Provider, error) {
	return r.t.list(ctx, f)
}

func (r *ProviderRepo) Create(ctx context.Context, p domain.Provider) (domain.Provider, error) {
	return r.t.create(ctx, p)
}

func (r *ProviderRepo) Update(ctx context.Context, p domain.Provider) (domain.Provider, error) {
	return r.t.update(ctx, p)
}

func (r *ProviderRepo) Delete(ctx context.Context, id string) error { return r.t.delete(ctx, id) }

type WarehouseRepo struct{ t table[domain.Warehouse] }

func NewWarehouseRepo(s *Store) *WarehouseRepo {
	return &WarehouseRepo{t: table[domain.Warehouse]{
		store:  s,
		rows:   func(st *state) map[string]domain.Warehouse { return st.warehouses },
		record: func(w *domain.Warehouse) *domain.Record { return &w.Record },
		same:   func(a, b domain.Warehouse) bool { return a.Code == b.Code },
	}}
}

func (r *WarehouseRepo) Get(ctx context.Context, id string) (domain.Warehouse, error) {
	return r.t.get(ctx, id)
}

func (r *WarehouseRepo) GetByCode(ctx context.Context, code string) (domain.Warehouse, error) {
	return r.t.find(ctx, func(w domain.Warehouse) bool { return w.Code == code })
}

func (r *WarehouseRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Warehouse, error) {
	return r.t.list(ctx, f)
}

func (r *WarehouseRepo) Create(ctx context.Context, w domain.Warehouse) (domain.Warehouse, error) {
	return r.t.create(ctx, w)
}

func (r *WarehouseRepo) Update(ctx context.Context, w domain.Warehouse) (domain.Warehouse, error) {
	return r.t.update(ctx, w)
}

func (r *WarehouseRepo) Delete(ctx context.Context, id string) error { return r.t.delete(ctx, id) }

type ProductRepo struct{ t table[domain.Product] }

func NewProductRepo(s *Store) *ProductRepo {
	return &ProductRepo{t: table[domain.Product]{
		store:  s,
		rows:   func(st *state) map[string]domain.Product { return st.products },
		record: func(p *domain.Product) *domain.Record { return &p.Record },
		same:   func(a, b domain.Product) bool { return a.SKU == b.SKU },
		match: func(p domain.Product, f domain.ListFilter) bool {
			return (f.BrandID == "" || p.BrandID == f.BrandID) &&
				(f.ProviderID == "" || p.ProviderID == f.ProviderID)
		},
	}}
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	return r.t.get(ctx, id)
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (domain.Product, error) {
	return r.t.find(ctx, func(p domain.Product) bool { return p.SKU == sku })
}

func (r *ProductRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Product, error) {
	return r.t.list(ctx, f)
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	return r.t.create(ctx, p)
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	return r.t.update(ctx, p)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error { return r.t.delete(ctx, id) }

type InventoryRepo struct{ t table[domain.InventoryRecord] }

func NewInventoryRepo(s *Store) *InventoryRepo {
	return &InventoryRepo{t: table[domain.InventoryRecord]{
		store:  s,
		rows:   func(st *state) map[string]domain.InventoryRecord { return st.inventory },
		record: func(r *domain.InventoryRecord) *domain.Record { return &r.Record },
		same: func(a, b domain.InventoryRecord) bool {
			return a.ProductID == b.ProductID && a.WarehouseID == b.WarehouseID
		},
		match: func(r domain.InventoryRecord, f domain.ListFilter) bool {
			return (f.ProductID == "" || r.ProductID == f.ProductID) &&
				(f.WarehouseID == "" || r.WarehouseID == f.WarehouseID)
		},
	}}
}

func (r *InventoryRepo) Get(ctx context.Context, id string) (domain.InventoryRecord, error) {
	return r.t.get(ctx, id)
}

func (r *InventoryRepo) GetByLocation(ctx context.Context, productID, warehouseID string) (domain.InventoryRecord, error) {
	return r.t.find(ctx, func(rec domain.InventoryRecord) bool {
		return rec.ProductID == productID && rec.WarehouseID == warehouseID
	})
}

func (r *InventoryRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.InventoryRecord, error) {
	return r.t.list(ctx, f)
}

func (r *InventoryRepo) Create(ctx context.Context, rec domain.InventoryRecord) (domain.InventoryRecord, error) {
	return r.t.create(ctx, rec)
}

func (r *InventoryRepo) Update(ctx context.Context, rec domain.InventoryRecord) (domain.InventoryRecord, error) {
	return r.t.update(ctx, rec)
}

func (r *InventoryRepo) Delete(ctx context.Context, id string) error { return r.t.delete(ctx, id) }

// NewRepos wires every repository to one store.
func NewRepos(s *Store) application.Repos {
	return application.Repos{
		Brands:     NewBrandRepo(s),
		Providers:  NewProviderRepo(s),
		Warehouses: NewWarehouseRepo(s),
		Products:   NewProductRepo(s),
		Inventory:  NewInventoryRepo(s),
	}
}
