package application

import (
	"context"

	"inventory-admin/internal/domain"
)

// Repositories run inside the transaction carried by ctx. Update compares
// the stored version and returns transaction.ErrOptimisticLock when it moved.
// Missing rows yield ErrNotFound.

type BrandRepo interface {
	Get(ctx context.Context, id string) (domain.Brand, error)
	GetByName(ctx context.Context, name string) (domain.Brand, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Brand, error)
	Create(ctx context.Context, b domain.Brand) (domain.Brand, error)
	Update(ctx context.Context, b domain.Brand) (domain.Brand, error)
	Delete(ctx context.Context, id string) error
}

type ProviderRepo interface {
	Get(ctx context.Context, id string) (domain.Provider, error)
	GetByName(ctx context.Context, name string) (domain.Provider, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Provider, error)
	Create(ctx context.Context, p domain.Provider) (domain.Provider, error)
	Update(ctx context.Context, p domain.Provider) (domain.Provider, error)
	Delete(ctx context.Context, id string) error
}

type WarehouseRepo interface {
	Get(ctx context.Context, id string) (domain.Warehouse, error)
	GetByCode(ctx context.Context, code string) (domain.Warehouse, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Warehouse, error)
	Create(ctx context.Context, w domain.Warehouse) (domain.Warehouse, error)
	Update(ctx context.Context, w domain.Warehouse) (domain.Warehouse, error)
	Delete(ctx context.Context, id string) error
}

type ProductRepo interface {
	Get(ctx context.Context, id string) (domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (domain.Product, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type InventoryRepo interface {
	Get(ctx context.Context, id string) (domain.InventoryRecord, error)
	GetByLocation(ctx context.Context, productID, warehouseID string) (domain.InventoryRecord, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.InventoryRecord, error)
	Create(ctx context.Context, r domain.InventoryRecord) (domain.InventoryRecord, error)
	Update(ctx context.Context, r domain.InventoryRecord) (domain.InventoryRecord, error)
	Delete(ctx context.Context, id string) error
}

// Repos groups the repositories the service needs.
type Repos struct {
	Brands     BrandRepo
	Providers  ProviderRepo
	Warehouses WarehouseRepo
	Products   ProductRepo
	Inventory  InventoryRepo
}
