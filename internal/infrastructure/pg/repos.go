package pg

import "inventory-admin/internal/application"

// NewRepos wires every repository to one pool.
func NewRepos(db *DB) application.Repos {
	return application.Repos{
		Brands:     NewBrandRepo(db),
		Providers:  NewProviderRepo(db),
		Warehouses: NewWarehouseRepo(db),
		Products:   NewProductRepo(db),
		Inventory:  NewInventoryRepo(db),
	}
}
