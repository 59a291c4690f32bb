package httpserver

import (
	"time"

	"inventory-admin/internal/domain"
)

type recordDTO struct {
	ID        string    `json:"id"`
	Active    bool      `json:"active"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toRecordDTO(r domain.Record) recordDTO {
	return recordDTO{ID: r.ID, Active: r.Active, Version: r.Version, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type brandDTO struct {
	recordDTO
	Name        string `json:"name"`
	Description string `json:"description"`
}

type brandRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toBrandDTO(b domain.Brand) brandDTO {
	return brandDTO{recordDTO: toRecordDTO(b.Record), Name: b.Name, Description: b.Description}
}

func (r brandRequest) toDomain() domain.Brand {
	return domain.Brand{Name: r.Name, Description: r.Description}
}

type providerDTO struct {
	recordDTO
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type providerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func toProviderDTO(p domain.Provider) providerDTO {
	return providerDTO{recordDTO: toRecordDTO(p.Record), Name: p.Name, Email: p.Email, Phone: p.Phone}
}

func (r providerRequest) toDomain() domain.Provider {
	return domain.Provider{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

type warehouseDTO struct {
	recordDTO
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type warehouseRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

func toWarehouseDTO(w domain.Warehouse) warehouseDTO {
	return warehouseDTO{recordDTO: toRecordDTO(w.Record), Code: w.Code, Name: w.Name, Address: w.Address}
}

func (r warehouseRequest) toDomain() domain.Warehouse {
	return domain.Warehouse{Code: r.Code, Name: r.Name, Address: r.Address}
}

type productDTO struct {
	recordDTO
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BrandID     string `json:"brand_id"`
	ProviderID  string `json:"provider_id"`
	PriceCents  int64  `json:"price_cents"`
}

type productRequest struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BrandID     string `json:"brand_id"`
	ProviderID  string `json:"provider_id"`
	PriceCents  int64  `json:"price_cents"`
}

func toProductDTO(p domain.Product) productDTO {
	return productDTO{
		recordDTO:   toRecordDTO(p.Record),
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		BrandID:     p.BrandID,
		ProviderID:  p.ProviderID,
		PriceCents:  p.PriceCents,
	}
}

func (r productRequest) toDomain() domain.Product {
	return domain.Product{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		BrandID:     r.BrandID,
		ProviderID:  r.ProviderID,
		PriceCents:  r.PriceCents,
	}
}

type inventoryDTO struct {
	recordDTO
	ProductID    string `json:"product_id"`
	WarehouseID  string `json:"warehouse_id"`
	Quantity     int64  `json:"quantity"`
	ReorderLevel int64  `json:"reorder_level"`
	BelowReorder bool   `json:"below_reorder"`
}

// inventoryRequest is the create body. Updates only read ReorderLevel.
type inventoryRequest struct {
	ProductID    string `json:"product_id"`
	WarehouseID  string `json:"warehouse_id"`
	Quantity     int64  `json:"quantity"`
	ReorderLevel int64  `json:"reorder_level"`
}

func toInventoryDTO(r domain.InventoryRecord) inventoryDTO {
	return inventoryDTO{
		recordDTO:    toRecordDTO(r.Record),
		ProductID:    r.ProductID,
		WarehouseID:  r.WarehouseID,
		Quantity:     r.Quantity,
		ReorderLevel: r.ReorderLevel,
		BelowReorder: r.BelowReorder(),
	}
}

func (r inventoryRequest) toDomain() domain.InventoryRecord {
	return domain.InventoryRecord{
		ProductID:    r.ProductID,
		WarehouseID:  r.WarehouseID,
		Quantity:     r.Quantity,
		ReorderLevel: r.ReorderLevel,
	}
}

type adjustRequest struct {
	Delta int64 `json:"delta"`
}

type transferRequest struct {
	FromID   string `json:"from_id"`
	ToID     string `json:"to_id"`
	Quantity int64  `json:"quantity"`
}

type activationRequest struct {
	IDs    []string `json:"ids"`
	Active bool     `json:"active"`
}

type listResponse[D any] struct {
	Items  []D `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func mapAll[E, D any](in []E, f func(E) D) []D {
	out := make([]D, 0, len(in))
	for _, e := range in {
		out = append(out, f(e))
	}
	return out
}
