package application

import (
	"context"
	"fmt"

	"inventory-admin/internal/domain"
	"inventory-admin/internal/transaction"
)

func validateWarehouse(w domain.Warehouse) error {
	var v transaction.Validator
	v.Check(domain.ValidWarehouseCode(w.Code), domain.MsgWarehouse).
		Check(domain.ValidName(w.Name), domain.MsgName).
		Check(domain.ValidAddress(w.Address), domain.MsgAddress)
	return v.Err()
}

func (s *AdminService) warehouseActivator() activator[domain.Warehouse] {
	return activator[domain.Warehouse]{
		get:    s.repos.Warehouses.Get,
		update: s.repos.Warehouses.Update,
		record: func(w *domain.Warehouse) *domain.Record { return &w.Record },
	}
}

func (s *AdminService) CreateWarehouse(ctx context.Context, in domain.Warehouse) (domain.Warehouse, error) {
	if err := validateWarehouse(in); err != nil {
		return domain.Warehouse{}, err
	}
	return transaction.ReadWrite(ctx, s.tx, func(ctx context.Context) (domain.Warehouse, error) {
		_, err := s.repos.Warehouses.GetByCode(ctx, in.Code)
		if err := ensureAbsent(err); err != nil {
			return domain.Warehouse{}, fmt.Errorf("warehouse code %q: %w", in.Code, err)
		}
		w := domain.Warehouse{Record: s.newRecord(), Code: in.Code, Name: in.Name, Address: in.Address}
		return s.repos.Warehouses.Create(ctx, w)
	})
}

func (s *AdminService) GetWarehouse(ctx context.Context, id string) (domain.Warehouse, error) {
	return get(ctx, s, id, s.repos.Warehouses.Get)
}

func (s *AdminService) ListWarehouses(ctx context.Context, f domain.ListFilter) ([]domain.Warehouse, error) {
	return list(ctx, s, f, s.repos.Warehouses.List)
}

// UpdateWarehouse changes name and address. The code is the warehouse's
// business key and stays as created.
func (s *AdminService) UpdateWarehouse(ctx context.Context, id string, in domain.Warehouse) (domain.Warehouse, error) {
	if err := validateID(id); err != nil {
		return domain.Warehouse{}, err
	}
	var v transaction.Validator
	v.Check(domain.ValidName(in.Name), domain.MsgName).
		Check(domain.ValidAddress(in.Address), domain.MsgAddress)
	if err := v.Err(); err != nil {
		return domain.Warehouse{}, err
	}
	return transaction.ReadWrite(ctx, s.tx, func(ctx context.Context) (domain.Warehouse, error) {
		cur, err := s.repos.Warehouses.Get(ctx, id)
		if err != nil {
			return domain.Warehouse{}, err
		}
		cur.Name, cur.Address = in.Name, in.Address
		cur.UpdatedAt = s.clock.Now()
		return s.repos.Warehouses.Update(ctx, cur)
	})
}

func (s *AdminService) DeleteWarehouse(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.tx.ReadWriteNoResult(ctx, func(ctx context.Context) error {
		if _, err := s.repos.Warehouses.Get(ctx, id); err != nil {
			return err
		}
		refs, err := s.repos.Inventory.List(ctx, domain.ListFilter{WarehouseID: id, Limit: 1})
		if err := ensureUnreferenced(refs, err, "inventory records"); err != nil {
			return err
		}
		return s.repos.Warehouses.Delete(ctx, id)
	})
}

func (s *AdminService) SetWarehouseActive(ctx context.Context, id string, active bool) (domain.Warehouse, error) {
	return setOneActive(ctx, s, id, active, s.warehouseActivator())
}

func (s *AdminService) SetWarehousesActive(ctx context.Context, ids []string, active bool) ([]domain.Warehouse, error) {
	return setActive(ctx, s, ids, active, s.warehouseActivator())
}
