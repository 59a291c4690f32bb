package application

import (
	"context"
	"fmt"

	"inventory-admin/internal/domain"
	"inventory-admin/internal/transaction"
)

func (s *AdminService) inventoryActivator() activator[domain.InventoryRecord] {
	return activator[domain.InventoryRecord]{
		get:    s.repos.Inventory.Get,
		update: s.repos.Inventory.Update,
		record: func(r *domain.InventoryRecord) *domain.Record { return &r.Record },
	}
}

func (s *AdminService) CreateInventory(ctx context.Context, in domain.InventoryRecord) (domain.InventoryRecord, error) {
	var v transaction.Validator
	v.Check(domain.ValidID(in.ProductID), domain.MsgProductID).
		Check(domain.ValidID(in.WarehouseID), domain.MsgWarehouseID).
		Check(domain.ValidQuantity(in.Quantity), domain.MsgQuantity).
		Check(domain.ValidQuantity(in.ReorderLevel), domain.MsgReorder)
	if err := v.Err(); err != nil {
		return domain.InventoryRecord{}, err
	}
	return transaction.ReadWrite(ctx, s.tx, func(ctx context.Context) (domain.InventoryRecord, error) {
		_, err := s.repos.Inventory.GetByLocation(ctx, in.ProductID, in.WarehouseID)
		if err := ensureAbsent(err); err != nil {
			return domain.InventoryRecord{}, fmt.Errorf("inventory for product %s in warehouse %s: %w", in.ProductID, in.WarehouseID, err)
		}
		if _, err := s.repos.Products.Get(ctx, in.ProductID); err != nil {
			return domain.InventoryRecord{}, fmt.Errorf("product %s: %w", in.ProductID, err)
		}
		if _, err := s.repos.Warehouses.Get(ctx, in.WarehouseID); err != nil {
			return domain.InventoryRecord{}, fmt.Errorf("warehouse %s: %w", in.WarehouseID, err)
		}
		r := domain.InventoryRecord{
			Record:       s.newRecord(),
			ProductID:    in.ProductID,
			WarehouseID:  in.WarehouseID,
			Quantity:     in.Quantity,
			ReorderLevel: in.ReorderLevel,
		}
		return s.repos.Inventory.Create(ctx, r)
	})
}

func (s *AdminService) GetInventory(ctx context.Context, id string) (domain.InventoryRecord, error) {
	return get(ctx, s, id, s.repos.Inventory.Get)
}

func (s *AdminService) ListInventory(ctx context.Context, f domain.ListFilter) ([]domain.InventoryRecord, error) {
	return list(ctx, s, f, s.repos.Inventory.List)
}

// UpdateInventory changes the reorder level. Quantity only moves through
// AdjustInventory and TransferStock.
func (s *AdminService) UpdateInventory(ctx context.Context, id string, reorderLevel int64) (domain.InventoryRecord, error) {
	var v transaction.Validator
	v.Check(domain.ValidID(id), domain.MsgID).
		Check(domain.ValidQuantity(reorderLevel), domain.MsgReorder)
	if err := v.Err(); err != nil {
		return domain.InventoryRecord{}, err
	}
	return transaction.ReadWrite(ctx, s.tx, func(ctx context.Context) (domain.InventoryRecord, error) {
		cur, err := s.repos.Inventory.Get(ctx, id)
		if err != nil {
			return domain.InventoryRecord{}, err
		}
		cur.ReorderLevel = reorderLevel
		cur.UpdatedAt = s.clock.Now()
		return s.repos.Inventory.Update(ctx, cur)
	})
}

// AdjustInventory adds delta (which may be negative) to the stored quantity.
func (s *AdminService) AdjustInventory(ctx context.Context, id string, delta int64) (domain.InventoryRecord, error) {
	var v transaction.Validator
	v.Check(domain.ValidID(id), domain.MsgID).
		Check(domain.ValidDelta(delta), domain.MsgDelta)
	if err := v.Err(); err != nil {
		return domain.InventoryRecord{}, err
	}
	return transaction.ReadWrite(ctx, s.tx, func(ctx context.Context) (domain.InventoryRecord, error) {
		cur, err := s.repos.Inventory.Get(ctx, id)
		if err != nil {
			return domain.InventoryRecord{}, err
		}
		if err := s.applyDelta(&cur, delta); err != nil {
			return domain.InventoryRecord{}, err
		}
		return s.repos.Inventory.Update(ctx, cur)
	})
}

// TransferStock moves qty units between two inventory records of the same
// product in one unit of work.
func (s *AdminService) TransferStock(ctx context.Context, fromID, toID string, qty int64) ([]domain.InventoryRecord, error) {
	var v transaction.Validator
	v.Check(domain.ValidID(fromID), "from_id: must be a UUID").
		Check(domain.ValidID(toID), "to_id: must be a UUID").
		Check(fromID != toID, "to_id: must differ from from_id").
		Check(qty > 0 && qty <= domain.MaxQuantity, "quantity: must be between 1 and 1000000000000")
	if err := v.Err(); err != nil {
		return nil, err
	}
	return transaction.ReadWrite(ctx, s.tx, func(ctx context.Context) ([]domain.InventoryRecord, error) {
		from, err := s.repos.Inventory.Get(ctx, fromID)
		if err != nil {
			return nil, fmt.Errorf("from %s: %w", fromID, err)
		}
		to, err := s.repos.Inventory.Get(ctx, toID)
		if err != nil {
			return nil, fmt.Errorf("to %s: %w", toID, err)
		}
		if from.ProductID != to.ProductID {
			return nil, fmt.Errorf("%w: records hold different products", ErrBadRequest)
		}
		if err := s.applyDelta(&from, -qty); err != nil {
			return nil, err
		}
		if err := s.applyDelta(&to, qty); err != nil {
			return nil, err
		}
		if from, err = s.repos.Inventory.Update(ctx, from); err != nil {
			return nil, err
		}
		if to, err = s.repos.Inventory.Update(ctx, to); err != nil {
			return nil, err
		}
		return []domain.InventoryRecord{from, to}, nil
	})
}

func (s *AdminService) applyDelta(r *domain.InventoryRecord, delta int64) error {
	next := r.Quantity + delta
	if next < 0 {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientStock, r.Quantity, -delta)
	}
	if next > domain.MaxQuantity {
		return transaction.NewValidation(domain.MsgQuantity)
	}
	r.Quantity = next
	r.UpdatedAt = s.clock.Now()
	return nil
}

func (s *AdminService) DeleteInventory(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.tx.ReadWriteNoResult(ctx, func(ctx context.Context) error {
		return s.repos.Inventory.Delete(ctx, id)
	})
}

func (s *AdminService) SetInventoryActive(ctx context.Context, id string, active bool) (domain.InventoryRecord, error) {
	return setOneActive(ctx, s, id, active, s.inventoryActivator())
}

func (s *AdminService) SetInventoriesActive(ctx context.Context, ids []string, active bool) ([]domain.InventoryRecord, error) {
	return setActive(ctx, s, ids, active, s.inventoryActivator())
}
