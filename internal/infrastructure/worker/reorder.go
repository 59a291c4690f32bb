package worker

import (
	"context"
	"time"

	"inventory-admin/internal/application"
	"inventory-admin/internal/domain"

	"go.uber.org/zap"
)

var _ application.Worker = (*ReorderScanner)(nil)

// InventoryLister pages through inventory records.
type InventoryLister interface {
	ListInventory(ctx context.Context, f domain.ListFilter) ([]domain.InventoryRecord, error)
}

// LowStockReporter receives the number of records at or below their
// reorder level after each scan.
type LowStockReporter interface {
	SetLowStock(n int)
}

// ReorderScanner periodically walks active inventory and reports records
// that need replenishing.
type ReorderScanner struct {
	Inventory InventoryLister
	Reporter  LowStockReporter

	PollEvery time.Duration
	PageSize  int
	Log       *zap.Logger
}

func (w *ReorderScanner) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	every := w.PollEvery
	if every <= 0 {
		every = time.Minute
	}

	t := time.NewTicker(every)
	defer t.Stop()

	log.Info("reorder_scanner_started", zap.Duration("poll_every", every))
	for {
		select {
		case <-ctx.Done():
			log.Info("reorder_scanner_stopped")
			return
		case <-t.C:
			if _, err := w.Scan(ctx); err != nil {
				log.Warn("reorder.scan_failed", zap.Error(err))
			}
		}
	}
}

// Scan runs one pass and returns the records below their reorder level.
func (w *ReorderScanner) Scan(ctx context.Context) ([]domain.InventoryRecord, error) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	size := w.PageSize
	if size <= 0 || size > domain.MaxListLimit {
		size = domain.MaxListLimit
	}
	var low []domain.InventoryRecord
	for offset := 0; ; offset += size {
		page, err := w.Inventory.ListInventory(ctx, domain.ListFilter{ActiveOnly: true, Limit: size, Offset: offset})
		if err != nil {
			return nil, err
		}
		for _, r := range page {
			if r.BelowReorder() {
				low = append(low, r)
				log.Info("reorder.low_stock",
					zap.String("inventory_id", r.ID),
					zap.String("product_id", r.ProductID),
					zap.String("warehouse_id", r.WarehouseID),
					zap.Int64("quantity", r.Quantity),
					zap.Int64("reorder_level", r.ReorderLevel),
				)
			}
		}
		if len(page) < size {
			break
		}
	}
	if w.Reporter != nil {
		w.Reporter.SetLowStock(len(low))
	}
	return low, nil
}
