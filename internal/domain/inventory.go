package domain

// InventoryRecord is the stock of one product in one warehouse.
type InventoryRecord struct {
	Record
	ProductID    string
	WarehouseID  string
	Quantity     int64
	ReorderLevel int64
}

// BelowReorder reports whether stock needs replenishing.
func (r InventoryRecord) BelowReorder() bool {
	return r.Quantity <= r.ReorderLevel
}
