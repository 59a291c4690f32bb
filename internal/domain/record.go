package domain

import "time"

// Record holds the bookkeeping fields every catalog entity carries.
type Record struct {
	ID        string
	Active    bool
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter narrows list queries. Zero values mean "no constraint".
type ListFilter struct {
	ActiveOnly  bool
	BrandID     string
	ProviderID  string
	ProductID   string
	WarehouseID string
	Limit       int
	Offset      int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Normalize clamps paging values.
func (f ListFilter) Normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
