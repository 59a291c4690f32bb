package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidName(t *testing.T) {
	t.Parallel()
	for _, ok := range []string{"Acme", "Ñandú & Co.", "3M", "O'Neill (EU)"} {
		require.True(t, ValidName(ok), ok)
	}
	for _, bad := range []string{"", " Acme", "-dash", "<script>", string(make([]byte, 101))} {
		require.False(t, ValidName(bad), bad)
	}
}

func TestValidSKU(t *testing.T) {
	t.Parallel()
	require.True(t, ValidSKU("ABC-123"))
	require.True(t, ValidSKU("X1-2-3"))
	require.False(t, ValidSKU("abc-123"))
	require.False(t, ValidSKU("A"))
	require.False(t, ValidSKU("ABC--1"))
}

func TestValidWarehouseCode(t *testing.T) {
	t.Parallel()
	require.True(t, ValidWarehouseCode("MX-001"))
	require.False(t, ValidWarehouseCode("MX001"))
	require.False(t, ValidWarehouseCode("mx-001"))
}

func TestValidContact(t *testing.T) {
	t.Parallel()
	require.True(t, ValidEmail("sales@acme.io"))
	require.False(t, ValidEmail("sales@acme"))
	require.True(t, ValidPhone(""))
	require.True(t, ValidPhone("+52 (55) 1234-5678"))
	require.False(t, ValidPhone("12"))
}

func TestValidID(t *testing.T) {
	t.Parallel()
	require.True(t, ValidID("0b6f6a2e-8f0e-4f57-9a53-1b8a3c2d4e5f"))
	require.False(t, ValidID("nope"))
	require.False(t, ValidID("{0b6f6a2e-8f0e-4f57-9a53-1b8a3c2d4e5f}"))
	require.True(t, ValidIDs(nil))
	require.False(t, ValidIDs([]string{"0b6f6a2e-8f0e-4f57-9a53-1b8a3c2d4e5f", "x"}))
}

func TestNumbers(t *testing.T) {
	t.Parallel()
	require.True(t, ValidPrice(0))
	require.False(t, ValidPrice(-1))
	require.False(t, ValidPrice(MaxPriceCents+1))
	require.True(t, ValidQuantity(0))
	require.False(t, ValidQuantity(-3))
	require.True(t, ValidQuantity(MaxQuantity))
	require.False(t, ValidQuantity(MaxQuantity+1))
	require.False(t, ValidDelta(0))
	require.True(t, ValidDelta(-MaxQuantity))
	require.False(t, ValidDelta(math.MaxInt64))
	require.False(t, ValidDelta(math.MinInt64))
}

func TestListFilter_Normalize(t *testing.T) {
	t.Parallel()
	f := ListFilter{Limit: 0, Offset: -4}.Normalize()
	require.Equal(t, DefaultListLimit, f.Limit)
	require.Zero(t, f.Offset)
	require.Equal(t, MaxListLimit, ListFilter{Limit: 10_000}.Normalize().Limit)
}

func TestInventoryRecord_BelowReorder(t *testing.T) {
	t.Parallel()
	require.True(t, InventoryRecord{Quantity: 5, ReorderLevel: 5}.BelowReorder())
	require.False(t, InventoryRecord{Quantity: 6, ReorderLevel: 5}.BelowReorder())
}
