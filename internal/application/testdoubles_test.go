package application_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"inventory-admin/internal/application"
	"inventory-admin/internal/domain"
	"inventory-admin/internal/infrastructure/memory"
	"inventory-admin/internal/transaction"

	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

// seqIDs hands out deterministic UUIDs.
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", g.n)
}

// countingManager wraps a Manager and counts the transactions it opens.
type countingManager struct {
	inner transaction.Manager
	mu    sync.Mutex
	modes []transaction.Mode
}

func (c *countingManager) Do(ctx context.Context, mode transaction.Mode, fn func(ctx context.Context) error) error {
	c.mu.Lock()
	c.modes = append(c.modes, mode)
	c.mu.Unlock()
	return c.inner.Do(ctx, mode, fn)
}

func (c *countingManager) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.modes)
}

// flakyInventory fails the first n updates with an optimistic lock error.
type flakyInventory struct {
	application.InventoryRepo
	mu    sync.Mutex
	fails int
	calls int
}

func (f *flakyInventory) Update(ctx context.Context, r domain.InventoryRecord) (domain.InventoryRecord, error) {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.fails
	f.mu.Unlock()
	if fail {
		return domain.InventoryRecord{}, fmt.Errorf("inventory %s: %w", r.ID, transaction.ErrOptimisticLock)
	}
	return f.InventoryRepo.Update(ctx, r)
}

type harness struct {
	svc    *application.AdminService
	tm     *countingManager
	repos  application.Repos
	sleeps []time.Duration
}

var testNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newHarness(t *testing.T, tweak ...func(*application.Repos)) *harness {
	t.Helper()
	store := memory.NewStore()
	h := &harness{
		tm:    &countingManager{inner: memory.NewTxManager(store)},
		repos: memory.NewRepos(store),
	}
	for _, f := range tweak {
		f(&h.repos)
	}
	orch, err := transaction.New(h.tm,
		transaction.WithSleep(func(_ context.Context, d time.Duration) error {
			h.sleeps = append(h.sleeps, d)
			return nil
		}),
	)
	require.NoError(t, err)
	h.svc = application.NewAdminService(h.repos, orch,
		application.WithClock(fakeClock{t: testNow}),
		application.WithIDGen(&seqIDs{}),
	)
	return h
}

// seedCatalog creates a brand, a provider, a warehouse and a product.
func (h *harness) seedCatalog(t *testing.T) (domain.Brand, domain.Provider, domain.Warehouse, domain.Product) {
	t.Helper()
	ctx := context.Background()
	b, err := h.svc.CreateBrand(ctx, domain.Brand{Name: "Acme"})
	require.NoError(t, err)
	p, err := h.svc.CreateProvider(ctx, domain.Provider{Name: "Supplies Inc", Email: "ops@supplies.example"})
	require.NoError(t, err)
	w, err := h.svc.CreateWarehouse(ctx, domain.Warehouse{Code: "MX-001", Name: "Main", Address: "1 Dock Rd"})
	require.NoError(t, err)
	pr, err := h.svc.CreateProduct(ctx, domain.Product{
		SKU: "ACM-100", Name: "Anvil", BrandID: b.ID, ProviderID: p.ID, PriceCents: 4999,
	})
	require.NoError(t, err)
	return b, p, w, pr
}
