package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory-admin/internal/application"
	"inventory-admin/internal/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func memoryConfig() config.Config {
	cfg := config.Load()
	cfg.Storage = "memory"
	cfg.IdempotencyBackend = "none"
	return cfg
}

func TestProvideStorage(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	s, cleanup, err := ProvideStorage(ctx, log, memoryConfig())
	require.NoError(t, err)
	defer cleanup()
	require.NotNil(t, s.Manager)
	require.NoError(t, s.Ping(ctx))

	cfg := memoryConfig()
	cfg.Storage = "sqlite"
	_, _, err = ProvideStorage(ctx, log, cfg)
	require.Error(t, err)

	cfg.Storage = "pg"
	cfg.DatabaseURL = ""
	_, _, err = ProvideStorage(ctx, log, cfg)
	require.ErrorIs(t, err, ErrMissingDBURL)
}

func TestProvideOrchestrator_RejectsBadSchedule(t *testing.T) {
	cfg := memoryConfig()
	s, cleanup, err := ProvideStorage(context.Background(), zap.NewNop(), cfg)
	require.NoError(t, err)
	defer cleanup()

	cfg.RetryMaxAttempts = 0
	_, err = ProvideOrchestrator(s, cfg, ProvideTxObserver(ProvideRegistry()), zap.NewNop())
	require.Error(t, err)
}

func TestProvideIdempotency_Disabled(t *testing.T) {
	idem, cleanup, err := ProvideIdempotency(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer cleanup()
	require.IsType(t, application.NoopIdempotency{}, idem)
}

func TestAPIWiring(t *testing.T) {
	ctx := context.Background()
	cfg := memoryConfig()
	log := zap.NewNop()
	reg := ProvideRegistry()
	s, cleanup, err := ProvideStorage(ctx, log, cfg)
	require.NoError(t, err)
	defer cleanup()
	orch, err := ProvideOrchestrator(s, cfg, ProvideTxObserver(reg), log)
	require.NoError(t, err)
	svc := ProvideAdminService(s, orch)
	h := ProvideHandler(ProvideServer(svc, application.NoopIdempotency{}, s, reg))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brands", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "inventory_tx_attempts_total")

	scanner := ProvideReorderScanner(svc, reg, cfg, log)
	low, err := scanner.Scan(ctx)
	require.NoError(t, err)
	require.Empty(t, low)
}
