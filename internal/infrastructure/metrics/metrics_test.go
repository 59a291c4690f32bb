package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"inventory-admin/internal/transaction"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTxObserver_CountsRetriesAndOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewTxObserver(reg)

	mgr := transaction.ManagerFunc(func(ctx context.Context, _ transaction.Mode, fn func(context.Context) error) error {
		return fn(ctx)
	})
	orch, err := transaction.New(mgr,
		transaction.WithObserver(obs),
		transaction.WithSleep(func(context.Context, time.Duration) error { return nil }),
	)
	require.NoError(t, err)

	calls := 0
	_, err = transaction.ReadWrite(context.Background(), orch, func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, transaction.ErrOptimisticLock
		}
		return calls, nil
	})
	require.NoError(t, err)

	require.InDelta(t, 3, testutil.ToFloat64(obs.attempts.WithLabelValues("read_write")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(obs.retries.WithLabelValues("read_write")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(obs.outcomes.WithLabelValues("read_write", "ok")), 0)

	_, err = transaction.ReadOnly(context.Background(), orch, func(context.Context) (int, error) {
		return 0, errors.New("boom")
	})
	require.Error(t, err)
	require.InDelta(t, 1, testutil.ToFloat64(obs.outcomes.WithLabelValues("read_only", "non_retryable")), 0)
}

func TestOutcome(t *testing.T) {
	require.Equal(t, "ok", Outcome(nil))
	require.Equal(t, "validation", Outcome(transaction.NewValidation("x")))
	require.Equal(t, "error", Outcome(errors.New("plain")))
}

func TestStockGauge(t *testing.T) {
	g := NewStockGauge(prometheus.NewRegistry())
	g.SetLowStock(4)
	require.InDelta(t, 4, testutil.ToFloat64(g.low), 0)
}
