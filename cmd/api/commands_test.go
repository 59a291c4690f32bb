package main

import (
	"testing"
	"time"

	"inventory-admin/internal/config"
	infraconfig "inventory-admin/internal/infrastructure/config"

	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	require.Equal(t, "inventory-admin", root.Use)
	require.NotNil(t, root.RunE)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	require.ElementsMatch(t, []string{"serve", "migrate"}, names)
}

func TestServerTimeouts_CoverRetrySchedule(t *testing.T) {
	cfg := config.Load()
	cfg.RetryInitialDelay = 5 * time.Second
	cfg.RetryMultiplier = 2
	cfg.RetryMaxDelay = 60 * time.Second
	cfg.RetryMaxAttempts = 4
	cfg.ShutdownTimeout = 10 * time.Second

	write, shutdown := serverTimeouts(cfg)
	total := cfg.RetrySchedule().TotalDelay()
	require.Equal(t, 35*time.Second, total)
	require.Greater(t, write, total+time.Duration(cfg.RetryMaxAttempts-1)*infraconfig.DefaultAttemptBudget)
	require.GreaterOrEqual(t, shutdown, write)

	cfg.RetryMaxAttempts = 1
	write, shutdown = serverTimeouts(cfg)
	require.Equal(t, infraconfig.DefaultWriteTimeout, write)
	require.Equal(t, infraconfig.DefaultWriteTimeout, shutdown)
}
