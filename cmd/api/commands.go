package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"inventory-admin/internal/bootstrap"
	"inventory-admin/internal/config"
	infraconfig "inventory-admin/internal/infrastructure/config"
	"inventory-admin/internal/infrastructure/logx"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:          "inventory-admin",
		Short:        "Catalog and inventory administration API",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.AddCommand(serve, newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reorder scanner",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bootstrap.Migrate(cmd.Context()); err != nil {
				logx.L().Error("migrate failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
}

func serve(ctx context.Context) error {
	app, cleanup, err := bootstrap.InitAPI(ctx)
	if err != nil {
		logx.L().Error("bootstrap", zap.Error(err))
		return err
	}
	defer cleanup()
	logger := app.Log
	addr := ":" + app.Config.Port

	writeTimeout, shutdownTimeout := serverTimeouts(app.Config)
	server := &http.Server{
		Addr:         addr,
		Handler:      app.Handler,
		ReadTimeout:  infraconfig.DefaultReadTimeout,
		WriteTimeout: writeTimeout,
	}

	if app.Config.ReorderScanEvery > 0 {
		go app.Scanner.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("listen", zap.Error(err))
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	logger.Info("server stopped", zap.Duration("timeout", shutdownTimeout))
	return nil
}

// serverTimeouts sizes the write and shutdown timeouts so a request that
// waits through every retry of the schedule can still send its response.
func serverTimeouts(cfg config.Config) (write, shutdown time.Duration) {
	sched := cfg.RetrySchedule()
	attempts := max(sched.MaxAttempts, 1)
	need := sched.TotalDelay() + time.Duration(attempts)*infraconfig.DefaultAttemptBudget
	write = max(infraconfig.DefaultWriteTimeout, need)

	shutdown = cfg.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = infraconfig.DefaultShutdownTimeout
	}
	return write, max(shutdown, write)
}
