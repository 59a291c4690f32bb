package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"inventory-admin/internal/application"
	"inventory-admin/internal/config"
	httpserver "inventory-admin/internal/infrastructure/http"
	"inventory-admin/internal/infrastructure/logx"
	"inventory-admin/internal/infrastructure/memory"
	"inventory-admin/internal/infrastructure/metrics"
	"inventory-admin/internal/infrastructure/pg"
	redisstore "inventory-admin/internal/infrastructure/redis"
	"inventory-admin/internal/infrastructure/worker"
	"inventory-admin/internal/transaction"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var ErrMissingDBURL = errors.New("DATABASE_URL is required for STORAGE=pg")

// Storage is the selected backend: its transaction manager, repositories
// and readiness probe.
type Storage struct {
	Manager transaction.Manager
	Repos   application.Repos
	Ping    func(ctx context.Context) error
}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func ProvideDB(ctx context.Context, log *zap.Logger, cfg config.Config) (*pg.DB, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, func() {}, ErrMissingDBURL
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, func() {}, err
	}
	cleanup := func() {
		log.Info("closing pg")
		db.Close()
	}
	return db, cleanup, nil
}

// ProvideStorage picks the backend named by STORAGE. The pg backend
// migrates on start.
func ProvideStorage(ctx context.Context, log *zap.Logger, cfg config.Config) (Storage, func(), error) {
	switch cfg.Storage {
	case "pg":
		db, cleanup, err := ProvideDB(ctx, log, cfg)
		if err != nil {
			return Storage{}, cleanup, err
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			cleanup()
			return Storage{}, func() {}, err
		}
		return Storage{Manager: pg.NewTxManager(db), Repos: pg.NewRepos(db), Ping: db.Ping}, cleanup, nil
	case "memory":
		log.Warn("using in-memory storage; data is lost on exit")
		store := memory.NewStore()
		return Storage{Manager: memory.NewTxManager(store), Repos: memory.NewRepos(store), Ping: store.Ping}, func() {}, nil
	default:
		return Storage{}, func() {}, fmt.Errorf("unsupported STORAGE=%q", cfg.Storage)
	}
}

func ProvideTxObserver(reg *prometheus.Registry) *metrics.TxObserver {
	return metrics.NewTxObserver(reg)
}

func ProvideOrchestrator(s Storage, cfg config.Config, obs *metrics.TxObserver, log *zap.Logger) (*transaction.Orchestrator, error) {
	return transaction.New(s.Manager,
		transaction.WithSchedule(cfg.RetrySchedule()),
		transaction.WithObserver(obs),
		transaction.WithLogger(log),
	)
}

func ProvideIdempotency(ctx context.Context, cfg config.Config) (application.IdempotencyStore, func(), error) {
	if cfg.IdempotencyBackend != "redis" {
		return application.NoopIdempotency{}, func() {}, nil
	}
	store, err := redisstore.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisTTL)
	if err != nil {
		return nil, func() {}, err
	}
	return store, func() { _ = store.Close() }, nil
}

func ProvideAdminService(s Storage, orch *transaction.Orchestrator) *application.AdminService {
	return application.NewAdminService(s.Repos, orch)
}

func ProvideServer(svc *application.AdminService, idem application.IdempotencyStore, s Storage, reg *prometheus.Registry) *httpserver.Server {
	srv := httpserver.NewServer(svc, idem)
	srv.SetReadyCheck(s.Ping)
	srv.SetMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return srv
}

func ProvideHandler(srv *httpserver.Server) http.Handler { return httpserver.NewRouter(srv) }

func ProvideReorderScanner(svc *application.AdminService, reg *prometheus.Registry, cfg config.Config, log *zap.Logger) *worker.ReorderScanner {
	return &worker.ReorderScanner{
		Inventory: svc,
		Reporter:  metrics.NewStockGauge(reg),
		PollEvery: cfg.ReorderScanEvery,
		Log:       log.With(zap.String("worker", "reorder")),
	}
}

// API is everything the serve command runs.
type API struct {
	Config  config.Config
	Handler http.Handler
	Scanner *worker.ReorderScanner
	Log     *zap.Logger
}

func ProvideAPI(cfg config.Config, h http.Handler, scanner *worker.ReorderScanner, log *zap.Logger) *API {
	return &API{Config: cfg, Handler: h, Scanner: scanner, Log: log}
}

// Migrate applies the embedded schema migrations and closes the pool.
func Migrate(ctx context.Context) error {
	cfg := ProvideConfig()
	log := ProvideLogger()
	db, cleanup, err := ProvideDB(ctx, log, cfg)
	defer cleanup()
	if err != nil {
		return err
	}
	return pg.RunMigrations(ctx, db)
}
