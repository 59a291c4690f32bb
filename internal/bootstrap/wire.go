//go:build wireinject

package bootstrap

import (
	"context"

	"inventory-admin/internal/infrastructure/worker"

	"github.com/google/wire"
)

var infraSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideRegistry,
	ProvideStorage,
	ProvideTxObserver,
	ProvideOrchestrator,
	ProvideAdminService,
)

// InitAPI builds the HTTP application and its cleanup.
func InitAPI(ctx context.Context) (*API, func(), error) {
	wire.Build(
		infraSet,
		ProvideIdempotency,
		ProvideServer,
		ProvideHandler,
		ProvideReorderScanner,
		ProvideAPI,
	)
	return nil, nil, nil
}

// InitScanner builds a standalone reorder scanner and its cleanup.
func InitScanner(ctx context.Context) (*worker.ReorderScanner, func(), error) {
	wire.Build(
		infraSet,
		ProvideReorderScanner,
	)
	return nil, nil, nil
}
