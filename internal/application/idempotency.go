package application

import (
	"context"
	"fmt"
)

// IdempotencyStore handles short-lived request deduplication.
type IdempotencyStore interface {
	// TryReserve returns true if key was absent and is now reserved.
	// Returns false if the key already exists (duplicate).
	TryReserve(ctx context.Context, key string) (bool, error)
	// Release drops a reservation so the key can be used again.
	Release(ctx context.Context, key string) error
}

// NoopIdempotency always succeeds; useful for tests/dev when Redis is disabled.
type NoopIdempotency struct{}

func (NoopIdempotency) TryReserve(context.Context, string) (bool, error) { return true, nil }
func (NoopIdempotency) Release(context.Context, string) error            { return nil }

// Reserve claims key in store. An empty key is not deduplicated.
func Reserve(ctx context.Context, store IdempotencyStore, key string) error {
	if key == "" {
		return nil
	}
	ok, err := store.TryReserve(ctx, key)
	if err != nil {
		return fmt.Errorf("idempotency reserve: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: idempotency key %q", ErrDuplicateRequest, key)
	}
	return nil
}

// Release gives key back to store after a request that did not succeed.
func Release(ctx context.Context, store IdempotencyStore, key string) error {
	if key == "" {
		return nil
	}
	if err := store.Release(ctx, key); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}
