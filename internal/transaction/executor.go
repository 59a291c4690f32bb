package transaction

import "context"

// Manager opens storage transactions. Do must run fn exactly once, commit
// when it returns nil, roll back otherwise and return fn's error as is.
// When ctx already carries a transaction, Do joins it; the orchestrator
// never retries such a joined call.
type Manager interface {
	Do(ctx context.Context, mode Mode, fn func(ctx context.Context) error) error
}

// ManagerFunc adapts a function to Manager.
type ManagerFunc func(ctx context.Context, mode Mode, fn func(ctx context.Context) error) error

func (f ManagerFunc) Do(ctx context.Context, mode Mode, fn func(ctx context.Context) error) error {
	return f(ctx, mode, fn)
}

// Work is a unit of work. It may be invoked more than once per call.
type Work[T any] func(ctx context.Context) (T, error)

// execute runs work once inside a transaction and hands back its result.
func execute[T any](ctx context.Context, m Manager, mode Mode, work Work[T]) (T, error) {
	var out T
	err := m.Do(ctx, mode, func(txCtx context.Context) error {
		v, err := work(txCtx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
