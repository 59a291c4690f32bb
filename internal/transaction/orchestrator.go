package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Observer receives attempt lifecycle events. Implementations must be safe
// for concurrent use.
type Observer interface {
	Attempt(mode Mode, attempt int)
	Retry(mode Mode, attempt int, delay time.Duration, cause error)
	Done(mode Mode, attempts int, err error)
}

type nopObserver struct{}

func (nopObserver) Attempt(Mode, int)                     {}
func (nopObserver) Retry(Mode, int, time.Duration, error) {}
func (nopObserver) Done(Mode, int, error)                 {}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Orchestrator composes the transaction manager, the retry schedule and the
// classifier. It holds no per-call state and is safe for concurrent use.
type Orchestrator struct {
	manager    Manager
	schedule   Schedule
	classifier Classifier
	observer   Observer
	sleep      SleepFunc
	log        *zap.Logger
}

type Option func(*Orchestrator)

func WithSchedule(s Schedule) Option     { return func(o *Orchestrator) { o.schedule = s } }
func WithClassifier(c Classifier) Option { return func(o *Orchestrator) { o.classifier = c } }
func WithObserver(ob Observer) Option    { return func(o *Orchestrator) { o.observer = ob } }
func WithSleep(f SleepFunc) Option       { return func(o *Orchestrator) { o.sleep = f } }
func WithLogger(l *zap.Logger) Option    { return func(o *Orchestrator) { o.log = l } }

// New builds an Orchestrator. It fails when manager is nil or the schedule
// breaks its invariants.
func New(manager Manager, opts ...Option) (*Orchestrator, error) {
	if manager == nil {
		return nil, errors.New("transaction: nil manager")
	}
	o := &Orchestrator{
		manager:    manager,
		schedule:   DefaultSchedule(),
		classifier: DefaultClassifier(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if err := o.schedule.Validate(); err != nil {
		return nil, err
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}
	if o.sleep == nil {
		o.sleep = sleepCtx
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	return o, nil
}

// Schedule returns the retry schedule in use.
func (o *Orchestrator) Schedule() Schedule { return o.schedule }

// ReadOnly runs work in a read-only transaction with retries.
func ReadOnly[T any](ctx context.Context, o *Orchestrator, work Work[T]) (T, error) {
	return run(ctx, o, ReadOnlyMode, work)
}

// ReadWrite runs work in a read-write transaction with retries.
func ReadWrite[T any](ctx context.Context, o *Orchestrator, work Work[T]) (T, error) {
	return run(ctx, o, ReadWriteMode, work)
}

// ReadWriteNoResult is ReadWrite for work that only reports an error.
func (o *Orchestrator) ReadWriteNoResult(ctx context.Context, work func(ctx context.Context) error) error {
	_, err := run(ctx, o, ReadWriteMode, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, work(ctx)
	})
	return err
}

type step int

const (
	stepOK step = iota
	stepRetry
	stepFatal
)

// attempt runs one transaction and labels its outcome.
func attempt[T any](ctx context.Context, o *Orchestrator, mode Mode, work Work[T]) (T, step, error) {
	v, err := execute(ctx, o.manager, mode, work)
	if err == nil {
		return v, stepOK, nil
	}
	if o.classifier.Classify(err) == Retryable {
		return v, stepRetry, err
	}
	return v, stepFatal, err
}

// callKey marks a context that is already inside an orchestrated call.
type callKey struct{}

func run[T any](ctx context.Context, o *Orchestrator, mode Mode, work Work[T]) (T, error) {
	if ctx.Value(callKey{}) != nil {
		// Nested call: join the outer transaction for a single run and let the
		// outer loop classify and retry.
		return execute(ctx, o.manager, mode, work)
	}
	ctx = context.WithValue(ctx, callKey{}, struct{}{})
	var zero T
	bo := o.schedule.backOff()
	var last error
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			if last != nil {
				err = errors.Join(err, last)
			}
			return zero, o.fail(mode, nonRetryable(n-1, err))
		}
		o.observer.Attempt(mode, n)
		v, st, err := attempt(ctx, o, mode, work)
		switch st {
		case stepOK:
			o.observer.Done(mode, n, nil)
			return v, nil
		case stepFatal:
			if k, ok := KindOf(err); ok && k != KindRetryable {
				o.observer.Done(mode, n, err)
				return zero, err
			}
			return zero, o.fail(mode, nonRetryable(n, err))
		}
		last = err
		if bo.NextBackOff() == backoff.Stop {
			return zero, o.fail(mode, exhausted(n, err))
		}
		delay := o.schedule.Delay(n)
		o.observer.Retry(mode, n, delay, err)
		o.log.Warn("tx.retry",
			zap.String("mode", mode.String()),
			zap.Int("attempt", n),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		// A cancelled wait is picked up by the ctx check at the top of the loop.
		_ = o.sleep(ctx, delay)
	}
}

func (o *Orchestrator) fail(mode Mode, f *Failure) error {
	o.observer.Done(mode, f.Attempts, f)
	log := o.log.Warn
	if f.Kind == KindExhausted {
		log = o.log.Error
	}
	log("tx.failed",
		zap.String("mode", mode.String()),
		zap.String("kind", f.Kind.String()),
		zap.Int("attempts", f.Attempts),
		zap.Error(f.Cause),
	)
	return f
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
