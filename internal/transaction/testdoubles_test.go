package transaction

import (
	"context"
	"sync"
	"time"
)

// fakeManager counts transactions and records the outcome of each one.
type fakeManager struct {
	mu        sync.Mutex
	modes     []Mode
	commits   int
	rollbacks int
	beginErr  error
}

func (m *fakeManager) Do(ctx context.Context, mode Mode, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.modes = append(m.modes, mode)
	beginErr := m.beginErr
	m.mu.Unlock()
	if beginErr != nil {
		return beginErr
	}
	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.rollbacks++
		m.mu.Unlock()
		return err
	}
	m.mu.Lock()
	m.commits++
	m.mu.Unlock()
	return nil
}

func (m *fakeManager) opened() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.modes)
}

// recordingSleep captures requested delays without waiting.
type recordingSleep struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingSleep) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	return ctx.Err()
}

// scriptedWork returns the scripted errors in order, then succeeds.
type scriptedWork struct {
	calls  int
	errs   []error
	result string
}

func (w *scriptedWork) run(context.Context) (string, error) {
	w.calls++
	if w.calls <= len(w.errs) {
		return "", w.errs[w.calls-1]
	}
	return w.result, nil
}

type recordingObserver struct {
	mu       sync.Mutex
	attempts int
	retries  []int
	done     []error
}

func (r *recordingObserver) Attempt(Mode, int) {
	r.mu.Lock()
	r.attempts++
	r.mu.Unlock()
}

func (r *recordingObserver) Retry(_ Mode, attempt int, _ time.Duration, _ error) {
	r.mu.Lock()
	r.retries = append(r.retries, attempt)
	r.mu.Unlock()
}

func (r *recordingObserver) Done(_ Mode, _ int, err error) {
	r.mu.Lock()
	r.done = append(r.done, err)
	r.mu.Unlock()
}
