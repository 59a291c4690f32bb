package transaction

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newTestOrchestrator(t *testing.T, s Schedule, opts ...Option) (*Orchestrator, *fakeManager, *recordingSleep) {
	t.Helper()
	m := &fakeManager{}
	rs := &recordingSleep{}
	o, err := New(m, append([]Option{WithSchedule(s), WithSleep(rs.sleep)}, opts...)...)
	require.NoError(t, err)
	return o, m, rs
}

func fastSchedule(attempts int) Schedule {
	return Schedule{InitialDelay: time.Millisecond, Multiplier: 2, MaxDelay: 10 * time.Millisecond, MaxAttempts: attempts}
}

func Test_New_RejectsInvalidSchedule(t *testing.T) {
	t.Parallel()
	_, err := New(&fakeManager{}, WithSchedule(Schedule{}))
	require.Error(t, err)

	_, err = New(nil)
	require.Error(t, err)
}

func Test_ReadWrite_SuccessFirstAttempt(t *testing.T) {
	t.Parallel()
	o, m, rs := newTestOrchestrator(t, fastSchedule(3))
	w := &scriptedWork{result: "ok"}

	got, err := ReadWrite(context.Background(), o, w.run)
	require.NoError(t, err)
	require.Equal(t, "ok", got)
	require.Equal(t, 1, w.calls)
	require.Equal(t, 1, m.commits)
	require.Empty(t, rs.delays)
	require.Equal(t, []Mode{ReadWriteMode}, m.modes)
}

func Test_ReadOnly_RequestsReadOnlyMode(t *testing.T) {
	t.Parallel()
	o, m, _ := newTestOrchestrator(t, fastSchedule(1))
	_, err := ReadOnly(context.Background(), o, func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
	require.Len(t, m.modes, 1)
	require.True(t, m.modes[0].ReadOnly())
	require.Equal(t, IsolationRepeatableRead, m.modes[0].Isolation)
	require.Equal(t, PropagationRequired, m.modes[0].Propagation)
}

func Test_AlwaysRetryable_RunsMaxAttemptsThenExhausted(t *testing.T) {
	t.Parallel()
	for _, k := range []int{1, 2, 4, 7} {
		k := k
		t.Run(fmt.Sprintf("max_%d", k), func(t *testing.T) {
			t.Parallel()
			o, m, rs := newTestOrchestrator(t, fastSchedule(k))
			calls := 0
			var last error
			_, err := ReadWrite(context.Background(), o, func(context.Context) (string, error) {
				calls++
				last = fmt.Errorf("attempt %d: %w", calls, ErrOptimisticLock)
				return "", last
			})
			require.Equal(t, k, calls)
			require.Equal(t, k, m.rollbacks)
			require.Len(t, rs.delays, k-1)

			var f *Failure
			require.ErrorAs(t, err, &f)
			require.Equal(t, KindExhausted, f.Kind)
			require.Equal(t, k, f.Attempts)
			require.Same(t, last, f.Cause)
			require.ErrorIs(t, err, ErrOptimisticLock)
			require.Contains(t, f.Message, "exhausted")
		})
	}
}

func Test_NonRetryable_RunsOnce(t *testing.T) {
	t.Parallel()
	o, m, rs := newTestOrchestrator(t, fastSchedule(4))
	w := &scriptedWork{errs: []error{errBoom}}

	_, err := ReadWrite(context.Background(), o, w.run)
	require.Equal(t, 1, w.calls)
	require.Equal(t, 1, m.rollbacks)
	require.Empty(t, rs.delays)

	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindNonRetryable, kind)
	require.ErrorIs(t, err, errBoom)
}

func Test_RetryableTwiceThenSuccess(t *testing.T) {
	t.Parallel()
	o, m, rs := newTestOrchestrator(t, fastSchedule(3))
	serialization := &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
	w := &scriptedWork{errs: []error{serialization, ErrTxUnavailable}, result: "done"}

	got, err := ReadWrite(context.Background(), o, w.run)
	require.NoError(t, err)
	require.Equal(t, "done", got)
	require.Equal(t, 3, w.calls)
	require.Equal(t, 2, m.rollbacks)
	require.Equal(t, 1, m.commits)
	require.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, rs.delays)
}

func Test_RetryableThenNonRetryable_StopsAtFatal(t *testing.T) {
	t.Parallel()
	o, _, rs := newTestOrchestrator(t, fastSchedule(5))
	w := &scriptedWork{errs: []error{ErrOptimisticLock, errBoom, ErrOptimisticLock}}

	_, err := ReadWrite(context.Background(), o, w.run)
	require.Equal(t, 2, w.calls)
	require.Len(t, rs.delays, 1)

	var f *Failure
	require.ErrorAs(t, err, &f)
	require.Equal(t, KindNonRetryable, f.Kind)
	require.Equal(t, 2, f.Attempts)
	require.ErrorIs(t, err, errBoom)
}

func Test_DefaultSchedule_DelaysBeforeExhaustion(t *testing.T) {
	t.Parallel()
	o, _, rs := newTestOrchestrator(t, DefaultSchedule())
	calls := 0
	err := o.ReadWriteNoResult(context.Background(), func(context.Context) error {
		calls++
		return ErrOptimisticLock
	})
	require.Equal(t, 4, calls)
	require.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second, 20 * time.Second}, rs.delays)
	kind, _ := KindOf(err)
	require.Equal(t, KindExhausted, kind)
}

func Test_ReadWriteNoResult_PropagatesFailures(t *testing.T) {
	t.Parallel()
	o, m, _ := newTestOrchestrator(t, fastSchedule(2))

	require.NoError(t, o.ReadWriteNoResult(context.Background(), func(context.Context) error { return nil }))
	require.Equal(t, 1, m.commits)

	err := o.ReadWriteNoResult(context.Background(), func(context.Context) error { return errBoom })
	kind, _ := KindOf(err)
	require.Equal(t, KindNonRetryable, kind)
}

func Test_ValidationFromWork_IsNotRewrapped(t *testing.T) {
	t.Parallel()
	o, _, rs := newTestOrchestrator(t, fastSchedule(4))
	calls := 0
	_, err := ReadWrite(context.Background(), o, func(context.Context) (int, error) {
		calls++
		return 0, NewValidation("quantity: must not be negative")
	})
	require.Equal(t, 1, calls)
	require.Empty(t, rs.delays)
	require.True(t, IsValidation(err))
	require.Equal(t, []string{"quantity: must not be negative"}, Violations(err))
}

func Test_ExplicitRetryMarker(t *testing.T) {
	t.Parallel()
	o, _, _ := newTestOrchestrator(t, fastSchedule(2))
	w := &scriptedWork{errs: []error{Retry(errBoom)}, result: "x"}
	got, err := ReadWrite(context.Background(), o, w.run)
	require.NoError(t, err)
	require.Equal(t, "x", got)
	require.Equal(t, 2, w.calls)
}

func Test_BeginFailure_IsClassified(t *testing.T) {
	t.Parallel()
	m := &fakeManager{beginErr: &pgconn.PgError{Code: "53300", Message: "too many connections"}}
	rs := &recordingSleep{}
	o, err := New(m, WithSchedule(fastSchedule(3)), WithSleep(rs.sleep))
	require.NoError(t, err)

	calls := 0
	_, err = ReadOnly(context.Background(), o, func(context.Context) (int, error) {
		calls++
		return 1, nil
	})
	require.Zero(t, calls)
	require.Equal(t, 3, m.opened())
	kind, _ := KindOf(err)
	require.Equal(t, KindExhausted, kind)
}

func Test_CancelledContext_StopsBeforeNextAttempt(t *testing.T) {
	t.Parallel()
	o, _, _ := newTestOrchestrator(t, fastSchedule(5))
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := ReadWrite(ctx, o, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, ErrOptimisticLock
	})
	require.Equal(t, 1, calls)
	var f *Failure
	require.ErrorAs(t, err, &f)
	require.Equal(t, KindNonRetryable, f.Kind)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, ErrOptimisticLock)
}

func Test_CancelledBeforeStart_OpensNoTransaction(t *testing.T) {
	t.Parallel()
	o, m, _ := newTestOrchestrator(t, fastSchedule(3))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadOnly(ctx, o, func(context.Context) (int, error) { return 1, nil })
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, m.opened())
}

func Test_Observer_SeesLifecycle(t *testing.T) {
	t.Parallel()
	ob := &recordingObserver{}
	o, _, _ := newTestOrchestrator(t, fastSchedule(3), WithObserver(ob))
	w := &scriptedWork{errs: []error{ErrOptimisticLock}, result: "ok"}
	_, err := ReadWrite(context.Background(), o, w.run)
	require.NoError(t, err)
	require.Equal(t, 2, ob.attempts)
	require.Equal(t, []int{1}, ob.retries)
	require.Equal(t, []error{nil}, ob.done)
}

func Test_SleepCtx_ReturnsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	err := sleepCtx(ctx, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
	require.Less(t, time.Since(start), time.Second)
}

func Test_FractionalMultiplier_WaitsMatchDelay(t *testing.T) {
	t.Parallel()
	s := Schedule{InitialDelay: 333 * time.Millisecond, Multiplier: 1.3, MaxDelay: 10 * time.Minute, MaxAttempts: 12}
	o, _, rs := newTestOrchestrator(t, s)
	err := o.ReadWriteNoResult(context.Background(), func(context.Context) error { return ErrOptimisticLock })
	kind, _ := KindOf(err)
	require.Equal(t, KindExhausted, kind)
	require.Len(t, rs.delays, s.MaxAttempts-1)
	for i, d := range rs.delays {
		require.Equal(t, s.Delay(i+1), d, "wait after attempt %d", i+1)
	}
}

func Test_NestedCall_RetriesOnlyAtOutermost(t *testing.T) {
	t.Parallel()
	o, _, rs := newTestOrchestrator(t, fastSchedule(3))
	outer, inner := 0, 0
	_, err := ReadWrite(context.Background(), o, func(ctx context.Context) (int, error) {
		outer++
		return ReadWrite(ctx, o, func(context.Context) (int, error) {
			inner++
			return 0, ErrOptimisticLock
		})
	})
	require.Equal(t, 3, outer)
	require.Equal(t, 3, inner)
	require.Len(t, rs.delays, 2)
	require.ErrorIs(t, err, ErrOptimisticLock)
	kind, _ := KindOf(err)
	require.Equal(t, KindExhausted, kind)
}
