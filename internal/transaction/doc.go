// Package transaction runs units of work inside a storage transaction and
// retries them when the failure is transient.
//
// Every call goes through the same steps: input validation, then a loop of
// transactional attempts. Each failed attempt is classified as retryable or
// not; retryable failures are attempted again after an exponential backoff
// until the schedule's attempt ceiling is reached.
//
// # Example Usage
//
//	orch, err := transaction.New(txManager,
//	    transaction.WithSchedule(transaction.DefaultSchedule()),
//	    transaction.WithLogger(log),
//	)
//
//	brand, err := transaction.ReadWrite(ctx, orch, func(ctx context.Context) (domain.Brand, error) {
//	    return repo.Create(ctx, b)
//	})
//
// # Failures
//
// Callers only ever see a *Failure whose Kind is one of Validation,
// NonRetryable or Exhausted. The original error stays reachable through
// errors.Is / errors.As.
//
// # Nesting
//
// Calls must not be nested for retries. A ReadOnly or ReadWrite call made
// from inside another call's unit of work runs its work exactly once in the
// outer transaction and returns the raw error; only the outermost call
// classifies and retries.
//
// # Re-execution
//
// A unit of work may run several times for one call. It must re-read the
// state it depends on instead of mutating values captured before the call.
package transaction
