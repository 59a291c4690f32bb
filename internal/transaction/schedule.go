package transaction

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Schedule is the retry policy shared by all calls of an Orchestrator.
type Schedule struct {
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	// MaxAttempts counts every attempt, the first one included.
	MaxAttempts int
}

// DefaultSchedule waits 5s, 10s and 20s between four attempts.
func DefaultSchedule() Schedule {
	return Schedule{
		InitialDelay: 5 * time.Second,
		Multiplier:   2,
		MaxDelay:     60 * time.Second,
		MaxAttempts:  4,
	}
}

// Validate checks the schedule invariants.
func (s Schedule) Validate() error {
	var errs []error
	if s.InitialDelay <= 0 {
		errs = append(errs, fmt.Errorf("initial delay must be > 0, got %s", s.InitialDelay))
	}
	if s.Multiplier < 1 {
		errs = append(errs, fmt.Errorf("multiplier must be >= 1, got %v", s.Multiplier))
	}
	if s.MaxDelay < s.InitialDelay {
		errs = append(errs, fmt.Errorf("max delay %s must be >= initial delay %s", s.MaxDelay, s.InitialDelay))
	}
	if s.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("max attempts must be >= 1, got %d", s.MaxAttempts))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid retry schedule: %w", errors.Join(errs...))
	}
	return nil
}

// Delay returns the wait after the failed attempt n (1-indexed):
// min(InitialDelay * Multiplier^(n-1), MaxDelay). The orchestrator sleeps
// exactly this long between attempts.
func (s Schedule) Delay(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	d := float64(s.InitialDelay) * math.Pow(s.Multiplier, float64(n-1))
	if d >= float64(s.MaxDelay) {
		return s.MaxDelay
	}
	return time.Duration(d)
}

// TotalDelay is the longest time a call can spend waiting between attempts:
// the sum of Delay(1) through Delay(MaxAttempts-1).
func (s Schedule) TotalDelay() time.Duration {
	var total time.Duration
	for n := 1; n < s.MaxAttempts; n++ {
		total += s.Delay(n)
	}
	return total
}

// backOff returns a fresh retry budget for one call. It yields
// MaxAttempts-1 values and then backoff.Stop; the values themselves are
// not used as waits.
func (s Schedule) backOff() backoff.BackOff {
	exp := &backoff.ExponentialBackOff{
		InitialInterval:     s.InitialDelay,
		RandomizationFactor: 0,
		Multiplier:          s.Multiplier,
		MaxInterval:         s.MaxDelay,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	exp.Reset()
	return backoff.WithMaxRetries(exp, uint64(s.MaxAttempts-1))
}
