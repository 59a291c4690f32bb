package transaction

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Class is the retry decision for a failure.
type Class int

const (
	NonRetryable Class = iota
	Retryable
)

func (c Class) String() string {
	if c == Retryable {
		return "retryable"
	}
	return "non_retryable"
}

// Storage-neutral failure conditions. Repositories return (or wrap) these
// when the underlying store does not speak PostgreSQL.
var (
	ErrOptimisticLock      = errors.New("optimistic lock: row version changed")
	ErrTxUnavailable       = errors.New("transaction unavailable")
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
)

// PostgreSQL error codes the rules recognise.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"

	pgClassConnectionException = "08"
	pgCodeTooManyConnections   = "53300"
	pgCodeCannotConnectNow     = "57P03"
	pgCodeLockNotAvailable     = "55P03"

	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
)

// maxUnwrapDepth bounds the walk over a causal chain.
const maxUnwrapDepth = 16

// Rule matches a single error in a causal chain. Match must not unwrap.
type Rule struct {
	Name  string
	Class Class
	Match func(err error) bool
}

var defaultRules = []Rule{
	{Name: "tagged_failure", Class: Retryable, Match: isRetryableFailure},
	{Name: "tagged_failure", Class: NonRetryable, Match: isTerminalFailure},
	{Name: "optimistic_lock", Class: Retryable, Match: isOptimisticConflict},
	{Name: "tx_unavailable", Class: Retryable, Match: isTxUnavailable},
	{Name: "constraint_race", Class: Retryable, Match: isConstraintRace},
}

// Classifier maps failures to a retry decision using a fixed rule list.
// The zero value uses the default rules.
type Classifier struct {
	rules []Rule
}

// DefaultClassifier returns the classifier used in production.
func DefaultClassifier() Classifier { return Classifier{rules: defaultRules} }

// Rules returns a copy of the rule list, for auditing.
func (c Classifier) Rules() []Rule {
	rules := c.rules
	if rules == nil {
		rules = defaultRules
	}
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Classify walks err's causal chain breadth first and returns the class of
// the first rule that matches. Unrecognised chains are NonRetryable.
func (c Classifier) Classify(err error) Class {
	class, _ := c.classify(err)
	return class
}

func (c Classifier) classify(err error) (Class, string) {
	if err == nil {
		return NonRetryable, ""
	}
	rules := c.rules
	if rules == nil {
		rules = defaultRules
	}
	level := []error{err}
	for depth := 0; depth < maxUnwrapDepth && len(level) > 0; depth++ {
		var next []error
		for _, e := range level {
			for _, r := range rules {
				if r.Match(e) {
					return r.Class, r.Name
				}
			}
			next = append(next, unwrapOnce(e)...)
		}
		level = next
	}
	return NonRetryable, ""
}

func unwrapOnce(err error) []error {
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		return u.Unwrap()
	case interface{ Unwrap() error }:
		if inner := u.Unwrap(); inner != nil {
			return []error{inner}
		}
	}
	return nil
}

func isRetryableFailure(err error) bool {
	f, ok := err.(*Failure)
	return ok && f.Kind == KindRetryable
}

func isTerminalFailure(err error) bool {
	f, ok := err.(*Failure)
	return ok && f.Kind != KindRetryable
}

func isOptimisticConflict(err error) bool {
	if err == ErrOptimisticLock {
		return true
	}
	code, ok := pgCode(err)
	return ok && (code == pgCodeSerializationFailure || code == pgCodeDeadlockDetected)
}

func isTxUnavailable(err error) bool {
	if err == ErrTxUnavailable {
		return true
	}
	if _, ok := err.(*pgconn.ConnectError); ok {
		return true
	}
	if s, ok := err.(interface{ SafeToRetry() bool }); ok && s.SafeToRetry() {
		return true
	}
	code, ok := pgCode(err)
	if !ok {
		return false
	}
	switch code {
	case pgCodeTooManyConnections, pgCodeCannotConnectNow, pgCodeLockNotAvailable:
		return true
	}
	return strings.HasPrefix(code, pgClassConnectionException)
}

func isConstraintRace(err error) bool {
	if err == ErrUniqueViolation || err == ErrForeignKeyViolation {
		return true
	}
	code, ok := pgCode(err)
	return ok && (code == pgCodeUniqueViolation || code == pgCodeForeignKeyViolation)
}

func pgCode(err error) (string, bool) {
	if pgErr, ok := err.(*pgconn.PgError); ok {
		return pgErr.Code, true
	}
	return "", false
}
