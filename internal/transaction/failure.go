package transaction

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the category of a failure surfaced to callers.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindRetryable
	KindNonRetryable
	KindExhausted
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRetryable:
		return "retryable"
	case KindNonRetryable:
		return "non_retryable"
	case KindExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Failure is the error returned by the orchestrator and the validation gate.
// It is never modified after construction.
type Failure struct {
	Kind    Kind
	Message string
	// Messages lists violated constraints; only set for KindValidation.
	Messages []string
	// Attempts is the number of transactional attempts made before giving up.
	Attempts int
	Cause    error
}

func (f *Failure) Error() string {
	var b strings.Builder
	b.WriteString(f.Kind.String())
	b.WriteString(": ")
	b.WriteString(f.Message)
	if len(f.Messages) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(f.Messages, "; "))
		b.WriteString("]")
	}
	if f.Cause != nil {
		b.WriteString(": ")
		b.WriteString(f.Cause.Error())
	}
	return b.String()
}

func (f *Failure) Unwrap() error { return f.Cause }

// NewValidation builds a Validation failure from violated constraint messages.
func NewValidation(messages ...string) *Failure {
	msgs := make([]string, len(messages))
	copy(msgs, messages)
	return &Failure{Kind: KindValidation, Message: "invalid input", Messages: msgs}
}

// Retry marks err as retryable regardless of the classification rules.
// Use it from a unit of work when a transient condition is detected that the
// storage layer does not report on its own.
func Retry(err error) error {
	if err == nil {
		return nil
	}
	return &Failure{Kind: KindRetryable, Message: "transient failure", Cause: err}
}

func nonRetryable(attempts int, cause error) *Failure {
	return &Failure{
		Kind:     KindNonRetryable,
		Message:  fmt.Sprintf("transaction failed after %d attempt(s)", attempts),
		Attempts: attempts,
		Cause:    cause,
	}
}

func exhausted(attempts int, cause error) *Failure {
	return &Failure{
		Kind:     KindExhausted,
		Message:  fmt.Sprintf("retry budget exhausted after %d attempt(s)", attempts),
		Attempts: attempts,
		Cause:    cause,
	}
}

// KindOf returns the kind of the outermost Failure in err's chain.
func KindOf(err error) (Kind, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return 0, false
}

// IsValidation reports whether err is (or wraps) a Validation failure.
func IsValidation(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindValidation
}

// Violations returns the messages of the Validation failure in err's chain.
func Violations(err error) []string {
	var f *Failure
	if errors.As(err, &f) && f.Kind == KindValidation {
		return f.Messages
	}
	return nil
}
