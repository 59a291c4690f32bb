package transaction

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFailure_PreservesCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("disk on fire")
	f := exhausted(4, fmt.Errorf("attempt: %w", cause))

	require.ErrorIs(t, f, cause)
	require.Equal(t, "exhausted: retry budget exhausted after 4 attempt(s): attempt: disk on fire", f.Error())

	wrapped := fmt.Errorf("create brand: %w", f)
	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	require.Equal(t, KindExhausted, kind)
}

func TestKindOf_PlainError(t *testing.T) {
	t.Parallel()
	_, ok := KindOf(errors.New("x"))
	require.False(t, ok)
	require.False(t, IsValidation(errors.New("x")))
	require.Nil(t, Violations(nonRetryable(1, errors.New("x"))))
}

func TestNewValidation_CopiesMessages(t *testing.T) {
	t.Parallel()
	msgs := []string{"a"}
	f := NewValidation(msgs...)
	msgs[0] = "b"
	require.Equal(t, []string{"a"}, f.Messages)
}

func TestRetry_Nil(t *testing.T) {
	t.Parallel()
	require.NoError(t, Retry(nil))
}

func TestKind_String(t *testing.T) {
	t.Parallel()
	require.Equal(t, "validation", KindValidation.String())
	require.Equal(t, "non_retryable", KindNonRetryable.String())
	require.Equal(t, "exhausted", KindExhausted.String())
	require.Equal(t, "retryable", KindRetryable.String())
	require.Equal(t, "unknown", Kind(0).String())
}
