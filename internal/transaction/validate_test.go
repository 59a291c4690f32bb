package transaction

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func nonEmpty(s string) bool { return utf8.RuneCountInString(s) > 0 }

func TestValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, Validate("acme", nonEmpty, "name: required"))

	err := Validate("", nonEmpty, "name: required", "name: 1-100 characters")
	require.True(t, IsValidation(err))
	require.Equal(t, []string{"name: required", "name: 1-100 characters"}, Violations(err))

	err = Validate(-1, func(n int) bool { return n >= 0 })
	require.Equal(t, []string{"invalid value"}, Violations(err))
}

func TestValidate_NeverOpensTransaction(t *testing.T) {
	t.Parallel()
	o, m, _ := newTestOrchestrator(t, fastSchedule(3))

	call := func(name string) error {
		if err := Validate(name, nonEmpty, "name: required"); err != nil {
			return err
		}
		return o.ReadWriteNoResult(context.Background(), func(context.Context) error { return nil })
	}

	require.True(t, IsValidation(call("")))
	require.Zero(t, m.opened())
	require.NoError(t, call("acme"))
	require.Equal(t, 1, m.opened())
}

func TestValidator(t *testing.T) {
	t.Parallel()
	var v Validator
	require.NoError(t, v.Err())

	v.Check(true, "ignored").Check(false, "sku: pattern").Check(false, "price: >= 0")
	err := v.Err()
	require.True(t, IsValidation(err))
	require.Equal(t, []string{"sku: pattern", "price: >= 0"}, Violations(err))
	require.Contains(t, err.Error(), "sku: pattern; price: >= 0")
}
