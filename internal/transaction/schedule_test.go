package transaction

import (
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
)

func TestSchedule_Default(t *testing.T) {
	t.Parallel()
	s := DefaultSchedule()
	require.NoError(t, s.Validate())
	require.Equal(t, 5*time.Second, s.InitialDelay)
	require.Equal(t, 2.0, s.Multiplier)
	require.Equal(t, 60*time.Second, s.MaxDelay)
	require.Equal(t, 4, s.MaxAttempts)
}

func TestSchedule_Validate(t *testing.T) {
	t.Parallel()
	valid := DefaultSchedule()

	cases := map[string]func(s *Schedule){
		"zero initial delay":   func(s *Schedule) { s.InitialDelay = 0 },
		"multiplier below one": func(s *Schedule) { s.Multiplier = 0.5 },
		"max below initial":    func(s *Schedule) { s.MaxDelay = time.Second },
		"zero attempts":        func(s *Schedule) { s.MaxAttempts = 0 },
	}
	for name, mutate := range cases {
		s := valid
		mutate(&s)
		require.Error(t, s.Validate(), name)
	}

	flat := Schedule{InitialDelay: time.Second, Multiplier: 1, MaxDelay: time.Second, MaxAttempts: 1}
	require.NoError(t, flat.Validate())
}

func TestSchedule_Delay(t *testing.T) {
	t.Parallel()
	s := Schedule{InitialDelay: 100 * time.Millisecond, Multiplier: 3, MaxDelay: 2 * time.Second, MaxAttempts: 6}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 300 * time.Millisecond},
		{3, 900 * time.Millisecond},
		{4, 2 * time.Second}, // 2.7s capped
		{5, 2 * time.Second},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, s.Delay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestSchedule_BackOffMatchesDelay(t *testing.T) {
	t.Parallel()
	s := DefaultSchedule()
	s.MaxAttempts = 6
	bo := s.backOff()
	for n := 1; n < s.MaxAttempts; n++ {
		require.Equal(t, s.Delay(n), bo.NextBackOff(), "attempt %d", n)
	}
	require.Equal(t, backoff.Stop, bo.NextBackOff())
}

func TestSchedule_BackOffIsPerCall(t *testing.T) {
	t.Parallel()
	s := DefaultSchedule()
	a, b := s.backOff(), s.backOff()
	require.Equal(t, 5*time.Second, a.NextBackOff())
	require.Equal(t, 10*time.Second, a.NextBackOff())
	require.Equal(t, 5*time.Second, b.NextBackOff())
}

func TestSchedule_TotalDelay(t *testing.T) {
	t.Parallel()
	require.Equal(t, 35*time.Second, DefaultSchedule().TotalDelay())

	s := DefaultSchedule()
	s.MaxAttempts = 1
	require.Zero(t, s.TotalDelay())

	s.MaxAttempts = 7
	require.Equal(t, (5+10+20+40+60+60)*time.Second, s.TotalDelay())
}
