// Copyright 2025 Jenkins Tools, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sum(waits []time.Duration) time.Duration {
	var total time.Duration
	for _, w := range waits {
		total += w
	}

	return total
}

func TestNewSchedule(t *testing.T) {
	t.Parallel()

	t.Run("Zero timeout gives single immediate attempt", func(t *testing.T) {
		t.Parallel()

		s, err := NewSchedule(0)
		require.NoError(t, err)
		require.Empty(t, s.Waits())
		require.Equal(t, 1, s.MaxTries())
	})

	t.Run("Exact exponential sum has no remainder wait", func(t *testing.T) {
		t.Parallel()

		// 1 + 2 + 4 = 7, so the budget is consumed by the progression alone.
		s, err := NewSchedule(7 * time.Second)
		require.NoError(t, err)
		require.Equal(t,
			[]time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
			s.Waits())
		require.Equal(t, 4, s.MaxTries())
	})

	t.Run("Leftover budget becomes the final wait", func(t *testing.T) {
		t.Parallel()

		// 1 + 2 + 4 = 7, remainder 3 before the next step of 8 would fit.
		s, err := NewSchedule(10 * time.Second)
		require.NoError(t, err)
		require.Equal(t,
			[]time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 3 * time.Second},
			s.Waits())
		require.Equal(t, 5, s.MaxTries())
	})

	t.Run("Default thirty minute budget", func(t *testing.T) {
		t.Parallel()

		s, err := NewSchedule(30 * time.Minute)
		require.NoError(t, err)

		waits := s.Waits()
		require.Len(t, waits, 11)
		require.Equal(t, 12, s.MaxTries())

		// 1,2,...,512 then the 777s remainder.
		for i := 0; i < 10; i++ {
			require.Equal(t, time.Duration(1<<i)*time.Second, waits[i])
		}

		require.Equal(t, 777*time.Second, waits[10])
		require.Equal(t, 30*time.Minute, sum(waits))
	})

	t.Run("Timeout smaller than factor waits once for the whole budget", func(t *testing.T) {
		t.Parallel()

		s, err := NewSchedule(300 * time.Millisecond)
		require.NoError(t, err)
		require.Equal(t, []time.Duration{300 * time.Millisecond}, s.Waits())
		require.Equal(t, 2, s.MaxTries())
	})

	t.Run("Timeout equal to factor is an exact single step", func(t *testing.T) {
		t.Parallel()

		s, err := NewSchedule(time.Second)
		require.NoError(t, err)
		require.Equal(t, []time.Duration{time.Second}, s.Waits())
		require.Equal(t, 2, s.MaxTries())
	})

	t.Run("Custom base and factor", func(t *testing.T) {
		t.Parallel()

		// 2 + 6 + 18 = 26, remainder 4 before 54 would fit.
		s, err := NewSchedule(30*time.Second, WithBase(3), WithFactor(2*time.Second))
		require.NoError(t, err)
		require.Equal(t,
			[]time.Duration{2 * time.Second, 6 * time.Second, 18 * time.Second, 4 * time.Second},
			s.Waits())
		require.Equal(t, 5, s.MaxTries())
	})

	t.Run("Timeout accessor matches input", func(t *testing.T) {
		t.Parallel()

		s, err := NewSchedule(90 * time.Second)
		require.NoError(t, err)
		require.Equal(t, 90*time.Second, s.Timeout())
	})
}

func TestNewScheduleValidation(t *testing.T) {
	t.Parallel()

	t.Run("Negative timeout", func(t *testing.T) {
		t.Parallel()

		_, err := NewSchedule(-1 * time.Second)
		require.ErrorContains(t, err, "timeout must be non-negative")
	})

	t.Run("Base not greater than one", func(t *testing.T) {
		t.Parallel()

		_, err := NewSchedule(time.Minute, WithBase(1))
		require.ErrorContains(t, err, "base must be greater than 1")

		_, err = NewSchedule(time.Minute, WithBase(0.5))
		require.ErrorContains(t, err, "base must be greater than 1")
	})

	t.Run("Non-positive factor", func(t *testing.T) {
		t.Parallel()

		_, err := NewSchedule(time.Minute, WithFactor(0))
		require.ErrorContains(t, err, "factor must be positive")

		_, err = NewSchedule(time.Minute, WithFactor(-time.Second))
		require.ErrorContains(t, err, "factor must be positive")
	})
}

// The waits of any valid schedule must sum to the requested timeout exactly,
// and the attempt count must always be len(waits)+1.
func TestScheduleSumInvariant(t *testing.T) {
	t.Parallel()

	timeouts := []time.Duration{
		0,
		1 * time.Nanosecond,
		999 * time.Millisecond,
		1 * time.Second,
		1500 * time.Millisecond,
		7 * time.Second,
		10 * time.Second,
		63 * time.Second,
		5 * time.Minute,
		30 * time.Minute,
		24 * time.Hour,
	}
	bases := []float64{1.5, 2, 3, 10}
	factors := []time.Duration{100 * time.Millisecond, 1 * time.Second, 7 * time.Second}

	for _, timeout := range timeouts {
		for _, base := range bases {
			for _, factor := range factors {
				s, err := NewSchedule(timeout, WithBase(base), WithFactor(factor))
				require.NoError(t, err,
					"timeout=%s base=%v factor=%s", timeout, base, factor)
				require.Equal(t, timeout, sum(s.Waits()),
					"timeout=%s base=%v factor=%s", timeout, base, factor)
				require.Equal(t, len(s.Waits())+1, s.MaxTries())
			}
		}
	}
}

// Every wait except the final remainder must follow the exponential
// progression, and the remainder must be strictly smaller than the next
// progression step.
func TestScheduleProgressionShape(t *testing.T) {
	t.Parallel()

	s, err := NewSchedule(100 * time.Second)
	require.NoError(t, err)

	waits := s.Waits()
	require.NotEmpty(t, waits)

	for i := 0; i < len(waits)-1; i++ {
		require.Equal(t, time.Duration(1<<i)*time.Second, waits[i])
	}

	last := waits[len(waits)-1]
	require.Less(t, last, time.Duration(1<<(len(waits)-1))*time.Second)
}
