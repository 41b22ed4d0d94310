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

// Package backoff computes bounded exponential backoff schedules for polling
// loops that must not exceed a total timeout budget.
package backoff

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultBase is the default exponential growth factor.
	DefaultBase = 2.0
	// DefaultFactor is the default initial wait.
	DefaultFactor = time.Second
)

// Schedule is a finite, precomputed sequence of wait durations paired with a
// maximum attempt count. The waits follow a capped exponential progression
// factor, factor*base, factor*base^2, ... with one final remainder wait so
// that the sum over all waits equals the requested timeout exactly. A polling
// loop that sleeps Waits()[i] between attempt i and attempt i+1 makes at most
// MaxTries() attempts and never overshoots the timeout budget.
//
// A Schedule is immutable after construction and safe for concurrent reads.
//
// Worked example for timeout=30m, base=2, factor=1s:
//
//	|wait (sec)|attempt #|total (sec)|
//	|---------:|--------:|----------:|
//	|     -    |    1    |     0     |
//	|     1    |    2    |     1     |
//	|     2    |    3    |     3     |
//	|     4    |    4    |     7     |
//	|     8    |    5    |    15     |
//	|    16    |    6    |    31     |
//	|    32    |    7    |    63     |
//	|    64    |    8    |   127     |
//	|   128    |    9    |   255     |
//	|   256    |   10    |   511     |
//	|   512    |   11    |  1023     |
//	|   777    |   12    |  1800     |
type Schedule struct {
	waits   []time.Duration
	timeout time.Duration
	base    float64
	factor  time.Duration
}

// Option configures a [Schedule].
type Option func(*Schedule)

// WithBase sets the exponential growth factor. Must be greater than 1.
func WithBase(base float64) Option {
	return func(s *Schedule) {
		s.base = base
	}
}

// WithFactor sets the initial wait duration. Must be positive.
func WithFactor(factor time.Duration) Option {
	return func(s *Schedule) {
		s.factor = factor
	}
}

// NewSchedule computes the backoff schedule for the given timeout budget.
//
// The wait sequence is built by walking the exponential progression and
// subtracting each wait from the remaining budget, so the sum of the returned
// waits equals timeout to the nanosecond regardless of how many steps the
// progression takes. When the budget left is smaller than the next
// exponential wait, the leftover becomes the final wait. A zero timeout
// produces an empty schedule with a single immediate attempt.
func NewSchedule(timeout time.Duration, opts ...Option) (*Schedule, error) {
	s := &Schedule{
		timeout: timeout,
		base:    DefaultBase,
		factor:  DefaultFactor,
	}

	for _, opt := range opts {
		opt(s)
	}

	if timeout < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %s", timeout)
	}

	if s.base <= 1 {
		return nil, fmt.Errorf("base must be greater than 1, got %v", s.base)
	}

	if s.factor <= 0 {
		return nil, fmt.Errorf("factor must be positive, got %s", s.factor)
	}

	remaining := timeout
	wait := s.factor

	for remaining >= wait {
		s.waits = append(s.waits, wait)
		remaining -= wait

		next := time.Duration(float64(wait) * s.base)
		if next <= wait {
			// Overflowed time.Duration, or the step truncated to nothing.
			return nil, errors.New("backoff wait progression stalled or overflowed")
		}

		wait = next
	}

	if remaining > 0 {
		s.waits = append(s.waits, remaining)
	}

	return s, nil
}

// Waits returns the ordered wait durations, one per retry attempt. The slice
// has MaxTries()-1 elements and must not be modified.
func (s *Schedule) Waits() []time.Duration {
	return s.waits
}

// MaxTries returns the maximum number of attempts the schedule allows,
// counting the initial attempt that happens before any wait.
func (s *Schedule) MaxTries() int {
	return len(s.waits) + 1
}

// Timeout returns the total budget the schedule was built for. It equals the
// sum of Waits().
func (s *Schedule) Timeout() time.Duration {
	return s.timeout
}
