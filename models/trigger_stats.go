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

package models

import (
	"sync/atomic"
	"time"
)

// TriggerStats stores the stats of a trigger operation.
type TriggerStats struct {
	// The number of completed status-poll attempts.
	pollAttempts atomic.Uint32

	start     time.Time
	queuedFor time.Duration
	duration  time.Duration
}

// Start marks the beginning of the trigger operation.
func (s *TriggerStats) Start() {
	s.start = time.Now()
}

// MarkBuilding records how long the invocation waited in the Jenkins queue
// before the build started.
func (s *TriggerStats) MarkBuilding() {
	s.queuedFor = time.Since(s.start)
}

// Stop freezes the total duration. Safe to call more than once; only the
// first call takes effect.
func (s *TriggerStats) Stop() {
	if s.duration == 0 {
		s.duration = time.Since(s.start)
	}
}

// IncrPollAttempts counts one completed status-poll attempt.
func (s *TriggerStats) IncrPollAttempts() {
	s.pollAttempts.Add(1)
}

// GetPollAttempts returns the number of completed status-poll attempts.
func (s *TriggerStats) GetPollAttempts() uint32 {
	return s.pollAttempts.Load()
}

// GetQueuedFor returns the time spent waiting in the Jenkins queue.
func (s *TriggerStats) GetQueuedFor() time.Duration {
	return s.queuedFor
}

// GetDuration returns the total duration of the trigger operation.
func (s *TriggerStats) GetDuration() time.Duration {
	return s.duration
}
