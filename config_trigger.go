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

package trigger

import (
	"fmt"
	"time"

	"github.com/jenkins-tools/trigger-go/backoff"
)

const (
	// DefaultTimeout is the default budget for waiting on build completion,
	// measured from when the job is triggered.
	DefaultTimeout = 30 * time.Minute
)

// TriggerConfig contains configuration for a trigger operation.
type TriggerConfig struct {
	// JobName is the Jenkins job to trigger, e.g. "deploy-service".
	JobName string
	// JobToken is the authorization token configured on the job under
	// "Trigger builds remotely".
	JobToken string
	// JobCause is text recorded as the build cause (optional).
	JobCause string
	// JobParams are string parameters passed to the job (optional).
	JobParams map[string]string
	// Timeout is the maximum time to wait for the build to complete.
	// Zero means a single immediate status check with no retries.
	Timeout time.Duration
	// BackoffBase is the exponential growth factor of the completion poll.
	// If zero, backoff.DefaultBase is used.
	BackoffBase float64
	// BackoffFactor is the initial wait of the completion poll.
	// If zero, backoff.DefaultFactor is used.
	BackoffFactor time.Duration
}

// NewTriggerConfig returns a trigger configuration for the given job with the
// default timeout and backoff settings.
func NewTriggerConfig(jobName, jobToken string) *TriggerConfig {
	return &TriggerConfig{
		JobName:  jobName,
		JobToken: jobToken,
		Timeout:  DefaultTimeout,
	}
}

func (c *TriggerConfig) validate() error {
	if c.JobName == "" {
		return fmt.Errorf("job name is required")
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %s", c.Timeout)
	}

	if c.BackoffBase != 0 && c.BackoffBase <= 1 {
		return fmt.Errorf("backoff base must be greater than 1, got %v", c.BackoffBase)
	}

	if c.BackoffFactor < 0 {
		return fmt.Errorf("backoff factor must be non-negative, got %s", c.BackoffFactor)
	}

	return nil
}

// schedule builds the completion-poll schedule from the configured timeout
// and backoff settings.
func (c *TriggerConfig) schedule() (*backoff.Schedule, error) {
	opts := make([]backoff.Option, 0, 2)

	if c.BackoffBase != 0 {
		opts = append(opts, backoff.WithBase(c.BackoffBase))
	}

	if c.BackoffFactor != 0 {
		opts = append(opts, backoff.WithFactor(c.BackoffFactor))
	}

	return backoff.NewSchedule(c.Timeout, opts...)
}
