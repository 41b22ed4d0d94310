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
	"fmt"
	"strings"
)

// DefaultTimeoutSeconds is the default build completion budget.
const DefaultTimeoutSeconds = 30 * 60

// Job contains the parameters of the job invocation.
type Job struct {
	Name  string `yaml:"name,omitempty"`
	Token string `yaml:"token,omitempty"`
	Cause string `yaml:"cause,omitempty"`
	// Params are build parameters in name=value form.
	Params []string `yaml:"params,omitempty"`
	// Timeout is the maximum number of seconds to wait for the build to
	// complete, measured from when the job is triggered.
	Timeout int64 `yaml:"timeout,omitempty"`
}

func (j *Job) Validate() error {
	if j == nil {
		return nil
	}

	if j.Name == "" {
		return fmt.Errorf("job name is required")
	}

	if j.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	if _, err := j.ParseParams(); err != nil {
		return err
	}

	return nil
}

// ParseParams converts the name=value parameter pairs to a map.
func (j *Job) ParseParams() (map[string]string, error) {
	if len(j.Params) == 0 {
		return nil, nil
	}

	params := make(map[string]string, len(j.Params))

	for _, p := range j.Params {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid job param %q, expected name=value", p)
		}

		params[name] = value
	}

	return params, nil
}

// Merge fills empty fields from other. Flag values take precedence over
// config file values, so Merge is called with the file values as other.
func (j *Job) Merge(other *Job) {
	if other == nil {
		return
	}

	if j.Name == "" {
		j.Name = other.Name
	}

	if j.Token == "" {
		j.Token = other.Token
	}

	if j.Cause == "" {
		j.Cause = other.Cause
	}

	if len(j.Params) == 0 {
		j.Params = other.Params
	}

	if j.Timeout == DefaultTimeoutSeconds && other.Timeout != 0 {
		j.Timeout = other.Timeout
	}
}
