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

import "fmt"

// Jenkins contains the Jenkins server connection parameters.
type Jenkins struct {
	BaseURL  string `yaml:"base-url,omitempty"`
	Username string `yaml:"username,omitempty"`
	APIToken string `yaml:"api-token,omitempty"`
}

func (j *Jenkins) Validate() error {
	if j == nil {
		return nil
	}

	if j.BaseURL == "" {
		return fmt.Errorf("base-url is required")
	}

	if j.Username == "" {
		return fmt.Errorf("username is required")
	}

	if j.APIToken == "" {
		return fmt.Errorf("api-token is required")
	}

	return nil
}

// Merge fills empty fields from other. Flag values take precedence over
// config file values, so Merge is called with the file values as other.
func (j *Jenkins) Merge(other *Jenkins) {
	if other == nil {
		return
	}

	if j.BaseURL == "" {
		j.BaseURL = other.BaseURL
	}

	if j.Username == "" {
		j.Username = other.Username
	}

	if j.APIToken == "" {
		j.APIToken = other.APIToken
	}
}
