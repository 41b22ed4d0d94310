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

package config

import (
	"fmt"

	"github.com/jenkins-tools/trigger-go/cmd/internal/models"
)

// TriggerParams groups all parameters of a trigger run.
type TriggerParams struct {
	App     *models.App     `yaml:"-"`
	Jenkins *models.Jenkins `yaml:"jenkins,omitempty"`
	Job     *models.Job     `yaml:"job,omitempty"`
}

// Load merges an optional YAML config file into params. Values set on the
// command line take precedence over file values.
func Load(params *TriggerParams) error {
	if params.App == nil || params.App.Config == "" {
		return nil
	}

	fileParams := &TriggerParams{}
	if err := decodeFromFile(params.App.Config, fileParams); err != nil {
		return err
	}

	params.Jenkins.Merge(fileParams.Jenkins)
	params.Job.Merge(fileParams.Job)

	return nil
}

// Validate checks all parameters of a trigger run.
func (p *TriggerParams) Validate() error {
	if err := p.Jenkins.Validate(); err != nil {
		return fmt.Errorf("invalid jenkins params: %w", err)
	}

	if err := p.Job.Validate(); err != nil {
		return fmt.Errorf("invalid job params: %w", err)
	}

	return nil
}
