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

package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	trigger "github.com/jenkins-tools/trigger-go"
	"github.com/jenkins-tools/trigger-go/cmd/internal/config"
	"github.com/jenkins-tools/trigger-go/pkg/jenkins"
)

// TriggerService wires the Jenkins client and the trigger client together for
// one CLI run.
type TriggerService struct {
	client *trigger.Client
	config *trigger.TriggerConfig
	logger *slog.Logger
}

// NewTriggerService creates a service from validated CLI parameters. It
// connects to the Jenkins server, so a bad URL or bad credentials fail here.
func NewTriggerService(
	ctx context.Context,
	params *config.TriggerParams,
	logger *slog.Logger,
) (*TriggerService, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	jc, err := jenkins.NewClient(ctx, jenkins.Config{
		BaseURL:  params.Jenkins.BaseURL,
		Username: params.Jenkins.Username,
		APIToken: params.Jenkins.APIToken,
	})
	if err != nil {
		return nil, err
	}

	client, err := trigger.NewClient(jc, trigger.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	jobParams, err := params.Job.ParseParams()
	if err != nil {
		return nil, err
	}

	triggerConfig := trigger.NewTriggerConfig(params.Job.Name, params.Job.Token)
	triggerConfig.JobCause = params.Job.Cause
	triggerConfig.JobParams = jobParams
	triggerConfig.Timeout = time.Duration(params.Job.Timeout) * time.Second

	return &TriggerService{
		client: client,
		config: triggerConfig,
		logger: logger,
	}, nil
}

// Run triggers the build and blocks until it completes, returning an error
// when the build does not succeed.
func (s *TriggerService) Run(ctx context.Context) error {
	handler, err := s.client.TriggerBuild(ctx, s.config)
	if err != nil {
		return err
	}

	status, err := handler.Wait(ctx)
	if err != nil {
		return err
	}

	stats := handler.Stats()
	s.logger.Info("build finished",
		slog.String("build", handler.Build().Name()),
		slog.String("status", string(status)),
		slog.Duration("queued", stats.GetQueuedFor()),
		slog.Duration("duration", stats.GetDuration()),
	)

	// The terminal status goes to stdout for script consumers.
	fmt.Println(status)

	if !status.Succeeded() {
		return fmt.Errorf("build %s finished with status %s", handler.Build().Name(), status)
	}

	return nil
}
