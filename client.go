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

// Package trigger provides remote triggering of Jenkins builds with a
// bounded, backoff-paced wait for completion.
package trigger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jenkins-tools/trigger-go/internal/logging"
	"github.com/jenkins-tools/trigger-go/models"
	"golang.org/x/sync/semaphore"
)

// QueueID identifies a pending invocation in the Jenkins build queue.
type QueueID int64

// InvokeRequest carries the parameters of a remote job invocation.
type InvokeRequest struct {
	// JobName is the Jenkins job to trigger.
	JobName string
	// Token is the job's "Trigger builds remotely" authorization token.
	Token string
	// Cause is free text recorded as the build cause (optional).
	Cause string
	// Params are string build parameters passed to the job (optional).
	Params map[string]string
}

// JenkinsClient describes the Jenkins operations the trigger logic needs,
// abstracted for easy mocking.
//
//go:generate mockery --name JenkinsClient
type JenkinsClient interface {
	// JobExists reports whether the named job exists and is visible to the
	// authenticated user.
	JobExists(ctx context.Context, jobName string) (bool, error)
	// InvokeJob submits a build of the job and returns its queue handle.
	InvokeJob(ctx context.Context, req *InvokeRequest) (QueueID, error)
	// WaitForBuild blocks until the queued invocation leaves the queue and
	// starts building, then resolves the build it became.
	WaitForBuild(ctx context.Context, queueID QueueID) (models.BuildRef, error)
	// BuildRunning reports whether the build is still running.
	BuildRunning(ctx context.Context, ref models.BuildRef) (bool, error)
	// BuildStatus returns the terminal status of a finished build.
	BuildStatus(ctx context.Context, ref models.BuildRef) (models.BuildStatus, error)
}

// Client is the main entry point for the trigger package.
// It wraps a Jenkins client and provides methods to trigger builds and wait
// for their results.
// Example usage:
//
//	jc, err := jenkins.NewClient(ctx, jenkins.Config{
//		BaseURL:  "https://jenkins.example.org",
//		Username: "deployer",
//		APIToken: token,
//	})
//	if err != nil {
//		// handle error
//	}
//
//	client, err := trigger.NewClient(jc, trigger.WithID("id"))
//	if err != nil {
//		// handle error
//	}
//
//	handler, err := client.TriggerBuild(ctx, trigger.NewTriggerConfig("deploy", jobToken))
//	if err != nil {
//		// handle error
//	}
//
//	status, err := handler.Wait(ctx)
//	if err != nil {
//		// handle error
//	}
type Client struct {
	jenkinsClient  JenkinsClient
	logger         *slog.Logger
	triggerLimiter *semaphore.Weighted
	id             string
}

// ClientOpt is a functional option that allows configuring the [Client].
type ClientOpt func(*Client)

// WithID sets the ID for the [Client].
// This ID is used for logging purposes.
func WithID(id string) ClientOpt {
	return func(c *Client) {
		c.id = id
	}
}

// WithLogger sets the logger for the [Client].
func WithLogger(logger *slog.Logger) ClientOpt {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTriggerLimiter sets a semaphore that limits the number of concurrent
// trigger operations started through this client.
func WithTriggerLimiter(sem *semaphore.Weighted) ClientOpt {
	return func(c *Client) {
		c.triggerLimiter = sem
	}
}

// NewClient creates a new trigger client.
//   - jc is the Jenkins client used to submit and poll builds.
//
// options:
//   - [WithID] to set an identifier for the client.
//   - [WithLogger] to set a logger that this client will log to.
//   - [WithTriggerLimiter] to set a semaphore that is used to limit the
//     number of concurrent trigger operations.
func NewClient(jc JenkinsClient, opts ...ClientOpt) (*Client, error) {
	if jc == nil {
		return nil, errors.New("jenkins client pointer is nil")
	}

	client := &Client{
		jenkinsClient: jc,
		logger:        slog.Default(),
		id:            uuid.NewString(),
	}

	for _, opt := range opts {
		opt(client)
	}

	client.logger = client.logger.WithGroup("trigger")
	client.logger = logging.WithClient(client.logger, client.id)

	return client, nil
}

// ID returns the identifier of the client.
func (c *Client) ID() string {
	return c.id
}
