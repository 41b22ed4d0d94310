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

// Package jenkins implements the trigger.JenkinsClient interface on top of
// the gojenkins REST client.
package jenkins

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bndr/gojenkins"
	trigger "github.com/jenkins-tools/trigger-go"
	"github.com/jenkins-tools/trigger-go/models"
)

// Config holds the connection settings for a Jenkins server.
type Config struct {
	// BaseURL is the base URL of the Jenkins server,
	// e.g. https://jenkins.example.org.
	BaseURL string
	// Username is the Jenkins user name.
	Username string
	// APIToken is the user's API token, available at
	// {BaseURL}/user/{Username}/configure.
	APIToken string
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}

	if c.Username == "" {
		return fmt.Errorf("username is required")
	}

	if c.APIToken == "" {
		return fmt.Errorf("API token is required")
	}

	return nil
}

// Client talks to a Jenkins server through gojenkins. It implements
// [trigger.JenkinsClient].
type Client struct {
	jenkins     *gojenkins.Jenkins
	retryPolicy *models.RetryPolicy

	mu sync.Mutex
	// Builds resolved by WaitForBuild, so BuildRunning and BuildStatus can
	// poll them without re-resolving.
	builds map[models.BuildRef]*gojenkins.Build
}

// Opt is a functional option that allows configuring the [Client].
type Opt func(*Client)

// WithRetryPolicy sets the retry policy for transient Jenkins API request
// failures. If not set, models.NewDefaultRetryPolicy is used.
func WithRetryPolicy(rp *models.RetryPolicy) Opt {
	return func(c *Client) {
		c.retryPolicy = rp
	}
}

// NewClient connects and authenticates to the Jenkins server described by
// cfg. A connection or authentication failure is returned as a
// models.BackendError of kind ErrKindConnection.
func NewClient(ctx context.Context, cfg Config, opts ...Opt) (*Client, error) {
	return newClient(ctx, cfg, nil, opts...)
}

// NewClientWithHTTPClient is like NewClient but uses the given http.Client,
// e.g. to configure TLS or a proxy.
func NewClientWithHTTPClient(
	ctx context.Context, cfg Config, httpClient *http.Client, opts ...Opt,
) (*Client, error) {
	return newClient(ctx, cfg, httpClient, opts...)
}

func newClient(ctx context.Context, cfg Config, httpClient *http.Client, opts ...Opt) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("failed to validate jenkins config: %w", err)
	}

	c := &Client{
		retryPolicy: models.NewDefaultRetryPolicy(),
		builds:      make(map[models.BuildRef]*gojenkins.Build),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.retryPolicy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retry policy: %w", err)
	}

	jenkins := gojenkins.CreateJenkins(httpClient, cfg.BaseURL, cfg.Username, cfg.APIToken)

	if _, err := jenkins.Init(ctx); err != nil {
		return nil, models.WrapBackendError(models.ErrKindConnection,
			fmt.Sprintf("failed to connect to jenkins server %s", cfg.BaseURL), err)
	}

	c.jenkins = jenkins

	return c, nil
}

// JobExists reports whether the named job exists and is visible to the
// authenticated user.
func (c *Client) JobExists(ctx context.Context, jobName string) (bool, error) {
	var exists bool

	err := executeWithRetry(c.retryPolicy, func() error {
		_, err := c.jenkins.GetJob(ctx, jobName)

		switch {
		case err == nil:
			exists = true
			return nil
		case isNotFound(err):
			exists = false
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return false, fmt.Errorf("failed to get job %s: %w", jobName, err)
	}

	return exists, nil
}

// InvokeJob submits a build of the job and returns its queue handle. The
// job's remote trigger token and the build cause are passed as request
// parameters alongside the build parameters, matching the Jenkins remote
// trigger API.
func (c *Client) InvokeJob(ctx context.Context, req *trigger.InvokeRequest) (trigger.QueueID, error) {
	job, err := c.jenkins.GetJob(ctx, req.JobName)
	if err != nil {
		return 0, fmt.Errorf("failed to get job %s: %w", req.JobName, err)
	}

	params := make(map[string]string, len(req.Params)+2)
	for k, v := range req.Params {
		params[k] = v
	}

	if req.Token != "" {
		params["token"] = req.Token
	}

	if req.Cause != "" {
		params["cause"] = req.Cause
	}

	queueID, err := job.InvokeSimple(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("failed to invoke job %s: %w", req.JobName, err)
	}

	return trigger.QueueID(queueID), nil
}

// WaitForBuild blocks until the queued invocation starts building and returns
// a reference to the build. gojenkins polls the queue item internally until
// its executable appears.
func (c *Client) WaitForBuild(ctx context.Context, queueID trigger.QueueID) (models.BuildRef, error) {
	build, err := c.jenkins.GetBuildFromQueueID(ctx, int64(queueID))
	if err != nil {
		return models.BuildRef{}, fmt.Errorf("failed to get build from queue item %d: %w", queueID, err)
	}

	ref := models.BuildRef{
		JobName: build.Job.GetName(),
		Number:  build.GetBuildNumber(),
		URL:     build.GetUrl(),
	}

	c.mu.Lock()
	c.builds[ref] = build
	c.mu.Unlock()

	return ref, nil
}

// BuildRunning reports whether the build is still running.
func (c *Client) BuildRunning(ctx context.Context, ref models.BuildRef) (bool, error) {
	build, err := c.build(ctx, ref)
	if err != nil {
		return false, err
	}

	var running bool

	err = executeWithRetry(c.retryPolicy, func() error {
		if _, err := build.Poll(ctx); err != nil {
			return err
		}

		running = build.Raw.Building

		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to poll build %s: %w", ref.Name(), err)
	}

	return running, nil
}

// BuildStatus returns the terminal status of a finished build.
func (c *Client) BuildStatus(ctx context.Context, ref models.BuildRef) (models.BuildStatus, error) {
	build, err := c.build(ctx, ref)
	if err != nil {
		return "", err
	}

	return models.BuildStatus(build.GetResult()), nil
}

// build returns the cached build for ref, resolving it from the server when
// the ref was produced elsewhere.
func (c *Client) build(ctx context.Context, ref models.BuildRef) (*gojenkins.Build, error) {
	c.mu.Lock()
	build, ok := c.builds[ref]
	c.mu.Unlock()

	if ok {
		return build, nil
	}

	build, err := c.jenkins.GetBuild(ctx, ref.JobName, ref.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to get build %s: %w", ref.Name(), err)
	}

	c.mu.Lock()
	c.builds[ref] = build
	c.mu.Unlock()

	return build, nil
}

// isNotFound reports whether err is gojenkins' representation of an HTTP 404.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "404")
}

func executeWithRetry(policy *models.RetryPolicy, command func() error) error {
	if policy == nil {
		return fmt.Errorf("retry policy cannot be nil")
	}

	var err error
	for i := range policy.MaxRetries {
		err = command()
		if err == nil {
			return nil
		}

		duration := time.Duration(float64(policy.BaseTimeout) * math.Pow(policy.Multiplier, float64(i)))
		time.Sleep(duration)
	}

	if err != nil {
		return fmt.Errorf("after %d attempts: %w", policy.MaxRetries, err)
	}

	return nil
}
