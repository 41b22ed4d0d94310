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
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jenkins-tools/trigger-go/backoff"
	"github.com/jenkins-tools/trigger-go/internal/logging"
	"github.com/jenkins-tools/trigger-go/models"
	"golang.org/x/sync/semaphore"
)

// TriggerBuild triggers a build of the job described by config and returns a
// TriggerHandler that polls the build for completion in the background.
// Use the handler's Wait method to block until the build finishes and obtain
// its terminal status.
//
// The job lookup and submission happen synchronously; a connection failure or
// an unknown job fails here, before a handler is returned. Only the
// completion poll runs in the background.
func (c *Client) TriggerBuild(ctx context.Context, config *TriggerConfig) (*TriggerHandler, error) {
	if config == nil {
		return nil, fmt.Errorf("trigger config is required")
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("failed to validate trigger config: %w", err)
	}

	schedule, err := config.schedule()
	if err != nil {
		return nil, fmt.Errorf("failed to compute poll schedule: %w", err)
	}

	if c.triggerLimiter != nil {
		if err := c.triggerLimiter.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("failed to acquire trigger limiter: %w", err)
		}
	}

	handler, err := c.startTrigger(ctx, config, schedule)
	if err != nil {
		if c.triggerLimiter != nil {
			c.triggerLimiter.Release(1)
		}

		return nil, err
	}

	return handler, nil
}

func (c *Client) startTrigger(
	ctx context.Context,
	config *TriggerConfig,
	schedule *backoff.Schedule,
) (*TriggerHandler, error) {
	logger := logging.WithJob(c.logger, config.JobName)

	stats := &models.TriggerStats{}
	stats.Start()

	exists, err := c.jenkinsClient.JobExists(ctx, config.JobName)
	if err != nil {
		return nil, models.WrapBackendError(models.ErrKindConnection,
			fmt.Sprintf("failed to look up job %s", config.JobName), err)
	}

	if !exists {
		return nil, models.NewBackendError(models.ErrKindJobNotFound,
			fmt.Sprintf("job not found: %s."+
				" Verify that you have permissions for the job"+
				" and double check the spelling of its name", config.JobName))
	}

	queueID, err := c.jenkinsClient.InvokeJob(ctx, &InvokeRequest{
		JobName: config.JobName,
		Token:   config.JobToken,
		Cause:   config.JobCause,
		Params:  config.JobParams,
	})
	if err != nil {
		return nil, models.WrapBackendError(models.ErrKindConnection,
			fmt.Sprintf("failed to invoke job %s", config.JobName), err)
	}

	logger.Info("added invocation to queue", slog.Int64("queueID", int64(queueID)))

	build, err := c.jenkinsClient.WaitForBuild(ctx, queueID)
	if err != nil {
		return nil, models.WrapBackendError(models.ErrKindConnection,
			fmt.Sprintf("failed waiting for queued job %s to start building", config.JobName), err)
	}

	stats.MarkBuilding()
	logger.Info("created build",
		slog.String("build", build.Name()),
		slog.String("url", build.URL),
	)

	handler := newTriggerHandler(ctx, c, build, schedule, stats, logger)
	handler.run()

	return handler, nil
}

// TriggerHandler polls a running build for completion.
type TriggerHandler struct {
	// Global context for the whole trigger operation.
	ctx    context.Context
	cancel context.CancelFunc

	jenkinsClient  JenkinsClient
	build          models.BuildRef
	schedule       *backoff.Schedule
	triggerLimiter *semaphore.Weighted

	logger *slog.Logger
	errors chan error
	done   chan struct{}
	id     string

	status models.BuildStatus
	stats  *models.TriggerStats

	// For graceful shutdown.
	wg sync.WaitGroup
}

func newTriggerHandler(
	ctx context.Context,
	client *Client,
	build models.BuildRef,
	schedule *backoff.Schedule,
	stats *models.TriggerStats,
	logger *slog.Logger,
) *TriggerHandler {
	id := uuid.NewString()
	logger = logging.WithHandler(logger, id, logging.HandlerTypeTrigger)

	// Derive a new cancellable context from the existing one.
	ctx, cancel := context.WithCancel(ctx)

	return &TriggerHandler{
		ctx:            ctx,
		cancel:         cancel,
		jenkinsClient:  client.jenkinsClient,
		build:          build,
		schedule:       schedule,
		triggerLimiter: client.triggerLimiter,
		logger:         logger,
		errors:         make(chan error, 1),
		done:           make(chan struct{}),
		id:             id,
		stats:          stats,
	}
}

// run starts the completion poll in the background.
func (h *TriggerHandler) run() {
	h.wg.Add(1)

	go func() {
		defer h.wg.Done()
		defer h.stats.Stop()

		if h.triggerLimiter != nil {
			defer h.triggerLimiter.Release(1)
		}

		status, err := h.pollBuild()
		if err != nil {
			h.errors <- err
			return
		}

		h.status = status

		h.logger.Info("build finished", slog.String("status", string(status)))
		close(h.done)
	}()
}

// pollBuild repeatedly checks whether the build is still running, sleeping
// the schedule's waits between checks. The first check happens immediately;
// with MaxTries attempts and MaxTries-1 waits the loop never sleeps past the
// configured timeout.
func (h *TriggerHandler) pollBuild() (models.BuildStatus, error) {
	waits := h.schedule.Waits()

	for attempt := 1; ; attempt++ {
		running, err := h.jenkinsClient.BuildRunning(h.ctx, h.build)
		if err != nil {
			return "", models.WrapBackendError(models.ErrKindConnection,
				fmt.Sprintf("failed to poll build %s", h.build.Name()), err)
		}

		h.stats.IncrPollAttempts()

		if !running {
			status, err := h.jenkinsClient.BuildStatus(h.ctx, h.build)
			if err != nil {
				return "", models.WrapBackendError(models.ErrKindConnection,
					fmt.Sprintf("failed to get status of build %s", h.build.Name()), err)
			}

			return status, nil
		}

		if attempt >= h.schedule.MaxTries() {
			return "", models.NewBackendError(models.ErrKindTimeout,
				fmt.Sprintf("timed out waiting for build %s to finish", h.build.Name()))
		}

		wait := waits[attempt-1]
		h.logger.Debug("build still running",
			slog.Int("attempt", attempt),
			slog.Duration("nextWait", wait),
		)

		if err := h.sleep(wait); err != nil {
			return "", err
		}
	}
}

func (h *TriggerHandler) sleep(d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-h.ctx.Done():
		return h.ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Wait blocks until the build finishes, the poll budget is exhausted, or one
// of the contexts is canceled. On success it returns the build's terminal
// status.
func (h *TriggerHandler) Wait(ctx context.Context) (models.BuildStatus, error) {
	var err error

	select {
	case <-h.ctx.Done():
		// When global context is done, wait until the poll routine finishes
		// properly. Global context - is context that was passed to
		// TriggerBuild() method.
		err = h.ctx.Err()
	case <-ctx.Done():
		// When local context is done, we cancel the global context, then wait
		// until the poll routine finishes properly.
		// Local context - is context that was passed to Wait() method.
		h.cancel()

		err = ctx.Err()
	case err = <-h.errors:
		// On error, we cancel the global context to stop the poll routine and
		// prevent leaks.
		h.cancel()
	case <-h.done: // Success.
	}

	// Wait until the poll routine ended.
	h.wg.Wait()

	if err != nil {
		return "", err
	}

	return h.status, nil
}

// Build returns the reference of the build being polled.
func (h *TriggerHandler) Build() models.BuildRef {
	return h.build
}

// Stats returns the statistics of the trigger operation.
func (h *TriggerHandler) Stats() *models.TriggerStats {
	return h.stats
}
