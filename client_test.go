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
	"log/slog"
	"sync"
	"testing"

	"github.com/jenkins-tools/trigger-go/models"
	"github.com/stretchr/testify/require"
)

// fakeJenkins is an in-memory JenkinsClient for testing the trigger logic
// without a live Jenkins server.
type fakeJenkins struct {
	mu sync.Mutex

	jobs   map[string]bool
	status models.BuildStatus
	// Number of BuildRunning calls that report the build as still running
	// before it finishes. Negative means the build never finishes.
	runningPolls int
	polls        int
	invoked      []*InvokeRequest

	jobExistsErr error
	invokeErr    error
	waitErr      error
	runningErr   error
	statusErr    error
}

func newFakeJenkins(jobName string) *fakeJenkins {
	return &fakeJenkins{
		jobs:   map[string]bool{jobName: true},
		status: models.BuildStatusSuccess,
	}
}

func (f *fakeJenkins) JobExists(_ context.Context, jobName string) (bool, error) {
	if f.jobExistsErr != nil {
		return false, f.jobExistsErr
	}

	return f.jobs[jobName], nil
}

func (f *fakeJenkins) InvokeJob(_ context.Context, req *InvokeRequest) (QueueID, error) {
	if f.invokeErr != nil {
		return 0, f.invokeErr
	}

	f.mu.Lock()
	f.invoked = append(f.invoked, req)
	f.mu.Unlock()

	return QueueID(101), nil
}

func (f *fakeJenkins) WaitForBuild(_ context.Context, _ QueueID) (models.BuildRef, error) {
	if f.waitErr != nil {
		return models.BuildRef{}, f.waitErr
	}

	return models.BuildRef{
		JobName: "deploy",
		Number:  7,
		URL:     "https://jenkins.example.org/job/deploy/7/",
	}, nil
}

func (f *fakeJenkins) BuildRunning(_ context.Context, _ models.BuildRef) (bool, error) {
	if f.runningErr != nil {
		return false, f.runningErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.polls++
	if f.runningPolls < 0 {
		return true, nil
	}

	return f.polls <= f.runningPolls, nil
}

func (f *fakeJenkins) BuildStatus(_ context.Context, _ models.BuildRef) (models.BuildStatus, error) {
	if f.statusErr != nil {
		return "", f.statusErr
	}

	return f.status, nil
}

func (f *fakeJenkins) pollCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.polls
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("Nil jenkins client", func(t *testing.T) {
		t.Parallel()

		_, err := NewClient(nil)
		require.ErrorContains(t, err, "jenkins client pointer is nil")
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Parallel()

		client, err := NewClient(newFakeJenkins("deploy"))
		require.NoError(t, err)
		require.NotEmpty(t, client.ID())
	})

	t.Run("Options applied", func(t *testing.T) {
		t.Parallel()

		client, err := NewClient(newFakeJenkins("deploy"),
			WithID("test-client"),
			WithLogger(slog.Default()),
		)
		require.NoError(t, err)
		require.Equal(t, "test-client", client.ID())
	})
}

func TestTriggerConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *TriggerConfig
		wantErr string
	}{
		{
			name:    "missing job name",
			config:  &TriggerConfig{},
			wantErr: "job name is required",
		},
		{
			name:    "negative timeout",
			config:  &TriggerConfig{JobName: "deploy", Timeout: -1},
			wantErr: "timeout must be non-negative",
		},
		{
			name:    "backoff base not greater than one",
			config:  &TriggerConfig{JobName: "deploy", BackoffBase: 1},
			wantErr: "backoff base must be greater than 1",
		},
		{
			name:    "negative backoff factor",
			config:  &TriggerConfig{JobName: "deploy", BackoffFactor: -1},
			wantErr: "backoff factor must be non-negative",
		},
		{
			name:   "valid defaults",
			config: NewTriggerConfig("deploy", "secret"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.config.validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTriggerBuildValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	client, err := NewClient(newFakeJenkins("deploy"))
	require.NoError(t, err)

	t.Run("Nil config", func(t *testing.T) {
		t.Parallel()

		_, err := client.TriggerBuild(ctx, nil)
		require.ErrorContains(t, err, "trigger config is required")
	})

	t.Run("Invalid config", func(t *testing.T) {
		t.Parallel()

		_, err := client.TriggerBuild(ctx, &TriggerConfig{})
		require.ErrorContains(t, err, "job name is required")
	})
}
