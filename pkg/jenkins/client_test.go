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

package jenkins

import (
	"errors"
	"testing"
	"time"

	"github.com/jenkins-tools/trigger-go/models"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "valid",
			config: Config{
				BaseURL:  "https://jenkins.example.org",
				Username: "user",
				APIToken: "token",
			},
		},
		{
			name:    "missing base url",
			config:  Config{Username: "user", APIToken: "token"},
			wantErr: "base URL is required",
		},
		{
			name:    "missing username",
			config:  Config{BaseURL: "https://jenkins.example.org", APIToken: "token"},
			wantErr: "username is required",
		},
		{
			name:    "missing api token",
			config:  Config{BaseURL: "https://jenkins.example.org", Username: "user"},
			wantErr: "API token is required",
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

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	require.True(t, isNotFound(errors.New("404")))
	require.True(t, isNotFound(errors.New("GET /job/x returned 404")))
	require.False(t, isNotFound(errors.New("500")))
	require.False(t, isNotFound(nil))
}

func TestExecuteWithRetry(t *testing.T) {
	t.Parallel()

	policy := models.NewRetryPolicy(time.Millisecond, 1, 3)

	t.Run("Succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := executeWithRetry(policy, func() error {
			calls++
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, 1, calls)
	})

	t.Run("Succeeds after transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := executeWithRetry(policy, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}

			return nil
		})

		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("Gives up after max retries", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("permanent")

		calls := 0
		err := executeWithRetry(policy, func() error {
			calls++
			return cause
		})

		require.Error(t, err)
		require.ErrorIs(t, err, cause)
		require.ErrorContains(t, err, "after 3 attempts")
		require.Equal(t, 3, calls)
	})

	t.Run("Nil policy", func(t *testing.T) {
		t.Parallel()

		err := executeWithRetry(nil, func() error { return nil })
		require.ErrorContains(t, err, "retry policy cannot be nil")
	})
}
