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

// BuildStatus is the terminal status Jenkins reports for a finished build.
// The value is passed through from the server; the constants below cover the
// standard results, but any other string is returned unchanged.
type BuildStatus string

const (
	BuildStatusSuccess  BuildStatus = "SUCCESS"
	BuildStatusFailure  BuildStatus = "FAILURE"
	BuildStatusUnstable BuildStatus = "UNSTABLE"
	BuildStatusAborted  BuildStatus = "ABORTED"
)

// Succeeded reports whether the build finished with a SUCCESS result.
func (s BuildStatus) Succeeded() bool {
	return s == BuildStatusSuccess
}

// BuildRef identifies a queued or running build on the Jenkins server. It is
// an opaque handle as far as the trigger logic is concerned; only the Jenkins
// client interprets it.
type BuildRef struct {
	// JobName is the job the build belongs to.
	JobName string
	// Number is the build number assigned by Jenkins.
	Number int64
	// URL is the build's page on the Jenkins server.
	URL string
}

// Name returns the human-readable build name, e.g. "deploy #42".
func (r BuildRef) Name() string {
	if r.Number == 0 {
		return r.JobName
	}

	return fmt.Sprintf("%s #%d", r.JobName, r.Number)
}
