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

package flags

import (
	"github.com/jenkins-tools/trigger-go/cmd/internal/models"
	"github.com/spf13/pflag"
)

type Job struct {
	models.Job
}

func NewJob() *Job {
	return &Job{}
}

func (f *Job) NewFlagSet() *pflag.FlagSet {
	flagSet := &pflag.FlagSet{}

	flagSet.StringVarP(&f.Name, "job", "j",
		"",
		"The Jenkins job name, e.g. test-project.")
	flagSet.StringVar(&f.Token, "job-token",
		"",
		"Authorization token of the job's \"Trigger builds remotely\" option.")
	flagSet.StringVar(&f.Cause, "cause",
		"",
		"Text that will be included in the recorded build cause.")
	flagSet.StringArrayVar(&f.Params, "param",
		nil,
		"Job parameter in name=value form. May be repeated.")
	flagSet.Int64Var(&f.Timeout, "timeout",
		models.DefaultTimeoutSeconds,
		"The maximum number of seconds to wait for the build to complete,\n"+
			"measured from when the job is triggered.")

	return flagSet
}

func (f *Job) GetJob() *models.Job {
	return &f.Job
}
