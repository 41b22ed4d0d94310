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

type Jenkins struct {
	models.Jenkins
}

func NewJenkins() *Jenkins {
	return &Jenkins{}
}

func (f *Jenkins) NewFlagSet() *pflag.FlagSet {
	flagSet := &pflag.FlagSet{}

	flagSet.StringVar(&f.BaseURL, "base-url",
		"",
		"Base URL of the Jenkins server, e.g. https://jenkins.example.org.")
	flagSet.StringVarP(&f.Username, "username", "u",
		"",
		"Jenkins user name.")
	flagSet.StringVar(&f.APIToken, "api-token",
		"",
		"API token for the user. Available at {base-url}/user/{username}/configure.")

	return flagSet
}

func (f *Jenkins) GetJenkins() *models.Jenkins {
	return &f.Jenkins
}
