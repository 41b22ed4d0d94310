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

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jenkins-tools/trigger-go/cmd/internal/app"
	"github.com/jenkins-tools/trigger-go/cmd/internal/config"
	"github.com/jenkins-tools/trigger-go/cmd/internal/flags"
	"github.com/spf13/cobra"
)

const VersionDev = "dev"

// Cmd represents the base command when called without any subcommands
type Cmd struct {
	// Version params.
	appVersion string
	commitHash string

	// Root flags
	flagsApp     *flags.App
	flagsJenkins *flags.Jenkins
	flagsJob     *flags.Job
}

func NewCmd(appVersion, commitHash string) *cobra.Command {
	c := &Cmd{
		appVersion: appVersion,
		commitHash: commitHash,

		flagsApp:     flags.NewApp(),
		flagsJenkins: flags.NewJenkins(),
		flagsJob:     flags.NewJob(),
	}

	rootCmd := &cobra.Command{
		Use:   "jenkins-trigger",
		Short: "Jenkins remote build trigger CLI tool",
		RunE:  c.run,
	}

	// Disable sorting
	rootCmd.PersistentFlags().SortFlags = false
	rootCmd.SilenceUsage = true

	appFlagSet := c.flagsApp.NewFlagSet()
	jenkinsFlagSet := c.flagsJenkins.NewFlagSet()
	jobFlagSet := c.flagsJob.NewFlagSet()

	// App flags.
	rootCmd.PersistentFlags().AddFlagSet(appFlagSet)
	rootCmd.PersistentFlags().AddFlagSet(jenkinsFlagSet)

	rootCmd.Flags().AddFlagSet(jobFlagSet)

	// Beautify help and usage.
	helpFunc := func() {
		fmt.Println("Welcome to the Jenkins remote build trigger CLI tool!")
		fmt.Println("-----------------------------------------------------")
		fmt.Println("\nUsage:")
		fmt.Println("  jenkins-trigger [flags]")

		fmt.Println("\nGeneral Flags:")
		appFlagSet.PrintDefaults()

		fmt.Println("\nJenkins Server Flags:")
		jenkinsFlagSet.PrintDefaults()

		fmt.Println("\nJob Flags:\n" +
			"Jobs must be configured with the option \"Trigger builds remotely\" selected,\n" +
			"and the authorization token configured there is passed with --job-token.")
		jobFlagSet.PrintDefaults()
	}

	rootCmd.SetUsageFunc(func(_ *cobra.Command) error {
		helpFunc()
		return nil
	})
	rootCmd.SetHelpFunc(func(_ *cobra.Command, _ []string) {
		helpFunc()
	})

	return rootCmd
}

func (c *Cmd) run(cmd *cobra.Command, _ []string) error {
	// Show version.
	if c.flagsApp.Version {
		c.printVersion()

		return nil
	}

	// If no flags were passed, show help.
	if cmd.Flags().NFlag() == 0 {
		if err := cmd.Help(); err != nil {
			return err
		}

		return nil
	}

	// Init logger.
	logger, err := app.NewLogger(c.flagsApp.LogLevel, c.flagsApp.Verbose, c.flagsApp.LogJSON)
	if err != nil {
		return err
	}

	// Init params, merging an optional config file under the flags.
	params := &config.TriggerParams{
		App:     c.flagsApp.GetApp(),
		Jenkins: c.flagsJenkins.GetJenkins(),
		Job:     c.flagsJob.GetJob(),
	}

	if err := config.Load(params); err != nil {
		return err
	}

	service, err := app.NewTriggerService(cmd.Context(), params, logger)
	if err != nil {
		return err
	}

	if err = service.Run(cmd.Context()); err != nil {
		logger.Error("trigger failed", slog.Any("error", err))

		return err
	}

	return nil
}

func (c *Cmd) printVersion() {
	version := c.appVersion
	if c.appVersion == VersionDev {
		version += " (" + c.commitHash + ")"
	}

	fmt.Printf("version: %s\n", version)
}
