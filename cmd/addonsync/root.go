// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/addonsync/pkg/config"
	"github.com/walteh/addonsync/pkg/report"
	"github.com/walteh/addonsync/pkg/sync"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	workingDir string
	debug      bool
	async      bool
)

// NewRootCmd creates the addonsync root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "addonsync",
		Short:         "Materialize addon content into a project tree",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".addonsync.yaml", "config file path")
	cmd.PersistentFlags().StringVarP(&workingDir, "chdir", "C", ".", "working directory paths are resolved against")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(NewSyncCmd())

	return cmd
}

// NewSyncCmd creates the sync command
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy every addon's filtered source tree into the project destination",
		Long: `Sync reads the project specification and, for each addon, copies the
filtered subset of its source tree into the project destination. Addons
whose source path does not exist are skipped with a warning. Existing
destination files are overwritten; nothing is ever deleted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Set up logger
			logLevel := zerolog.InfoLevel
			if debug {
				logLevel = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(logLevel)
			ctx = logger.WithContext(ctx)

			// Load config
			cfg, err := config.Load(ctx, configFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			// Run sync
			opts := sync.Options{
				Reporter: report.NewConsole(os.Stdout),
				Async:    async,
			}
			if err := sync.SyncAddons(ctx, cfg, workingDir, opts); err != nil {
				return errors.Errorf("syncing addons: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&async, "async", false, "sync addons concurrently (destinations must not overlap)")

	return cmd
}
