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

package sync

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"github.com/walteh/addonsync/pkg/config"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🚀 SyncAddons materializes every addon in the project specification into
// the project's destination tree, one tree sync per addon. Addons whose
// source path does not exist are skipped with a warning; the first fatal
// sync error stops the fan-out and is returned.
func SyncAddons(ctx context.Context, cfg *config.ProjectConfig, workingDir string, opts Options) error {
	syncer := New(opts)
	destBase := resolvePath(workingDir, cfg.Project.Path)

	// Addons are a map in the specification; sort for a deterministic order.
	names := make([]string, 0, len(cfg.Addons))
	for name := range cfg.Addons {
		names = append(names, name)
	}
	sort.Strings(names)

	if opts.Async {
		g, gctx := errgroup.WithContext(ctx)
		for _, name := range names {
			name := name
			g.Go(func() error {
				return syncer.syncAddon(gctx, name, cfg.Addons[name], workingDir, destBase)
			})
		}
		return g.Wait()
	}

	for _, name := range names {
		if err := syncer.syncAddon(ctx, name, cfg.Addons[name], workingDir, destBase); err != nil {
			return err
		}
	}

	return nil
}

// 📦 syncAddon runs one addon's tree sync
func (s *Syncer) syncAddon(ctx context.Context, name string, addon config.AddonSpec, workingDir, destBase string) error {
	logger := zerolog.Ctx(ctx)
	sourceBase := resolvePath(workingDir, addon.SourcePath())

	if _, err := os.Stat(sourceBase); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().
				Str("addon", name).
				Str("path", sourceBase).
				Msg("addon path does not exist, skipping")
			s.reporter.AddonSkipped(name, sourceBase)
			return nil
		}
		return errors.Errorf("checking addon %s source %s: %w", name, sourceBase, err)
	}

	s.reporter.AddonStarted(name, sourceBase)

	files, err := s.Sync(ctx, Request{
		SourceBase: sourceBase,
		DestBase:   destBase,
		Include:    addon.Include,
		Exclude:    addon.Exclude,
		Ignore:     addon.Ignore,
	})
	if err != nil {
		return errors.Errorf("syncing addon %s: %w", name, err)
	}

	s.reporter.AddonSynced(name, files)
	return nil
}

// 📍 resolvePath resolves p against the working directory. Base paths in the
// specification may be absolute or working-dir-relative; an absolute path is
// used as is.
func resolvePath(workingDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workingDir, p)
}
