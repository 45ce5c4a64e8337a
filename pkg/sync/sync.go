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

// Package sync copies the filtered subset of a source tree into a
// destination tree. It only creates and overwrites: destination entries
// absent from the filtered source are never touched.
package sync

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/addonsync/pkg/filter"
	"github.com/walteh/addonsync/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// 📋 Request describes one tree sync
type Request struct {
	SourceBase string   // Root directory files are read from
	DestBase   string   // Root directory files are written into
	Include    []string // Optional relative path prefixes to include
	Exclude    []string // Optional relative path prefixes to exclude
	Ignore     []string // Optional glob patterns for files to ignore
}

// 🔧 Options contains configuration for the syncer
type Options struct {
	// Reporter receives progress events and warnings; defaults to a
	// discarding reporter
	Reporter report.Reporter

	// Async syncs addons concurrently during fan-out. Only safe when the
	// addons' filtered trees do not overlap inside the destination.
	Async bool
}

// 🔄 Syncer performs filtered tree copies
type Syncer struct {
	reporter report.Reporter
}

// 🏭 New creates a syncer with the given options
func New(opts Options) *Syncer {
	r := opts.Reporter
	if r == nil {
		r = report.Nop()
	}
	return &Syncer{reporter: r}
}

// 🏃 Sync walks every entry under the request's source base, filters each on
// its own relative path, and recreates matching directories and files under
// the destination base. Existing destination files are overwritten; nothing
// is ever deleted. It returns the number of files copied.
//
// Entries the traversal itself cannot read are reported and skipped; every
// other failure aborts the sync with the offending paths in the error.
func (s *Syncer) Sync(ctx context.Context, req Request) (int, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("source", req.SourceBase).
		Str("destination", req.DestBase).
		Msg("syncing tree")

	f, err := filter.New(req.Include, req.Exclude, req.Ignore)
	if err != nil {
		return 0, errors.Errorf("building filter for %s: %w", req.SourceBase, err)
	}

	copied := 0
	walkErr := filepath.WalkDir(req.SourceBase, func(path string, d fs.DirEntry, entryErr error) error {
		if entryErr != nil {
			// Unreadable entries are dropped from the sync, the rest of the
			// tree still syncs.
			rel, relErr := filepath.Rel(req.SourceBase, path)
			if relErr != nil {
				rel = path
			}
			logger.Warn().Str("path", path).Err(entryErr).Msg("skipping unreadable entry")
			s.reporter.EntrySkipped(filter.NormalizePath(rel), entryErr)
			return nil
		}

		rel, err := filepath.Rel(req.SourceBase, path)
		if err != nil {
			return errors.Errorf("computing path of %s relative to %s: %w", path, req.SourceBase, err)
		}

		// Each entry is filtered on its own relative path. A directory that
		// fails the filter is not pruned: its children get their own
		// decision.
		if !f.Match(rel) {
			return nil
		}

		target := filepath.Join(req.DestBase, rel)
		if d.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Errorf("creating directory %s: %w", target, err)
			}
		} else {
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return errors.Errorf("creating parent directory of %s: %w", target, err)
			}
			if err := copyFile(path, target); err != nil {
				return errors.Errorf("copying %s to %s: %w", path, target, err)
			}
			copied++
		}

		// The source root maps onto the destination base itself; it is not
		// an entry worth reporting.
		if rel != "." {
			s.reporter.EntryCopied(filter.NormalizePath(rel), d.IsDir())
		}
		return nil
	})
	if walkErr != nil {
		return copied, walkErr
	}

	return copied, nil
}

// 📄 copyFile copies src's bytes to dst, overwriting dst if it exists.
// The source file's permission bits are used when dst is created.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
