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

package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/addonsync/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// 🧪 TestConsoleAddonEvents checks the addon-level console lines
func TestConsoleAddonEvents(t *testing.T) {
	var buf bytes.Buffer
	c := report.NewConsole(&buf)

	c.AddonStarted("dialogue", "vendor/dialogue")
	c.AddonSynced("dialogue", 3)
	c.AddonSkipped("gone", "vendor/gone")

	out := buf.String()
	assert.Contains(t, out, "dialogue", "output should name the addon")
	assert.Contains(t, out, "vendor/dialogue", "output should show the source path")
	assert.Contains(t, out, "3 files", "output should show the file count")
	assert.Contains(t, out, "vendor/gone does not exist", "skip line should explain why")
}

// 🧪 TestConsoleEntryEvents checks the per-entry console lines
func TestConsoleEntryEvents(t *testing.T) {
	var buf bytes.Buffer
	c := report.NewConsole(&buf)

	c.EntryCopied("addons/foo/plugin.cfg", false)
	c.EntryCopied("addons/foo", true)
	c.EntrySkipped("addons/broken", errors.New("permission denied"))

	out := buf.String()
	assert.Contains(t, out, "addons/foo/plugin.cfg", "copied file line should show the path")
	assert.Contains(t, out, "dir", "copied directory line should be marked as dir")
	assert.Contains(t, out, "skipped: permission denied", "skipped line should carry the cause")
}

// 🧪 TestNopDiscardsEverything checks the discarding reporter is safe to use
func TestNopDiscardsEverything(t *testing.T) {
	r := report.Nop()
	r.AddonStarted("a", "b")
	r.AddonSkipped("a", "b")
	r.AddonSynced("a", 1)
	r.EntryCopied("c", true)
	r.EntrySkipped("c", nil)
	assert.NotNil(t, r, "nop reporter should be usable")
}
