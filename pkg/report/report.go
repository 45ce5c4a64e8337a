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

// Package report is the user-facing side channel for sync progress and
// warnings. The synchronizer takes a Reporter instead of writing to any
// ambient sink, so library callers stay in control of output and tests can
// capture it.
package report

// 📢 Reporter receives sync progress events and warnings
type Reporter interface {
	// AddonStarted is called before an addon's tree is synced
	AddonStarted(name, source string)

	// AddonSkipped is called when an addon's source path does not exist
	AddonSkipped(name, source string)

	// AddonSynced is called after an addon's tree was fully synced
	AddonSynced(name string, files int)

	// EntryCopied is called for every directory created or file copied
	EntryCopied(rel string, dir bool)

	// EntrySkipped is called when a traversal entry could not be read and
	// was left out of the sync
	EntrySkipped(rel string, err error)
}

// 🤫 nopReporter discards all events
type nopReporter struct{}

func (nopReporter) AddonStarted(name, source string) {}

func (nopReporter) AddonSkipped(name, source string) {}

func (nopReporter) AddonSynced(name string, files int) {}

func (nopReporter) EntryCopied(rel string, dir bool) {}

func (nopReporter) EntrySkipped(rel string, err error) {}

// 🎯 Nop returns a reporter that discards every event
func Nop() Reporter {
	return nopReporter{}
}
