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

package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 35 // Base width for the relative path
)

// 🖥️ Console renders sync events to a terminal: pterm prefix printers for
// addon-level events, colored per-file lines below them.
type Console struct {
	w       io.Writer
	mu      sync.Mutex
	started *pterm.PrefixPrinter
	skipped *pterm.PrefixPrinter
	synced  *pterm.PrefixPrinter
}

// 🏭 NewConsole creates a console reporter writing to w
func NewConsole(w io.Writer) *Console {
	return &Console{
		w:       w,
		started: pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).WithWriter(w),
		skipped: pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(w),
		synced:  pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(w),
	}
}

// 📝 AddonStarted prints the addon header
func (c *Console) AddonStarted(name, source string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.started.Printfln("%s %s %s",
		color.New(color.Bold).Sprint(name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(source))
}

// 📝 AddonSkipped prints a warning for an addon whose source is missing
func (c *Console) AddonSkipped(name, source string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.skipped.Printfln("%s skipped, source %s does not exist",
		color.New(color.Bold).Sprint(name), source)
}

// 📝 AddonSynced prints the addon summary line
func (c *Console) AddonSynced(name string, files int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.synced.Printfln("%s synced, %d files", color.New(color.Bold).Sprint(name), files)
}

// 📝 EntryCopied prints one line per synced entry
func (c *Console) EntryCopied(rel string, dir bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kind := "file"
	symbolColor := color.FgGreen
	if dir {
		kind = "dir"
		symbolColor = color.FgCyan
	}

	fmt.Fprintf(c.w, "%s%s %s %s\n",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint("✓"),
		fmt.Sprintf("%-*s", nameWidth, rel),
		color.New(color.Faint).Sprint(kind))
}

// 📝 EntrySkipped prints a line for an unreadable traversal entry
func (c *Console) EntrySkipped(rel string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.w, "%s%s %s %s\n",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(color.FgYellow).Sprint("-"),
		fmt.Sprintf("%-*s", nameWidth, rel),
		color.New(color.FgYellow).Sprintf("skipped: %v", err))
}
