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

// Package filter decides which relative paths take part in an addon sync.
package filter

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Filter is a pure predicate over paths relative to a source base.
// Rules are evaluated exclude-first: an exclude match is authoritative and
// is never overridden by an include rule.
type Filter struct {
	includes []string
	excludes []string
	ignores  []string
}

// 🏭 New builds a filter from include/exclude prefix rules and ignore globs.
// Rule paths are normalized to slash-separated clean relative form; empty
// rules are dropped. Nil or empty include/exclude slices mean "no rules of
// that kind", not "match nothing". Malformed ignore globs are rejected here
// so they cannot silently match nothing later.
func New(includes, excludes, ignores []string) (*Filter, error) {
	for _, pattern := range ignores {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	return &Filter{
		includes: normalizeRules(includes),
		excludes: normalizeRules(excludes),
		ignores:  ignores,
	}, nil
}

// 🎯 Match reports whether the path relative to the source base should be
// synced:
//  1. paths under any exclude prefix are rejected
//  2. paths matching any ignore glob are rejected
//  3. if includes exist, the path must be inside an included subtree or be
//     an ancestor directory of one (ancestors must pass so the hierarchy
//     leading to an included leaf still gets created)
//  4. with no include rules every remaining path passes
func (f *Filter) Match(rel string) bool {
	rel = NormalizePath(rel)

	for _, ex := range f.excludes {
		if HasPathPrefix(rel, ex) {
			return false
		}
	}

	if rel != "" {
		for _, pattern := range f.ignores {
			// Patterns are validated in New, so Match cannot fail here.
			if doublestar.MatchUnvalidated(pattern, rel) {
				return false
			}
		}
	}

	if len(f.includes) == 0 {
		return true
	}
	for _, inc := range f.includes {
		if HasPathPrefix(rel, inc) || HasPathPrefix(inc, rel) {
			return true
		}
	}

	return false
}

// 🧩 HasPathPrefix reports whether path equals prefix or is nested under it.
// The comparison is path-component-aware: "addons2" is not under "addons".
// An empty prefix matches every path (the source root contains everything).
func HasPathPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// NormalizePath converts a relative path to clean slash-separated form.
// "." (what filepath.Rel yields for the source root itself) becomes "".
// Backslashes are treated as separators regardless of platform so rules
// written on Windows keep matching.
func NormalizePath(rel string) string {
	rel = strings.ReplaceAll(filepath.ToSlash(rel), `\`, "/")
	rel = path.Clean(rel)
	if rel == "." {
		return ""
	}
	return strings.TrimPrefix(rel, "/")
}

func normalizeRules(rules []string) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		if n := NormalizePath(r); n != "" {
			out = append(out, n)
		}
	}
	return out
}
