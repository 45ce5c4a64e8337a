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

package config

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*ProjectConfig, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📦 AddonSpec describes where one addon's content comes from and which
// parts of its tree are synced into the project.
type AddonSpec struct {
	Path    string   `json:"path,omitempty" yaml:"path,omitempty"`       // Source base, relative to the working dir (default ".")
	Include []string `json:"include,omitempty" yaml:"include,omitempty"` // Relative path prefixes to include
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"` // Relative path prefixes to exclude
	Ignore  []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`   // Glob patterns for files to ignore
}

// 📂 SourcePath returns the addon's source base, defaulting to the current
// directory when the spec leaves it unset.
func (a AddonSpec) SourcePath() string {
	if a.Path == "" {
		return "."
	}
	return a.Path
}

// 🗂️ ProjectArgs holds the project-level settings shared by all addons
type ProjectArgs struct {
	Path string `json:"path" yaml:"path"` // Destination base, relative to the working dir
}

// 📚 ProjectConfig is the project specification: a destination path plus a
// named map of addon specs.
type ProjectConfig struct {
	Project ProjectArgs          `json:"project" yaml:"project"`
	Addons  map[string]AddonSpec `json:"addons,omitempty" yaml:"addons,omitempty"`
}

// 🎯 Load loads the project specification from a file
func Load(ctx context.Context, path string) (*ProjectConfig, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading project specification")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// A bare .addonsync file has no extension to dispatch on, so try every
	// registered parser until one accepts the content.
	var cfg *ProjectConfig
	if strings.HasSuffix(path, ".addonsync") {
		for _, p := range parsers {
			if cfg, err = p.Parse(ctx, data); err == nil {
				break
			}
		}
		if cfg == nil {
			return nil, errors.Errorf("parsing %s: %w", path, err)
		}
	} else {
		// Get parser
		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", path)
		}

		// Parse config
		cfg, err = p.Parse(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing config: %w", err)
		}
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the project specification is valid
func (cfg *ProjectConfig) Validate() error {
	// Check required fields
	if cfg.Project.Path == "" {
		return errors.Errorf("project.path is required")
	}

	// Clean up paths
	cfg.Project.Path = filepath.Clean(cfg.Project.Path)

	for name, addon := range cfg.Addons {
		for _, inc := range addon.Include {
			if err := validateRulePath(inc); err != nil {
				return errors.Errorf("addon %q include %q: %w", name, inc, err)
			}
		}
		for _, ex := range addon.Exclude {
			if err := validateRulePath(ex); err != nil {
				return errors.Errorf("addon %q exclude %q: %w", name, ex, err)
			}
		}
		for _, pattern := range addon.Ignore {
			if !doublestar.ValidatePattern(pattern) {
				return errors.Errorf("addon %q ignore %q: invalid glob pattern", name, pattern)
			}
		}
	}

	return nil
}

// 📝 String returns a string representation of the project specification
func (cfg *ProjectConfig) String() string {
	return fmt.Sprintf("%d addons -> %s", len(cfg.Addons), cfg.Project.Path)
}

// validateRulePath rejects include/exclude entries that are not clean
// relative paths. Rules are prefixes over paths relative to the source base,
// so absolute entries and entries escaping the base can never match.
func validateRulePath(entry string) error {
	if strings.TrimSpace(entry) == "" {
		return errors.Errorf("rule path is empty")
	}
	if filepath.IsAbs(entry) || strings.HasPrefix(entry, "/") {
		return errors.Errorf("rule path must be relative")
	}
	clean := path.Clean(filepath.ToSlash(entry))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Errorf("rule path escapes the source base")
	}
	return nil
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*ProjectConfig, error) {
	var cfg ProjectConfig
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}
