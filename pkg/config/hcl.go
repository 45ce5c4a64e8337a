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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*ProjectConfig, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclAddon struct {
		Name    string   `hcl:"name,label"`
		Path    string   `hcl:"path,optional"`
		Include []string `hcl:"include,optional"`
		Exclude []string `hcl:"exclude,optional"`
		Ignore  []string `hcl:"ignore,optional"`
	}
	type hclConfig struct {
		Project struct {
			Path string `hcl:"path"`
		} `hcl:"project,block"`
		Addons []hclAddon `hcl:"addon,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &ProjectConfig{
		Project: ProjectArgs{
			Path: hclCfg.Project.Path,
		},
	}

	if len(hclCfg.Addons) > 0 {
		cfg.Addons = make(map[string]AddonSpec, len(hclCfg.Addons))
		for _, a := range hclCfg.Addons {
			if _, ok := cfg.Addons[a.Name]; ok {
				return nil, errors.Errorf("duplicate addon block %q", a.Name)
			}
			cfg.Addons[a.Name] = AddonSpec{
				Path:    a.Path,
				Include: a.Include,
				Exclude: a.Exclude,
				Ignore:  a.Ignore,
			}
		}
	}

	return cfg, nil
}
