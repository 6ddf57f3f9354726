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
	"os"
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

// evalContext exposes `cwd` and `home` to config expressions, e.g.
// output_dir = "${home}/Saved Games/DCS/StaticTemplate".
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	if wd, err := os.Getwd(); err == nil {
		vars["cwd"] = cty.StringVal(wd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		vars["home"] = cty.StringVal(home)
	}
	return &hcl.EvalContext{Variables: vars}
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, DefaultFile)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	type hclConfig struct {
		Extension *string `hcl:"extension,optional"`
		OutputDir *string `hcl:"output_dir,optional"`
		Debug     *bool   `hcl:"debug,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{}
	if hclCfg.Extension != nil {
		cfg.Extension = *hclCfg.Extension
	}
	if hclCfg.OutputDir != nil {
		cfg.OutputDir = *hclCfg.OutputDir
	}
	if hclCfg.Debug != nil {
		cfg.Debug = *hclCfg.Debug
	}

	return cfg, nil
}
