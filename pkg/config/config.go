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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/theatredup/pkg/theatre"
)

// DefaultFile is the config file looked up when none is named.
const DefaultFile = ".theatredup.hcl"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

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

// 📚 Config holds the optional tool settings. The theatre list is not
// configurable.
type Config struct {
	// Extension filters the file dialog, e.g. ".stm"
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`
	// OutputDir is suggested in the directory prompt instead of the first file's directory
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	// Debug enables debug logging
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty"`

	location string
}

// 🏭 Default returns the settings used when no config file exists
func Default() *Config {
	return &Config{Extension: theatre.Extension}
}

// Location returns the path the config was loaded from, if any.
func (cfg *Config) Location() string { return cfg.location }

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🎯 LoadOptional loads path, falling back to Default when the file does not
// exist and was not explicitly requested.
func LoadOptional(ctx context.Context, path string, explicit bool) (*Config, error) {
	if _, err := os.Stat(path); err != nil && os.IsNotExist(err) && !explicit {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return Default(), nil
	}
	return Load(ctx, path)
}

func (cfg *Config) applyDefaults() {
	if cfg.Extension == "" {
		cfg.Extension = theatre.Extension
	}
	if !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Extension == "" {
		return errors.New("extension is required")
	}
	if strings.ContainsAny(cfg.Extension, `/\*?[{`) {
		return errors.Errorf("extension %q must be a plain extension", cfg.Extension)
	}
	return nil
}
