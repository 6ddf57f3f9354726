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

// Package generate writes one rewritten copy of every loaded template per
// chosen theatre.
package generate

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/theatredup/pkg/fileset"
	"github.com/walteh/theatredup/pkg/log"
	"github.com/walteh/theatredup/pkg/text"
)

// 📄 OutputFile is one planned or written copy.
type OutputFile struct {
	Path         string // {dir}/{target}-{base}
	Source       string // path of the template it was derived from
	Target       string // theatre written into the copy
	Replacements int    // assignments rewritten
}

// Name returns the base name of the output path.
func (o OutputFile) Name() string { return filepath.Base(o.Path) }

// WriteError reports a failed write and the outputs written before it.
type WriteError struct {
	Path    string
	Written []OutputFile
	Err     error
}

func (e *WriteError) Error() string {
	return "writing " + e.Path + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error { return e.Err }

// OutputPath derives the path of the copy of source for target.
func OutputPath(dir, target, source string) string {
	return filepath.Join(dir, target+"-"+filepath.Base(source))
}

// 📋 Plan lists the outputs for every file and target: files in load order,
// targets in the order given.
func Plan(files *fileset.FileSet, targets []string, dir string) []OutputFile {
	plan := make([]OutputFile, 0, files.Len()*len(targets))
	for _, f := range files.Files() {
		for _, target := range targets {
			plan = append(plan, OutputFile{
				Path:   OutputPath(dir, target, f.Path),
				Source: f.Path,
				Target: target,
			})
		}
	}
	return plan
}

// 🎯 Engine rewrites a single field in every copy.
type Engine struct {
	field string
}

// 🏭 New creates an engine that rewrites field.
func New(field string) *Engine {
	return &Engine{field: field}
}

// 🚀 Generate writes a copy of every file for every target, replacing the
// assignment of current with the target. Existing outputs are overwritten.
// The first failed write stops the run and is returned as a *WriteError.
func (e *Engine) Generate(ctx context.Context, files *fileset.FileSet, targets []string, current, dir string) ([]OutputFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("generating: %w", err)
	}

	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	plan := Plan(files, targets, dir)
	written := make([]OutputFile, 0, len(plan))

	for _, out := range plan {
		content, _ := files.Content(out.Source)
		result := text.Replace(content, e.field, current, out.Target)
		out.Replacements = result.ReplacementCount

		_, statErr := os.Stat(out.Path)
		overwritten := statErr == nil

		if err := os.WriteFile(out.Path, []byte(result.Content), 0o644); err != nil {
			return written, errors.WithStack(&WriteError{Path: out.Path, Written: written, Err: err})
		}

		logger.Debug().
			Str("source", out.Source).
			Str("output", out.Path).
			Str("target", out.Target).
			Int("replacements", out.Replacements).
			Bool("overwritten", overwritten).
			Msg("wrote output file")

		console.LogFileOperation(ctx, log.FileOperation{
			Path:         out.Name(),
			Theatre:      out.Target,
			Replacements: out.Replacements,
			IsNew:        !overwritten,
			IsOverwrite:  overwritten,
		})

		written = append(written, out)
	}

	return written, nil
}

// Names returns the base names of outputs.
func Names(outputs []OutputFile) []string {
	out := make([]string, len(outputs))
	for i, o := range outputs {
		out[i] = o.Name()
	}
	return out
}
