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

package operation

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/theatredup/pkg/fileset"
	"github.com/walteh/theatredup/pkg/generate"
	"github.com/walteh/theatredup/pkg/log"
	"github.com/walteh/theatredup/pkg/notify"
	"github.com/walteh/theatredup/pkg/selection"
	"github.com/walteh/theatredup/pkg/text"
	"github.com/walteh/theatredup/pkg/theatre"
)

const (
	titleError   = "Error"
	titleInfo    = "Info"
	titleWarning = "Warning"
	titleSuccess = "Success"
)

// 🏃 Execute runs the duplication
func (op *DuplicateOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	files, err := op.load(ctx)
	if err != nil {
		return err
	}

	current, err := op.currentTheatre(ctx, files)
	if err != nil {
		return err
	}

	session := selection.New(theatre.Names())
	if err := op.opts.Dialogs.ChooseTheatres(ctx, session); err != nil {
		return op.fatal(ctx, notify.Errorf(titleError, "%v", err), err)
	}
	if session.State() != selection.Confirmed {
		op.opts.Dialogs.Notify(ctx, notify.Infof(titleInfo, "No theatres selected. Exiting."))
		return errors.WithStack(ErrCancelled)
	}
	targets := session.Selected()

	dir, ok, err := op.opts.Dialogs.ChooseDirectory(ctx, op.suggestedDir(files))
	if err != nil {
		return op.fatal(ctx, notify.Errorf(titleError, "%v", err), err)
	}
	if !ok {
		op.opts.Dialogs.Notify(ctx, notify.Infof(titleInfo, "No directory selected."))
		return nil
	}

	logger.Debug().
		Str("current", current).
		Strs("targets", targets).
		Str("dir", dir).
		Strs("files", files.Paths()).
		Msg("generating")

	log.FromContext(ctx).Headerf("writing %d files to %s", files.Len()*len(targets), dir)

	written, err := op.engine.Generate(ctx, files, targets, current, dir)
	if err != nil {
		notice := notify.Errorf(titleError, "%v", err)
		var writeErr *generate.WriteError
		if errors.As(err, &writeErr) {
			notice = notify.Errorf(titleError, "Failed to write:\n%s\n\n%v", writeErr.Path, writeErr.Err)
			if len(writeErr.Written) > 0 {
				notice.Message += "\n\nFiles created before the failure:"
				notice.Items = generate.Names(writeErr.Written)
			}
		}
		return op.fatal(ctx, notice, err)
	}

	op.opts.Dialogs.Notify(ctx, notify.Success(titleSuccess, "Files created:", generate.Names(written)))
	return nil
}

// load resolves and reads the template files
func (op *DuplicateOperation) load(ctx context.Context) (*fileset.FileSet, error) {
	var paths []string
	if len(op.opts.Args) > 0 {
		expanded, err := fileset.Expand(op.opts.Args)
		if err != nil {
			return nil, op.fatal(ctx, notify.Errorf(titleError, "%v", err), err)
		}
		paths = expanded
	} else {
		picked, err := op.opts.Dialogs.OpenFiles(ctx, op.opts.Dir, op.opts.Filter)
		if err != nil {
			return nil, op.fatal(ctx, notify.Errorf(titleError, "%v", err), err)
		}
		paths = picked
	}

	files, err := fileset.Load(ctx, paths)
	if err != nil {
		notice := notify.Errorf(titleError, "%v", err)
		var readErr *fileset.ReadError
		switch {
		case errors.Is(err, fileset.ErrNoFiles):
			notice = notify.Errorf(titleError, "No files selected.")
		case errors.As(err, &readErr):
			notice = notify.Errorf(titleError, "Failed to read:\n%s\n\n%v", readErr.Path, readErr.Err)
		}
		return nil, op.fatal(ctx, notice, err)
	}
	return files, nil
}

// currentTheatre reads the theatre from the first file. Every other file is
// checked too; files with a differing value are listed in one warning.
func (op *DuplicateOperation) currentTheatre(ctx context.Context, files *fileset.FileSet) (string, error) {
	logger := zerolog.Ctx(ctx)

	first := files.First()
	current, err := text.Extract(first.Content, theatre.Field)
	if err != nil {
		return "", op.fatal(ctx, notify.Errorf(titleError, "No theatre value found in file(s)."), err)
	}
	if !theatre.Valid(current) {
		logger.Warn().Str("file", first.Path).Str("theatre", current).Msg("current theatre is not a known theatre")
	}

	var mismatched []string
	for _, f := range files.Files()[1:] {
		value, err := text.Extract(f.Content, theatre.Field)
		switch {
		case err != nil:
			logger.Warn().Str("file", f.Path).Str("expected", current).Msg("no theatre value in file, copies will be unchanged")
			mismatched = append(mismatched, filepath.Base(f.Path)+" (no theatre)")
		case value != current:
			logger.Warn().Str("file", f.Path).Str("expected", current).Str("found", value).Msg("theatre differs from first file, copies will be unchanged")
			mismatched = append(mismatched, filepath.Base(f.Path)+" ("+value+")")
		}
	}
	if len(mismatched) > 0 {
		notice := notify.Warningf(titleWarning, "These files are not set to %s and will be copied unchanged:", current)
		notice.Items = mismatched
		op.opts.Dialogs.Notify(ctx, notice)
	}

	return current, nil
}

func (op *DuplicateOperation) suggestedDir(files *fileset.FileSet) string {
	if op.opts.OutputDir != "" {
		return op.opts.OutputDir
	}
	dir := filepath.Dir(files.First().Path)
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
