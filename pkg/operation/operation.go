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

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/theatredup/pkg/dialog"
	"github.com/walteh/theatredup/pkg/fileset"
	"github.com/walteh/theatredup/pkg/generate"
	"github.com/walteh/theatredup/pkg/notify"
	"github.com/walteh/theatredup/pkg/theatre"
)

// ErrCancelled is returned when the operator closes the theatre dialog
var ErrCancelled = errors.Base("cancelled by operator")

// 🎯 Operation is one run that can be executed
type Operation interface {
	Execute(ctx context.Context) error
}

// 💥 FatalError is an abort that has already been shown to the operator
type FatalError struct {
	Notice notify.Notice
	Err    error
}

func (e *FatalError) Error() string { return e.Err.Error() }

func (e *FatalError) Unwrap() error { return e.Err }

// IsFatal reports whether err ends the run with a failure
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

// ExitCode maps the outcome of Execute to a process status
func ExitCode(err error) int {
	if err == nil || errors.Is(err, ErrCancelled) {
		return 0
	}
	return 1
}

// 🔧 Options contains configuration for the operation
type Options struct {
	// Args are the files or globs given on the command line. When empty the
	// open dialog is shown.
	Args []string
	// Dir is where the open dialog starts. Defaults to ".".
	Dir string
	// OutputDir is the suggested output directory. Defaults to the directory
	// of the first file.
	OutputDir string
	// Filter is the open dialog filter. Defaults to *.stm.
	Filter fileset.Filter
	// Dialogs answers every question.
	Dialogs dialog.Dialogs
}

// 📦 DuplicateOperation writes rewritten copies of template files, one per
// chosen theatre
type DuplicateOperation struct {
	opts   Options
	engine *generate.Engine
}

var _ Operation = (*DuplicateOperation)(nil)

// 🏭 New creates a new duplicate operation with the given options
func New(opts Options) (*DuplicateOperation, error) {
	if opts.Dialogs == nil {
		return nil, errors.Errorf("dialogs are required")
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Filter.Pattern == "" {
		opts.Filter = fileset.ExtensionFilter(theatre.Extension)
	}
	return &DuplicateOperation{
		opts:   opts,
		engine: generate.New(theatre.Field),
	}, nil
}

// fatal shows notice and wraps err so the caller knows it was shown
func (op *DuplicateOperation) fatal(ctx context.Context, notice notify.Notice, err error) error {
	op.opts.Dialogs.Notify(ctx, notice)
	return errors.WithStack(&FatalError{Notice: notice, Err: err})
}
