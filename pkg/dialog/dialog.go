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

// Package dialog is the interactive surface of theatredup: a file picker,
// the theatre checklist, the output directory prompt and notices.
package dialog

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/theatredup/pkg/fileset"
	"github.com/walteh/theatredup/pkg/notify"
	"github.com/walteh/theatredup/pkg/selection"
)

// 🤝 Dialogs collects every answer the operator gives during a run. Each call
// blocks until the operator is done.
type Dialogs interface {
	// OpenFiles lets the operator pick files in dir. Cancelling returns no paths.
	OpenFiles(ctx context.Context, dir string, filter fileset.Filter) ([]string, error)
	// ChooseTheatres presents session until it is confirmed or cancelled.
	ChooseTheatres(ctx context.Context, session *selection.Session) error
	// ChooseDirectory asks for the output directory. ok is false when the
	// operator declines.
	ChooseDirectory(ctx context.Context, suggested string) (dir string, ok bool, err error)
	// Notify shows a notice.
	Notify(ctx context.Context, notice notify.Notice)
}

// 🖥️ Terminal implements Dialogs with bubbletea programs and survey prompts
type Terminal struct {
	in       *os.File
	out      *os.File
	notifier *notify.Notifier
}

var _ Dialogs = (*Terminal)(nil)

// 🏭 NewTerminal creates dialogs on stdin and stderr
func NewTerminal() *Terminal {
	return &Terminal{
		in:       os.Stdin,
		out:      os.Stderr,
		notifier: notify.New(os.Stderr),
	}
}

func (t *Terminal) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	return p.Run()
}

// 📂 OpenFiles implements Dialogs
func (t *Terminal) OpenFiles(ctx context.Context, dir string, filter fileset.Filter) ([]string, error) {
	picker := newFilePicker(dir, filter)

	final, err := t.run(ctx, picker)
	if err != nil {
		return nil, errors.Errorf("running file dialog: %w", err)
	}

	result := final.(filePicker)
	if result.session.State() != selection.Confirmed {
		zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("file dialog closed without selection")
		return nil, nil
	}
	return result.session.Selected(), nil
}

// ☑️ ChooseTheatres implements Dialogs
func (t *Terminal) ChooseTheatres(ctx context.Context, session *selection.Session) error {
	if session.State() == selection.Idle {
		if err := session.Start(); err != nil {
			return errors.Errorf("starting theatre dialog: %w", err)
		}
	}

	_, err := t.run(ctx, newChecklist("Select Theatres to Generate", "No theatres selected.", session))

	// a program that stopped without an answer counts as closing the window
	if session.State() == selection.Presenting {
		_ = session.Cancel()
	}
	if err != nil {
		return errors.Errorf("running theatre dialog: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("state", session.State().String()).
		Strs("selected", session.Selected()).
		Msg("theatre dialog closed")
	return nil
}

// 📢 Notify implements Dialogs
func (t *Terminal) Notify(ctx context.Context, notice notify.Notice) {
	t.notifier.Notify(ctx, notice)
}
