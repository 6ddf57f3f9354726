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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/theatredup/pkg/fileset"
	"github.com/walteh/theatredup/pkg/log"
	"github.com/walteh/theatredup/pkg/notify"
	"github.com/walteh/theatredup/pkg/selection"
	"github.com/walteh/theatredup/pkg/text"
)

// 🔧 MockDialogs is a mock implementation of the dialog.Dialogs interface
type MockDialogs struct {
	mock.Mock
	notices []notify.Notice
}

func (m *MockDialogs) OpenFiles(ctx context.Context, dir string, filter fileset.Filter) ([]string, error) {
	result := m.Called(ctx, dir, filter)
	paths, _ := result.Get(0).([]string)
	return paths, result.Error(1)
}

func (m *MockDialogs) ChooseTheatres(ctx context.Context, session *selection.Session) error {
	result := m.Called(ctx, session)
	return result.Error(0)
}

func (m *MockDialogs) ChooseDirectory(ctx context.Context, suggested string) (string, bool, error) {
	result := m.Called(ctx, suggested)
	return result.String(0), result.Bool(1), result.Error(2)
}

// Notify records notices instead of asserting calls, every path shows one
func (m *MockDialogs) Notify(ctx context.Context, notice notify.Notice) {
	m.notices = append(m.notices, notice)
}

// choose answers the theatre dialog by confirming names
func choose(names ...string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		session := args.Get(1).(*selection.Session)
		if err := session.Start(); err != nil {
			panic(err)
		}
		for _, n := range names {
			if err := session.Set(n, true); err != nil {
				panic(err)
			}
		}
		if err := session.Confirm(); err != nil {
			panic(err)
		}
	}
}

func closeDialog(args mock.Arguments) {
	session := args.Get(1).(*selection.Session)
	_ = session.Start()
	_ = session.Cancel()
}

func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	var console bytes.Buffer
	zlog := zerolog.New(zerolog.NewTestWriter(t))
	ctx := zlog.WithContext(context.Background())
	ctx = log.NewContext(ctx, log.New(&console, zlog))
	return ctx, &console
}

func writeTemplate(t *testing.T, dir, name, theatre string) string {
	t.Helper()
	content := "mission = {\n\t[\"theatre\"] = \"" + theatre + "\",\n\t[\"units\"] = {},\n}\n"
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func TestNew(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err, "dialogs are required")

	op, err := New(Options{Dialogs: &MockDialogs{}})
	require.NoError(t, err)
	assert.Equal(t, ".", op.opts.Dir)
	assert.Equal(t, "*.stm", op.opts.Filter.Pattern)
}

func TestExecuteScenario(t *testing.T) {
	ctx, console := testContext(t)
	in := t.TempDir()
	out := t.TempDir()
	src := writeTemplate(t, in, "sam.stm", "Caucasus")

	dialogs := &MockDialogs{}
	dialogs.On("ChooseTheatres", mock.Anything, mock.Anything).Run(choose("Syria", "Nevada")).Return(nil)
	dialogs.On("ChooseDirectory", mock.Anything, in).Return(out, true, nil)

	op, err := New(Options{Args: []string{src}, Dialogs: dialogs})
	require.NoError(t, err)

	err = op.Execute(ctx)
	require.NoError(t, err)
	dialogs.AssertExpectations(t)
	dialogs.AssertNotCalled(t, "OpenFiles", mock.Anything, mock.Anything, mock.Anything)

	assert.Equal(t, []string{"Nevada-sam.stm", "Syria-sam.stm"}, dirNames(t, out))

	original, err := os.ReadFile(src)
	require.NoError(t, err)
	for _, target := range []string{"Nevada", "Syria"} {
		got, err := os.ReadFile(filepath.Join(out, target+"-sam.stm"))
		require.NoError(t, err)
		want := strings.Replace(string(original), `["theatre"] = "Caucasus"`, `["theatre"] = "`+target+`"`, 1)
		assert.Equal(t, want, string(got), "only the assignment should change for %s", target)
	}

	require.Len(t, dialogs.notices, 1)
	assert.Equal(t, notify.KindSuccess, dialogs.notices[0].Kind)
	assert.Equal(t, "Files created:", dialogs.notices[0].Message)
	assert.Equal(t, []string{"Nevada-sam.stm", "Syria-sam.stm"}, dialogs.notices[0].Items, "items follow theatre order")

	assert.Contains(t, console.String(), "Nevada-sam.stm")
	assert.Equal(t, 0, ExitCode(err))
}

func TestExecuteOpenDialog(t *testing.T) {
	ctx, _ := testContext(t)
	in := t.TempDir()
	out := t.TempDir()
	a := writeTemplate(t, in, "a.stm", "Nevada")
	b := writeTemplate(t, in, "b.stm", "Nevada")

	dialogs := &MockDialogs{}
	dialogs.On("OpenFiles", mock.Anything, in, fileset.ExtensionFilter(".stm")).Return([]string{a, b}, nil)
	dialogs.On("ChooseTheatres", mock.Anything, mock.Anything).Run(choose("Kola")).Return(nil)
	dialogs.On("ChooseDirectory", mock.Anything, "/suggested").Return(out, true, nil)

	op, err := New(Options{Dir: in, OutputDir: "/suggested", Dialogs: dialogs})
	require.NoError(t, err)

	require.NoError(t, op.Execute(ctx))
	dialogs.AssertExpectations(t)

	assert.Equal(t, []string{"Kola-a.stm", "Kola-b.stm"}, dirNames(t, out))
}

func TestExecuteOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T, in string, dialogs *MockDialogs) []string
		wantErr    error
		wantFatal  bool
		wantKind   notify.Kind
		wantNotice string
		wantExit   int
	}{
		{
			name: "open_dialog_cancelled",
			setup: func(t *testing.T, in string, dialogs *MockDialogs) []string {
				dialogs.On("OpenFiles", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
				return nil
			},
			wantErr:    fileset.ErrNoFiles,
			wantFatal:  true,
			wantKind:   notify.KindError,
			wantNotice: "No files selected.",
			wantExit:   1,
		},
		{
			name: "glob_without_match",
			setup: func(t *testing.T, in string, dialogs *MockDialogs) []string {
				return []string{filepath.Join(in, "*.stm")}
			},
			wantErr:    fileset.ErrNoFiles,
			wantFatal:  true,
			wantKind:   notify.KindError,
			wantNotice: "no files",
			wantExit:   1,
		},
		{
			name: "unreadable_file",
			setup: func(t *testing.T, in string, dialogs *MockDialogs) []string {
				ok := writeTemplate(t, in, "ok.stm", "Caucasus")
				return []string{ok, filepath.Join(in, "vanished.stm")}
			},
			wantErr:    fileset.ErrReadFailed,
			wantFatal:  true,
			wantKind:   notify.KindError,
			wantNotice: "Failed to read:",
			wantExit:   1,
		},
		{
			name: "no_theatre_value",
			setup: func(t *testing.T, in string, dialogs *MockDialogs) []string {
				path := filepath.Join(in, "empty.stm")
				require.NoError(t, os.WriteFile(path, []byte("mission = {}\n"), 0o644))
				return []string{path}
			},
			wantErr:    text.ErrFieldNotFound,
			wantFatal:  true,
			wantKind:   notify.KindError,
			wantNotice: "No theatre value found in file(s).",
			wantExit:   1,
		},
		{
			name: "theatre_dialog_closed",
			setup: func(t *testing.T, in string, dialogs *MockDialogs) []string {
				dialogs.On("ChooseTheatres", mock.Anything, mock.Anything).Run(closeDialog).Return(nil)
				return []string{writeTemplate(t, in, "sam.stm", "Caucasus")}
			},
			wantErr:    ErrCancelled,
			wantKind:   notify.KindInfo,
			wantNotice: "No theatres selected. Exiting.",
			wantExit:   0,
		},
		{
			name: "directory_declined",
			setup: func(t *testing.T, in string, dialogs *MockDialogs) []string {
				dialogs.On("ChooseTheatres", mock.Anything, mock.Anything).Run(choose("Nevada")).Return(nil)
				dialogs.On("ChooseDirectory", mock.Anything, mock.Anything).Return("", false, nil)
				return []string{writeTemplate(t, in, "sam.stm", "Caucasus")}
			},
			wantKind:   notify.KindInfo,
			wantNotice: "No directory selected.",
			wantExit:   0,
		},
		{
			name: "directory_prompt_failed",
			setup: func(t *testing.T, in string, dialogs *MockDialogs) []string {
				dialogs.On("ChooseTheatres", mock.Anything, mock.Anything).Run(choose("Nevada")).Return(nil)
				dialogs.On("ChooseDirectory", mock.Anything, mock.Anything).Return("", false, errors.New("tty gone"))
				return []string{writeTemplate(t, in, "sam.stm", "Caucasus")}
			},
			wantFatal:  true,
			wantKind:   notify.KindError,
			wantNotice: "tty gone",
			wantExit:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testContext(t)
			in := t.TempDir()
			dialogs := &MockDialogs{}
			args := tt.setup(t, in, dialogs)

			op, err := New(Options{Args: args, Dir: in, Dialogs: dialogs})
			require.NoError(t, err)

			err = op.Execute(ctx)
			dialogs.AssertExpectations(t)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "error should be %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && !tt.wantFatal {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantFatal, IsFatal(err), "fatal should match")
			assert.Equal(t, tt.wantExit, ExitCode(err), "exit code should match")

			require.Len(t, dialogs.notices, 1, "exactly one notice should be shown")
			assert.Equal(t, tt.wantKind, dialogs.notices[0].Kind)
			assert.Contains(t, dialogs.notices[0].Message, tt.wantNotice)

			if tt.wantFatal {
				var fatal *FatalError
				require.True(t, errors.As(err, &fatal))
				assert.Equal(t, dialogs.notices[0], fatal.Notice, "the shown notice should be carried")
			}
		})
	}
}

func TestExecuteWriteFailure(t *testing.T) {
	ctx, _ := testContext(t)
	in := t.TempDir()
	out := t.TempDir()
	src := writeTemplate(t, in, "sam.stm", "Caucasus")

	// a directory where the second output belongs makes that write fail
	require.NoError(t, os.Mkdir(filepath.Join(out, "Nevada-sam.stm"), 0o755))

	dialogs := &MockDialogs{}
	dialogs.On("ChooseTheatres", mock.Anything, mock.Anything).Run(choose("Kola", "Nevada", "Syria")).Return(nil)
	dialogs.On("ChooseDirectory", mock.Anything, mock.Anything).Return(out, true, nil)

	op, err := New(Options{Args: []string{src}, Dialogs: dialogs})
	require.NoError(t, err)

	err = op.Execute(ctx)
	require.Error(t, err)
	assert.True(t, IsFatal(err))

	_, statErr := os.Stat(filepath.Join(out, "Syria-sam.stm"))
	assert.True(t, os.IsNotExist(statErr), "writes after the failure should not happen")

	require.Len(t, dialogs.notices, 1)
	notice := dialogs.notices[0]
	assert.Equal(t, notify.KindError, notice.Kind)
	assert.Contains(t, notice.Message, filepath.Join(out, "Nevada-sam.stm"))
	assert.Equal(t, []string{"Kola-sam.stm"}, notice.Items, "files written before the failure are listed")
}

func TestExecuteMismatchedTheatres(t *testing.T) {
	ctx, _ := testContext(t)
	in := t.TempDir()
	out := t.TempDir()
	a := writeTemplate(t, in, "a.stm", "Caucasus")
	b := writeTemplate(t, in, "b.stm", "Syria")

	dialogs := &MockDialogs{}
	dialogs.On("ChooseTheatres", mock.Anything, mock.Anything).Run(choose("Nevada")).Return(nil)
	dialogs.On("ChooseDirectory", mock.Anything, mock.Anything).Return(out, true, nil)

	op, err := New(Options{Args: []string{a, b}, Dialogs: dialogs})
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	got, err := os.ReadFile(filepath.Join(out, "Nevada-b.stm"))
	require.NoError(t, err)
	want, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got), "a file with another theatre is copied unchanged")

	require.Len(t, dialogs.notices, 2, "a warning precedes the success notice")
	warning := dialogs.notices[0]
	assert.Equal(t, notify.KindWarning, warning.Kind)
	assert.Contains(t, warning.Message, "Caucasus")
	assert.Equal(t, []string{"b.stm (Syria)"}, warning.Items)
	assert.Equal(t, notify.KindSuccess, dialogs.notices[1].Kind)
}

func TestExecuteMissingTheatreInLaterFile(t *testing.T) {
	ctx, _ := testContext(t)
	in := t.TempDir()
	out := t.TempDir()
	a := writeTemplate(t, in, "a.stm", "Caucasus")
	b := filepath.Join(in, "b.stm")
	require.NoError(t, os.WriteFile(b, []byte("mission = {}\n"), 0o644))

	dialogs := &MockDialogs{}
	dialogs.On("ChooseTheatres", mock.Anything, mock.Anything).Run(choose("Nevada")).Return(nil)
	dialogs.On("ChooseDirectory", mock.Anything, mock.Anything).Return(out, true, nil)

	op, err := New(Options{Args: []string{a, b}, Dialogs: dialogs})
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	require.Len(t, dialogs.notices, 2)
	assert.Equal(t, notify.KindWarning, dialogs.notices[0].Kind)
	assert.Equal(t, []string{"b.stm (no theatre)"}, dialogs.notices[0].Items)
}
