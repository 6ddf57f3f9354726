package dialog

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrNotDirectory is returned by the directory prompt validator
var ErrNotDirectory = errors.Base("not a directory")

// 📁 ChooseDirectory implements Dialogs. An interrupt or an empty answer
// declines.
func (t *Terminal) ChooseDirectory(ctx context.Context, suggested string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	prompt := &survey.Input{
		Message: "Select Output Directory",
		Default: suggested,
		Help:    "The new template files are written here. Press ctrl+c to cancel.",
		Suggest: suggestDirs,
	}

	var answer string
	err := survey.AskOne(prompt, &answer,
		survey.WithValidator(validateDir),
		survey.WithStdio(t.in, t.out, t.out),
	)
	if errors.Is(err, terminal.InterruptErr) {
		zerolog.Ctx(ctx).Debug().Msg("directory prompt interrupted")
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Errorf("asking for output directory: %w", err)
	}

	dir, err := resolveDir(answer)
	if err != nil {
		return "", false, err
	}
	if dir == "" {
		return "", false, nil
	}
	return dir, true, nil
}

// resolveDir expands a leading ~ and makes the answer absolute
func resolveDir(answer string) (string, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", nil
	}

	if answer == "~" || strings.HasPrefix(answer, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Errorf("resolving home directory: %w", err)
		}
		answer = filepath.Join(home, strings.TrimPrefix(answer, "~"))
	}

	abs, err := filepath.Abs(answer)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", answer, err)
	}
	return abs, nil
}

// validateDir accepts an empty answer (decline) or an existing directory
func validateDir(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return errors.Errorf("unexpected answer type %T", ans)
	}

	dir, err := resolveDir(s)
	if err != nil {
		return err
	}
	if dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return errors.Errorf("%s: %w", s, ErrNotDirectory)
	}
	if !info.IsDir() {
		return errors.Errorf("%s: %w", s, ErrNotDirectory)
	}
	return nil
}

// suggestDirs completes the typed prefix to matching directories
func suggestDirs(toComplete string) []string {
	if strings.ContainsAny(toComplete, "*?[{\\") {
		return nil
	}

	matches, err := doublestar.FilepathGlob(toComplete + "*")
	if err != nil {
		return nil
	}

	var out []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		out = append(out, m+string(filepath.Separator))
	}
	sort.Strings(out)
	return out
}
