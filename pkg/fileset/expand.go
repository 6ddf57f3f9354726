package fileset

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Filter restricts which files the file dialog offers.
type Filter struct {
	Name    string // shown to the operator, e.g. "STM files"
	Pattern string // doublestar pattern matched against the base name
}

// AllFiles is the fallback filter that matches every file.
var AllFiles = Filter{Name: "All files", Pattern: "*"}

// ExtensionFilter returns a filter for files ending in ext.
func ExtensionFilter(ext string) Filter {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return Filter{
		Name:    strings.ToUpper(strings.TrimPrefix(ext, ".")) + " files",
		Pattern: "*" + ext,
	}
}

// Match reports whether the base name of path passes the filter.
func (f Filter) Match(path string) bool {
	ok, err := doublestar.Match(f.Pattern, filepath.Base(path))
	return err == nil && ok
}

// String renders the filter like a file dialog does: "STM files (*.stm)".
func (f Filter) String() string {
	return f.Name + " (" + f.Pattern + ")"
}

// 📂 List returns the regular files directly in dir that pass the filter, sorted by name.
func List(dir string, filter Filter) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading directory %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !filter.Match(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

func isPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

// 🌟 Expand resolves command-line arguments into file paths, in argument order.
// Arguments containing glob characters are expanded with doublestar; a glob
// that matches no file is an error. Literal paths are passed through unchecked.
func Expand(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if !isPattern(arg) {
			out = append(out, arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("expanding %q: %w", arg, ErrNoFiles)
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}
