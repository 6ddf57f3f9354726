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

// Package fileset loads the template files chosen by the operator and keeps
// their text for the rest of the run.
package fileset

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrNoFiles is returned when Load is called without paths.
	ErrNoFiles = errors.Base("no files selected")
	// ErrReadFailed wraps the failure to read one of the files.
	ErrReadFailed = errors.Base("failed to read file")
)

// ReadError reports the file that could not be read. It matches ErrReadFailed
// and the underlying cause.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return ErrReadFailed.Error() + " " + e.Path + ": " + e.Err.Error()
}

func (e *ReadError) Unwrap() []error {
	return []error{ErrReadFailed, e.Err}
}

// 📄 SourceFile is one loaded template.
type SourceFile struct {
	Path    string
	Content string
}

// 📦 FileSet is an ordered, read-only set of loaded templates.
type FileSet struct {
	files []SourceFile
	index map[string]int
}

// 📥 Load reads every path as text. Invalid UTF-8 is replaced, not rejected.
// Any unreadable file fails the whole load.
func Load(ctx context.Context, paths []string) (*FileSet, error) {
	logger := zerolog.Ctx(ctx)

	if len(paths) == 0 {
		return nil, ErrNoFiles
	}

	set := &FileSet{index: make(map[string]int, len(paths))}
	for _, path := range paths {
		if _, ok := set.index[path]; ok {
			logger.Debug().Str("path", path).Msg("skipping duplicate file")
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WithStack(&ReadError{Path: path, Err: err})
		}

		set.index[path] = len(set.files)
		set.files = append(set.files, SourceFile{Path: path, Content: Decode(data)})
		logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("loaded file")
	}

	return set, nil
}

// Decode converts data to a string, substituting U+FFFD for invalid UTF-8.
func Decode(data []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		// the UTF-8 decoder substitutes rather than fails
		return string(data)
	}
	return string(out)
}

// Len returns the number of files.
func (s *FileSet) Len() int { return len(s.files) }

// Files returns the files in load order.
func (s *FileSet) Files() []SourceFile {
	out := make([]SourceFile, len(s.files))
	copy(out, s.files)
	return out
}

// First returns the first loaded file.
func (s *FileSet) First() SourceFile {
	return s.files[0]
}

// Paths returns the file paths in load order.
func (s *FileSet) Paths() []string {
	out := make([]string, len(s.files))
	for i, f := range s.files {
		out[i] = f.Path
	}
	return out
}

// Content returns the loaded text of path.
func (s *FileSet) Content(path string) (string, bool) {
	i, ok := s.index[path]
	if !ok {
		return "", false
	}
	return s.files[i].Content, true
}
