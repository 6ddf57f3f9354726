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

// Package selection models an operator choosing a subset of a fixed list of
// options. The session owns the selection flags; dialogs only call into it.
package selection

import (
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNothingSelected is returned by Confirm when no option is selected.
	// The session stays open.
	ErrNothingSelected = errors.Base("nothing selected")
	// ErrInvalidState is returned when an action is not legal in the current state.
	ErrInvalidState = errors.Base("invalid session state")
	// ErrUnknownOption is returned for names outside the session's options.
	ErrUnknownOption = errors.Base("unknown option")
)

// State is the lifecycle position of a Session.
type State int

const (
	Idle State = iota
	Presenting
	Confirmed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Presenting:
		return "presenting"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// 🎯 Session tracks which of a fixed, ordered set of options are selected.
type Session struct {
	options  []string
	index    map[string]int
	selected []bool
	state    State
}

// 🏭 New creates an idle session over options. Duplicate names are dropped.
func New(options []string) *Session {
	s := &Session{
		index: make(map[string]int, len(options)),
	}
	for _, o := range options {
		if _, ok := s.index[o]; ok {
			continue
		}
		s.index[o] = len(s.options)
		s.options = append(s.options, o)
	}
	s.selected = make([]bool, len(s.options))
	return s
}

// Options returns the session's options in order.
func (s *Session) Options() []string {
	out := make([]string, len(s.options))
	copy(out, s.options)
	return out
}

// Len returns the number of options.
func (s *Session) Len() int { return len(s.options) }

// State returns the current state.
func (s *Session) State() State { return s.state }

// ▶️ Start presents the options, all unselected.
func (s *Session) Start() error {
	if s.state != Idle {
		return errors.Errorf("starting %s session: %w", s.state, ErrInvalidState)
	}
	for i := range s.selected {
		s.selected[i] = false
	}
	s.state = Presenting
	return nil
}

func (s *Session) lookup(name string) (int, error) {
	if s.state != Presenting {
		return 0, errors.Errorf("changing %s session: %w", s.state, ErrInvalidState)
	}
	i, ok := s.index[name]
	if !ok {
		return 0, errors.Errorf("%q: %w", name, ErrUnknownOption)
	}
	return i, nil
}

// Toggle flips the selection of name.
func (s *Session) Toggle(name string) error {
	i, err := s.lookup(name)
	if err != nil {
		return err
	}
	s.selected[i] = !s.selected[i]
	return nil
}

// Set selects or deselects name.
func (s *Session) Set(name string, on bool) error {
	i, err := s.lookup(name)
	if err != nil {
		return err
	}
	s.selected[i] = on
	return nil
}

// IsSelected reports whether name is selected.
func (s *Session) IsSelected(name string) bool {
	i, ok := s.index[name]
	return ok && s.selected[i]
}

// SelectAll selects every option.
func (s *Session) SelectAll() error { return s.setAll(true) }

// SelectNone clears every option.
func (s *Session) SelectNone() error { return s.setAll(false) }

func (s *Session) setAll(on bool) error {
	if s.state != Presenting {
		return errors.Errorf("changing %s session: %w", s.state, ErrInvalidState)
	}
	for i := range s.selected {
		s.selected[i] = on
	}
	return nil
}

// Count returns the number of selected options.
func (s *Session) Count() int {
	n := 0
	for _, on := range s.selected {
		if on {
			n++
		}
	}
	return n
}

// ✅ Confirm closes the session with the current selection. With nothing
// selected it returns ErrNothingSelected and keeps presenting.
func (s *Session) Confirm() error {
	if s.state != Presenting {
		return errors.Errorf("confirming %s session: %w", s.state, ErrInvalidState)
	}
	if s.Count() == 0 {
		return ErrNothingSelected
	}
	s.state = Confirmed
	return nil
}

// ❌ Cancel closes the session without a selection.
func (s *Session) Cancel() error {
	if s.state != Presenting {
		return errors.Errorf("cancelling %s session: %w", s.state, ErrInvalidState)
	}
	s.state = Cancelled
	return nil
}

// Selected returns the selected options in option order.
func (s *Session) Selected() []string {
	out := make([]string, 0, s.Count())
	for i, on := range s.selected {
		if on {
			out = append(out, s.options[i])
		}
	}
	return out
}
