package dialog

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/walteh/theatredup/pkg/fileset"
	"github.com/walteh/theatredup/pkg/selection"
)

// filePicker is a multi-select open dialog over one directory. tab switches
// between the template filter and all files.
type filePicker struct {
	checklist

	dir     string
	filter  fileset.Filter
	showAll bool
}

func newFilePicker(dir string, filter fileset.Filter) filePicker {
	m := filePicker{
		checklist: newChecklist("", "No files selected.", selection.New(nil)),
		dir:       dir,
		filter:    filter,
	}
	m.label = filepath.Base
	m.keys.Filter.SetEnabled(true)
	m.keys.Confirm.SetHelp("enter", "open")
	m.reload()
	return m
}

func (m filePicker) activeFilter() fileset.Filter {
	if m.showAll {
		return fileset.AllFiles
	}
	return m.filter
}

// reload lists dir again under the active filter. Checked files are lost.
func (m *filePicker) reload() {
	active := m.activeFilter()
	m.title = "Select Template Files • " + active.String()
	m.cursor, m.offset = 0, 0
	m.warning = ""

	paths, err := fileset.List(m.dir, active)
	if err != nil {
		m.warning = err.Error()
	}
	m.session = selection.New(paths)
	_ = m.session.Start()
}

func (m filePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Filter):
			m.showAll = !m.showAll
			m.reload()
			return m, nil

		// enter with nothing checked opens the highlighted file
		case key.Matches(msg, m.keys.Confirm) && m.session.Count() == 0:
			if name, ok := m.current(); ok {
				_ = m.session.Set(name, true)
			}
		}
	}

	next, cmd := m.checklist.Update(msg)
	m.checklist = next.(checklist)
	return m, cmd
}

func (m filePicker) View() string {
	return faintStyle.Render(m.dir) + "\n" + m.checklist.View()
}
