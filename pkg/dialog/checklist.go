package dialog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/theatredup/pkg/selection"
)

// --- Styles ---
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

// rows taken by the title, counter, warning and help lines
const chromeHeight = 7

type checklistKeys struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	None    key.Binding
	Filter  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultChecklistKeys() checklistKeys {
	return checklistKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "toggle")),
		All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		None:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "select none")),
		Filter:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "all files"), key.WithDisabled()),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "close")),
	}
}

func (k checklistKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.All, k.None, k.Filter, k.Confirm, k.Cancel}
}

func (k checklistKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, k.ShortHelp()}
}

// checklist renders a selection.Session as a list of checkboxes. The session
// holds the selection; the model only holds the cursor.
type checklist struct {
	title        string
	emptyWarning string
	session      *selection.Session
	label        func(string) string

	cursor  int
	offset  int
	height  int
	warning string

	keys checklistKeys
	help help.Model
}

func newChecklist(title, emptyWarning string, session *selection.Session) checklist {
	return checklist{
		title:        title,
		emptyWarning: emptyWarning,
		session:      session,
		label:        func(s string) string { return s },
		keys:         defaultChecklistKeys(),
		help:         help.New(),
	}
}

func (m checklist) Init() tea.Cmd { return nil }

func (m checklist) current() (string, bool) {
	options := m.session.Options()
	if m.cursor < 0 || m.cursor >= len(options) {
		return "", false
	}
	return options[m.cursor], true
}

func (m checklist) visibleRows() int {
	if m.height <= 0 {
		return m.session.Len()
	}
	return max(1, m.height-chromeHeight)
}

func (m *checklist) scroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m checklist) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			_ = m.session.Cancel()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			m.scroll()

		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.session.Len()-1 {
				m.cursor++
			}
			m.scroll()

		case key.Matches(msg, m.keys.Toggle):
			if name, ok := m.current(); ok {
				_ = m.session.Toggle(name)
				m.warning = ""
			}

		case key.Matches(msg, m.keys.All):
			_ = m.session.SelectAll()
			m.warning = ""

		case key.Matches(msg, m.keys.None):
			_ = m.session.SelectNone()

		case key.Matches(msg, m.keys.Confirm):
			err := m.session.Confirm()
			if errors.Is(err, selection.ErrNothingSelected) {
				m.warning = m.emptyWarning
				return m, nil
			}
			if err != nil {
				m.warning = err.Error()
				return m, nil
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m checklist) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	options := m.session.Options()
	if len(options) == 0 {
		b.WriteString(faintStyle.Render("  (nothing to choose)"))
		b.WriteString("\n")
	}

	end := min(len(options), m.offset+m.visibleRows())
	for i := m.offset; i < end; i++ {
		name := options[i]

		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("› ")
		}

		box := "[ ]"
		line := m.label(name)
		if m.session.IsSelected(name) {
			box = "[x]"
			line = selectedStyle.Render(line)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", pointer, box, line))
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf("%d of %d selected", m.session.Count(), len(options))))
	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString(warningStyle.Render("⚠ " + m.warning))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}
