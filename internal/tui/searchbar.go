package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fentz26/taskview/internal/theme"
)

// SearchBarModel manages the free-text search input.
type SearchBarModel struct {
	input   textinput.Model
	focused bool
}

// NewSearchBarModel creates an empty, unfocused search bar.
func NewSearchBarModel() *SearchBarModel {
	ti := textinput.New()
	ti.Placeholder = "Search tasks..."
	ti.CharLimit = 256
	ti.Prompt = "/ "
	return &SearchBarModel{
		input: ti,
	}
}

// Focused reports whether keystrokes go to the input.
func (m *SearchBarModel) Focused() bool { return m.focused }

// Focus focuses the search bar.
func (m *SearchBarModel) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur unfocuses the search bar, keeping its value.
func (m *SearchBarModel) Blur() {
	m.focused = false
	m.input.Blur()
}

// Value returns the current search text.
func (m *SearchBarModel) Value() string { return m.input.Value() }

// SetValue replaces the search text.
func (m *SearchBarModel) SetValue(s string) { m.input.SetValue(s) }

// SetWidth sets the visible input width.
func (m *SearchBarModel) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	m.input.Width = w
}

// Update forwards msg to the input and reports whether the text changed.
func (m *SearchBarModel) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m.input.Value() != before, cmd
}

// View renders the search bar.
func (m *SearchBarModel) View(p theme.Palette, width int) string {
	border := p.Border
	if m.focused {
		border = p.Primary
	}
	m.input.PromptStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	m.input.TextStyle = lipgloss.NewStyle().Foreground(p.Text)
	m.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(p.Muted)

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(m.input.View())
}
