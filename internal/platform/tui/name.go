package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/catapult/internal/settings"
)

// NameModel asks for the player name shown on the leaderboard.
type NameModel struct {
	input textinput.Model
	err   error
	done  bool
}

// NewNameModel creates a focused name prompt prefilled with initial.
func NewNameModel(initial string) NameModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "yourname"
	ti.CharLimit = settings.MaxNameLen
	ti.Width = settings.MaxNameLen + 1
	ti.SetValue(initial)
	ti.Focus()
	return NameModel{input: ti}
}

// Update handles typing and submission.
func (m NameModel) Update(msg tea.Msg) (NameModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		if err := settings.ValidateName(m.Value()); err != nil {
			m.err = err
			return m, nil
		}
		m.done = true
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = nil
	return m, cmd
}

// Value returns the trimmed input.
func (m NameModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Done reports whether a valid name was submitted.
func (m NameModel) Done() bool {
	return m.done
}

// View renders the prompt centered in width.
func (m NameModel) View(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText(gameTitle, width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter your name (letters and digits, up to 10)", width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.input.View(), width))
	b.WriteString("\n")
	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString("\n")
		b.WriteString(errStyle.Render(centerText(strings.TrimPrefix(m.err.Error(), "settings: "), width)))
		b.WriteString("\n")
	}
	return b.String()
}
