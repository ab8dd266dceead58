package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const gameTitle = "  C A T A P U L T  "

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// viewTitle renders the title screen.
func (m Model) viewTitle() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText(gameTitle, m.config.ScreenW)))
	b.WriteString("\n\n")

	if m.settings.Name != "" {
		b.WriteString(centerText(fmt.Sprintf("Welcome, %s", m.settings.Name), m.config.ScreenW))
		b.WriteString("\n\n")
	}

	leader := m.machine.Leader()
	switch {
	case m.store == nil:
	case leader.Name != "" || leader.Score > 0:
		b.WriteString(centerText(fmt.Sprintf("Best this week: %d by %s", leader.Score, leader.Name), m.config.ScreenW))
		b.WriteString("\n\n")
	default:
		b.WriteString(centerText("No runs this week yet", m.config.ScreenW))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText("Enter: play  |  Tab: scores  |  Q: quit", m.config.ScreenW))
	b.WriteString("\n\n")
	b.WriteString(centerText(audioStatus(m.settings.Music.Paused, m.settings.Music.Volume, "Music")+
		"   "+audioStatus(m.settings.SFX.Paused, m.settings.SFX.Volume, "Sounds"), m.config.ScreenW))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func audioStatus(paused bool, volume int, label string) string {
	if paused {
		return label + ": off"
	}
	return fmt.Sprintf("%s: %d", label, volume)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
