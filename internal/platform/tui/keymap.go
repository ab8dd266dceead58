package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catapult/internal/core"
)

// GameKeyMap defines the key bindings used while playing.
type GameKeyMap struct {
	AimUp     key.Binding
	AimDown   key.Binding
	PowerUp   key.Binding
	PowerDown key.Binding
	Launch    key.Binding
	Confirm   key.Binding
	Restart   key.Binding
	Pause     key.Binding
	Music     key.Binding
	SFX       key.Binding
	Louder    key.Binding
	Quieter   key.Binding
	Scores    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AimUp, k.PowerUp, k.Launch, k.Pause, k.Music, k.SFX, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AimUp, k.AimDown, k.PowerUp, k.PowerDown, k.Launch},
		{k.Restart, k.Pause, k.Scores, k.Back, k.Quit},
		{k.Music, k.SFX, k.Louder, k.Quieter},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		AimUp: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("up/w", "aim up"),
		),
		AimDown: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("down/s", "aim down"),
		),
		PowerUp: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "more power"),
		),
		PowerDown: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "less power"),
		),
		Launch: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "launch/boost"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Music: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "music"),
		),
		SFX: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "sounds"),
		),
		Louder: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "louder"),
		),
		Quieter: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "quieter"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a game action for the given state of
// play. Space launches while aiming and boosts while flying.
func (k GameKeyMap) MapKey(msg tea.KeyMsg, flying bool) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.AimUp):
		return core.ActionAimUp
	case key.Matches(msg, k.AimDown):
		return core.ActionAimDown
	case key.Matches(msg, k.PowerUp):
		return core.ActionPowerUp
	case key.Matches(msg, k.PowerDown):
		return core.ActionPowerDown
	case key.Matches(msg, k.Launch):
		if flying {
			return core.ActionBoost
		}
		return core.ActionLaunch
	case key.Matches(msg, k.Confirm):
		if flying {
			return core.ActionBoost
		}
		return core.ActionConfirm
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	}
	return core.ActionNone
}
