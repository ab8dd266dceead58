package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catapult/internal/catapult"
	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
	"github.com/vovakirdan/catapult/internal/settings"
)

func newTestModel(t *testing.T, name string) Model {
	t.Helper()
	st := settings.Default()
	st.Name = name
	return NewModel(Options{
		Holder:   config.NewHolder(config.DefaultParams()),
		Settings: st,
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
	})
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestNameEntryRequiredWithoutName(t *testing.T) {
	m := newTestModel(t, "")
	if m.view != viewName {
		t.Fatalf("view = %d, want name prompt", m.view)
	}

	// Invalid name is rejected
	m = press(t, m, runes("a b"))
	m = press(t, m, keyEnter)
	if m.view != viewName {
		t.Fatal("invalid name should keep the prompt")
	}
	if !strings.Contains(m.View(), "letters and digits") {
		t.Error("prompt should explain the rule")
	}
}

func TestNameEntryAccepted(t *testing.T) {
	m := newTestModel(t, "")
	m = press(t, m, runes("alice"))
	m = press(t, m, keyEnter)
	if m.view != viewTitle {
		t.Fatalf("view = %d, want title", m.view)
	}
	if m.settings.Name != "alice" {
		t.Errorf("Name = %q, want alice", m.settings.Name)
	}
	if got := m.machine.Result().Name; got != "alice" {
		t.Errorf("machine name = %q, want alice", got)
	}
}

func TestLaunchFromTitle(t *testing.T) {
	m := newTestModel(t, "bob")
	if m.view != viewTitle {
		t.Fatalf("view = %d, want title", m.view)
	}

	m = press(t, m, keyEnter)
	if m.view != viewPlay {
		t.Fatalf("view = %d, want play", m.view)
	}

	angle := m.aim.Angle
	m = press(t, m, keyUp)
	if m.aim.Angle != angle+aimAngleStep {
		t.Errorf("Angle = %v, want %v", m.aim.Angle, angle+aimAngleStep)
	}

	m = press(t, m, keySpace)
	if m.machine.State() != catapult.StateLaunched {
		t.Fatalf("state = %s, want launched", m.machine.State())
	}

	next, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	m = next.(Model)
	if m.machine.Player().Pos.X <= config.DefaultParams().Player.Start.X {
		t.Error("player should move after a tick")
	}
	if m.View() == "" {
		t.Error("View() should render the world")
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	m := newTestModel(t, "bob")
	m = press(t, m, keyEnter)
	m = press(t, m, keySpace)

	m = press(t, m, runes("p"))
	before := m.machine.Player().Pos
	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	if m.machine.Player().Pos != before {
		t.Error("paused model should not advance")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused view should say so")
	}
}

func TestEndScreenAndRestart(t *testing.T) {
	m := newTestModel(t, "bob")
	m = press(t, m, keyEnter)
	m = press(t, m, keySpace)

	// A ninja contact ends the run below the reward threshold
	m.machine.Tick(catapult.TickInput{Contacts: []core.Contact{{Kind: core.ContactEnemy}}})
	if m.machine.State() != catapult.StateEnded {
		t.Fatalf("state = %s, want ended", m.machine.State())
	}
	if !strings.Contains(m.View(), "KNOCKED OUT") {
		t.Error("end panel should name the outcome")
	}

	oldID := m.machine.Run().ID
	m = press(t, m, runes("r"))
	if m.machine.State() != catapult.StateIdle {
		t.Fatalf("state = %s, want idle after restart", m.machine.State())
	}
	if m.machine.Run().ID == oldID {
		t.Error("restart should create a new run")
	}
}

func TestRewardSelection(t *testing.T) {
	m := newTestModel(t, "bob")
	m.holder.Update(func(p *config.Params) { p.Player.Threshold = -1000 })
	// The threshold applies from the next run's snapshot
	m.machine.Restart(catapult.RestartRun)

	m = press(t, m, keyEnter)
	m = press(t, m, keySpace)
	m.machine.Tick(catapult.TickInput{Contacts: []core.Contact{{Kind: core.ContactEnemy}}})
	if m.machine.EndScreen() != catapult.EndReward {
		t.Fatalf("EndScreen = %d, want reward", m.machine.EndScreen())
	}

	m = press(t, m, keyDown)
	if m.rewardCursor != 1 {
		t.Errorf("rewardCursor = %d, want 1", m.rewardCursor)
	}

	// Restart is refused until a reward is chosen
	m = press(t, m, runes("r"))
	if m.machine.State() != catapult.StateEnded {
		t.Fatal("restart should wait for the reward")
	}

	edit := m.edits[1]
	m = press(t, m, keyEnter)
	if m.machine.EndScreen() != catapult.EndPlain {
		t.Fatal("reward should switch to the plain end screen")
	}
	if !strings.HasPrefix(m.status, edit.Label) {
		t.Errorf("status = %q, want %s", m.status, edit.Label)
	}
	v, err := m.holder.Snapshot().Get(edit.Key)
	if err != nil {
		t.Fatalf("Get(%s) failed: %v", edit.Key, err)
	}
	if !edit.Range.Contains(v) {
		t.Errorf("%s = %v, outside %v", edit.Key, v, edit.Range)
	}
}

func TestAudioKeysUpdateSettings(t *testing.T) {
	m := newTestModel(t, "bob")
	m = press(t, m, runes("m"))
	if !m.settings.Music.Paused {
		t.Error("m should pause the music")
	}
	m = press(t, m, runes("-"))
	if m.settings.SFX.Volume != settings.MaxVolume-1 {
		t.Errorf("SFX volume = %d, want %d", m.settings.SFX.Volume, settings.MaxVolume-1)
	}
}

func TestQuitExitsMachine(t *testing.T) {
	m := newTestModel(t, "bob")
	m = press(t, m, keyEnter)
	next, cmd := m.Update(runes("q"))
	m = next.(Model)
	if cmd == nil || !m.Quitting() {
		t.Fatal("q should quit")
	}
	if m.machine.State() != catapult.StateExited {
		t.Errorf("state = %s, want exited", m.machine.State())
	}
	if m.View() != "" {
		t.Error("quitting view should be empty")
	}
}

func TestRewardWindow(t *testing.T) {
	tests := []struct {
		cursor, n, rows int
		first, last     int
	}{
		{0, 5, 10, 0, 5},
		{0, 13, 5, 0, 5},
		{6, 13, 5, 4, 9},
		{12, 13, 5, 8, 13},
		{3, 13, 0, 3, 4},
	}
	for _, tt := range tests {
		first, last := rewardWindow(tt.cursor, tt.n, tt.rows)
		if first != tt.first || last != tt.last {
			t.Errorf("rewardWindow(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.cursor, tt.n, tt.rows, first, last, tt.first, tt.last)
		}
	}
}
