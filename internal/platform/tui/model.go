package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catapult/internal/audio"
	"github.com/vovakirdan/catapult/internal/catapult"
	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
	"github.com/vovakirdan/catapult/internal/physics"
	"github.com/vovakirdan/catapult/internal/settings"
	"github.com/vovakirdan/catapult/internal/storage"
)

// view is the screen the session is showing.
type view int

const (
	viewName view = iota
	viewTitle
	viewPlay
	viewScores
)

// Options wires a session to its shared collaborators.
type Options struct {
	Holder       *config.Holder    // Shared parameters, required
	Store        *storage.Store    // Leaderboard and remote config, nil to play offline
	Recorder     catapult.Recorder // Persistence of runs and overrides
	Audio        *audio.Manager    // nil for silent sessions
	Logger       *log.Logger
	Settings     settings.Settings
	SettingsPath string // Where settings are saved, empty to keep them in memory
	Runtime      core.RuntimeConfig
}

// Model is the Bubble Tea model for one player session.
type Model struct {
	machine      *catapult.Machine
	engine       *physics.Engine
	holder       *config.Holder
	store        *storage.Store
	audio        *audio.Manager
	logger       *log.Logger
	settings     settings.Settings
	settingsPath string
	config       core.RuntimeConfig
	screen       *core.Screen
	keys         GameKeyMap
	help         help.Model

	view         view
	name         NameModel
	scores       ScoreboardModel
	aim          Aim
	paused       bool
	edits        []config.Edit
	rewardCursor int
	status       string
	quitting     bool
}

// NewModel creates a session model. Sessions without a player name start on
// the name prompt.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	machine := catapult.NewMachine(catapult.Options{
		Holder:   opts.Holder,
		Seed:     cfg.Seed,
		Recorder: opts.Recorder,
		Logger:   logger,
		Name:     opts.Settings.Name,
	})

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		machine:      machine,
		engine:       physics.New(),
		holder:       opts.Holder,
		store:        opts.Store,
		audio:        opts.Audio,
		logger:       logger,
		settings:     opts.Settings,
		settingsPath: opts.SettingsPath,
		config:       cfg,
		screen:       core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:         DefaultGameKeyMap(),
		help:         h,
		view:         viewTitle,
		scores:       NewScoreboardModel(opts.Store, cfg.ScreenW, cfg.ScreenH),
		aim:          DefaultAim(),
		edits:        config.EditTable(),
	}
	if m.settings.Name == "" {
		m.view = viewName
		m.name = NewNameModel("")
	}
	m.applyAudio()
	return m
}

// Init starts the tick loop and the first leaderboard fetch.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.config.TickRate), fetchLeaderCmd(m.store)}
	if m.view == viewName {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case leaderMsg:
		if msg.err != nil {
			m.logger.Warn("top score fetch failed", "err", msg.err)
		} else if msg.ok {
			m.machine.SetLeader(msg.entry.Score, msg.entry.Name)
		}
		return m, nil

	case paramsMsg:
		if config.IsInvalid(msg.err) {
			m.logger.Warn("config reload rejected some values, keeping local ones", "err", msg.err)
		} else if msg.err != nil {
			m.logger.Warn("config reload failed, keeping local values", "err", msg.err)
			return m, nil
		}
		if m.holder.ReplaceIf(msg.version, msg.params) {
			m.logger.Debug("config reloaded")
		} else {
			m.logger.Debug("stale config reload dropped")
		}
		return m, nil

	case scoresMsg:
		var cmd tea.Cmd
		m.scores, cmd = m.scores.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.view {
		case viewName:
			return m.updateName(msg)
		case viewTitle:
			return m.updateTitle(msg)
		case viewScores:
			return m.updateScores(msg)
		default:
			return m.handleKey(msg)
		}
	}

	if m.view == viewName {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleResize processes window resize events. The run is kept; only the
// projection changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	var cmd tea.Cmd
	m.scores, cmd = m.scores.Update(msg)
	return m, cmd
}

// handleTick advances the simulation by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.view != viewPlay || m.paused {
		return m, tea.Batch(cmds...)
	}

	res := m.machine.Advance(m.engine, m.config.TickDuration())
	for _, mu := range res.Mutations {
		m.cue(mu, res.Outcome)
	}
	if res.Outcome.Terminal() {
		m.rewardCursor = 0
		m.status = ""
		cmds = append(cmds, fetchLeaderCmd(m.store), reloadParamsCmd(m.store, m.holder))
	}
	return m, tea.Batch(cmds...)
}

// cue plays the sound belonging to a tick mutation.
func (m *Model) cue(mu catapult.Mutation, outcome catapult.Outcome) {
	switch mu.Kind {
	case catapult.MutationBounce:
		m.play(audio.SoundBounce)
	case catapult.MutationHit:
		m.play(audio.SoundHit)
	case catapult.MutationPowerStarted:
		m.play(audio.SoundPowerUp)
	case catapult.MutationPowerEnded:
		m.play(audio.SoundPowerDown)
	case catapult.MutationEnded:
		if outcome == catapult.OutcomeKilled {
			m.play(audio.SoundCrash)
		} else {
			m.play(audio.SoundLand)
		}
	}
}

func (m *Model) play(s audio.Sound) {
	if m.audio != nil {
		m.audio.Play(s)
	}
}

func (m *Model) applyAudio() {
	if m.audio != nil {
		m.audio.Apply(m.settings)
	}
}

func (m *Model) saveSettings() {
	if m.settingsPath == "" {
		return
	}
	if err := settings.Save(m.settingsPath, m.settings); err != nil {
		m.logger.Warn("could not save settings", "err", err)
	}
}

// handleAudioKey toggles or steps the audio channels. It reports whether
// the key was an audio key.
func (m *Model) handleAudioKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Music):
		m.settings.Music.Toggle()
	case key.Matches(msg, m.keys.SFX):
		m.settings.SFX.Toggle()
	case key.Matches(msg, m.keys.Louder):
		m.settings.Music.Louder()
		m.settings.SFX.Louder()
	case key.Matches(msg, m.keys.Quieter):
		m.settings.Music.Quieter()
		m.settings.SFX.Quieter()
	default:
		return false
	}
	m.applyAudio()
	m.saveSettings()
	return true
}

func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	if m.name.Done() {
		if err := m.settings.SetName(m.name.Value()); err == nil {
			m.machine.SetName(m.settings.Name)
			m.saveSettings()
			m.view = viewTitle
		}
	}
	return m, cmd
}

func (m Model) updateTitle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Scores):
		m.view = viewScores
		cmd := m.scores.Init()
		return m, cmd
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Launch):
		m.view = viewPlay
		return m, nil
	}
	m.handleAudioKey(msg)
	return m, nil
}

func (m Model) updateScores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.scores, cmd = m.scores.Update(msg)
	if m.scores.IsQuitting() {
		return m.quit()
	}
	if m.scores.IsGoingBack() {
		m.view = viewTitle
	}
	return m, cmd
}

// handleKey processes keyboard input during play.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.handleAudioKey(msg) {
		return m, nil
	}

	state := m.machine.State()
	action := m.keys.MapKey(msg, state == catapult.StateLaunched)

	if action == core.ActionQuit {
		return m.quit()
	}
	if action == core.ActionPause && state != catapult.StateEnded {
		m.paused = !m.paused
		return m, nil
	}
	if m.paused {
		return m, nil
	}

	switch state {
	case catapult.StateIdle:
		if key.Matches(msg, m.keys.Back) {
			m.view = viewTitle
			return m, nil
		}
		if m.aim.Apply(action) {
			return m, nil
		}
		if action == core.ActionLaunch || action == core.ActionConfirm {
			if m.machine.Launch(m.aim.Radians(), m.aim.Power) {
				m.play(audio.SoundLaunch)
			}
		}

	case catapult.StateLaunched:
		if action == core.ActionBoost && m.machine.Boost() {
			m.play(audio.SoundBoost)
		}

	case catapult.StateEnded:
		if m.machine.EndScreen() == catapult.EndReward {
			return m.handleReward(action)
		}
		switch action {
		case core.ActionRestart, core.ActionLaunch, core.ActionConfirm:
			return m.restart()
		}
		if key.Matches(msg, m.keys.Back) {
			next, cmd := m.restart()
			nm := next.(Model)
			nm.view = viewTitle
			return nm, cmd
		}
	}
	return m, nil
}

// handleReward moves the reward cursor or applies the chosen override.
func (m Model) handleReward(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionAimUp:
		if m.rewardCursor > 0 {
			m.rewardCursor--
		}
	case core.ActionAimDown:
		if m.rewardCursor < len(m.edits)-1 {
			m.rewardCursor++
		}
	case core.ActionConfirm, core.ActionLaunch:
		e := m.edits[m.rewardCursor]
		v, err := m.machine.ApplyReward(e.Key)
		if err != nil {
			m.logger.Warn("reward rejected", "key", e.Key, "err", err)
			return m, nil
		}
		m.status = fmt.Sprintf("%s set to %s", e.Label, formatValue(v))
	}
	return m, nil
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	if err := m.machine.Restart(catapult.RestartRun); err != nil {
		m.logger.Warn("restart rejected", "err", err)
		return m, nil
	}
	m.paused = false
	m.status = ""
	return m, nil
}

// quit leaves the simulation. A run in flight is abandoned without a result.
func (m Model) quit() (tea.Model, tea.Cmd) {
	switch m.machine.State() {
	case catapult.StateIdle, catapult.StateEnded:
		if err := m.machine.Restart(catapult.RestartQuit); err != nil {
			m.logger.Debug("quit without reset", "err", err)
		}
	}
	m.quitting = true
	return m, tea.Quit
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewName:
		return m.name.View(m.config.ScreenW)
	case viewTitle:
		return m.viewTitle()
	case viewScores:
		return m.scores.View()
	}

	m.screen.Clear()
	drawWorld(m.screen, m.machine, m.aim)
	drawHUD(m.screen, m.machine, m.aim, m.paused)
	if m.machine.State() == catapult.StateEnded {
		m.drawEnd()
	}
	return RenderScreen(m.screen)
}

// drawEnd renders the end-of-run panel over the world.
func (m Model) drawEnd() {
	run := m.machine.Run()
	lines := []string{outcomeTitle(run.Outcome), "", fmt.Sprintf("Score: %d   Hits: %d", run.Score, run.Hits)}

	if m.machine.EndScreen() == catapult.EndReward {
		lines = append(lines, "", "Great run! Pick a reward:")
		first, last := rewardWindow(m.rewardCursor, len(m.edits), m.screen.Height()-len(lines)-6)
		for i := first; i < last; i++ {
			cursor := "  "
			if i == m.rewardCursor {
				cursor = "> "
			}
			lines = append(lines, cursor+m.edits[i].Label)
		}
		lines = append(lines, "", "Up/Down: choose  Enter: apply")
	} else {
		if m.status != "" {
			lines = append(lines, "", m.status)
		}
		lines = append(lines, "", "R/Space: play again  Esc: title  Q: quit")
	}

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	w := width + 4
	h := len(lines) + 2
	r := core.NewRect((m.screen.Width()-w)/2, (m.screen.Height()-h)/2, w, h)
	m.screen.DrawRect(r, ' ', core.ColorDefault)
	m.screen.DrawBox(r, core.ColorBrightWhite)
	for i, l := range lines {
		m.screen.DrawTextColored(r.X+2, r.Y+1+i, l, core.ColorBrightWhite)
	}
}

// rewardWindow returns the slice of the reward list to show so that the
// cursor stays visible within rows lines.
func rewardWindow(cursor, n, rows int) (int, int) {
	if rows < 1 {
		rows = 1
	}
	if n <= rows {
		return 0, n
	}
	first := cursor - rows/2
	first = core.Clamp(first, 0, n-rows)
	return first, first + rows
}

func outcomeTitle(o catapult.Outcome) string {
	switch o {
	case catapult.OutcomeKilled:
		return "KNOCKED OUT"
	case catapult.OutcomeOutOfBounds:
		return "OFF THE MAP"
	case catapult.OutcomeStopped:
		return "CAME TO REST"
	default:
		return strings.ToUpper(o.String())
	}
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// Quitting reports whether the session has ended.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
