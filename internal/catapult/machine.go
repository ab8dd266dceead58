package catapult

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
)

// Errors returned by Machine signals.
var (
	ErrNotEnded          = errors.New("catapult: run has not ended")
	ErrRewardPending     = errors.New("catapult: reward must be chosen first")
	ErrNoReward          = errors.New("catapult: no reward offered")
	ErrExited            = errors.New("catapult: simulation exited")
	ErrIllegalTransition = errors.New("catapult: illegal transition")
)

// State is the lifecycle state of the current run.
type State int

const (
	StateIdle      State = iota // Aiming, physics disabled
	StateLaunched               // Flying
	StateEnded                  // Game over, result persisted
	StateResetting              // Tearing the run down
	StateExited                 // Left the simulation for good
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLaunched:
		return "launched"
	case StateEnded:
		return "ended"
	case StateResetting:
		return "resetting"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

var transitions = map[State][]State{
	StateIdle:      {StateLaunched, StateResetting},
	StateLaunched:  {StateEnded},
	StateEnded:     {StateResetting},
	StateResetting: {StateIdle, StateExited},
}

// CanTransition reports whether from -> to is a legal transition.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// EndScreen is the end-of-run screen the presentation should show.
type EndScreen int

const (
	EndNone   EndScreen = iota
	EndPlain            // Score, restart, quit
	EndReward           // Pick a config override first
)

// RestartTarget selects where Restart leads.
type RestartTarget int

const (
	RestartRun  RestartTarget = iota // Fresh run in Idle
	RestartQuit                      // Leave the simulation
)

// Launch tuning constants.
const (
	LaunchDistanceDamping = 1.5 // Aim distance divisor
	LaunchBaseSpeed       = 700 // Speed added to every launch
	BoostMinTravel        = 200 // Distance from start before boosting is allowed
	playerSize            = 75  // Collision size of the player
)

// LaunchSpeed returns the launch speed for an aim distance.
func LaunchSpeed(distance, multiplier float64) float64 {
	return (distance/LaunchDistanceDamping + LaunchBaseSpeed) * multiplier
}

// Leader is the best recent run known to the presentation.
type Leader struct {
	Score int
	Name  string
}

// Options configures a Machine.
type Options struct {
	Holder   *config.Holder   // Shared parameters, required
	Seed     int64            // RNG seed
	Recorder Recorder         // Persistence collaborator, defaults to NopRecorder
	Clock    func() time.Time // Wall clock for run timestamps, defaults to time.Now
	Logger   *log.Logger      // Defaults to a discarding logger
	Name     string           // Player display name
	NewID    func() string    // Run id generator, defaults to uuid v4
}

// TickInput is what the physics host reports for one frame.
type TickInput struct {
	Contacts []core.Contact
	Elapsed  time.Duration
}

// TickResult is what one frame changed.
type TickResult struct {
	State     State
	Score     int
	ScoreText string
	Outcome   Outcome // Terminal outcome reached this tick, OutcomeNone otherwise
	Mutations []Mutation
}

// Machine owns the run lifecycle and the world state of the current run.
// It is not safe for concurrent use; each session owns its own Machine.
type Machine struct {
	holder   *config.Holder
	params   config.Params // Snapshot taken when the run was created
	rng      *core.RNG
	sched    *Scheduler
	power    *PowerWindow
	applier  *Applier
	recorder Recorder
	clock    func() time.Time
	newID    func() string
	logger   *log.Logger
	name     string

	state     State
	run       Run
	end       EndScreen
	player    core.Body
	obstacles []Obstacle
	solids    []core.Solid
	enemy     Hazard
	pickup    Hazard
	best      int
	leader    Leader
	powerDone bool
}

// NewMachine creates a machine with a fresh run in Idle.
func NewMachine(opts Options) *Machine {
	if opts.Holder == nil {
		panic("catapult: Options.Holder is required")
	}
	m := &Machine{
		holder:   opts.Holder,
		rng:      core.NewRNG(opts.Seed),
		sched:    NewScheduler(),
		recorder: opts.Recorder,
		clock:    opts.Clock,
		newID:    opts.NewID,
		logger:   orDiscard(opts.Logger),
		name:     DisplayName(opts.Name),
	}
	if m.recorder == nil {
		m.recorder = NopRecorder{}
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}
	m.applier = NewApplier(m.holder, m.rng, m.recorder, m.logger)
	m.power = NewPowerWindow(m.sched, 0)
	m.power.OnExpire(func() { m.powerDone = true })
	m.newRun()
	return m
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}

// newRun builds the world of a fresh run from a new parameter snapshot.
func (m *Machine) newRun() {
	m.params = m.holder.Snapshot()
	p := m.params

	m.run = Run{ID: m.newID()}
	m.end = EndNone
	m.powerDone = false
	m.power.Bind(m.run.ID, p.Obstacles.Star.Active())

	m.player = core.Body{
		Size:    core.Vec2{X: playerSize, Y: playerSize},
		Gravity: p.Player.Gravity,
		Drag:    p.Player.Drag,
		MaxVel:  p.Player.MaxVelocity,
		Bounce:  p.Player.Bounce,
	}
	m.player.Reset(p.Player.Start.X, p.Player.Start.Y)

	m.obstacles = SpawnObstacles(m.rng, p)
	m.solids = make([]core.Solid, len(m.obstacles))
	m.enemy = NewEnemy(m.rng, p)
	m.pickup = NewPickup(m.rng, p)
	m.state = StateIdle
}

func (m *Machine) transition(to State) {
	if !CanTransition(m.state, to) {
		panic(fmt.Sprintf("%v: %s -> %s", ErrIllegalTransition, m.state, to))
	}
	m.state = to
}

// SetName changes the display name used for future results.
func (m *Machine) SetName(name string) {
	m.name = DisplayName(name)
}

// SetLeader records the best recent run fetched by the presentation.
func (m *Machine) SetLeader(score int, name string) {
	m.leader = Leader{Score: score, Name: DisplayName(name)}
}

// Launch releases the catapult. angle is in radians with y pointing down,
// distance is the aim length. It is a no-op unless the run is Idle.
func (m *Machine) Launch(angle, distance float64) bool {
	if m.state != StateIdle {
		return false
	}
	m.transition(StateLaunched)

	m.player.Enabled = true
	m.player.Vel = core.FromAngle(angle, LaunchSpeed(distance, m.params.Player.Speed))
	m.enemy.Body.Enabled = true
	m.pickup.Body.Enabled = true

	m.run.LaunchedAt = m.clock()
	m.recorder.RunStarted(m.run.ID, m.run.LaunchedAt)
	m.logger.Debug("launch", "run", m.run.ID, "angle", angle, "distance", distance, "speed", m.player.Vel.Len())
	return true
}

// Boost starts a dive along the configured boost angle. It is only allowed
// while flying and once the player has left the launch area.
func (m *Machine) Boost() bool {
	if m.state != StateLaunched {
		return false
	}
	if m.player.Pos.X <= m.params.Player.Start.X+BoostMinTravel {
		return false
	}
	m.run.Boosting = true
	m.logger.Debug("boost", "run", m.run.ID, "x", m.player.Pos.X)
	return true
}

// Scene returns the colliders for the physics host. The host mutates the
// bodies in place.
func (m *Machine) Scene() core.Scene {
	for i := range m.obstacles {
		m.solids[i] = m.obstacles[i].Solid()
	}
	return core.Scene{
		Player:  &m.player,
		Enemy:   &m.enemy.Body,
		Pickup:  &m.pickup.Body,
		Solids:  m.solids,
		GroundY: m.params.World.Baseline(),
	}
}

// Advance steps the physics host over the current scene and feeds its
// contacts to Tick.
func (m *Machine) Advance(ph Physics, dt time.Duration) TickResult {
	var contacts []core.Contact
	if m.state == StateLaunched {
		contacts = ph.Step(m.Scene(), dt)
	}
	return m.Tick(TickInput{Contacts: contacts, Elapsed: dt})
}

// Tick processes one frame. Outcome classification runs before recycling,
// which runs before the bounds check; a terminal outcome stops the frame.
func (m *Machine) Tick(in TickInput) TickResult {
	res := TickResult{State: m.state}

	if m.state == StateLaunched || m.state == StateEnded {
		m.sched.Advance(in.Elapsed)
		if m.powerDone {
			m.powerDone = false
			res.Mutations = append(res.Mutations, Mutation{Kind: MutationPowerEnded})
		}
	}

	if m.state != StateLaunched {
		res.Score = m.run.Score
		res.ScoreText = m.ScoreText()
		return res
	}

	outcome := OutcomeNone
	ctx := ClassifyContext{
		PowerActive:  m.power.Active(),
		StopVelocity: m.params.Player.StopVelocity,
		Obstacles:    m.obstacles,
	}
	for _, c := range in.Contacts {
		o := Classify(c, ctx)
		switch o {
		case OutcomeBounce, OutcomeBoosted:
			m.run.Boosting = false
			res.Mutations = append(res.Mutations, Mutation{Kind: MutationBounce})
		case OutcomeDamped:
			m.run.Hits++
			m.run.Boosting = false
			res.Mutations = append(res.Mutations,
				Mutation{Kind: MutationBounce},
				Mutation{Kind: MutationHit, Index: c.Index})
		case OutcomePowerUp:
			if m.power.OnPickupContact() {
				ctx.PowerActive = true
				res.Mutations = append(res.Mutations, Mutation{Kind: MutationPowerStarted})
			}
		}
		if o.Terminal() {
			outcome = o
			break
		}
	}

	m.run.Score = ComputeScore(m.player.Pos.X, m.run.Hits)

	if outcome == OutcomeNone {
		vw := m.params.World.Width
		for i := range m.obstacles {
			if m.obstacles[i].Recycle(m.rng, m.player.Pos.X, vw) {
				res.Mutations = append(res.Mutations, Mutation{
					Kind:  MutationRecycled,
					Index: i,
					Pos:   core.Vec2{X: m.obstacles[i].X, Y: m.obstacles[i].Y},
					Scale: m.obstacles[i].Scale,
				})
			}
		}
		air := AirRange(m.params.World)
		for _, h := range []*Hazard{&m.enemy, &m.pickup} {
			if h.Update(m.player.Pos.X, m.rng, air) {
				res.Mutations = append(res.Mutations, Mutation{
					Kind:   MutationHazardRespawned,
					Hazard: h.Kind,
					Pos:    h.Body.Pos,
				})
			}
		}

		if OutOfBounds(m.player.Pos, m.params.World.Length(), m.params.World.Height) {
			outcome = OutcomeOutOfBounds
		}
	}

	if outcome.Terminal() {
		m.finish(outcome)
		res.Outcome = outcome
		res.Mutations = append(res.Mutations, Mutation{Kind: MutationEnded})
	} else if m.run.Boosting {
		m.player.Vel = core.FromDegrees(m.params.Player.Angle, m.params.Player.Boost)
	}

	res.State = m.state
	res.Score = m.run.Score
	res.ScoreText = m.ScoreText()
	return res
}

// finish freezes the run, hands the result to the recorder and picks the
// end screen.
func (m *Machine) finish(outcome Outcome) {
	m.transition(StateEnded)

	m.player.Enabled = false
	m.enemy.Body.Enabled = false
	m.pickup.Body.Enabled = false

	m.run.Outcome = outcome
	m.run.Boosting = false
	m.run.EndedAt = m.clock()
	if m.run.Score > m.best {
		m.best = m.run.Score
	}

	res := m.Result()
	m.recorder.RunFinished(res)
	m.logger.Info("run finished",
		"run", res.ID, "outcome", outcome, "score", res.Score, "hits", res.Hits,
		"distance", int(res.Distance))

	if m.run.Score > m.params.Player.Threshold {
		m.end = EndReward
	} else {
		m.end = EndPlain
	}
}

// ApplyReward applies the edit table entry for key once per qualifying run
// and switches to the plain end screen.
func (m *Machine) ApplyReward(key string) (float64, error) {
	if m.state != StateEnded {
		return 0, ErrNotEnded
	}
	if m.end != EndReward {
		return 0, ErrNoReward
	}
	v := m.applier.Apply(key)
	m.end = EndPlain
	return v, nil
}

// Restart tears the run down and either starts a fresh one in Idle or exits.
// It fails while a reward is still pending and during flight.
func (m *Machine) Restart(target RestartTarget) error {
	switch m.state {
	case StateExited:
		return ErrExited
	case StateLaunched, StateResetting:
		return fmt.Errorf("%w: restart from %s", ErrIllegalTransition, m.state)
	case StateEnded:
		if m.end == EndReward {
			return ErrRewardPending
		}
	}

	old := m.run.ID
	m.transition(StateResetting)
	m.power.Reset()

	if target == RestartQuit {
		m.sched.CancelExcept("")
		m.transition(StateExited)
		return nil
	}
	m.newRun()
	if n := m.sched.CancelExcept(m.run.ID); n > 0 {
		m.logger.Debug("cancelled stale tasks", "run", old, "count", n)
	}
	return nil
}

// ScoreText returns the score board shown during play.
func (m *Machine) ScoreText() string {
	best := m.best
	if m.leader.Score > best {
		best = m.leader.Score
	}
	leader := m.leader.Name
	if leader == "" {
		leader = "-"
	}
	return fmt.Sprintf("Score: %d\nBest: %d\nLeader: %s", m.run.Score, best, leader)
}

// Result returns the persisted view of the current run.
func (m *Machine) Result() RunResult {
	return RunResult{
		ID:       m.run.ID,
		Start:    m.run.LaunchedAt,
		End:      m.run.EndedAt,
		Score:    m.run.Score,
		Hits:     m.run.Hits,
		Distance: m.player.Pos.X,
		Name:     m.name,
		Outcome:  m.run.Outcome,
	}
}

// State returns the lifecycle state.
func (m *Machine) State() State { return m.state }

// Run returns a copy of the current run.
func (m *Machine) Run() Run { return m.run }

// EndScreen returns the end screen requested for an ended run.
func (m *Machine) EndScreen() EndScreen { return m.end }

// PowerActive reports whether the power window is open.
func (m *Machine) PowerActive() bool { return m.power.Active() }

// Player returns a copy of the player body.
func (m *Machine) Player() core.Body { return m.player }

// Obstacles returns the obstacles of the current run. Callers must not modify them.
func (m *Machine) Obstacles() []Obstacle { return m.obstacles }

// Enemy returns a copy of the enemy hazard.
func (m *Machine) Enemy() Hazard { return m.enemy }

// Pickup returns a copy of the star hazard.
func (m *Machine) Pickup() Hazard { return m.pickup }

// Params returns the parameter snapshot of the current run.
func (m *Machine) Params() config.Params { return m.params }

// Best returns the best score of this machine's runs.
func (m *Machine) Best() int { return m.best }

// Leader returns the best recent run reported by SetLeader.
func (m *Machine) Leader() Leader { return m.leader }

// PendingTasks returns the number of scheduled callbacks.
func (m *Machine) PendingTasks() int { return m.sched.Pending() }
