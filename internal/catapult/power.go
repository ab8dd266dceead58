package catapult

import "time"

// PowerWindow is the invulnerability window opened by the star.
// It is not reentrant: contacts while active change nothing.
type PowerWindow struct {
	sched  *Scheduler
	length time.Duration
	run    string
	active bool
	task   TaskID

	onExpire func()
}

// NewPowerWindow creates an inactive window of the given length.
func NewPowerWindow(s *Scheduler, length time.Duration) *PowerWindow {
	return &PowerWindow{sched: s, length: length}
}

// Bind attaches the window to a new run and closes any open window.
func (p *PowerWindow) Bind(run string, length time.Duration) {
	p.Reset()
	p.run = run
	p.length = length
}

// OnExpire registers a callback run when a window closes on its own.
func (p *PowerWindow) OnExpire(fn func()) {
	p.onExpire = fn
}

// Active reports whether the window is open.
func (p *PowerWindow) Active() bool {
	return p.active
}

// OnPickupContact opens the window unless it is already open.
// Reports whether a new window was opened.
func (p *PowerWindow) OnPickupContact() bool {
	if p.active {
		return false
	}
	p.active = true
	run := p.run
	p.task = p.sched.After(run, p.length, func() {
		if p.run != run {
			return
		}
		p.active = false
		p.task = 0
		if p.onExpire != nil {
			p.onExpire()
		}
	})
	return true
}

// Reset closes the window and cancels its pending expiry.
func (p *PowerWindow) Reset() {
	if p.task != 0 {
		p.sched.Cancel(p.task)
		p.task = 0
	}
	p.active = false
}
