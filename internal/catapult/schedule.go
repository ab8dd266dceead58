package catapult

import (
	"sort"
	"time"
)

// TaskID identifies a scheduled task.
type TaskID uint64

type task struct {
	id  TaskID
	run string
	due time.Duration
	fn  func()
}

// Scheduler runs one-shot callbacks after a delay measured in simulation
// time. Tasks are keyed by the run that scheduled them so a reset can drop
// everything that belongs to a discarded run.
type Scheduler struct {
	now   time.Duration
	next  TaskID
	tasks []task
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current simulation time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run d from now on behalf of run.
func (s *Scheduler) After(run string, d time.Duration, fn func()) TaskID {
	s.next++
	s.tasks = append(s.tasks, task{id: s.next, run: run, due: s.now + d, fn: fn})
	return s.next
}

// Advance moves time forward by dt and runs every task that became due, in
// due order (ties in scheduling order). Returns the number of tasks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	s.now += dt

	var due []task
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.due <= s.now {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.tasks = kept

	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Cancel drops a pending task. Reports whether it was pending.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelExcept drops every pending task not owned by run and returns how
// many were dropped.
func (s *Scheduler) CancelExcept(run string) int {
	kept := s.tasks[:0]
	dropped := 0
	for _, t := range s.tasks {
		if t.run == run {
			kept = append(kept, t)
		} else {
			dropped++
		}
	}
	s.tasks = kept
	return dropped
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}
