// Package schedule is a cooperative timer queue polled once per simulation tick.
// Tasks are tagged by Kind and at most one task of each kind is pending.
package schedule

import "time"

// Kind tags a timed action.
type Kind int

const (
	KindDashWindow Kind = iota
	KindDashDrag
	KindGroundDashRefresh
	KindWallJumpLockout
)

func (k Kind) String() string {
	switch k {
	case KindDashWindow:
		return "DashWindow"
	case KindDashDrag:
		return "DashDrag"
	case KindGroundDashRefresh:
		return "GroundDashRefresh"
	case KindWallJumpLockout:
		return "WallJumpLockout"
	default:
		return "Unknown"
	}
}

type task struct {
	kind    Kind
	created time.Duration
	due     time.Duration
	once    func()
	step    func(dt time.Duration) bool
	done    bool
}

// Scheduler owns the clock and the pending tasks. Not safe for concurrent use.
type Scheduler struct {
	now   time.Duration
	dt    time.Duration
	tasks []*task
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration { return s.now }

// Advance moves the clock forward by dt. Negative steps are ignored.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.dt = dt
	s.now += dt
}

// After schedules fn to run once, d after now. A pending task of the same
// kind is cancelled first.
func (s *Scheduler) After(kind Kind, d time.Duration, fn func()) {
	s.Cancel(kind)
	s.tasks = append(s.tasks, &task{kind: kind, created: s.now, due: s.now + d, once: fn})
}

// Every runs fn on each later tick with that tick's dt until fn returns true.
// A pending task of the same kind is cancelled first.
func (s *Scheduler) Every(kind Kind, fn func(dt time.Duration) bool) {
	s.Cancel(kind)
	s.tasks = append(s.tasks, &task{kind: kind, created: s.now, due: s.now, step: fn})
}

// Cancel drops the pending task of the given kind, if any.
func (s *Scheduler) Cancel(kind Kind) {
	for i, t := range s.tasks {
		if t.kind == kind {
			t.done = true
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

// Pending reports whether a task of the given kind is waiting to run.
func (s *Scheduler) Pending(kind Kind) bool {
	for _, t := range s.tasks {
		if t.kind == kind {
			return true
		}
	}
	return false
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int { return len(s.tasks) }

// RunDue runs every task that is due, in scheduling order, and returns the
// kinds that ran. Tasks scheduled at the current time (including from inside
// a callback) wait for a later tick.
func (s *Scheduler) RunDue() []Kind {
	if len(s.tasks) == 0 {
		return nil
	}
	var fired []Kind
	snapshot := append([]*task(nil), s.tasks...)
	for _, t := range snapshot {
		if t.done || t.created >= s.now || t.due > s.now {
			continue
		}
		fired = append(fired, t.kind)
		if t.once != nil {
			s.remove(t)
			t.once()
			continue
		}
		if t.step(s.dt) {
			s.remove(t)
		}
	}
	return fired
}

func (s *Scheduler) remove(target *task) {
	target.done = true
	for i, t := range s.tasks {
		if t == target {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}
