// Package movement is the player movement controller: a per-tick state
// machine that turns input and collision snapshots into velocity, gravity,
// animation and feedback commands.
package movement

import (
	"errors"
	"fmt"
	"time"

	"github.com/younwookim/wallclimb/internal/application/schedule"
	"github.com/younwookim/wallclimb/internal/domain/motion"
)

// ErrMissingCollaborator is returned by New when a required dependency is nil.
var ErrMissingCollaborator = errors.New("missing collaborator")

// Deps are the collaborators a Controller talks to. Body, Probe, Animator and
// Input are required.
type Deps struct {
	Body     Body
	Probe    Probe
	Animator Animator
	Input    InputSource
	Effects  Effects
	Assist   JumpAssist

	// Tracer, when set, receives every tick's Report.
	Tracer func(Report)
}

// Report describes one tick.
type Report struct {
	Tick     uint64
	Previous motion.State // state before the selector ran
	Selected motion.State // state after the selector, before the executor
	State    motion.State // state at end of tick

	Rules  []string        // selector rules that matched, in order
	Timers []schedule.Kind // timed actions that ran

	Landed     bool
	LeftGround bool
}

// Controller owns the motion state and runtime flags of one player.
type Controller struct {
	params motion.Params
	timing motion.Timing

	body     Body
	probe    Probe
	anim     Animator
	input    InputSource
	fx       Effects
	assist   JumpAssist
	tracer   func(Report)
	sched    *schedule.Scheduler
	handlers map[motion.State]func(*Controller)

	state            motion.State
	groundedLastTick bool
	dashAvailable    bool
	wallJumped       bool
	ticks            uint64

	// valid during Tick
	dt           time.Duration
	in           motion.Input
	env          motion.Environment
	dashSelected bool
	tookOff      bool
}

// New validates the parameters and collaborators and returns an IDLE
// controller. The grounded latch starts from the probe's first reading.
func New(params motion.Params, timing motion.Timing, deps Deps) (*Controller, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}
	if err := timing.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}

	missing := func(name string) error {
		return fmt.Errorf("failed to create controller: %w: %s", ErrMissingCollaborator, name)
	}
	switch {
	case deps.Body == nil:
		return nil, missing("body")
	case deps.Probe == nil:
		return nil, missing("probe")
	case deps.Animator == nil:
		return nil, missing("animator")
	case deps.Input == nil:
		return nil, missing("input")
	}
	if deps.Effects == nil {
		deps.Effects = noEffects{}
	}
	if deps.Assist == nil {
		deps.Assist = noAssist{}
	}

	c := &Controller{
		params:        params,
		timing:        timing,
		body:          deps.Body,
		probe:         deps.Probe,
		anim:          deps.Animator,
		input:         deps.Input,
		fx:            deps.Effects,
		assist:        deps.Assist,
		tracer:        deps.Tracer,
		sched:         schedule.New(),
		handlers:      stateHandlers(),
		state:         motion.StateIdle,
		dashAvailable: true,
	}
	c.groundedLastTick = c.probe.Sense().Grounded
	c.body.SetGravityScale(params.DefaultGravityScale)
	return c, nil
}

// Tick runs one simulation step of length dt.
func (c *Controller) Tick(dt time.Duration) Report {
	c.ticks++
	c.dt = dt
	c.tookOff = false
	c.sched.Advance(dt)

	c.in = c.input.Poll().Clamped()
	c.env = c.probe.Sense()
	c.body.SetGravityScale(c.gravityBaseline())

	r := Report{Tick: c.ticks, Previous: c.state}
	r.Rules = c.selectState()
	r.Selected = c.state

	c.execute()
	r.Timers = c.sched.RunDue()
	r.Landed, r.LeftGround = c.detectEdges()
	r.State = c.state

	if c.tracer != nil {
		c.tracer(r)
	}
	return r
}

func (c *Controller) execute() {
	if h := c.handlers[c.state]; h != nil {
		h(c)
	}
}

// gravityBaseline is the scale every tick starts from. A pending dash window
// keeps gravity off until the window closes.
func (c *Controller) gravityBaseline() float64 {
	if c.sched.Pending(schedule.KindDashWindow) {
		return 0
	}
	return c.params.DefaultGravityScale
}

func (c *Controller) detectEdges() (landed, left bool) {
	if c.tookOff {
		return false, true
	}
	switch {
	case c.env.Grounded && !c.groundedLastTick:
		c.groundedLastTick = true
		c.land()
		return true, false
	case !c.env.Grounded && c.groundedLastTick:
		c.groundedLastTick = false
		return false, true
	}
	return false, false
}

func (c *Controller) land() {
	c.dashAvailable = true
	c.wallJumped = false
}

// State returns the current motion state.
func (c *Controller) State() motion.State { return c.state }

// DashAvailable reports whether a dash can start.
func (c *Controller) DashAvailable() bool { return c.dashAvailable }

// Grounded returns the grounded latch.
func (c *Controller) Grounded() bool { return c.groundedLastTick }

// Pending reports whether a timed action of the given kind is outstanding.
func (c *Controller) Pending(kind schedule.Kind) bool { return c.sched.Pending(kind) }

// Params returns the session's motion parameters.
func (c *Controller) Params() motion.Params { return c.params }

// Elapsed returns the simulated time since the controller was created.
func (c *Controller) Elapsed() time.Duration { return c.sched.Now() }

// Input returns the clamped input of the last tick.
func (c *Controller) Input() motion.Input { return c.in }

// Environment returns the probe reading of the last tick.
func (c *Controller) Environment() motion.Environment { return c.env }
