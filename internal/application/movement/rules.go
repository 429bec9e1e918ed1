package movement

import (
	"math"

	"github.com/younwookim/wallclimb/internal/domain/motion"
)

// selection is what the rules see. It is captured once before any rule runs,
// so a rule never observes another rule's effect.
type selection struct {
	params        motion.Params
	in            motion.Input
	env           motion.Environment
	grounded      bool
	vy            float64
	dashAvailable bool
}

func (s *selection) wallRulesApply() bool {
	return s.vy < s.params.ClimbVelocityThreshold
}

func (s *selection) climbing() bool {
	return s.in.ClimbHeld && s.env.OnWall
}

type rule struct {
	name        string
	target      motion.State
	guard       func(s *selection) bool
	clearsLatch bool
}

// priority is evaluated top to bottom every tick. Every matching rule assigns
// its target, so later rows override earlier ones.
var priority = []rule{
	{
		name:   "run",
		target: motion.StateRunning,
		guard: func(s *selection) bool {
			return math.Abs(s.in.X) > s.params.InputDeadzone && s.grounded
		},
	},
	{
		name:   "climb",
		target: motion.StateClimbing,
		guard: func(s *selection) bool {
			return s.wallRulesApply() && s.climbing()
		},
	},
	{
		name:   "slide",
		target: motion.StateSliding,
		guard: func(s *selection) bool {
			return s.wallRulesApply() && !s.climbing() && s.env.OnWall && !s.grounded
		},
	},
	{
		name:        "jump",
		target:      motion.StateJumping,
		clearsLatch: true,
		guard: func(s *selection) bool {
			return s.in.JumpPressed && s.grounded
		},
	},
	{
		name:   "walljump",
		target: motion.StateWallJumping,
		guard: func(s *selection) bool {
			return s.in.JumpPressed && !s.grounded && s.env.OnWall
		},
	},
	{
		name:   "dash",
		target: motion.StateDashing,
		guard: func(s *selection) bool {
			return s.in.DashPressed && s.dashAvailable
		},
	},
}

// Priority returns the selector's rule names in evaluation order.
func Priority() []string {
	names := make([]string, len(priority))
	for i, r := range priority {
		names[i] = r.name
	}
	return names
}

func (c *Controller) selectState() []string {
	sel := selection{
		params:        c.params,
		in:            c.in,
		env:           c.env,
		grounded:      c.groundedLastTick,
		vy:            c.body.Velocity().Y,
		dashAvailable: c.dashAvailable,
	}

	var fired []string
	c.dashSelected = false
	for _, r := range priority {
		if !r.guard(&sel) {
			continue
		}
		fired = append(fired, r.name)
		c.state = r.target
		c.dashSelected = r.target == motion.StateDashing
		if r.clearsLatch {
			c.groundedLastTick = false
			c.tookOff = true
		}
	}
	return fired
}
