package movement

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/wallclimb/internal/application/schedule"
	"github.com/younwookim/wallclimb/internal/domain/motion"
)

// dash fires only on the tick the selector chose DASHING, and only with a
// raw direction. A DASHING state that persists afterwards does not dash again
// and drops to FALLING once the player is airborne.
func (c *Controller) dash() {
	if !c.dashSelected {
		if !c.groundedLastTick {
			c.state = motion.StateFalling
		}
		return
	}
	if !c.in.HasRawDirection() {
		return
	}

	c.fx.ShakeCamera(motion.DashShake)
	c.fx.EmitRipple(c.body.Position())
	c.dashAvailable = false
	c.anim.SetTrigger(TriggerDash)

	dir := motion.Vec{X: c.in.RawX, Y: c.in.RawY}.Normalized()
	c.body.SetVelocity(dir.Scale(c.params.DashSpeed))
	c.startDashSequence()

	if !c.groundedLastTick {
		c.state = motion.StateFalling
	}
}

// startDashSequence replaces any running dash timers with fresh ones.
func (c *Controller) startDashSequence() {
	c.fx.ShowGhostTrail()

	c.sched.After(schedule.KindGroundDashRefresh, c.timing.GroundDashRefresh, func() {
		if c.env.Grounded {
			c.dashAvailable = true
		}
	})

	start := c.timing.DashDragStart
	tween := gween.New(float32(start), 0, float32(c.timing.DashDrag.Seconds()), ease.OutQuad)
	c.body.SetDrag(start)
	c.sched.Every(schedule.KindDashDrag, func(dt time.Duration) bool {
		drag, done := tween.Update(float32(dt.Seconds()))
		if done {
			drag = 0
		}
		c.body.SetDrag(float64(drag))
		return done
	})

	c.body.SetGravityScale(0)
	c.assist.SetEnabled(false)
	c.sched.After(schedule.KindDashWindow, c.timing.DashWindow, func() {
		c.body.SetGravityScale(c.params.DefaultGravityScale)
		c.assist.SetEnabled(true)
	})
}
