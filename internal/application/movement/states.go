package movement

import (
	"math"

	"github.com/younwookim/wallclimb/internal/application/schedule"
	"github.com/younwookim/wallclimb/internal/domain/motion"
)

func stateHandlers() map[motion.State]func(*Controller) {
	return map[motion.State]func(*Controller){
		motion.StateIdle:        (*Controller).hold,
		motion.StateRunning:     (*Controller).run,
		motion.StateClimbing:    (*Controller).climb,
		motion.StateSliding:     (*Controller).slide,
		motion.StateFalling:     (*Controller).fall,
		motion.StateJumping:     (*Controller).jumpUp,
		motion.StateWallJumping: (*Controller).wallJump,
		motion.StateDashing:     (*Controller).dash,
		motion.StateNonMoveable: (*Controller).hold,
	}
}

// hold is the executor for IDLE and NONMOVEABLE.
func (c *Controller) hold() {}

func (c *Controller) run() {
	v := c.body.Velocity()
	c.walk(v)
	c.anim.SetHorizontalMovement(c.in.X, c.in.Y, v.Y)

	switch {
	case math.Abs(c.in.X) <= c.params.InputDeadzone:
		c.state = motion.StateIdle
	case !c.groundedLastTick:
		c.state = motion.StateFalling
	}
}

func (c *Controller) walk(v motion.Vec) {
	c.body.SetVelocity(motion.Vec{X: c.in.X * c.params.Speed, Y: v.Y})
}

func (c *Controller) climb() {
	c.body.SetGravityScale(0)

	v := c.body.Velocity()
	if math.Abs(c.in.X) > c.params.ClimbSteerDeadzone {
		v.X = 0
	}
	modifier := 1.0
	if c.in.Y > 0 {
		modifier = c.params.ClimbUpModifier
	}
	v.Y = c.in.Y * c.params.Speed * modifier
	c.body.SetVelocity(v)

	c.leaveWall()
}

func (c *Controller) slide() {
	v := c.body.Velocity()
	push := v.X
	if (v.X > 0 && c.env.OnRightWall) || (v.X < 0 && c.env.OnLeftWall) {
		push = 0
	}
	c.body.SetVelocity(motion.Vec{X: push, Y: -c.params.SlideSpeed})

	c.leaveWall()
}

// leaveWall ends CLIMBING and SLIDING. IDLE wins over FALLING when both apply.
func (c *Controller) leaveWall() {
	if !c.env.OnWall {
		c.state = motion.StateFalling
	}
	if !c.env.OnWall || !c.in.ClimbHeld {
		c.state = motion.StateIdle
		c.body.SetGravityScale(c.gravityBaseline())
	}
}

func (c *Controller) fall() {
	v := c.body.Velocity()
	if !c.params.SmoothWallJumpSteer || !c.wallJumped {
		c.walk(v)
		return
	}
	target := motion.Vec{X: c.in.X * c.params.Speed, Y: v.Y}
	c.body.SetVelocity(v.Lerp(target, c.params.WallJumpLerp*c.dt.Seconds()))
}

func (c *Controller) jumpUp() {
	c.anim.SetTrigger(TriggerJump)
	c.jump(motion.Up)
	c.state = motion.StateFalling
}

// jump discards vertical velocity before the impulse so the height does not
// depend on how fast the player was falling.
func (c *Controller) jump(dir motion.Vec) {
	v := c.body.Velocity()
	v.Y = 0
	c.body.SetVelocity(v.Add(dir.Scale(c.params.JumpForce)))
}

func (c *Controller) wallJump() {
	c.anim.SetTrigger(TriggerJump)
	c.state = motion.StateNonMoveable

	away := motion.Right
	if c.env.WallSide() > 0 {
		away = motion.Left
	}
	c.sched.After(schedule.KindWallJumpLockout, c.timing.WallJumpLockout, c.endWallJumpLockout)

	dir := motion.Up.Scale(c.params.WallJumpUp).Add(away.Scale(c.params.WallJumpOut))
	c.jump(dir)
	c.wallJumped = true
}

func (c *Controller) endWallJumpLockout() {
	if !c.groundedLastTick {
		c.state = motion.StateFalling
	}
}
