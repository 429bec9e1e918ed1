package movement

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/wallclimb/internal/application/schedule"
	"github.com/younwookim/wallclimb/internal/domain/motion"
)

func TestNew(t *testing.T) {
	valid := func() Deps {
		return Deps{
			Body:     &fakeBody{},
			Probe:    &fakeProbe{},
			Animator: &fakeAnimator{},
			Input:    &fakeInput{},
		}
	}

	t.Run("optional collaborators default to no-ops", func(t *testing.T) {
		c, err := New(motion.DefaultParams(), motion.DefaultTiming(), valid())
		require.NoError(t, err)
		assert.Equal(t, motion.StateIdle, c.State())
		assert.True(t, c.DashAvailable())

		c.Tick(dt)
	})

	missing := []struct {
		name   string
		mutate func(*Deps)
	}{
		{"body", func(d *Deps) { d.Body = nil }},
		{"probe", func(d *Deps) { d.Probe = nil }},
		{"animator", func(d *Deps) { d.Animator = nil }},
		{"input", func(d *Deps) { d.Input = nil }},
	}
	for _, tt := range missing {
		t.Run("missing "+tt.name, func(t *testing.T) {
			deps := valid()
			tt.mutate(&deps)
			c, err := New(motion.DefaultParams(), motion.DefaultTiming(), deps)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ErrMissingCollaborator)
			assert.Contains(t, err.Error(), tt.name)
		})
	}

	t.Run("invalid params", func(t *testing.T) {
		p := motion.DefaultParams()
		p.JumpForce = -1
		_, err := New(p, motion.DefaultTiming(), valid())
		assert.ErrorIs(t, err, motion.ErrInvalidParams)
	})

	t.Run("latch primed from first probe reading", func(t *testing.T) {
		r := createTestRig(t, onGround)
		assert.True(t, r.c.Grounded())

		rep := r.tick(motion.Input{})
		assert.False(t, rep.Landed, "standing still is not a landing")
	})
}

func TestPriority(t *testing.T) {
	assert.Equal(t, []string{"run", "climb", "slide", "jump", "walljump", "dash"}, Priority())
}

func TestController_Running(t *testing.T) {
	r := createTestRig(t, onGround)
	r.body.velocity = motion.Vec{Y: -2}

	rep := r.tick(motion.Input{X: 1, RawX: 1})

	assert.Equal(t, motion.StateRunning, rep.State)
	assert.Equal(t, []string{"run"}, rep.Rules)
	assert.Equal(t, 10.0, r.body.velocity.X)
	assert.Equal(t, -2.0, r.body.velocity.Y, "vertical velocity preserved")
	assert.Equal(t, [][3]float64{{1, 0, -2}}, r.anim.horizontal)

	t.Run("keeps running while input held", func(t *testing.T) {
		rep := r.tick(motion.Input{X: 0.5})
		assert.Equal(t, motion.StateRunning, rep.State)
		assert.Equal(t, 5.0, r.body.velocity.X)
	})

	t.Run("returns to idle when input released", func(t *testing.T) {
		rep := r.tick(motion.Input{X: 0.005})
		assert.Equal(t, motion.StateRunning, rep.Selected)
		assert.Equal(t, motion.StateIdle, rep.State)
	})

	t.Run("axes are clamped", func(t *testing.T) {
		r.tick(motion.Input{X: 7})
		assert.Equal(t, 10.0, r.body.velocity.X)
	})

	t.Run("walking off a ledge falls", func(t *testing.T) {
		r := createTestRig(t, onGround)
		r.tick(motion.Input{X: 1, RawX: 1})
		r.probe.env = inAir

		rep := r.idle(1)
		assert.True(t, rep.LeftGround)
		assert.Equal(t, motion.StateRunning, rep.State, "latch still set this tick")

		rep = r.idle(1)
		assert.Equal(t, motion.StateFalling, rep.State)
		assert.Equal(t, 10.0, r.body.velocity.X, "steering unchanged")
	})
}

func TestController_Climbing(t *testing.T) {
	tests := []struct {
		name     string
		in       motion.Input
		start    motion.Vec
		expected motion.Vec
	}{
		{"hold still", motion.Input{ClimbHeld: true}, motion.Vec{}, motion.Vec{}},
		{"up is halved", motion.Input{ClimbHeld: true, Y: 1}, motion.Vec{}, motion.Vec{Y: 5}},
		{"down is full speed", motion.Input{ClimbHeld: true, Y: -1}, motion.Vec{}, motion.Vec{Y: -10}},
		{"horizontal drift pinned", motion.Input{ClimbHeld: true, X: 0.5}, motion.Vec{X: 3}, motion.Vec{}},
		{"small horizontal kept", motion.Input{ClimbHeld: true, X: 0.1}, motion.Vec{X: 3}, motion.Vec{X: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := createTestRig(t, onRightWall)
			r.body.velocity = tt.start

			rep := r.tick(tt.in)

			assert.Equal(t, motion.StateClimbing, rep.State)
			assert.Equal(t, 0.0, r.body.gravity)
			assert.Equal(t, tt.expected, r.body.velocity)
		})
	}

	t.Run("moving up fast skips wall rules", func(t *testing.T) {
		r := createTestRig(t, onRightWall)
		r.body.velocity = motion.Vec{Y: 4}
		rep := r.tick(motion.Input{ClimbHeld: true})
		assert.Equal(t, motion.StateIdle, rep.State)
		assert.Empty(t, rep.Rules)
	})

	t.Run("wall lost returns to idle with gravity", func(t *testing.T) {
		r := createTestRig(t, onRightWall)
		r.tick(motion.Input{ClimbHeld: true})
		require.Equal(t, motion.StateClimbing, r.c.State())

		r.probe.env = inAir
		rep := r.tick(motion.Input{ClimbHeld: true})
		assert.Equal(t, motion.StateClimbing, rep.Selected)
		assert.Equal(t, motion.StateIdle, rep.State)
		assert.Equal(t, 3.0, r.body.gravity)
	})

	t.Run("release drops to slide", func(t *testing.T) {
		r := createTestRig(t, onRightWall)
		r.tick(motion.Input{ClimbHeld: true})

		rep := r.tick(motion.Input{})
		assert.Equal(t, motion.StateSliding, rep.Selected)
		assert.Equal(t, motion.StateIdle, rep.State)
		assert.Equal(t, 3.0, r.body.gravity)
	})
}

func TestController_Sliding(t *testing.T) {
	tests := []struct {
		name  string
		env   motion.Environment
		start float64
		vx    float64
	}{
		{"pushing into right wall", onRightWall, 3, 0},
		{"moving away from right wall", onRightWall, -3, -3},
		{"pushing into left wall", onLeftWall, -3, 0},
		{"moving away from left wall", onLeftWall, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := createTestRig(t, tt.env)
			r.body.velocity = motion.Vec{X: tt.start}

			rep := r.tick(motion.Input{})

			assert.Equal(t, motion.StateSliding, rep.Selected)
			assert.Equal(t, motion.Vec{X: tt.vx, Y: -5}, r.body.velocity)
		})
	}

	t.Run("no slide when grounded", func(t *testing.T) {
		r := createTestRig(t, motion.Environment{Grounded: true, OnWall: true, OnRightWall: true})
		rep := r.tick(motion.Input{})
		assert.NotContains(t, rep.Rules, "slide")
	})
}

func TestController_Falling(t *testing.T) {
	r := createTestRig(t, onGround)
	r.tick(motion.Input{JumpPressed: true})
	r.probe.env = inAir

	r.tick(motion.Input{X: -1})
	assert.Equal(t, motion.StateFalling, r.c.State())
	assert.Equal(t, -10.0, r.body.velocity.X)
	assert.Equal(t, 50.0, r.body.velocity.Y, "vertical left to physics")
}

func TestController_Jump(t *testing.T) {
	r := createTestRig(t, onGround)
	r.body.velocity = motion.Vec{X: 2, Y: -7}

	rep := r.tick(motion.Input{JumpPressed: true, JumpHeld: true})

	assert.Equal(t, motion.StateJumping, rep.Selected)
	assert.Equal(t, motion.StateFalling, rep.State, "JUMPING never ends a tick")
	assert.Equal(t, motion.Vec{X: 2, Y: 50}, r.body.velocity, "prior fall speed discarded")
	assert.Equal(t, []string{TriggerJump}, r.anim.triggers)
	assert.False(t, r.c.Grounded())
	assert.True(t, rep.LeftGround)
	assert.False(t, rep.Landed)

	t.Run("no second leave event once airborne", func(t *testing.T) {
		r.probe.env = inAir
		rep := r.tick(motion.Input{})
		assert.False(t, rep.LeftGround)
		assert.False(t, rep.Landed)
	})

	t.Run("jump needs the latch", func(t *testing.T) {
		r := createTestRig(t, inAir)
		rep := r.tick(motion.Input{JumpPressed: true})
		assert.Equal(t, motion.StateIdle, rep.State)
		assert.Empty(t, rep.Rules)
	})
}

func TestController_WallJump(t *testing.T) {
	t.Run("jumps away from the right wall", func(t *testing.T) {
		r := createTestRig(t, onRightWall)

		rep := r.tick(motion.Input{JumpPressed: true})

		assert.Equal(t, []string{"slide", "walljump"}, rep.Rules)
		assert.Equal(t, motion.StateWallJumping, rep.Selected)
		assert.Equal(t, motion.StateNonMoveable, rep.State)
		assert.InDelta(t, -50/1.5, r.body.velocity.X, 1e-9)
		assert.InDelta(t, 50/1.5, r.body.velocity.Y, 1e-9)
		assert.Equal(t, []string{TriggerJump}, r.anim.triggers)
		assert.True(t, r.c.Pending(schedule.KindWallJumpLockout))
	})

	t.Run("jumps away from the left wall", func(t *testing.T) {
		r := createTestRig(t, onLeftWall)
		r.tick(motion.Input{JumpPressed: true})
		assert.InDelta(t, 50/1.5, r.body.velocity.X, 1e-9)
	})

	t.Run("lockout lasts exactly its duration", func(t *testing.T) {
		r := createTestRig(t, onRightWall)
		r.tick(motion.Input{JumpPressed: true})
		r.probe.env = inAir

		rep := r.idle(9)
		assert.Equal(t, motion.StateNonMoveable, rep.State, "90ms in")

		rep = r.idle(1)
		assert.Equal(t, motion.StateFalling, rep.State, "100ms in")
		assert.Equal(t, []schedule.Kind{schedule.KindWallJumpLockout}, rep.Timers)
	})

	t.Run("second wall jump replaces the lockout", func(t *testing.T) {
		r := createTestRig(t, onRightWall)
		r.tick(motion.Input{JumpPressed: true})
		r.idle(4)
		r.tick(motion.Input{JumpPressed: true})
		r.probe.env = inAir

		r.idle(9)
		assert.Equal(t, motion.StateNonMoveable, r.c.State(), "first lockout cancelled")
		r.idle(1)
		assert.Equal(t, motion.StateFalling, r.c.State())
	})

	t.Run("grounded at expiry stays put", func(t *testing.T) {
		r := createTestRig(t, onRightWall)
		r.tick(motion.Input{JumpPressed: true})
		r.probe.env = onGround

		r.idle(10)
		assert.Equal(t, motion.StateNonMoveable, r.c.State())
		assert.True(t, r.c.Grounded())
	})
}

func TestController_Dash(t *testing.T) {
	t.Run("airborne dash", func(t *testing.T) {
		r := createTestRig(t, inAir)
		r.body.position = motion.Vec{X: 4, Y: 2}
		r.body.velocity = motion.Vec{X: 3, Y: -9}

		rep := r.tick(motion.Input{DashPressed: true, RawX: 1})

		assert.Equal(t, motion.StateDashing, rep.Selected)
		assert.Equal(t, motion.StateFalling, rep.State)
		assert.Equal(t, motion.Vec{X: 20}, r.body.velocity)
		assert.False(t, r.c.DashAvailable())
		assert.Equal(t, []string{TriggerDash}, r.anim.triggers)
		assert.Equal(t, []motion.Shake{motion.DashShake}, r.fx.shakes)
		assert.Equal(t, []motion.Vec{{X: 4, Y: 2}}, r.fx.ripples)
		assert.Equal(t, 1, r.fx.trails)
		assert.Equal(t, 0.0, r.body.gravity)
		assert.Equal(t, 14.0, r.body.drag)
		assert.False(t, r.assist.enabled())
		for _, k := range []schedule.Kind{schedule.KindDashWindow, schedule.KindDashDrag, schedule.KindGroundDashRefresh} {
			assert.True(t, r.c.Pending(k), k.String())
		}
	})

	t.Run("diagonal is normalized", func(t *testing.T) {
		r := createTestRig(t, inAir)
		r.tick(motion.Input{DashPressed: true, RawX: -1, RawY: 1})
		assert.InDelta(t, 20.0, r.body.velocity.Len(), 1e-9)
		assert.InDelta(t, -r.body.velocity.Y, r.body.velocity.X, 1e-9)
	})

	t.Run("window restores gravity and assist", func(t *testing.T) {
		r := createTestRig(t, inAir)
		r.tick(motion.Input{DashPressed: true, RawX: 1})

		r.idle(29)
		assert.Equal(t, 0.0, r.body.gravity, "gravity stays off for the whole window")
		assert.False(t, r.assist.enabled())

		rep := r.idle(1)
		assert.Contains(t, rep.Timers, schedule.KindDashWindow)
		assert.Equal(t, 3.0, r.body.gravity)
		assert.True(t, r.assist.enabled())

		r.idle(1)
		assert.Equal(t, 3.0, r.body.gravity)
	})

	t.Run("drag ramps to zero over its own duration", func(t *testing.T) {
		r := createTestRig(t, inAir)
		r.tick(motion.Input{DashPressed: true, RawX: 1})

		prev := r.body.drag
		for i := 0; i < 40; i++ {
			r.idle(1)
			assert.LessOrEqual(t, r.body.drag, prev)
			prev = r.body.drag
		}
		assert.Greater(t, r.body.drag, 0.0, "ramp outlasts the window")
		assert.True(t, r.c.Pending(schedule.KindDashDrag))

		r.idle(50)
		assert.Equal(t, 0.0, r.body.drag)
		assert.False(t, r.c.Pending(schedule.KindDashDrag))
	})

	t.Run("no raw direction does nothing", func(t *testing.T) {
		r := createTestRig(t, inAir)
		r.body.velocity = motion.Vec{X: 1}

		rep := r.tick(motion.Input{DashPressed: true, X: 1})

		assert.Equal(t, motion.StateDashing, rep.State)
		assert.True(t, r.c.DashAvailable())
		assert.Equal(t, motion.Vec{X: 1}, r.body.velocity)
		assert.Empty(t, r.fx.shakes)
	})

	t.Run("unavailable dash is ignored", func(t *testing.T) {
		r := createTestRig(t, inAir)
		r.tick(motion.Input{DashPressed: true, RawX: 1})
		rep := r.tick(motion.Input{DashPressed: true, RawX: 1})
		assert.Empty(t, rep.Rules)
		assert.Len(t, r.fx.shakes, 1)
	})

	t.Run("grounded dash fires once", func(t *testing.T) {
		r := createTestRig(t, onGround)
		r.tick(motion.Input{DashPressed: true, RawX: 1})
		require.Equal(t, motion.StateDashing, r.c.State())

		r.body.velocity = motion.Vec{X: 2}
		r.idle(3)
		assert.Equal(t, motion.StateDashing, r.c.State())
		assert.Equal(t, motion.Vec{X: 2}, r.body.velocity)
		assert.Len(t, r.anim.triggers, 1)
	})

	t.Run("grounded vertical dash falls once airborne", func(t *testing.T) {
		r := createTestRig(t, onGround)
		rep := r.tick(motion.Input{DashPressed: true, RawY: 1})
		require.Equal(t, motion.StateDashing, rep.State)
		assert.Equal(t, motion.Vec{Y: 20}, r.body.velocity)

		r.probe.env = inAir
		rep = r.idle(1)
		assert.True(t, rep.LeftGround)
		assert.Equal(t, motion.StateDashing, rep.State)

		rep = r.idle(1)
		assert.Equal(t, motion.StateFalling, rep.State)
		assert.Len(t, r.fx.shakes, 1, "no second dash")

		r.idle(58)
		r.probe.env = onGround
		r.input.next = motion.Input{}
		r.idle(60)
		assert.NotEqual(t, motion.StateDashing, r.c.State())
	})
}

func TestController_DashAvailability(t *testing.T) {
	t.Run("ground refresh after the grace window", func(t *testing.T) {
		r := createTestRig(t, onGround)
		r.tick(motion.Input{DashPressed: true, RawX: 1})

		r.idle(14)
		assert.False(t, r.c.DashAvailable(), "140ms in")
		rep := r.idle(1)
		assert.Contains(t, rep.Timers, schedule.KindGroundDashRefresh)
		assert.True(t, r.c.DashAvailable(), "150ms in")
	})

	t.Run("airborne dash waits for landing", func(t *testing.T) {
		r := createTestRig(t, inAir)
		r.tick(motion.Input{DashPressed: true, RawX: 1})

		r.idle(40)
		assert.False(t, r.c.DashAvailable())

		r.probe.env = onGround
		rep := r.idle(1)
		assert.True(t, rep.Landed)
		assert.True(t, r.c.DashAvailable())
	})

	t.Run("second dash cancels the first window", func(t *testing.T) {
		r := createTestRig(t, inAir)
		r.tick(motion.Input{DashPressed: true, RawX: 1}) // t=10ms
		r.probe.env = onGround
		r.idle(4) // landed
		require.True(t, r.c.DashAvailable())
		r.idle(4)
		r.tick(motion.Input{DashPressed: true, RawX: -1}) // t=100ms
		assert.Equal(t, 14.0, r.body.drag, "drag ramp restarts")

		refreshes := 0
		advance := func(n int) {
			for i := 0; i < n; i++ {
				for _, kind := range r.idle(1).Timers {
					if kind == schedule.KindGroundDashRefresh {
						refreshes++
					}
				}
			}
		}

		advance(21) // t=310ms, first window would have closed
		assert.Equal(t, 0.0, r.body.gravity)
		assert.False(t, r.assist.enabled())

		advance(9) // t=400ms
		assert.Equal(t, 3.0, r.body.gravity)
		assert.True(t, r.assist.enabled())
		assert.Equal(t, 1, refreshes, "first refresh replaced")

		advance(45) // t=850ms, first ramp would have ended
		assert.Greater(t, r.body.drag, 0.0)
		assert.True(t, r.c.Pending(schedule.KindDashDrag))
	})
}

func TestController_EdgeDetector(t *testing.T) {
	r := createTestRig(t, inAir)

	sequence := []struct {
		env    motion.Environment
		landed bool
		left   bool
	}{
		{inAir, false, false},
		{onGround, true, false},
		{onGround, false, false},
		{onGround, false, false},
		{inAir, false, true},
		{inAir, false, false},
		{onGround, true, false},
	}

	for i, step := range sequence {
		r.probe.env = step.env
		rep := r.idle(1)
		assert.Equal(t, step.landed, rep.Landed, "tick %d landed", i)
		assert.Equal(t, step.left, rep.LeftGround, "tick %d left", i)
		assert.Equal(t, step.env.Grounded, r.c.Grounded(), "tick %d latch", i)
	}
}

func TestController_SmoothWallJumpSteer(t *testing.T) {
	params := motion.DefaultParams()
	params.SmoothWallJumpSteer = true
	r := createTestRigWith(t, params, onRightWall)

	r.tick(motion.Input{JumpPressed: true})
	r.probe.env = inAir
	r.idle(10)
	require.Equal(t, motion.StateFalling, r.c.State())

	before := r.body.velocity.X
	r.tick(motion.Input{X: 1})
	expected := before + (10-before)*0.1
	assert.InDelta(t, expected, r.body.velocity.X, 1e-9)

	r.probe.env = onGround
	r.tick(motion.Input{})
	r.probe.env = inAir
	r.tick(motion.Input{})
	require.Equal(t, motion.StateFalling, r.c.State())

	r.tick(motion.Input{X: 1})
	assert.Equal(t, 10.0, r.body.velocity.X, "landing ends smooth steering")
}

func TestController_Tracer(t *testing.T) {
	var reports []Report
	c, err := New(motion.DefaultParams(), motion.DefaultTiming(), Deps{
		Body:     &fakeBody{},
		Probe:    &fakeProbe{},
		Animator: &fakeAnimator{},
		Input:    &fakeInput{},
		Tracer:   func(r Report) { reports = append(reports, r) },
	})
	require.NoError(t, err)

	c.Tick(dt)
	c.Tick(dt)
	require.Len(t, reports, 2)
	assert.Equal(t, uint64(2), reports[1].Tick)
	assert.Equal(t, 2*dt, c.Elapsed())
}

// Random input and environment must never break the state invariants.
func TestController_Invariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	r := createTestRig(t, inAir)

	axis := func() float64 { return rng.Float64()*4 - 2 }
	for i := 0; i < 5000; i++ {
		wall := rng.IntN(3)
		r.probe.env = motion.Environment{
			Grounded:    rng.IntN(2) == 0,
			OnWall:      wall != 0,
			OnLeftWall:  wall == 1,
			OnRightWall: wall == 2,
		}
		r.body.velocity.Y = axis() * 10

		rep := r.tick(motion.Input{
			X: axis(), Y: axis(), RawX: float64(rng.IntN(3) - 1), RawY: float64(rng.IntN(3) - 1),
			JumpPressed: rng.IntN(4) == 0,
			ClimbHeld:   rng.IntN(2) == 0,
			DashPressed: rng.IntN(6) == 0,
		})

		require.True(t, rep.State.Valid(), "tick %d", i)
		require.NotEqual(t, motion.StateJumping, rep.State, "tick %d", i)
		require.NotEqual(t, motion.StateWallJumping, rep.State, "tick %d", i)
		require.False(t, rep.Landed && rep.LeftGround, "tick %d", i)
		if rep.Landed {
			require.True(t, r.c.DashAvailable(), "tick %d", i)
		}
		g := r.body.gravity
		require.True(t, g == 0 || g == 3, "tick %d gravity %v", i, g)
	}
}

func BenchmarkController_Tick(b *testing.B) {
	r := createTestRig(b, onGround)
	inputs := []motion.Input{
		{X: 1, RawX: 1},
		{X: 1, RawX: 1, JumpPressed: true},
		{X: -1, RawX: -1, DashPressed: true},
		{},
	}
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		r.input.next = inputs[i%len(inputs)]
		r.c.Tick(dt)
	}
}
