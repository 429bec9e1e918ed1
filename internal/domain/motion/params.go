package motion

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidParams is returned when tuning values cannot drive the controller.
var ErrInvalidParams = errors.New("invalid motion parameters")

// Params are the tunable movement constants. They are fixed for a session.
type Params struct {
	Speed        float64 // horizontal run / climb speed (units/s)
	JumpForce    float64 // jump impulse magnitude
	SlideSpeed   float64 // downward wall-slide speed
	WallJumpLerp float64 // wall-jump steering rate (1/s)
	DashSpeed    float64 // dash impulse magnitude

	DefaultGravityScale    float64
	InputDeadzone          float64 // |x| above this counts as horizontal input
	ClimbSteerDeadzone     float64 // |x| above this pins horizontal velocity while climbing
	ClimbVelocityThreshold float64 // wall rules apply only while vy is below this
	ClimbUpModifier        float64 // climbing up is slower than sliding down

	// Wall-jump direction is WallJumpUp*up + WallJumpOut*away.
	WallJumpUp  float64
	WallJumpOut float64

	// SmoothWallJumpSteer makes FALLING lerp toward the walk velocity after a
	// wall jump (until landing) instead of snapping to it.
	SmoothWallJumpSteer bool
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Speed:                  10,
		JumpForce:              50,
		SlideSpeed:             5,
		WallJumpLerp:           10,
		DashSpeed:              20,
		DefaultGravityScale:    3,
		InputDeadzone:          0.01,
		ClimbSteerDeadzone:     0.2,
		ClimbVelocityThreshold: 0.1,
		ClimbUpModifier:        0.5,
		WallJumpUp:             1 / 1.5,
		WallJumpOut:            1 / 1.5,
	}
}

// Validate checks that every speed is finite and non-negative.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"speed", p.Speed},
		{"jumpForce", p.JumpForce},
		{"slideSpeed", p.SlideSpeed},
		{"wallJumpLerp", p.WallJumpLerp},
		{"dashSpeed", p.DashSpeed},
		{"defaultGravityScale", p.DefaultGravityScale},
		{"inputDeadzone", p.InputDeadzone},
		{"climbSteerDeadzone", p.ClimbSteerDeadzone},
		{"climbUpModifier", p.ClimbUpModifier},
		{"wallJumpUp", p.WallJumpUp},
		{"wallJumpOut", p.WallJumpOut},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("%w: %s = %v", ErrInvalidParams, f.name, f.value)
		}
	}
	if math.IsNaN(p.ClimbVelocityThreshold) || math.IsInf(p.ClimbVelocityThreshold, 0) {
		return fmt.Errorf("%w: climbVelocityThreshold = %v", ErrInvalidParams, p.ClimbVelocityThreshold)
	}
	return nil
}

// Timing holds the durations of the timed dash and wall-jump actions.
type Timing struct {
	DashWindow        time.Duration // zero gravity, jump assist off
	DashDrag          time.Duration // drag ramp length, overlaps the window
	DashDragStart     float64       // drag value at the start of the ramp
	GroundDashRefresh time.Duration // early dash refresh when grounded
	WallJumpLockout   time.Duration // NONMOVEABLE hold after a wall jump
}

// DefaultTiming returns the stock timed-action durations.
func DefaultTiming() Timing {
	return Timing{
		DashWindow:        300 * time.Millisecond,
		DashDrag:          800 * time.Millisecond,
		DashDragStart:     14,
		GroundDashRefresh: 150 * time.Millisecond,
		WallJumpLockout:   100 * time.Millisecond,
	}
}

// Validate rejects non-positive durations.
func (t Timing) Validate() error {
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"dashWindow", t.DashWindow},
		{"dashDrag", t.DashDrag},
		{"groundDashRefresh", t.GroundDashRefresh},
		{"wallJumpLockout", t.WallJumpLockout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%w: %s = %v", ErrInvalidParams, d.name, d.value)
		}
	}
	if t.DashDragStart < 0 || math.IsNaN(t.DashDragStart) || math.IsInf(t.DashDragStart, 0) {
		return fmt.Errorf("%w: dashDragStart = %v", ErrInvalidParams, t.DashDragStart)
	}
	return nil
}

// Shake describes a camera shake request.
type Shake struct {
	Duration time.Duration
	Strength float64
	Vibrato  int
}

// DashShake is the camera shake fired when a dash starts.
var DashShake = Shake{Duration: 200 * time.Millisecond, Strength: 0.5, Vibrato: 14}
