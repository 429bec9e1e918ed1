package config

import (
	"fmt"
	"math"
	"time"

	"github.com/younwookim/wallclimb/internal/domain/motion"
)

// PlayerConfig is the root config for player.yaml
type PlayerConfig struct {
	Motion MotionConfig `yaml:"motion"`
	Timing TimingConfig `yaml:"timing"`
	Assist AssistConfig `yaml:"assist"`
	Input  InputConfig  `yaml:"input"`
}

type MotionConfig struct {
	Speed               float64 `yaml:"speed"`
	JumpForce           float64 `yaml:"jump_force"`
	SlideSpeed          float64 `yaml:"slide_speed"`
	WallJumpLerp        float64 `yaml:"wall_jump_lerp"`
	DashSpeed           float64 `yaml:"dash_speed"`
	GravityScale        float64 `yaml:"gravity_scale"`
	SmoothWallJumpSteer bool    `yaml:"smooth_wall_jump_steer"`
}

// TimingConfig durations are in seconds.
type TimingConfig struct {
	DashWindow        float64 `yaml:"dash_window"`
	DashDrag          float64 `yaml:"dash_drag"`
	DashDragStart     float64 `yaml:"dash_drag_start"`
	GroundDashRefresh float64 `yaml:"ground_dash_refresh"`
	WallJumpLockout   float64 `yaml:"wall_jump_lockout"`
}

type AssistConfig struct {
	Enabled           bool    `yaml:"enabled"`
	FallMultiplier    float64 `yaml:"fall_multiplier"`
	LowJumpMultiplier float64 `yaml:"low_jump_multiplier"`
}

// InputConfig tunes the axis smoothing of the keyboard/gamepad input.
type InputConfig struct {
	Sensitivity   float64 `yaml:"sensitivity"`
	Gravity       float64 `yaml:"gravity"`
	Snap          bool    `yaml:"snap"`
	StickDeadzone float64 `yaml:"stick_deadzone"`
}

// DefaultPlayerConfig mirrors motion.DefaultParams and motion.DefaultTiming.
// Keys missing from player.yaml keep these values.
func DefaultPlayerConfig() PlayerConfig {
	p := motion.DefaultParams()
	t := motion.DefaultTiming()
	return PlayerConfig{
		Motion: MotionConfig{
			Speed:        p.Speed,
			JumpForce:    p.JumpForce,
			SlideSpeed:   p.SlideSpeed,
			WallJumpLerp: p.WallJumpLerp,
			DashSpeed:    p.DashSpeed,
			GravityScale: p.DefaultGravityScale,
		},
		Timing: TimingConfig{
			DashWindow:        t.DashWindow.Seconds(),
			DashDrag:          t.DashDrag.Seconds(),
			DashDragStart:     t.DashDragStart,
			GroundDashRefresh: t.GroundDashRefresh.Seconds(),
			WallJumpLockout:   t.WallJumpLockout.Seconds(),
		},
		Assist: AssistConfig{
			Enabled:           true,
			FallMultiplier:    2.5,
			LowJumpMultiplier: 2,
		},
		Input: InputConfig{
			Sensitivity:   3,
			Gravity:       3,
			Snap:          true,
			StickDeadzone: 0.2,
		},
	}
}

// ToParams converts the motion section to validated controller parameters.
func (c *PlayerConfig) ToParams() (motion.Params, error) {
	p := motion.DefaultParams()
	p.Speed = c.Motion.Speed
	p.JumpForce = c.Motion.JumpForce
	p.SlideSpeed = c.Motion.SlideSpeed
	p.WallJumpLerp = c.Motion.WallJumpLerp
	p.DashSpeed = c.Motion.DashSpeed
	p.DefaultGravityScale = c.Motion.GravityScale
	p.SmoothWallJumpSteer = c.Motion.SmoothWallJumpSteer

	if err := p.Validate(); err != nil {
		return motion.Params{}, fmt.Errorf("failed to convert motion config: %w", err)
	}
	return p, nil
}

// ToTiming converts the timing section to validated durations.
func (c *PlayerConfig) ToTiming() (motion.Timing, error) {
	t := motion.Timing{
		DashWindow:        seconds(c.Timing.DashWindow),
		DashDrag:          seconds(c.Timing.DashDrag),
		DashDragStart:     c.Timing.DashDragStart,
		GroundDashRefresh: seconds(c.Timing.GroundDashRefresh),
		WallJumpLockout:   seconds(c.Timing.WallJumpLockout),
	}
	if err := t.Validate(); err != nil {
		return motion.Timing{}, fmt.Errorf("failed to convert timing config: %w", err)
	}
	return t, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
