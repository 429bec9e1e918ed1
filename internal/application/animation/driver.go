// Package animation turns movement cues into a debug pose.
package animation

import (
	"github.com/younwookim/wallclimb/internal/domain/motion"
)

// Pose names.
const (
	PoseIdle  = "idle"
	PoseRun   = "run"
	PoseClimb = "climb"
	PoseSlide = "wallslide"
	PoseRise  = "rise"
	PoseFall  = "fall"
	PoseJump  = "jump"
	PoseDash  = "dash"
)

// triggerFrames is how long a trigger overrides the state pose.
const triggerFrames = 6

// Driver records animation cues from the movement controller.
type Driver struct {
	trigger      string
	triggerTimer int
	counts       map[string]int

	x, y, vy    float64
	facingRight bool
	pose        string
}

func NewDriver() *Driver {
	return &Driver{
		counts:      make(map[string]int),
		facingRight: true,
		pose:        PoseIdle,
	}
}

func (d *Driver) SetTrigger(name string) {
	d.trigger = name
	d.triggerTimer = triggerFrames
	d.counts[name]++
}

func (d *Driver) SetHorizontalMovement(x, y, vy float64) {
	d.x, d.y, d.vy = x, y, vy
	switch {
	case x > 0:
		d.facingRight = true
	case x < 0:
		d.facingRight = false
	}
}

// Update picks the pose for this frame.
func (d *Driver) Update(state motion.State, velocity motion.Vec, env motion.Environment) {
	if d.triggerTimer > 0 {
		d.triggerTimer--
		d.pose = d.trigger
		return
	}

	switch state {
	case motion.StateRunning:
		d.pose = PoseRun
	case motion.StateClimbing:
		d.pose = PoseClimb
	case motion.StateSliding:
		d.pose = PoseSlide
	case motion.StateIdle, motion.StateNonMoveable, motion.StateDashing:
		if env.Grounded {
			d.pose = PoseIdle
			return
		}
		d.pose = airPose(velocity)
	default:
		d.pose = airPose(velocity)
	}
}

func airPose(v motion.Vec) string {
	if v.Y > 0 {
		return PoseRise
	}
	return PoseFall
}

func (d *Driver) Pose() string { return d.pose }

func (d *Driver) FacingRight() bool { return d.facingRight }

// Count returns how often a trigger fired.
func (d *Driver) Count(trigger string) int { return d.counts[trigger] }

// Movement returns the last horizontal-movement parameters.
func (d *Driver) Movement() (x, y, vy float64) { return d.x, d.y, d.vy }
