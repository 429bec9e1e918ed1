package movement

import "github.com/younwookim/wallclimb/internal/domain/motion"

// Animation trigger names.
const (
	TriggerJump = "jump"
	TriggerDash = "dash"
)

// Body is the rigid body the controller drives.
type Body interface {
	Velocity() motion.Vec
	SetVelocity(v motion.Vec)
	GravityScale() float64
	SetGravityScale(scale float64)
	SetDrag(drag float64)
	Position() motion.Vec
}

// Probe reports the collision environment. It is refreshed once per tick
// before the controller reads it.
type Probe interface {
	Sense() motion.Environment
}

// Animator consumes animation cues.
type Animator interface {
	SetTrigger(name string)
	SetHorizontalMovement(x, y, vy float64)
}

// InputSource delivers one input snapshot per tick.
type InputSource interface {
	Poll() motion.Input
}

// Effects are fire-and-forget visual cues.
type Effects interface {
	ShakeCamera(s motion.Shake)
	ShowGhostTrail()
	EmitRipple(at motion.Vec)
}

// JumpAssist is the external enhanced jump arc, switched off during a dash.
type JumpAssist interface {
	SetEnabled(enabled bool)
}

type noEffects struct{}

func (noEffects) ShakeCamera(motion.Shake) {}
func (noEffects) ShowGhostTrail()          {}
func (noEffects) EmitRipple(motion.Vec)    {}

type noAssist struct{}

func (noAssist) SetEnabled(bool) {}
