// Package motion holds the value types shared by the movement controller and
// the collaborators around it: the motion state tag, tuning parameters, and the
// per-tick environment and input snapshots.
package motion

// State is the player's discrete movement state. Exactly one is current.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateClimbing
	StateSliding
	StateFalling
	StateJumping
	StateWallJumping
	StateDashing
	StateNonMoveable
)

// States lists every state in declaration order.
var States = []State{
	StateIdle,
	StateRunning,
	StateClimbing,
	StateSliding,
	StateFalling,
	StateJumping,
	StateWallJumping,
	StateDashing,
	StateNonMoveable,
}

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StateClimbing:
		return "CLIMBING"
	case StateSliding:
		return "SLIDING"
	case StateFalling:
		return "FALLING"
	case StateJumping:
		return "JUMPING"
	case StateWallJumping:
		return "WALLJUMPING"
	case StateDashing:
		return "DASHING"
	case StateNonMoveable:
		return "NONMOVEABLE"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether s is one of the nine declared states.
func (s State) Valid() bool {
	return s >= StateIdle && s <= StateNonMoveable
}

// OnWall reports whether the state keeps the player attached to a wall.
func (s State) OnWall() bool {
	return s == StateClimbing || s == StateSliding
}
