package motion

import "math"

// Environment is the collision probe's view of the player for one tick.
type Environment struct {
	Grounded    bool
	OnWall      bool
	OnLeftWall  bool
	OnRightWall bool
}

// WallSide returns -1 for a left wall, +1 for a right wall, 0 for none.
// A right wall wins when both flags are set.
func (e Environment) WallSide() int {
	switch {
	case e.OnRightWall:
		return 1
	case e.OnLeftWall:
		return -1
	default:
		return 0
	}
}

// Input is one tick of player input. X/Y are smoothed axes used for steering,
// RawX/RawY are unsmoothed and used for instantaneous commands like the dash.
// Y is positive upwards.
type Input struct {
	X, Y       float64
	RawX, RawY float64

	JumpPressed  bool
	JumpHeld     bool
	ClimbPressed bool
	ClimbHeld    bool
	DashPressed  bool
}

// Clamped returns a copy with every axis clamped into [-1, 1]. NaN becomes 0.
func (in Input) Clamped() Input {
	in.X = clampAxis(in.X)
	in.Y = clampAxis(in.Y)
	in.RawX = clampAxis(in.RawX)
	in.RawY = clampAxis(in.RawY)
	return in
}

// HasRawDirection reports whether any raw axis is non-zero.
func (in Input) HasRawDirection() bool {
	return in.RawX != 0 || in.RawY != 0
}

func clampAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
