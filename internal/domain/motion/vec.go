package motion

import "math"

// Vec is a 2D vector in world units, y up.
type Vec struct {
	X, Y float64
}

var (
	Up    = Vec{Y: 1}
	Left  = Vec{X: -1}
	Right = Vec{X: 1}
)

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalized returns the unit vector in v's direction. The zero vector stays zero.
func (v Vec) Normalized() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Lerp moves v toward o by t, with t clamped into [0, 1].
func (v Vec) Lerp(o Vec, t float64) Vec {
	t = math.Max(0, math.Min(1, t))
	return Vec{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}
