package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/wallclimb/internal/domain/entity"
	"github.com/younwookim/wallclimb/internal/domain/motion"
)

// Body is a dynamic box with a per-body gravity scale and linear drag.
type Body struct {
	body  *cp.Body
	shape *cp.Shape
	scale float64
	size  motion.Vec

	gravityScale float64
	drag         float64
	extra        motion.Vec // one-step acceleration, world units/s²
}

// updateVelocity scales gravity per body, then applies drag as
// v *= 1/(1+drag*dt).
func (b *Body) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	g := gravity.Mult(b.gravityScale).Add(cp.Vector{X: b.extra.X * b.scale, Y: b.extra.Y * b.scale})
	b.extra = motion.Vec{}
	cp.BodyUpdateVelocity(body, g, damping, dt)

	if b.drag > 0 {
		body.SetVelocityVector(body.Velocity().Mult(1 / (1 + b.drag*dt)))
	}
}

func (b *Body) Velocity() motion.Vec {
	v := b.body.Velocity()
	return motion.Vec{X: v.X / b.scale, Y: v.Y / b.scale}
}

func (b *Body) SetVelocity(v motion.Vec) {
	b.body.SetVelocity(v.X*b.scale, v.Y*b.scale)
}

func (b *Body) GravityScale() float64 { return b.gravityScale }

func (b *Body) SetGravityScale(scale float64) { b.gravityScale = scale }

func (b *Body) Drag() float64 { return b.drag }

func (b *Body) SetDrag(drag float64) { b.drag = drag }

// Accelerate adds a one-step acceleration on top of scaled gravity.
func (b *Body) Accelerate(a motion.Vec) {
	b.extra = b.extra.Add(a)
}

// Position returns the body centre in world units.
func (b *Body) Position() motion.Vec {
	p := b.body.Position()
	return motion.Vec{X: p.X / b.scale, Y: p.Y / b.scale}
}

// Teleport moves the body and stops it.
func (b *Body) Teleport(pos motion.Vec) {
	b.body.SetPosition(cp.Vector{X: pos.X * b.scale, Y: pos.Y * b.scale})
	b.body.SetVelocity(0, 0)
}

func (b *Body) Size() motion.Vec { return b.size }

// Rect returns the body's box in world units.
func (b *Body) Rect() entity.Rect {
	return entity.RectAround(b.Position(), b.size)
}
