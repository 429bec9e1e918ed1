// Package physics is the rigid body integrator behind the movement
// controller. Chipmunk runs in pixel space (y up); the exported API speaks
// world units.
package physics

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/younwookim/wallclimb/internal/domain/entity"
	"github.com/younwookim/wallclimb/internal/domain/motion"
)

// Settings configure the simulation.
type Settings struct {
	Gravity    float64 // world units/s², applied downwards
	Scale      float64 // pixels per world unit
	Iterations int
}

// World owns the chipmunk space.
type World struct {
	space   *cp.Space
	scale   float64
	gravity float64
}

// NewWorld creates an empty world.
func NewWorld(s Settings) *World {
	if s.Scale <= 0 {
		s.Scale = 1
	}
	space := cp.NewSpace()
	if s.Iterations > 0 {
		space.Iterations = uint(s.Iterations)
	}
	space.SetGravity(cp.Vector{X: 0, Y: -s.Gravity * s.Scale})

	return &World{space: space, scale: s.Scale, gravity: s.Gravity}
}

// Gravity returns the base downward acceleration in world units/s².
func (w *World) Gravity() float64 { return w.gravity }

// AddStatic adds a solid box in world units.
func (w *World) AddStatic(r entity.Rect) {
	bb := cp.BB{
		L: r.X * w.scale,
		B: r.Y * w.scale,
		R: r.Right() * w.scale,
		T: r.Top() * w.scale,
	}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	w.space.AddShape(shape)
}

// AddStage adds every solid tile run of the stage.
func (w *World) AddStage(stage *entity.Stage) {
	for _, r := range stage.WorldRects() {
		w.AddStatic(r)
	}
}

// AddBody adds a dynamic box centred on pos. Rotation is locked.
func (w *World) AddBody(pos, size motion.Vec) *Body {
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: pos.X * w.scale, Y: pos.Y * w.scale})

	b := &Body{body: body, scale: w.scale, size: size, gravityScale: 1}
	body.SetVelocityUpdateFunc(b.updateVelocity)

	shape := cp.NewBox(body, size.X*w.scale, size.Y*w.scale, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	b.shape = shape
	return b
}

// Step advances the simulation.
func (w *World) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	w.space.Step(dt.Seconds())
}
