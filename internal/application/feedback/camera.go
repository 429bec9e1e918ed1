// Package feedback holds the fire-and-forget visual cues of the movement
// controller: camera shake, dash ghost trail and ripple rings. All of them
// are stepped once per frame and never feed back into the simulation.
package feedback

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/wallclimb/internal/domain/motion"
)

// Camera shakes the view. Strength decays linearly to zero over the shake
// duration and the direction is re-rolled Vibrato times per second.
type Camera struct {
	enabled bool
	scale   float64
	rng     *rand.Rand

	falloff  *gween.Tween
	strength float64
	interval float64
	timer    float64
	dir      motion.Vec
	offset   motion.Vec
}

// NewCamera creates a camera; scale converts shake strength to offset units.
func NewCamera(enabled bool, scale float64, seed uint64) *Camera {
	return &Camera{
		enabled: enabled,
		scale:   scale,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Shake finishes any running shake and starts a new one.
func (c *Camera) Shake(s motion.Shake) {
	if !c.enabled || s.Duration <= 0 {
		return
	}
	c.Complete()
	c.falloff = gween.New(float32(s.Strength), 0, float32(s.Duration.Seconds()), ease.Linear)
	c.strength = s.Strength
	c.interval = 0
	if s.Vibrato > 0 {
		c.interval = 1 / float64(s.Vibrato)
	}
	c.timer = 0
	c.roll()
	c.offset = c.dir.Scale(c.strength * c.scale)
}

// Complete jumps the running shake to its end.
func (c *Camera) Complete() {
	c.falloff = nil
	c.strength = 0
	c.offset = motion.Vec{}
}

// Update advances the shake by dt.
func (c *Camera) Update(dt time.Duration) {
	if c.falloff == nil {
		return
	}
	sec := dt.Seconds()
	s, done := c.falloff.Update(float32(sec))
	if done {
		c.Complete()
		return
	}
	c.strength = float64(s)

	c.timer += sec
	if c.interval > 0 && c.timer >= c.interval {
		c.timer -= c.interval
		c.roll()
	}
	c.offset = c.dir.Scale(c.strength * c.scale)
}

func (c *Camera) roll() {
	a := c.rng.Float64() * 2 * math.Pi
	c.dir = motion.Vec{X: math.Cos(a), Y: math.Sin(a)}
}

// Offset is the current view displacement.
func (c *Camera) Offset() motion.Vec { return c.offset }

// Shaking reports whether a shake is running.
func (c *Camera) Shaking() bool { return c.falloff != nil }
