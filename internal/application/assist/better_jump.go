// Package assist implements the enhanced jump arc: heavier gravity on the way
// down and a short hop when jump is released early.
package assist

import (
	"github.com/younwookim/wallclimb/internal/domain/motion"
	"github.com/younwookim/wallclimb/internal/infrastructure/config"
)

// Body is the part of the physics body the assist needs.
type Body interface {
	Velocity() motion.Vec
	GravityScale() float64
	Accelerate(a motion.Vec)
}

// BetterJump adds extra downward acceleration on top of the world gravity.
type BetterJump struct {
	body              Body
	gravity           float64
	fallMultiplier    float64
	lowJumpMultiplier float64
	enabled           bool
}

// NewBetterJump creates the assist; gravity is the world's base acceleration.
func NewBetterJump(body Body, gravity float64, cfg config.AssistConfig) *BetterJump {
	return &BetterJump{
		body:              body,
		gravity:           gravity,
		fallMultiplier:    cfg.FallMultiplier,
		lowJumpMultiplier: cfg.LowJumpMultiplier,
		enabled:           cfg.Enabled,
	}
}

func (b *BetterJump) SetEnabled(enabled bool) { b.enabled = enabled }

func (b *BetterJump) Enabled() bool { return b.enabled }

// Apply queues this frame's extra acceleration. Nothing happens while the
// body ignores gravity (climbing, dashing).
func (b *BetterJump) Apply(jumpHeld bool) {
	if !b.enabled || b.body.GravityScale() == 0 {
		return
	}
	vy := b.body.Velocity().Y
	switch {
	case vy < 0:
		b.body.Accelerate(motion.Vec{Y: -b.gravity * (b.fallMultiplier - 1)})
	case vy > 0 && !jumpHeld:
		b.body.Accelerate(motion.Vec{Y: -b.gravity * (b.lowJumpMultiplier - 1)})
	}
}
