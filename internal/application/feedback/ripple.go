package feedback

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/wallclimb/internal/domain/motion"
)

// Ring is one expanding ripple.
type Ring struct {
	Center motion.Vec
	Radius float64
	Alpha  float64
	grow   *gween.Tween
}

// Ripple emits rings that expand to Radius and fade out.
type Ripple struct {
	enabled  bool
	radius   float64
	duration float64
	rings    []*Ring
}

func NewRipple(enabled bool, radius float64, duration time.Duration) *Ripple {
	return &Ripple{enabled: enabled, radius: radius, duration: duration.Seconds()}
}

// Emit starts a ring at the given world position.
func (r *Ripple) Emit(at motion.Vec) {
	if !r.enabled || r.duration <= 0 {
		return
	}
	r.rings = append(r.rings, &Ring{
		Center: at,
		Alpha:  1,
		grow:   gween.New(0, 1, float32(r.duration), ease.OutQuad),
	})
}

func (r *Ripple) Update(dt time.Duration) {
	live := r.rings[:0]
	for _, ring := range r.rings {
		p, done := ring.grow.Update(float32(dt.Seconds()))
		if done {
			continue
		}
		ring.Radius = float64(p) * r.radius
		ring.Alpha = 1 - float64(p)
		live = append(live, ring)
	}
	r.rings = live
}

// Rings returns a copy of the live rings.
func (r *Ripple) Rings() []Ring {
	out := make([]Ring, len(r.rings))
	for i, ring := range r.rings {
		out[i] = *ring
	}
	return out
}
