package feedback

import (
	"math"
	"time"

	"github.com/younwookim/wallclimb/internal/domain/motion"
	"github.com/younwookim/wallclimb/internal/infrastructure/config"
)

// Set bundles the effects the movement controller triggers.
type Set struct {
	Camera *Camera
	Trail  *GhostTrail
	Ripple *Ripple
}

// NewSet builds the effects from game.json settings. The trail follows source.
func NewSet(cfg config.FeedbackConfig, source Positioner, seed uint64) *Set {
	return &Set{
		Camera: NewCamera(cfg.ScreenShake.Enabled, cfg.ScreenShake.Scale, seed),
		Trail: NewGhostTrail(cfg.GhostTrail.Enabled, source, cfg.GhostTrail.Count,
			seconds(cfg.GhostTrail.Interval), seconds(cfg.GhostTrail.Fade)),
		Ripple: NewRipple(cfg.Ripple.Enabled, cfg.Ripple.Radius, seconds(cfg.Ripple.Duration)),
	}
}

func (s *Set) ShakeCamera(shake motion.Shake) { s.Camera.Shake(shake) }
func (s *Set) ShowGhostTrail()                { s.Trail.Show() }
func (s *Set) EmitRipple(at motion.Vec)       { s.Ripple.Emit(at) }

// Update steps every effect.
func (s *Set) Update(dt time.Duration) {
	s.Camera.Update(dt)
	s.Trail.Update(dt)
	s.Ripple.Update(dt)
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
