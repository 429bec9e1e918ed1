package feedback

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/wallclimb/internal/domain/motion"
)

// Positioner is anything with a world position.
type Positioner interface {
	Position() motion.Vec
}

// Ghost is one afterimage.
type Ghost struct {
	Pos   motion.Vec
	Alpha float64
	fade  *gween.Tween
}

// GhostTrail drops a burst of fading afterimages behind the source.
type GhostTrail struct {
	enabled  bool
	source   Positioner
	count    int
	interval float64
	fade     float64

	remaining int
	timer     float64
	ghosts    []*Ghost
}

func NewGhostTrail(enabled bool, source Positioner, count int, interval, fade time.Duration) *GhostTrail {
	return &GhostTrail{
		enabled:  enabled,
		source:   source,
		count:    count,
		interval: interval.Seconds(),
		fade:     fade.Seconds(),
	}
}

// Show starts a new burst; the first ghost appears immediately.
func (g *GhostTrail) Show() {
	if !g.enabled || g.count <= 0 {
		return
	}
	g.remaining = g.count
	g.timer = 0
	g.spawn()
}

func (g *GhostTrail) spawn() {
	g.ghosts = append(g.ghosts, &Ghost{
		Pos:   g.source.Position(),
		Alpha: 1,
		fade:  gween.New(1, 0, float32(g.fade), ease.Linear),
	})
	g.remaining--
}

// Update fades existing ghosts and spawns due ones.
func (g *GhostTrail) Update(dt time.Duration) {
	sec := dt.Seconds()
	live := g.ghosts[:0]
	for _, gh := range g.ghosts {
		a, done := gh.fade.Update(float32(sec))
		if done {
			continue
		}
		gh.Alpha = float64(a)
		live = append(live, gh)
	}
	g.ghosts = live

	if g.remaining <= 0 {
		return
	}
	g.timer += sec
	for g.remaining > 0 && g.timer >= g.interval {
		g.timer -= g.interval
		g.spawn()
	}
}

// Ghosts returns a copy of the visible afterimages, oldest first.
func (g *GhostTrail) Ghosts() []Ghost {
	out := make([]Ghost, len(g.ghosts))
	for i, gh := range g.ghosts {
		out[i] = *gh
	}
	return out
}
