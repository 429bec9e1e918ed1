// Package probe answers "grounded / on which wall" for the player box using
// a resolv broadphase over the stage's solid tiles.
package probe

import (
	"github.com/solarlune/resolv"

	"github.com/younwookim/wallclimb/internal/domain/entity"
	"github.com/younwookim/wallclimb/internal/domain/motion"
)

const (
	tagSolid  = "solid"
	tagPlayer = "player"

	// skin is how far (px) the box is nudged when looking for contact.
	skin = 1.0
	// inset (px) keeps the floor from reading as a wall and vice versa.
	inset = 2.0
)

// Target is the box being probed, in world units.
type Target interface {
	Rect() entity.Rect
}

// Probe senses the environment around a Target. resolv works y-down in
// pixels, so world rects are flipped against the stage height.
type Probe struct {
	space  *resolv.Space
	player *resolv.Object
	target Target
	scale  float64
	height float64
}

// New builds the collision space from the stage and starts tracking target.
func New(stage *entity.Stage, target Target) *Probe {
	scale := float64(stage.TileSize)
	if scale <= 0 {
		scale = 1
	}
	cell := int(scale)
	p := &Probe{
		space:  resolv.NewSpace(stage.Width*cell, stage.Height*cell, cell, cell),
		target: target,
		scale:  scale,
		height: float64(stage.Height) * scale,
	}

	for _, r := range stage.WorldRects() {
		x, y, w, h := p.toPixels(r)
		p.space.Add(resolv.NewObject(x, y, w, h, tagSolid))
	}

	x, y, w, h := p.toPixels(target.Rect())
	p.player = resolv.NewObject(x, y, w, h, tagPlayer)
	p.space.Add(p.player)
	return p
}

func (p *Probe) toPixels(r entity.Rect) (x, y, w, h float64) {
	return r.X * p.scale, p.height - r.Top()*p.scale, r.W * p.scale, r.H * p.scale
}

// Sense syncs the player box and reports contacts.
func (p *Probe) Sense() motion.Environment {
	p.sync()

	env := motion.Environment{
		Grounded:    p.touching(0, skin, inset, 0),
		OnLeftWall:  p.touching(-skin, 0, 0, inset),
		OnRightWall: p.touching(skin, 0, 0, inset),
	}
	env.OnWall = env.OnLeftWall || env.OnRightWall
	return env
}

func (p *Probe) sync() {
	x, y, w, h := p.toPixels(p.target.Rect())
	p.player.X, p.player.Y, p.player.W, p.player.H = x, y, w, h
	p.player.Update()
}

// touching checks the box moved by (dx, dy) and shrunk by (ix, iy) on each
// side against nearby solids. resolv's Check only finds shared cells, so the
// overlap itself is tested here.
func (p *Probe) touching(dx, dy, ix, iy float64) bool {
	c := p.player.Check(dx, dy, tagSolid)
	if c == nil {
		return false
	}
	box := entity.Rect{
		X: p.player.X + dx + ix,
		Y: p.player.Y + dy + iy,
		W: p.player.W - 2*ix,
		H: p.player.H - 2*iy,
	}
	for _, o := range c.ObjectsByTags(tagSolid) {
		if box.Overlaps(entity.Rect{X: o.X, Y: o.Y, W: o.W, H: o.H}) {
			return true
		}
	}
	return false
}
