package entity

import "github.com/younwookim/wallclimb/internal/domain/motion"

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
)

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Solid bool
}

// Stage is the collision grid. Rows are stored top-down as authored, while
// world coordinates are y-up in tile units with the origin at the bottom-left.
type Stage struct {
	Name     string
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile
	Spawn    motion.Vec // player feet (bottom centre), world units
}

// GetTile returns the tile at the given tile coordinates (row-major, top-down).
// Everything outside the grid is solid wall.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileWall, Solid: true}
	}
	return s.Tiles[ty][tx]
}

// IsSolid checks if the tile at tile coordinates is solid
func (s *Stage) IsSolid(tx, ty int) bool {
	return s.GetTile(tx, ty).Solid
}

// TileRect returns the world rectangle covered by a tile.
func (s *Stage) TileRect(tx, ty int) Rect {
	return Rect{X: float64(tx), Y: float64(s.Height - 1 - ty), W: 1, H: 1}
}

// Bounds returns the stage extent in world units.
func (s *Stage) Bounds() Rect {
	return Rect{W: float64(s.Width), H: float64(s.Height)}
}

// WorldRects returns the solid tiles as world rectangles, merging horizontal
// runs within a row so long floors become a single box.
func (s *Stage) WorldRects() []Rect {
	var rects []Rect
	for ty := 0; ty < s.Height; ty++ {
		start := -1
		for tx := 0; tx <= s.Width; tx++ {
			solid := tx < s.Width && s.Tiles[ty][tx].Solid
			switch {
			case solid && start < 0:
				start = tx
			case !solid && start >= 0:
				r := s.TileRect(start, ty)
				r.W = float64(tx - start)
				rects = append(rects, r)
				start = -1
			}
		}
	}
	return rects
}

// Rect is an axis-aligned box in world units; X/Y is the bottom-left corner.
type Rect struct {
	X, Y, W, H float64
}

// RectAround returns the rect of the given size centred on c.
func RectAround(c, size motion.Vec) Rect {
	return Rect{X: c.X - size.X/2, Y: c.Y - size.Y/2, W: size.X, H: size.Y}
}

func (r Rect) Right() float64 { return r.X + r.W }
func (r Rect) Top() float64   { return r.Y + r.H }

func (r Rect) Center() motion.Vec {
	return motion.Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Overlaps reports whether the interiors of r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Top() && o.Y < r.Top()
}
