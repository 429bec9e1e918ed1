package system

import (
	"github.com/younwookim/wallclimb/internal/domain/entity"
	"github.com/younwookim/wallclimb/internal/domain/motion"
	"github.com/younwookim/wallclimb/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity. The spawn point is
// converted from top-down pixels to y-up world units.
func LoadStage(cfg *config.StageConfig) *entity.Stage {
	tileWidth := cfg.Size.Width / cfg.Size.TileSize
	tileHeight := len(cfg.Layers.Collision)

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, tileWidth)
		for x, char := range []rune(row) {
			if x >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}

			tileType := entity.TileEmpty
			if mapping.Type == "wall" {
				tileType = entity.TileWall
			}
			tiles[y][x] = entity.Tile{Type: tileType, Solid: mapping.Solid}
		}
	}

	ts := float64(cfg.Size.TileSize)
	return &entity.Stage{
		Name:     cfg.ID,
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: cfg.Size.TileSize,
		Tiles:    tiles,
		Spawn: motion.Vec{
			X: float64(cfg.PlayerSpawn.X) / ts,
			Y: float64(tileHeight) - float64(cfg.PlayerSpawn.Y)/ts,
		},
	}
}
