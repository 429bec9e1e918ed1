package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/wallclimb/internal/domain/entity"
	"github.com/younwookim/wallclimb/internal/domain/motion"
	"github.com/younwookim/wallclimb/internal/infrastructure/config"
)

func TestLoadStage(t *testing.T) {
	t.Run("loads basic stage", func(t *testing.T) {
		cfg := &config.StageConfig{
			ID: "box",
			Size: config.StageSizeConfig{
				Width:    48,
				Height:   48,
				TileSize: 16,
			},
			PlayerSpawn: config.PositionConfig{
				X: 24,
				Y: 24,
			},
			Layers: config.LayersConfig{
				Collision: []string{
					"###",
					"#.#",
					"###",
				},
			},
			TileMapping: map[string]config.TileMappingConfig{
				"#": {Type: "wall", Solid: true},
				".": {Type: "empty", Solid: false},
			},
		}

		stage := LoadStage(cfg)

		require.NotNil(t, stage)
		assert.Equal(t, "box", stage.Name)
		assert.Equal(t, 3, stage.Width)
		assert.Equal(t, 3, stage.Height)
		assert.Equal(t, 16, stage.TileSize)
		assert.Equal(t, motion.Vec{X: 1.5, Y: 1.5}, stage.Spawn, "middle of the centre tile")
		assert.False(t, stage.IsSolid(1, 1))
	})

	t.Run("spawn flips to y-up", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size:        config.StageSizeConfig{Width: 32, TileSize: 16},
			PlayerSpawn: config.PositionConfig{X: 16, Y: 8},
			Layers:      config.LayersConfig{Collision: []string{"..", "..", ".."}},
		}

		stage := LoadStage(cfg)
		assert.Equal(t, motion.Vec{X: 1, Y: 2.5}, stage.Spawn)
	})

	t.Run("maps wall tiles correctly", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size: config.StageSizeConfig{
				Width:    32,
				Height:   32,
				TileSize: 16,
			},
			Layers: config.LayersConfig{
				Collision: []string{
					"##",
					"##",
				},
			},
			TileMapping: map[string]config.TileMappingConfig{
				"#": {Type: "wall", Solid: true},
			},
		}

		stage := LoadStage(cfg)

		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				tile := stage.GetTile(x, y)
				assert.Equal(t, entity.TileWall, tile.Type)
				assert.True(t, tile.Solid)
			}
		}
		assert.Equal(t, []entity.Rect{{X: 0, Y: 1, W: 2, H: 1}, {X: 0, Y: 0, W: 2, H: 1}}, stage.WorldRects())
	})

	t.Run("handles unknown tile mapping", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size: config.StageSizeConfig{
				Width:    16,
				Height:   16,
				TileSize: 16,
			},
			Layers: config.LayersConfig{
				Collision: []string{
					"?",
				},
			},
			TileMapping: map[string]config.TileMappingConfig{},
		}

		stage := LoadStage(cfg)

		tile := stage.GetTile(0, 0)
		assert.Equal(t, entity.TileEmpty, tile.Type)
		assert.False(t, tile.Solid)
	})

	t.Run("handles unknown tile type", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size: config.StageSizeConfig{
				Width:    16,
				Height:   16,
				TileSize: 16,
			},
			Layers: config.LayersConfig{
				Collision: []string{
					"X",
				},
			},
			TileMapping: map[string]config.TileMappingConfig{
				"X": {Type: "unknown_type", Solid: true},
			},
		}

		stage := LoadStage(cfg)

		tile := stage.GetTile(0, 0)
		assert.Equal(t, entity.TileEmpty, tile.Type)
		assert.True(t, tile.Solid, "solidity comes from the mapping")
	})

	t.Run("handles row longer than width", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size: config.StageSizeConfig{
				Width:    32, // 2 tiles
				Height:   16,
				TileSize: 16,
			},
			Layers: config.LayersConfig{
				Collision: []string{
					"####", // 4 characters, but only 2 tiles should be used
				},
			},
			TileMapping: map[string]config.TileMappingConfig{
				"#": {Type: "wall", Solid: true},
			},
		}

		stage := LoadStage(cfg)

		assert.Equal(t, 2, stage.Width)
		assert.Equal(t, 1, stage.Height)
	})

	t.Run("demo stage", func(t *testing.T) {
		cfg, err := config.NewLoader("../../../cmd/game/configs").LoadStage("demo")
		require.NoError(t, err)

		stage := LoadStage(cfg)

		assert.Equal(t, 40, stage.Width)
		assert.Equal(t, 22, stage.Height)
		assert.Equal(t, motion.Vec{X: 3, Y: 3}, stage.Spawn)
		assert.NotEmpty(t, stage.WorldRects())
	})
}
