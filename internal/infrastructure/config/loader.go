package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	GameFile   = "game.json"
	PlayerFile = "player.yaml"
)

// ErrInvalidStage is returned for stage files that cannot form a grid.
var ErrInvalidStage = errors.New("invalid stage")

// GameConfig holds all loaded configurations
type GameConfig struct {
	Game   *GameSettings
	Player *PlayerConfig
}

// Loader loads game configuration from files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader was created for.
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadGame loads game.json
func (l *Loader) LoadGame() (*GameSettings, error) {
	data, err := fs.ReadFile(l.fsys, GameFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", GameFile, err)
	}

	var cfg GameSettings
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", GameFile, err)
	}

	return &cfg, nil
}

// LoadPlayer loads player.yaml on top of DefaultPlayerConfig
func (l *Loader) LoadPlayer() (*PlayerConfig, error) {
	data, err := fs.ReadFile(l.fsys, PlayerFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", PlayerFile, err)
	}

	cfg := DefaultPlayerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", PlayerFile, err)
	}

	return &cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	if cfg.Size.TileSize <= 0 {
		return nil, fmt.Errorf("stage %s: %w: tile size %d", name, ErrInvalidStage, cfg.Size.TileSize)
	}
	if len(cfg.Layers.Collision) == 0 {
		return nil, fmt.Errorf("stage %s: %w: empty collision layer", name, ErrInvalidStage)
	}

	return &cfg, nil
}

// LoadAll loads all base configurations (game, player)
func (l *Loader) LoadAll() (*GameConfig, error) {
	game, err := l.LoadGame()
	if err != nil {
		return nil, err
	}

	player, err := l.LoadPlayer()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Game:   game,
		Player: player,
	}, nil
}
