// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/wallclimb/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64

	changes <-chan string
	reload  func(path string) error
}

// New creates a new Game with the given initial scene ticking tps times a
// second. The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH, tps int) *Game {
	if tps <= 0 {
		tps = 60
	}
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(tps),
	}
	g.current.OnEnter()
	return g
}

// Watch makes Update hand every path received on changes to reload, on the
// game goroutine. Reload errors are logged and the game keeps running.
func (g *Game) Watch(changes <-chan string, reload func(path string) error) {
	g.changes = changes
	g.reload = reload
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	g.applyChanges()

	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

func (g *Game) applyChanges() {
	if g.changes == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.changes:
			if !ok {
				g.changes = nil
				return
			}
			if err := g.reload(path); err != nil {
				log.Printf("Failed to reload %s: %v", path, err)
			} else {
				log.Printf("Reloaded %s", path)
			}
		default:
			return
		}
	}
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Close exits the current scene. Call it once ebiten.RunGame returns.
func (g *Game) Close() {
	g.current.OnExit()
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}
