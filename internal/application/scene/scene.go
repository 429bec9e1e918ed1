// Package scene defines the Scene interface the game loop drives.
//
// The playing scene is the only screen today; live play, replays and
// recordings all run through it.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game.
//
// The game loop calls Update once per tick and Draw once per frame.
// Returning a non-nil Scene from Update switches to it.
type Scene interface {
	// Update advances the scene by dt seconds (1/TPS).
	// Returns the next scene to switch to, or nil to stay.
	// A non-nil error terminates the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called each time the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is left or the game closes.
	// Pending recordings are written here.
	OnExit()
}
