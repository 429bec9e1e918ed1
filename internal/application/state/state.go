// Package state holds the session-level state of the playing scene.
package state

// GameState represents the current state of the session
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	// StateFinished is reached when a replay or scenario runs out of input.
	StateFinished
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Simulates reports whether the world advances in this state.
func (s GameState) Simulates() bool {
	return s == StatePlaying
}

// TogglePause flips between playing and paused. Other states are kept.
func (s GameState) TogglePause() GameState {
	switch s {
	case StatePlaying:
		return StatePaused
	case StatePaused:
		return StatePlaying
	default:
		return s
	}
}
