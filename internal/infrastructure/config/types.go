package config

// GameSettings is the root config for game.json
type GameSettings struct {
	Display  DisplayConfig    `json:"display"`
	World    WorldConfig      `json:"world"`
	Player   PlayerBodyConfig `json:"player"`
	Stage    string           `json:"stage"`
	Feedback FeedbackConfig   `json:"feedback"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

// WorldConfig configures the rigid body simulation
type WorldConfig struct {
	Gravity    float64 `json:"gravity"`    // world units/s²
	Iterations int     `json:"iterations"` // solver iterations per step
}

// PlayerBodyConfig is the player's collision box in world units (tiles)
type PlayerBodyConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type FeedbackConfig struct {
	ScreenShake ScreenShakeConfig `json:"screenShake"`
	GhostTrail  GhostTrailConfig  `json:"ghostTrail"`
	Ripple      RippleConfig      `json:"ripple"`
}

type ScreenShakeConfig struct {
	Enabled bool    `json:"enabled"`
	Scale   float64 `json:"scale"` // pixels per unit of shake strength
}

type GhostTrailConfig struct {
	Enabled  bool    `json:"enabled"`
	Count    int     `json:"count"`    // afterimages per dash
	Interval float64 `json:"interval"` // seconds between afterimages
	Fade     float64 `json:"fade"`     // seconds an afterimage lives
}

type RippleConfig struct {
	Enabled  bool    `json:"enabled"`
	Radius   float64 `json:"radius"`   // world units
	Duration float64 `json:"duration"` // seconds
}
