// Package scenario drives the movement controller from a tengo script.
//
// The script is evaluated once per frame. Before each run it sees:
//
//	frame     frame number, starting at 0
//	state     controller state name of the previous tick ("" when unobserved)
//	grounded  previous tick's ground contact
//	on_wall   previous tick's wall contact
//	memory    a map that persists between frames
//
// and assigns any of the outputs (reset to zero every frame):
//
//	x, y      axis values in [-1, 1], used for both smoothed and raw axes
//	jump      jump button held
//	climb     climb button held
//	dash      dash button held
//	done      ends the scenario
//
// Button presses are the rising edges of the held values. Outputs must be
// assigned with "=", not declared with ":=".
package scenario

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/younwookim/wallclimb/internal/domain/motion"
)

// Observation is what the script may read about the controlled player.
type Observation struct {
	State motion.State
	Env   motion.Environment
}

type buttons struct {
	jump, climb, dash bool
}

// Scenario is a compiled input script. It implements movement.InputSource.
type Scenario struct {
	compiled *tengo.Compiled
	observe  func() Observation
	frame    int
	held     buttons
	done     bool
	err      error
}

// Modules are the tengo stdlib modules a scenario may import. Modules that
// reach the host (os, times) are left out.
var Modules = []string{"math", "text", "rand", "fmt", "json", "enum"}

// Compile compiles a scenario from source.
func Compile(src []byte) (*Scenario, error) {
	script := tengo.NewScript(src)
	vars := []struct {
		name  string
		value any
	}{
		{"frame", 0},
		{"state", ""},
		{"grounded", false},
		{"on_wall", false},
		{"memory", map[string]any{}},
		{"x", 0.0},
		{"y", 0.0},
		{"jump", false},
		{"climb", false},
		{"dash", false},
		{"done", false},
	}
	for _, v := range vars {
		if err := script.Add(v.name, v.value); err != nil {
			return nil, fmt.Errorf("failed to declare %s: %w", v.name, err)
		}
	}

	script.SetImports(stdlib.GetModuleMap(Modules...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile scenario: %w", err)
	}
	return &Scenario{compiled: compiled}, nil
}

// Load reads and compiles a scenario file.
func Load(path string) (*Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return Compile(src)
}

// Observe installs the callback that feeds state, grounded and on_wall.
func (s *Scenario) Observe(fn func() Observation) {
	s.observe = fn
}

// Next runs the script for the current frame. Once the script sets done or
// fails, Next keeps returning empty input.
func (s *Scenario) Next() (motion.Input, error) {
	if s.done {
		return motion.Input{}, s.err
	}

	if err := s.run(); err != nil {
		s.done = true
		s.err = fmt.Errorf("scenario frame %d: %w", s.frame, err)
		return motion.Input{}, s.err
	}
	s.frame++

	if s.compiled.Get("done").Bool() {
		s.done = true
		return motion.Input{}, nil
	}

	x := s.compiled.Get("x").Float()
	y := s.compiled.Get("y").Float()
	held := buttons{
		jump:  s.compiled.Get("jump").Bool(),
		climb: s.compiled.Get("climb").Bool(),
		dash:  s.compiled.Get("dash").Bool(),
	}
	in := motion.Input{
		X: x, Y: y, RawX: x, RawY: y,
		JumpHeld:     held.jump,
		JumpPressed:  held.jump && !s.held.jump,
		ClimbHeld:    held.climb,
		ClimbPressed: held.climb && !s.held.climb,
		DashPressed:  held.dash && !s.held.dash,
	}
	s.held = held
	return in.Clamped(), nil
}

func (s *Scenario) run() error {
	obs, state := Observation{}, ""
	if s.observe != nil {
		obs = s.observe()
		state = obs.State.String()
	}

	inputs := map[string]any{
		"frame":    s.frame,
		"state":    state,
		"grounded": obs.Env.Grounded,
		"on_wall":  obs.Env.OnWall,
		"x":        0.0,
		"y":        0.0,
		"jump":     false,
		"climb":    false,
		"dash":     false,
		"done":     false,
	}
	for name, v := range inputs {
		if err := s.compiled.Set(name, v); err != nil {
			return err
		}
	}
	return s.compiled.Run()
}

// Poll implements movement.InputSource. Script errors end the scenario and
// are reported by Err.
func (s *Scenario) Poll() motion.Input {
	in, _ := s.Next()
	return in
}

// Done reports whether the script has finished or failed.
func (s *Scenario) Done() bool { return s.done }

// Frame is the number of frames the script has produced.
func (s *Scenario) Frame() int { return s.frame }

// Err returns the error that stopped the script, if any.
func (s *Scenario) Err() error { return s.err }
