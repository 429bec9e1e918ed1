package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/younwookim/wallclimb/internal/application/movement"
	"github.com/younwookim/wallclimb/internal/application/replay"
	"github.com/younwookim/wallclimb/internal/application/system"
	"github.com/younwookim/wallclimb/internal/domain/motion"
	"github.com/younwookim/wallclimb/internal/ecs"
	"github.com/younwookim/wallclimb/internal/infrastructure/config"
	"github.com/younwookim/wallclimb/internal/infrastructure/scenario"
)

var errNoInput = errors.New("need -replay or -scenario")

type options struct {
	loader       *config.Loader
	stage        string
	replayPath   string
	scenarioPath string
	maxTicks     int
	seed         int64
	tracer       func(movement.Report)
}

// result is what one headless run produced.
type result struct {
	Stage    string
	Ticks    int
	Stats    ecs.StatsData
	State    motion.State
	Position motion.Vec
	Velocity motion.Vec
	Grounded bool
	Elapsed  time.Duration
}

type finisher interface {
	Done() bool
}

// run plays a replay or scenario against a fresh session until the input
// runs out or maxTicks is reached.
func run(opts options) (*result, error) {
	cfg, err := opts.loader.LoadAll()
	if err != nil {
		return nil, err
	}

	stageName := cfg.Game.Stage
	if opts.stage != "" {
		stageName = opts.stage
	}
	tps := cfg.Game.Display.Framerate
	seed := opts.seed

	var (
		input   movement.InputSource
		script  *scenario.Scenario
		session *ecs.Session
	)
	switch {
	case opts.replayPath != "":
		data, err := replay.LoadReplay(opts.replayPath)
		if err != nil {
			return nil, err
		}
		if opts.stage == "" {
			stageName = data.Stage
		}
		tps = data.TPS
		seed = data.Seed
		input = replay.NewReplayer(*data)
	case opts.scenarioPath != "":
		script, err = scenario.Load(opts.scenarioPath)
		if err != nil {
			return nil, err
		}
		script.Observe(func() scenario.Observation {
			c := session.Controller()
			return scenario.Observation{State: c.State(), Env: c.Environment()}
		})
		input = script
	default:
		return nil, errNoInput
	}
	if tps <= 0 {
		return nil, fmt.Errorf("invalid tick rate %d", tps)
	}

	stageCfg, err := opts.loader.LoadStage(stageName)
	if err != nil {
		return nil, err
	}

	session, err = ecs.NewSession(ecs.SessionConfig{
		Game:   cfg.Game,
		Player: cfg.Player,
		Stage:  system.LoadStage(stageCfg),
		Input:  input,
		DT:     time.Second / time.Duration(tps),
		Seed:   uint64(seed),
		Tracer: opts.tracer,
	})
	if err != nil {
		return nil, err
	}

	f, _ := input.(finisher)
	for opts.maxTicks <= 0 || session.Stats().Ticks < opts.maxTicks {
		if f != nil && f.Done() {
			break
		}
		session.Update()
		if script != nil && script.Err() != nil {
			return nil, script.Err()
		}
	}

	c := session.Controller()
	body := session.Body()
	return &result{
		Stage:    stageName,
		Ticks:    session.Stats().Ticks,
		Stats:    *session.Stats(),
		State:    c.State(),
		Position: body.Position(),
		Velocity: body.Velocity(),
		Grounded: c.Grounded(),
		Elapsed:  c.Elapsed(),
	}, nil
}

// print writes a plain-text summary of the run.
func (r *result) print(w io.Writer) {
	fmt.Fprintf(w, "stage %s: %d ticks (%v)\n", r.Stage, r.Ticks, r.Elapsed)
	fmt.Fprintf(w, "final state %s grounded=%t\n", r.State, r.Grounded)
	fmt.Fprintf(w, "position (%.3f, %.3f) velocity (%.3f, %.3f)\n",
		r.Position.X, r.Position.Y, r.Velocity.X, r.Velocity.Y)
	fmt.Fprintf(w, "takeoffs %d landings %d state changes %d\n",
		r.Stats.Takeoffs, r.Stats.Landings, r.Stats.Changes)
	for _, s := range motion.States {
		n := r.Stats.States[s]
		if n == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-12s %6d  %5.1f%%\n", s, n, 100*float64(n)/float64(max(r.Ticks, 1)))
	}
}
