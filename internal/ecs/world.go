// Package ecs assembles a playable session: a donburi world holding the
// stage's physics space and one player entity, and the systems that step
// them in a fixed order.
package ecs

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/younwookim/wallclimb/internal/application/animation"
	"github.com/younwookim/wallclimb/internal/application/assist"
	"github.com/younwookim/wallclimb/internal/application/feedback"
	"github.com/younwookim/wallclimb/internal/application/movement"
	"github.com/younwookim/wallclimb/internal/domain/entity"
	"github.com/younwookim/wallclimb/internal/domain/motion"
	"github.com/younwookim/wallclimb/internal/infrastructure/config"
	"github.com/younwookim/wallclimb/internal/infrastructure/physics"
	"github.com/younwookim/wallclimb/internal/infrastructure/probe"
)

// LayerDefault is the only render layer.
const LayerDefault ecs.LayerID = 0

// ErrInvalidSession is returned by NewSession for incomplete settings.
var ErrInvalidSession = errors.New("invalid session")

// SessionConfig is everything needed to start a session.
type SessionConfig struct {
	Game   *config.GameSettings
	Player *config.PlayerConfig
	Stage  *entity.Stage
	Input  movement.InputSource
	DT     time.Duration
	Seed   uint64

	// Tracer, when set, receives every controller report.
	Tracer func(movement.Report)
}

// Session is one run of the player on a stage.
type Session struct {
	ecs    *ecs.ECS
	player *donburi.Entry
	space  *donburi.Entry
	dt     time.Duration
}

// NewSession builds the world, spawns the player at the stage spawn point
// and registers the update systems.
func NewSession(cfg SessionConfig) (*Session, error) {
	switch {
	case cfg.Game == nil || cfg.Player == nil:
		return nil, fmt.Errorf("%w: missing config", ErrInvalidSession)
	case cfg.Stage == nil:
		return nil, fmt.Errorf("%w: missing stage", ErrInvalidSession)
	case cfg.Input == nil:
		return nil, fmt.Errorf("%w: missing input", ErrInvalidSession)
	case cfg.DT <= 0:
		return nil, fmt.Errorf("%w: tick length %v", ErrInvalidSession, cfg.DT)
	}

	params, err := cfg.Player.ToParams()
	if err != nil {
		return nil, err
	}
	timing, err := cfg.Player.ToTiming()
	if err != nil {
		return nil, err
	}

	world := physics.NewWorld(physics.Settings{
		Gravity:    cfg.Game.World.Gravity,
		Scale:      float64(cfg.Stage.TileSize),
		Iterations: cfg.Game.World.Iterations,
	})
	world.AddStage(cfg.Stage)

	e := ecs.NewECS(donburi.NewWorld())
	s := &Session{ecs: e, dt: cfg.DT}

	s.space = e.World.Entry(e.World.Create(Space))
	Space.SetValue(s.space, SpaceData{World: world, Stage: cfg.Stage})

	s.player, err = spawnPlayer(e.World, world, params, timing, cfg)
	if err != nil {
		return nil, err
	}

	e.AddSystem(NewUpdatePhysics(cfg.DT))
	e.AddSystem(NewUpdateMotion(cfg.DT))
	e.AddSystem(UpdateAssist)
	e.AddSystem(NewUpdateFeedback(cfg.DT))
	e.AddSystem(UpdateAnimation)
	return s, nil
}

func spawnPlayer(w donburi.World, world *physics.World, params motion.Params, timing motion.Timing, cfg SessionConfig) (*donburi.Entry, error) {
	size := motion.Vec{X: cfg.Game.Player.Width, Y: cfg.Game.Player.Height}
	body := world.AddBody(cfg.Stage.Spawn.Add(motion.Vec{Y: size.Y / 2}), size)

	fx := feedback.NewSet(cfg.Game.Feedback, body, cfg.Seed)
	jump := assist.NewBetterJump(body, world.Gravity(), cfg.Player.Assist)
	driver := animation.NewDriver()

	entry := w.Entry(w.Create(Player, Motion, Body, Feedback, Assist, Animation, Stats))

	controller, err := movement.New(params, timing, movement.Deps{
		Body:     body,
		Probe:    probe.New(cfg.Stage, body),
		Animator: driver,
		Input:    cfg.Input,
		Effects:  fx,
		Assist:   jump,
		Tracer: func(r movement.Report) {
			Stats.Get(entry).Record(r)
			if cfg.Tracer != nil {
				cfg.Tracer(r)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to spawn player: %w", err)
	}

	Motion.SetValue(entry, MotionData{Controller: controller})
	Body.SetValue(entry, BodyData{Body: body})
	Feedback.SetValue(entry, FeedbackData{Set: fx})
	Assist.SetValue(entry, AssistData{BetterJump: jump})
	Animation.SetValue(entry, AnimationData{Driver: driver})
	return entry, nil
}

// Update runs every system once.
func (s *Session) Update() { s.ecs.Update() }

// Draw runs the registered renderers.
func (s *Session) Draw(screen *ebiten.Image) { s.ecs.Draw(screen) }

// AddRenderer registers a renderer on the default layer.
func (s *Session) AddRenderer(r ecs.RendererWithArg[ebiten.Image]) { s.ecs.AddRenderer(LayerDefault, r) }

// ECS exposes the underlying donburi ECS.
func (s *Session) ECS() *ecs.ECS { return s.ecs }

// DT is the fixed tick length.
func (s *Session) DT() time.Duration { return s.dt }

func (s *Session) PlayerEntry() *donburi.Entry { return s.player }

func (s *Session) Controller() *movement.Controller { return Motion.Get(s.player).Controller }

func (s *Session) Body() *physics.Body { return Body.Get(s.player).Body }

func (s *Session) Feedback() *feedback.Set { return Feedback.Get(s.player).Set }

func (s *Session) Animation() *animation.Driver { return Animation.Get(s.player).Driver }

func (s *Session) Stats() *StatsData { return Stats.Get(s.player) }

func (s *Session) Stage() *entity.Stage { return Space.Get(s.space).Stage }
