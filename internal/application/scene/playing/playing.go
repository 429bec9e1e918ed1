// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	donburiecs "github.com/yohamta/donburi/ecs"
	"golang.org/x/image/colornames"

	"github.com/younwookim/wallclimb/internal/application/movement"
	"github.com/younwookim/wallclimb/internal/application/replay"
	"github.com/younwookim/wallclimb/internal/application/scene"
	"github.com/younwookim/wallclimb/internal/application/schedule"
	"github.com/younwookim/wallclimb/internal/application/state"
	"github.com/younwookim/wallclimb/internal/application/system"
	"github.com/younwookim/wallclimb/internal/domain/entity"
	"github.com/younwookim/wallclimb/internal/domain/motion"
	"github.com/younwookim/wallclimb/internal/ecs"
	"github.com/younwookim/wallclimb/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG      = color.RGBA{26, 26, 46, 255}
	colorWall    = color.RGBA{80, 80, 100, 255}
	colorOverlay = color.RGBA{0, 0, 0, 128}
	colorRipple  = colornames.Lightskyblue

	stateColors = map[motion.State]color.RGBA{
		motion.StateIdle:        colornames.Mediumseagreen,
		motion.StateRunning:     colornames.Limegreen,
		motion.StateClimbing:    colornames.Orange,
		motion.StateSliding:     colornames.Goldenrod,
		motion.StateFalling:     colornames.Skyblue,
		motion.StateJumping:     colornames.White,
		motion.StateWallJumping: colornames.Violet,
		motion.StateDashing:     colornames.Crimson,
		motion.StateNonMoveable: colornames.Gray,
	}
)

// Options tune how a Playing scene is driven.
type Options struct {
	// Input replaces the keyboard and gamepad. Replays plug in here.
	Input movement.InputSource
	// RecordPath enables recording. The file is written on exit, on F5 and
	// before a restart.
	RecordPath string
	// Seed feeds the camera shake. Zero picks one from the clock.
	Seed int64
	// Tracer receives every controller report.
	Tracer func(movement.Report)
}

type finisher interface {
	Done() bool
}

type resetter interface {
	Reset()
}

// Playing is the main gameplay scene
type Playing struct {
	config *config.GameConfig
	stage  *entity.Stage
	opts   Options
	state  state.GameState

	session  *ecs.Session
	devices  *system.InputSystem
	recorder *replay.Recorder

	screenW int
	screenH int
	tps     int
	dt      time.Duration
	seed    int64
}

// New creates a new Playing scene and starts the first session.
func New(cfg *config.GameConfig, stage *entity.Stage, opts Options) (*Playing, error) {
	if cfg == nil || cfg.Game == nil || cfg.Player == nil {
		return nil, fmt.Errorf("failed to create playing scene: %w", ecs.ErrInvalidSession)
	}

	tps := cfg.Game.Display.Framerate
	if tps <= 0 {
		tps = 60
	}

	p := &Playing{
		config:  cfg,
		stage:   stage,
		opts:    opts,
		state:   state.StatePlaying,
		screenW: cfg.Game.Display.ScreenWidth,
		screenH: cfg.Game.Display.ScreenHeight,
		tps:     tps,
		dt:      time.Second / time.Duration(tps),
		seed:    opts.Seed,
	}
	if p.seed == 0 {
		p.seed = time.Now().UnixNano()
	}
	if opts.Input == nil {
		p.devices = system.NewInputSystem(cfg.Player.Input, p.dt)
	}

	if err := p.start(); err != nil {
		return nil, err
	}
	return p, nil
}

// start builds a fresh session from the current config.
func (p *Playing) start() error {
	var input movement.InputSource = p.devices
	if p.opts.Input != nil {
		input = p.opts.Input
	}

	var recorder *replay.Recorder
	if p.opts.RecordPath != "" {
		recorder = replay.NewRecorder(p.seed, p.stage.Name, p.tps)
		input = recorder.Wrap(input)
	}

	session, err := ecs.NewSession(ecs.SessionConfig{
		Game:   p.config.Game,
		Player: p.config.Player,
		Stage:  p.stage,
		Input:  input,
		DT:     p.dt,
		Seed:   uint64(p.seed),
		Tracer: p.opts.Tracer,
	})
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	session.AddRenderer(p.drawStage)
	session.AddRenderer(p.drawEffects)
	session.AddRenderer(p.drawPlayer)
	session.AddRenderer(p.drawHUD)

	p.session = session
	p.recorder = recorder
	if recorder != nil {
		log.Printf("Recording enabled: %s (seed: %d)", p.opts.RecordPath, p.seed)
	}
	return nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		p.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		p.saveRecording()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := p.Restart(); err != nil {
			return nil, err
		}
	}

	p.Step()
	return nil, nil // nil = stay on this scene
}

// Step advances the session by one tick unless paused or finished.
func (p *Playing) Step() {
	if !p.state.Simulates() {
		return
	}

	if f, ok := p.opts.Input.(finisher); ok && f.Done() {
		p.state = state.StateFinished
		log.Printf("Input finished after %d ticks, final state %s",
			p.session.Stats().Ticks, p.session.Controller().State())
		return
	}

	p.session.Update()
}

// TogglePause pauses or resumes the simulation.
func (p *Playing) TogglePause() {
	p.state = p.state.TogglePause()
}

// Restart saves any recording and starts over from the spawn point.
func (p *Playing) Restart() error {
	p.saveRecording()
	if r, ok := p.opts.Input.(resetter); ok {
		r.Reset()
	}
	if p.devices != nil {
		p.devices.Reset()
	}
	if err := p.start(); err != nil {
		return err
	}
	p.state = state.StatePlaying
	return nil
}

// Reload swaps in new motion parameters and restarts. Invalid parameters are
// rejected and the running session is kept.
func (p *Playing) Reload(player *config.PlayerConfig) error {
	if _, err := player.ToParams(); err != nil {
		return fmt.Errorf("failed to reload player config: %w", err)
	}
	if _, err := player.ToTiming(); err != nil {
		return fmt.Errorf("failed to reload player config: %w", err)
	}

	p.config = &config.GameConfig{Game: p.config.Game, Player: player}
	if p.devices != nil {
		p.devices = system.NewInputSystem(player.Input, p.dt)
	}
	return p.Restart()
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	if err := p.recorder.Save(p.opts.RecordPath); err != nil {
		log.Printf("Failed to save recording: %v", err)
		return
	}
	log.Printf("Recording saved: %s (%d frames)", p.opts.RecordPath, p.recorder.FrameCount())
}

// Session returns the running session.
func (p *Playing) Session() *ecs.Session { return p.session }

// State returns the scene state.
func (p *Playing) State() state.GameState { return p.state }

// Recorder returns the active recorder, nil when not recording.
func (p *Playing) Recorder() *replay.Recorder { return p.recorder }

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	p.session.Draw(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED\n\nPress ESC to resume")
	case state.StateFinished:
		p.drawOverlay(screen, "INPUT FINISHED\n\nPress R to restart")
	}
}

// camera returns the top-left of the view in stage pixels (y down),
// following the player and offset by the screen shake.
func (p *Playing) camera() (float64, float64) {
	ts := float64(p.stage.TileSize)
	stageW := float64(p.stage.Width) * ts
	stageH := float64(p.stage.Height) * ts

	pos := p.session.Body().Position()
	camX := clamp(pos.X*ts-float64(p.screenW)/2, 0, math.Max(0, stageW-float64(p.screenW)))
	camY := clamp(stageH-pos.Y*ts-float64(p.screenH)/2, 0, math.Max(0, stageH-float64(p.screenH)))

	shake := p.session.Feedback().Camera.Offset()
	return camX + shake.X, camY - shake.Y
}

// toScreen converts a world point (y up, tiles) to screen pixels.
func (p *Playing) toScreen(v motion.Vec) (float64, float64) {
	camX, camY := p.camera()
	ts := float64(p.stage.TileSize)
	return v.X*ts - camX, (float64(p.stage.Height)-v.Y)*ts - camY
}

// rectOnScreen returns the top-left corner and size of a world rect.
func (p *Playing) rectOnScreen(r entity.Rect) (x, y, w, h float64) {
	ts := float64(p.stage.TileSize)
	x, y = p.toScreen(motion.Vec{X: r.X, Y: r.Top()})
	return x, y, r.W * ts, r.H * ts
}

func (p *Playing) drawStage(_ *donburiecs.ECS, screen *ebiten.Image) {
	for _, r := range p.stage.WorldRects() {
		x, y, w, h := p.rectOnScreen(r)
		ebitenutil.DrawRect(screen, x, y, w, h, colorWall)
	}
}

func (p *Playing) drawEffects(_ *donburiecs.ECS, screen *ebiten.Image) {
	fx := p.session.Feedback()
	ts := float64(p.stage.TileSize)
	size := p.session.Body().Size()
	base := stateColors[motion.StateDashing]

	for _, g := range fx.Trail.Ghosts() {
		r := entity.RectAround(g.Pos, size)
		x, y, w, h := p.rectOnScreen(r)
		c := color.NRGBA{base.R, base.G, base.B, uint8(128 * g.Alpha)}
		ebitenutil.DrawRect(screen, x, y, w, h, c)
	}

	for _, ring := range fx.Ripple.Rings() {
		x, y := p.toScreen(ring.Center)
		c := color.NRGBA{colorRipple.R, colorRipple.G, colorRipple.B, uint8(255 * ring.Alpha)}
		vector.StrokeCircle(screen, float32(x), float32(y), float32(ring.Radius*ts), 2, c, true)
	}
}

func (p *Playing) drawPlayer(_ *donburiecs.ECS, screen *ebiten.Image) {
	c := p.session.Controller()
	x, y, w, h := p.rectOnScreen(p.session.Body().Rect())
	ebitenutil.DrawRect(screen, x, y, w, h, stateColors[c.State()])

	// facing marker
	eye := x + w - 3
	if !p.session.Animation().FacingRight() {
		eye = x + 1
	}
	ebitenutil.DrawRect(screen, eye, y+3, 2, 2, colornames.Black)
}

func (p *Playing) drawHUD(_ *donburiecs.ECS, screen *ebiten.Image) {
	c := p.session.Controller()
	v := p.session.Body().Velocity()
	env := c.Environment()

	var timers []string
	for _, k := range []schedule.Kind{
		schedule.KindDashWindow, schedule.KindDashDrag,
		schedule.KindGroundDashRefresh, schedule.KindWallJumpLockout,
	} {
		if c.Pending(k) {
			timers = append(timers, k.String())
		}
	}

	lines := []string{
		fmt.Sprintf("State: %s  Pose: %s", c.State(), p.session.Animation().Pose()),
		fmt.Sprintf("Velocity: %6.2f %6.2f  Gravity: %.1f", v.X, v.Y, p.session.Body().GravityScale()),
		fmt.Sprintf("Grounded: %t  Wall: %d  Dash: %t", env.Grounded, env.WallSide(), c.DashAvailable()),
		fmt.Sprintf("Timers: %s", strings.Join(timers, " ")),
		fmt.Sprintf("Tick: %d  TPS: %0.1f", p.session.Stats().Ticks, ebiten.ActualTPS()),
	}
	if p.recorder != nil {
		lines = append(lines, fmt.Sprintf("REC %d frames (F5 to save)", p.recorder.FrameCount()))
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 4, 16)
	ebitenutil.DebugPrint(screen, "Arrows/WASD: Move | Space: Jump | Z: Climb | X: Dash | R: Restart | ESC: Pause")
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorOverlay)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.state = state.StatePlaying
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the screen dimensions
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
