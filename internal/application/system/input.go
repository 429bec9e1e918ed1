package system

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/wallclimb/internal/domain/motion"
	"github.com/younwookim/wallclimb/internal/infrastructure/config"
)

// RawInput is the device state for one frame. Stick Y is positive upwards.
type RawInput struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	StickX float64
	StickY float64

	Jump         bool
	JumpPressed  bool
	Climb        bool
	ClimbPressed bool
	DashPressed  bool
}

// InputSystem turns keyboard and gamepad state into movement input
type InputSystem struct {
	config config.InputConfig
	dt     float64
	x      *motion.AxisSmoother
	y      *motion.AxisSmoother
	read   func() RawInput
}

// NewInputSystem creates a new input system ticking at a fixed dt
func NewInputSystem(cfg config.InputConfig, dt time.Duration) *InputSystem {
	return &InputSystem{
		config: cfg,
		dt:     dt.Seconds(),
		x:      motion.NewAxisSmoother(cfg.Sensitivity, cfg.Gravity, cfg.Snap),
		y:      motion.NewAxisSmoother(cfg.Sensitivity, cfg.Gravity, cfg.Snap),
		read:   ReadDevices,
	}
}

// Poll reads the devices and returns this frame's input
func (s *InputSystem) Poll() motion.Input {
	return s.build(s.read())
}

// Reset clears the smoothed axes
func (s *InputSystem) Reset() {
	s.x.Reset()
	s.y.Reset()
}

func (s *InputSystem) build(raw RawInput) motion.Input {
	rx := s.axis(raw.Left, raw.Right, raw.StickX)
	ry := s.axis(raw.Down, raw.Up, raw.StickY)

	return motion.Input{
		X:            s.x.Update(rx, s.dt),
		Y:            s.y.Update(ry, s.dt),
		RawX:         rx,
		RawY:         ry,
		JumpPressed:  raw.JumpPressed,
		JumpHeld:     raw.Jump,
		ClimbPressed: raw.ClimbPressed,
		ClimbHeld:    raw.Climb,
		DashPressed:  raw.DashPressed,
	}
}

// axis prefers a deflected stick over the digital keys.
func (s *InputSystem) axis(neg, pos bool, stick float64) float64 {
	if math.Abs(stick) > s.config.StickDeadzone {
		return stick
	}
	v := 0.0
	if neg {
		v--
	}
	if pos {
		v++
	}
	return v
}

var (
	jumpKeys  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyC}
	dashKeys  = []ebiten.Key{ebiten.KeyX, ebiten.KeyJ}
	climbKeys = []ebiten.Key{ebiten.KeyZ, ebiten.KeyK, ebiten.KeyShiftLeft}
)

// ReadDevices polls the keyboard and the first standard-layout gamepad
func ReadDevices() RawInput {
	raw := RawInput{
		Left:         anyPressed(ebiten.KeyArrowLeft, ebiten.KeyA),
		Right:        anyPressed(ebiten.KeyArrowRight, ebiten.KeyD),
		Up:           anyPressed(ebiten.KeyArrowUp, ebiten.KeyW),
		Down:         anyPressed(ebiten.KeyArrowDown, ebiten.KeyS),
		Jump:         anyPressed(jumpKeys...),
		JumpPressed:  anyJustPressed(jumpKeys...),
		Climb:        anyPressed(climbKeys...),
		ClimbPressed: anyJustPressed(climbKeys...),
		DashPressed:  anyJustPressed(dashKeys...),
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		raw.StickX = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		raw.StickY = -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)

		raw.Left = raw.Left || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		raw.Right = raw.Right || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		raw.Up = raw.Up || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop)
		raw.Down = raw.Down || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)

		raw.Jump = raw.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		raw.JumpPressed = raw.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		raw.DashPressed = raw.DashPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		raw.Climb = raw.Climb || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		raw.ClimbPressed = raw.ClimbPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		break
	}
	return raw
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
