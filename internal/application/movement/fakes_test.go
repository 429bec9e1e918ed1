package movement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/younwookim/wallclimb/internal/domain/motion"
)

const dt = 10 * time.Millisecond

type fakeBody struct {
	velocity motion.Vec
	gravity  float64
	drag     float64
	position motion.Vec
}

func (b *fakeBody) Velocity() motion.Vec          { return b.velocity }
func (b *fakeBody) SetVelocity(v motion.Vec)      { b.velocity = v }
func (b *fakeBody) GravityScale() float64         { return b.gravity }
func (b *fakeBody) SetGravityScale(scale float64) { b.gravity = scale }
func (b *fakeBody) SetDrag(drag float64)          { b.drag = drag }
func (b *fakeBody) Position() motion.Vec          { return b.position }

type fakeProbe struct {
	env motion.Environment
}

func (p *fakeProbe) Sense() motion.Environment { return p.env }

type fakeAnimator struct {
	triggers   []string
	horizontal [][3]float64
}

func (a *fakeAnimator) SetTrigger(name string) { a.triggers = append(a.triggers, name) }
func (a *fakeAnimator) SetHorizontalMovement(x, y, vy float64) {
	a.horizontal = append(a.horizontal, [3]float64{x, y, vy})
}

// fakeInput returns next on every poll and clears the pressed edges after
// each poll, so a press lasts exactly one tick.
type fakeInput struct {
	next motion.Input
}

func (in *fakeInput) Poll() motion.Input {
	out := in.next
	in.next.JumpPressed = false
	in.next.ClimbPressed = false
	in.next.DashPressed = false
	return out
}

type fakeEffects struct {
	shakes  []motion.Shake
	trails  int
	ripples []motion.Vec
}

func (f *fakeEffects) ShakeCamera(s motion.Shake) { f.shakes = append(f.shakes, s) }
func (f *fakeEffects) ShowGhostTrail()            { f.trails++ }
func (f *fakeEffects) EmitRipple(at motion.Vec)   { f.ripples = append(f.ripples, at) }

type fakeAssist struct {
	calls []bool
}

func (a *fakeAssist) SetEnabled(enabled bool) { a.calls = append(a.calls, enabled) }

func (a *fakeAssist) enabled() bool {
	if len(a.calls) == 0 {
		return true
	}
	return a.calls[len(a.calls)-1]
}

type testRig struct {
	c      *Controller
	body   *fakeBody
	probe  *fakeProbe
	anim   *fakeAnimator
	input  *fakeInput
	fx     *fakeEffects
	assist *fakeAssist
}

func createTestRig(t testing.TB, env motion.Environment) *testRig {
	return createTestRigWith(t, motion.DefaultParams(), env)
}

func createTestRigWith(t testing.TB, params motion.Params, env motion.Environment) *testRig {
	t.Helper()
	r := &testRig{
		body:   &fakeBody{},
		probe:  &fakeProbe{env: env},
		anim:   &fakeAnimator{},
		input:  &fakeInput{},
		fx:     &fakeEffects{},
		assist: &fakeAssist{},
	}
	c, err := New(params, motion.DefaultTiming(), Deps{
		Body:     r.body,
		Probe:    r.probe,
		Animator: r.anim,
		Input:    r.input,
		Effects:  r.fx,
		Assist:   r.assist,
	})
	require.NoError(t, err)
	r.c = c
	return r
}

func (r *testRig) tick(in motion.Input) Report {
	r.input.next = in
	return r.c.Tick(dt)
}

func (r *testRig) idle(n int) Report {
	var last Report
	for i := 0; i < n; i++ {
		last = r.c.Tick(dt)
	}
	return last
}

var (
	onGround    = motion.Environment{Grounded: true}
	inAir       = motion.Environment{}
	onRightWall = motion.Environment{OnWall: true, OnRightWall: true}
	onLeftWall  = motion.Environment{OnWall: true, OnLeftWall: true}
)
