package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/wallclimb/internal/application/movement"
	"github.com/younwookim/wallclimb/internal/domain/motion"
)

var _ movement.Animator = (*Driver)(nil)

func TestDriver_Pose(t *testing.T) {
	ground := motion.Environment{Grounded: true}
	air := motion.Environment{}
	up := motion.Vec{Y: 3}
	down := motion.Vec{Y: -3}

	tests := []struct {
		name  string
		state motion.State
		v     motion.Vec
		env   motion.Environment
		want  string
	}{
		{"idle", motion.StateIdle, motion.Vec{}, ground, PoseIdle},
		{"run", motion.StateRunning, motion.Vec{X: 5}, ground, PoseRun},
		{"climb", motion.StateClimbing, up, air, PoseClimb},
		{"slide", motion.StateSliding, down, air, PoseSlide},
		{"rising", motion.StateFalling, up, air, PoseRise},
		{"falling", motion.StateFalling, down, air, PoseFall},
		{"idle in air", motion.StateIdle, down, air, PoseFall},
		{"locked out", motion.StateNonMoveable, up, air, PoseRise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDriver()
			d.Update(tt.state, tt.v, tt.env)
			assert.Equal(t, tt.want, d.Pose())
		})
	}
}

func TestDriver_Trigger(t *testing.T) {
	d := NewDriver()
	d.SetTrigger(movement.TriggerDash)

	for i := 0; i < triggerFrames; i++ {
		d.Update(motion.StateFalling, motion.Vec{}, motion.Environment{})
		assert.Equal(t, PoseDash, d.Pose(), "frame %d", i)
	}
	d.Update(motion.StateFalling, motion.Vec{Y: -1}, motion.Environment{})
	assert.Equal(t, PoseFall, d.Pose())
	assert.Equal(t, 1, d.Count(movement.TriggerDash))
	assert.Equal(t, 0, d.Count(movement.TriggerJump))
}

func TestDriver_HorizontalMovement(t *testing.T) {
	d := NewDriver()
	assert.True(t, d.FacingRight())

	d.SetHorizontalMovement(-0.5, 0.2, -1)
	x, y, vy := d.Movement()
	assert.Equal(t, []float64{-0.5, 0.2, -1}, []float64{x, y, vy})
	assert.False(t, d.FacingRight())

	d.SetHorizontalMovement(0, 0, 0)
	assert.False(t, d.FacingRight(), "no input keeps facing")
}
