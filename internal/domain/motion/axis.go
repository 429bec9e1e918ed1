package motion

import "math"

// AxisSmoother turns a digital raw axis into a smoothed analog one: it moves
// toward the raw value at Sensitivity units/s, falls back to zero at Gravity
// units/s, and with Snap jumps to zero first when the direction reverses.
type AxisSmoother struct {
	Sensitivity float64
	Gravity     float64
	Snap        bool

	value float64
}

// NewAxisSmoother creates a smoother with the given rates.
func NewAxisSmoother(sensitivity, gravity float64, snap bool) *AxisSmoother {
	return &AxisSmoother{Sensitivity: sensitivity, Gravity: gravity, Snap: snap}
}

// Update advances the smoothed value by dt seconds and returns it.
func (a *AxisSmoother) Update(raw, dt float64) float64 {
	raw = clampAxis(raw)
	if raw != 0 {
		if a.Snap && a.value != 0 && math.Signbit(raw) != math.Signbit(a.value) {
			a.value = 0
		}
		a.value = approach(a.value, raw, a.Sensitivity*dt)
	} else {
		a.value = approach(a.value, 0, a.Gravity*dt)
	}
	return a.value
}

// Value returns the current smoothed value.
func (a *AxisSmoother) Value() float64 { return a.value }

// Reset drops the smoothed value back to zero.
func (a *AxisSmoother) Reset() { a.value = 0 }

func approach(from, to, step float64) float64 {
	if from < to {
		return math.Min(from+step, to)
	}
	return math.Max(from-step, to)
}
