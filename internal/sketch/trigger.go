package sketch

import "github.com/Faultbox/conic-sketch/pkg/math"

// TriggerGate converts an analog trigger value into a drawing state with
// hysteresis: it activates above Press and releases below Release.
type TriggerGate struct {
	Press   float32
	Release float32
	active  bool
}

// Update feeds the current trigger value and returns the resulting state.
func (g *TriggerGate) Update(value float32) bool {
	switch {
	case !g.active && value > g.Press:
		g.active = true
	case g.active && value < g.Release:
		g.active = false
	}
	return g.active
}

// Active returns the last computed state.
func (g *TriggerGate) Active() bool {
	return g.active
}

// AnalogInput adapts a position sampler and an analog trigger into an
// InputSource.
type AnalogInput struct {
	Position func() math.Vec3
	Trigger  func() float32
	Gate     TriggerGate
}

// CurrentPosition implements InputSource.
func (a *AnalogInput) CurrentPosition() math.Vec3 {
	return a.Position()
}

// IsActive implements InputSource. It advances the gate, so call it once per tick.
func (a *AnalogInput) IsActive() bool {
	return a.Gate.Update(a.Trigger())
}
