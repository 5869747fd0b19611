package sketch

import (
	gomath "math"

	"github.com/Faultbox/conic-sketch/internal/config"
	"github.com/Faultbox/conic-sketch/pkg/math"
)

func defaultRecorder() *Recorder {
	return NewRecorder(RecorderConfigFrom(config.Default().Drawing))
}

// nearLoop returns n points on a circle in the z=z0 plane, counter-clockwise
// seen from +Z, leaving a gap of roughly gapAngle radians between the last
// and first point.
func nearLoop(n int, radius, z0, gapAngle float64) []math.Vec3 {
	step := (2*gomath.Pi - gapAngle) / float64(n-1)
	pts := make([]math.Vec3, n)
	for i := range pts {
		a := step * float64(i)
		pts[i] = math.Vec3{
			X: float32(radius * gomath.Cos(a)),
			Y: float32(radius * gomath.Sin(a)),
			Z: float32(z0),
		}
	}
	return pts
}

// scenarioD is 50 points whose ends are about 0.04 apart.
func scenarioD() []math.Vec3 {
	return nearLoop(50, 0.5, 1, 0.08)
}

func squareStroke() []math.Vec3 {
	return []math.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
}

func lStroke() []math.Vec3 {
	return []math.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 1, 0}, {1, 1, 0}, {1, 2, 0}, {0, 2, 0}}
}
