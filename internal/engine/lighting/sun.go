// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/conic-sketch/pkg/math"
)

// Sun is a directional light given by compass angles in degrees.
type Sun struct {
	// Azimuth is rotation around the Y axis, 0 pointing along +Z.
	Azimuth float32
	// Elevation is the angle above the horizon.
	Elevation float32
}

// DefaultSun lights the scene from above and slightly to the front left.
func DefaultSun() Sun {
	return Sun{Azimuth: -50, Elevation: 60}
}

// ToSun returns the unit vector pointing from the scene towards the sun.
func (s Sun) ToSun() math.Vec3 {
	lon := s.Azimuth * math32.Pi / 180
	lat := s.Elevation * math32.Pi / 180
	return math.Vec3{
		X: math32.Cos(lat) * math32.Sin(lon),
		Y: math32.Sin(lat),
		Z: math32.Cos(lat) * math32.Cos(lon),
	}
}

// Direction returns the direction the light travels, as shaders expect.
func (s Sun) Direction() math.Vec3 {
	return s.ToSun().Neg()
}
