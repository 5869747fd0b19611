package lighting

import (
	"testing"

	"github.com/Faultbox/conic-sketch/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name string
		sun  Sun
		want math.Vec3
	}{
		{"overhead", Sun{Azimuth: 0, Elevation: 90}, math.Vec3{Y: 1}},
		{"horizon front", Sun{Azimuth: 0, Elevation: 0}, math.Vec3{Z: 1}},
		{"horizon right", Sun{Azimuth: 90, Elevation: 0}, math.Vec3{X: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sun.ToSun(); got.Distance(tt.want) > 1e-5 {
				t.Errorf("ToSun() = %v, want %v", got, tt.want)
			}
			if got := tt.sun.Direction(); got.Distance(tt.want.Neg()) > 1e-5 {
				t.Errorf("Direction() = %v, want %v", got, tt.want.Neg())
			}
		})
	}

	if l := DefaultSun().ToSun().Length(); l < 0.9999 || l > 1.0001 {
		t.Errorf("DefaultSun not unit length: %v", l)
	}
}
