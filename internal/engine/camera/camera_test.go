package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/conic-sketch/internal/engine/mesh"
	"github.com/Faultbox/conic-sketch/pkg/math"
)

const tolerance = 1e-4

func near(a, b math.Vec3) bool {
	return a.Distance(b) < tolerance
}

func TestOrientationMatchesView(t *testing.T) {
	tests := []struct {
		name       string
		pitch, yaw float32
	}{
		{"front", 0, 0},
		{"above", 0.6, 0},
		{"side", 0, math32.Pi / 2},
		{"oblique", -0.4, 2.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.RotationX, c.RotationY = tt.pitch, tt.yaw
			q := c.Orientation()

			if got := q.Rotate(math.Vec3{Z: 1}); !near(got, c.Back()) {
				t.Errorf("local +Z = %v, want back %v", got, c.Back())
			}

			// Local +X must agree with the view matrix's right axis.
			view := c.ViewMatrix()
			right := math.Vec3{X: view[0], Y: view[4], Z: view[8]}
			if got := q.Rotate(math.Vec3{X: 1}); !near(got, right) {
				t.Errorf("local +X = %v, want right %v", got, right)
			}
		})
	}
}

func TestPositionFromCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}
	c.RotationX, c.RotationY = 0, 0
	c.Distance = 5

	want := math.Vec3{X: 1, Y: 2, Z: 8}
	if got := c.Position(); !near(got, want) {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	for range 100 {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want min %v", c.Distance, c.MinDistance)
	}
	for range 100 {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %v, want max %v", c.Distance, c.MaxDistance)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("RotationX = %v, want %v", c.RotationX, c.MaxPitch)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(mesh.Bounds{Min: [3]float32{0, 0, 0}, Max: [3]float32{2, 2, 2}})

	if !near(c.Center, math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Center = %v", c.Center)
	}
	if c.Distance <= 2 {
		t.Errorf("Distance = %v, want room to see the box", c.Distance)
	}
}

func TestDrawPoint(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 0.5, Y: 1}
	c.RotationX, c.RotationY = 0.4, 0.9

	// The screen center looks straight at the orbit center.
	if got := c.DrawPoint(400, 300, 800, 600); got.Distance(c.Center) > 1e-3 {
		t.Errorf("DrawPoint(center) = %v, want %v", got, c.Center)
	}

	// Any other pixel still lands on the plane facing the camera.
	p := c.DrawPoint(100, 500, 800, 600)
	if d := math32.Abs(p.Sub(c.Center).Dot(c.Back())); d > 1e-3 {
		t.Errorf("DrawPoint off plane by %v", d)
	}
	if p.Distance(c.Center) < 0.1 {
		t.Errorf("DrawPoint(corner) = %v, expected away from center", p)
	}
}
