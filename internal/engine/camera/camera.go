// Package camera provides the orbit camera used by the sketch viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/conic-sketch/internal/engine/mesh"
	"github.com/Faultbox/conic-sketch/internal/engine/picking"
	"github.com/Faultbox/conic-sketch/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Projection
	FovY      float32 // radians
	NearPlane float32
	FarPlane  float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a camera looking at the origin from a few metres
// away, which suits shapes a hand can draw.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        4.0,
		RotationX:       0.3,
		MinDistance:     0.5,
		MaxDistance:     50.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		FovY:            math32.Pi / 3,
		NearPlane:       0.05,
		FarPlane:        200.0,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	return c.Center.Add(c.Back().Scale(c.Distance))
}

// Orientation returns the camera rotation: local +X is screen right, +Y is
// screen up and +Z points from the center back towards the eye. Its XY plane
// is the plane a stroke drawn through the screen lies on.
func (c *OrbitCamera) Orientation() math.Quat {
	yaw := math.QuatFromAxisAngle(math.Vec3{Y: 1}, c.RotationY)
	pitch := math.QuatFromAxisAngle(math.Vec3{X: 1}, -c.RotationX)
	return yaw.Mul(pitch)
}

// Back returns the unit vector from the center towards the camera.
func (c *OrbitCamera) Back() math.Vec3 {
	cp, sp := math32.Cos(c.RotationX), math32.Sin(c.RotationX)
	return math.Vec3{
		X: cp * math32.Sin(c.RotationY),
		Y: sp,
		Z: cp * math32.Cos(c.RotationY),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.NearPlane, c.FarPlane)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = min(max(c.RotationX, c.MinPitch), c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}

// HandleMovement pans the camera center point based on keyboard input.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	dirX := math32.Sin(c.RotationY)
	dirZ := math32.Cos(c.RotationY)

	// Negate forward so W moves "into" the scene
	c.Center.X += (-dirX*forward + dirZ*right) * speed
	c.Center.Z += (-dirZ*forward - dirX*right) * speed
	c.Center.Y += up * speed
}

// FitToBounds centers the camera on the box and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(b mesh.Bounds) {
	c.Center = b.Center()

	size := math.Vec3{
		X: b.Max[0] - b.Min[0],
		Y: b.Max[1] - b.Min[1],
		Z: b.Max[2] - b.Min[2],
	}.Length()

	c.Distance = min(max(size*1.5, c.MinDistance), c.MaxDistance)
}

// DrawPlane returns the plane through the center facing the camera.
func (c *OrbitCamera) DrawPlane() picking.Plane {
	return picking.Plane{Point: c.Center, Normal: c.Back()}
}

// DrawPoint maps a pixel onto the draw plane. A ray that misses the plane
// yields the center.
func (c *OrbitCamera) DrawPoint(x, y, viewportW, viewportH float32) math.Vec3 {
	ray := c.Ray(x, y, viewportW, viewportH)
	t, ok := ray.IntersectPlane(c.DrawPlane())
	if !ok {
		return c.Center
	}
	return ray.At(t)
}

// Ray returns the world-space ray under a pixel.
func (c *OrbitCamera) Ray(x, y, viewportW, viewportH float32) picking.Ray {
	inv := c.ViewProjection(viewportW / viewportH).Inverse()
	return picking.ScreenToRay(x, y, viewportW, viewportH, inv)
}
