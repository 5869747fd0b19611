// Package picking provides ray casting against drawing planes and shape bounds.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/conic-sketch/internal/engine/mesh"
	"github.com/Faultbox/conic-sketch/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// Plane is the set of points p with Normal·p = Normal·Point.
type Plane struct {
	Point  math.Vec3
	Normal math.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Normalized device coords (-1 to 1), Y flipped
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	near := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	far := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func unproject(inv math.Mat4, p math.Vec4) math.Vec3 {
	w := inv.MulVec4(p)
	if w[3] != 0 {
		w[0] /= w[3]
		w[1] /= w[3]
		w[2] /= w[3]
	}
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}
}

// IntersectPlane returns the distance along the ray to the plane.
// Rays parallel to the plane or hitting it behind the origin report false.
func (r Ray) IntersectPlane(pl Plane) (t float32, ok bool) {
	denom := pl.Normal.Dot(r.Direction)
	if math32.Abs(denom) < 1e-6 {
		return 0, false
	}
	t = pl.Normal.Dot(pl.Point.Sub(r.Origin)) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box mesh.Bounds) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	for axis := range 3 {
		if dir[axis] != 0 {
			t1 := (box.Min[axis] - origin[axis]) / dir[axis]
			t2 := (box.Max[axis] - origin[axis]) / dir[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			tmin = math32.Max(tmin, t1)
			tmax = math32.Min(tmax, t2)
		} else if origin[axis] < box.Min[axis] || origin[axis] > box.Max[axis] {
			return 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
