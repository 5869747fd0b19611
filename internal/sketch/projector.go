package sketch

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/conic-sketch/internal/config"
	"github.com/Faultbox/conic-sketch/pkg/math"
)

// ProjectionMode selects how the flattening orientation is chosen.
type ProjectionMode int

const (
	// ProjectReference flattens against the orientation captured at stroke start.
	ProjectReference ProjectionMode = iota
	// ProjectBestFit tilts the reference orientation onto the stroke's own
	// plane (Newell normal) before flattening.
	ProjectBestFit
)

// ParseProjectionMode maps a config value to a ProjectionMode.
func ParseProjectionMode(s string) (ProjectionMode, error) {
	switch s {
	case config.ProjectionReference, "":
		return ProjectReference, nil
	case config.ProjectionBestFit:
		return ProjectBestFit, nil
	}
	return 0, fmt.Errorf("unknown projection mode %q", s)
}

func (m ProjectionMode) String() string {
	if m == ProjectBestFit {
		return config.ProjectionBestFit
	}
	return config.ProjectionReference
}

// Projection is a stroke split into its anchor, anchor-relative 3D vertices
// and the matching 2D polygon. Vertices[i] and Polygon[i] describe the same
// point.
type Projection struct {
	Anchor      math.Vec3
	Vertices    []math.Vec3
	Polygon     []math.Vec2
	Orientation math.Quat // frame the polygon was flattened in
}

// Projector flattens strokes for triangulation.
type Projector struct {
	Mode ProjectionMode
}

// Project flattens points using reference, or a plane fitted to the points
// when the projector is in best-fit mode.
func (p Projector) Project(points []math.Vec3, reference math.Quat) Projection {
	if p.Mode == ProjectBestFit {
		return Project(points, FitOrientation(points, reference))
	}
	return Project(points, reference)
}

// Project makes points relative to points[0], rotates each by the inverse of
// orientation and drops the depth axis. The 3D vertices are kept unflattened.
// A zero orientation is treated as identity.
func Project(points []math.Vec3, orientation math.Quat) Projection {
	if len(points) == 0 {
		return Projection{Orientation: orientation}
	}

	anchor := points[0]
	inv := orientation.Inverse()

	proj := Projection{
		Anchor:      anchor,
		Vertices:    make([]math.Vec3, len(points)),
		Polygon:     make([]math.Vec2, len(points)),
		Orientation: orientation,
	}
	for i, pt := range points {
		rel := pt.Sub(anchor)
		proj.Vertices[i] = rel
		proj.Polygon[i] = inv.Rotate(rel).XY()
	}
	return proj
}

// NewellNormal returns the unit normal of the closed polygon through points
// using Newell's method, or the zero vector when the points enclose no area.
// Its direction follows the polygon's winding.
func NewellNormal(points []math.Vec3) math.Vec3 {
	var n math.Vec3
	for i, cur := range points {
		next := points[(i+1)%len(points)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	if n.Length() < 1e-12 {
		return math.Vec3{}
	}
	return n.Normalize()
}

// FitOrientation tilts reference by the smallest rotation that makes its
// depth axis parallel to the stroke's Newell normal. The normal is flipped
// to face the same side as the reference depth axis so winding seen from the
// reference viewpoint is preserved. Degenerate strokes return reference.
func FitOrientation(points []math.Vec3, reference math.Quat) math.Quat {
	normal := NewellNormal(points)
	if normal == (math.Vec3{}) {
		return reference
	}
	ref := reference.Normalize()
	depth := ref.Rotate(math.Vec3{Z: 1})
	if normal.Dot(depth) < 0 {
		normal = normal.Neg()
	}
	return math.QuatFromTo(depth, normal).Mul(ref)
}

// Planarity returns the largest distance of any vertex from the flattening
// plane through the anchor. Zero means the polygon is exactly planar in that
// frame.
func Planarity(proj Projection) float32 {
	inv := proj.Orientation.Inverse()
	var worst float32
	for _, v := range proj.Vertices {
		worst = math32.Max(worst, math32.Abs(inv.Rotate(v).Z))
	}
	return worst
}
