// Package triangulate converts simple 2D polygons into triangle index lists.
//
// It works purely on 2D coordinates and returns zero-based indices into the
// input slice, so the same indices can be reused against any parallel vertex
// array (for example the 3D points a polygon was projected from).
package triangulate

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/conic-sketch/pkg/math"
)

// Triangle is an index triple into a polygon's vertex list.
type Triangle [3]int

// SignedArea returns the shoelace area of the closed polygon.
// Positive for counter-clockwise winding, negative for clockwise.
func SignedArea(polygon []math.Vec2) float32 {
	n := len(polygon)
	if n < 3 {
		return 0
	}
	var sum float32
	for i := range n {
		a := polygon[i]
		b := polygon[(i+1)%n]
		sum += a.Cross(b)
	}
	return sum / 2
}

// IsCounterClockwise reports whether the polygon winds counter-clockwise.
func IsCounterClockwise(polygon []math.Vec2) bool {
	return SignedArea(polygon) > 0
}

// IsConvex reports whether every turn of the polygon bends the same way.
// Collinear vertices are ignored. Polygons with fewer than 3 vertices are not convex.
func IsConvex(polygon []math.Vec2) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	sign := 0
	for i := range n {
		a := polygon[i]
		b := polygon[(i+1)%n]
		c := polygon[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		switch {
		case cross > epsilon:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < -epsilon:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return sign != 0
}

// TriangleArea returns the signed area of triangle abc.
func TriangleArea(a, b, c math.Vec2) float32 {
	return b.Sub(a).Cross(c.Sub(a)) / 2
}

// CoveredArea sums the unsigned areas of tris over polygon.
func CoveredArea(polygon []math.Vec2, tris []Triangle) float32 {
	var total float32
	for _, t := range tris {
		total += math32.Abs(TriangleArea(polygon[t[0]], polygon[t[1]], polygon[t[2]]))
	}
	return total
}

// pointInTriangle reports whether p lies inside or on the boundary of abc,
// regardless of the triangle's winding.
func pointInTriangle(p, a, b, c math.Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))

	hasNeg := d1 < -epsilon || d2 < -epsilon || d3 < -epsilon
	hasPos := d1 > epsilon || d2 > epsilon || d3 > epsilon
	return !(hasNeg && hasPos)
}
