package triangulate

import "github.com/Faultbox/conic-sketch/pkg/math"

// epsilon absorbs float32 noise in cross-product sign tests.
const epsilon = 1e-9

// Result is the output of Triangulate.
type Result struct {
	Triangles []Triangle

	// Complete is false when clipping stopped early because no ear could be
	// found (self-intersecting or degenerate input). Triangles then holds
	// whatever was emitted before the stall.
	Complete bool
}

// Expected returns the triangle count a full triangulation of an n-gon yields.
func Expected(n int) int {
	if n < 3 {
		return 0
	}
	return n - 2
}

// Indices flattens the triangles into a uint32 index buffer.
func (r Result) Indices() []uint32 {
	out := make([]uint32, 0, len(r.Triangles)*3)
	for _, t := range r.Triangles {
		out = append(out, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	return out
}

// Triangulate clips ears off polygon until three vertices remain.
//
// The polygon may be concave but must be simple and without holes. Winding is
// measured once and applied to every convexity test, so clockwise and
// counter-clockwise input both work; emitted triangles keep the input winding.
// Runs in O(n²). Never panics: on stall the partial result is returned with
// Complete set to false.
func Triangulate(polygon []math.Vec2) Result {
	n := len(polygon)
	if n < 3 {
		return Result{}
	}

	ccw := SignedArea(polygon) >= 0

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	tris := make([]Triangle, 0, n-2)
	for len(remaining) > 3 {
		ear := findEar(polygon, remaining, ccw)
		if ear < 0 {
			return Result{Triangles: tris, Complete: false}
		}

		m := len(remaining)
		prev := remaining[(ear-1+m)%m]
		next := remaining[(ear+1)%m]
		tris = append(tris, Triangle{prev, remaining[ear], next})
		remaining = append(remaining[:ear], remaining[ear+1:]...)
	}

	tris = append(tris, Triangle{remaining[0], remaining[1], remaining[2]})
	return Result{Triangles: tris, Complete: true}
}

// findEar returns the position in remaining of the first ear tip, or -1.
func findEar(polygon []math.Vec2, remaining []int, ccw bool) int {
	m := len(remaining)
	for i := range m {
		prev := remaining[(i-1+m)%m]
		cur := remaining[i]
		next := remaining[(i+1)%m]
		if isEar(polygon, remaining, prev, cur, next, ccw) {
			return i
		}
	}
	return -1
}

func isEar(polygon []math.Vec2, remaining []int, prev, cur, next int, ccw bool) bool {
	a, b, c := polygon[prev], polygon[cur], polygon[next]

	turn := b.Sub(a).Cross(c.Sub(b))
	if !ccw {
		turn = -turn
	}
	if turn <= epsilon {
		return false // reflex or collinear
	}

	for _, idx := range remaining {
		if idx == prev || idx == cur || idx == next {
			continue
		}
		p := polygon[idx]
		if p == a || p == b || p == c {
			continue
		}
		if pointInTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}
