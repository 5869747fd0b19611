// Package mesh holds the CPU-side triangle mesh shared by sketched shapes
// and procedural primitives, ready for GPU upload.
package mesh

import (
	"fmt"

	"github.com/Faultbox/conic-sketch/pkg/math"
)

// Vertex represents a mesh vertex with all attributes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh holds vertices and a triangle-list index buffer.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// New builds a mesh from positions and a triangle index list, then derives
// normals and bounds.
func New(name string, positions []math.Vec3, indices []uint32) (*Mesh, error) {
	m := &Mesh{
		Name:     name,
		Vertices: make([]Vertex, len(positions)),
		Indices:  indices,
	}
	for i, p := range positions {
		m.Vertices[i].Position = p.Array()
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.RecalculateNormals()
	m.RecalculateBounds()
	return m, nil
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks the index buffer describes whole triangles within range.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: index count %d not a multiple of 3", m.Name, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("mesh %q: index %d at %d out of range (%d vertices)", m.Name, idx, i, len(m.Vertices))
		}
	}
	return nil
}

// RecalculateNormals sets every vertex normal to the area-weighted average of
// the face normals around it. Face normals follow the triangle winding.
// Vertices not referenced by any triangle get +Y.
func (m *Mesh) RecalculateNormals() {
	sums := make([]math.Vec3, len(m.Vertices))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		p0 := vec(m.Vertices[i0].Position)
		p1 := vec(m.Vertices[i1].Position)
		p2 := vec(m.Vertices[i2].Position)

		// Unnormalized cross product weights by triangle area.
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		sums[i0] = sums[i0].Add(n)
		sums[i1] = sums[i1].Add(n)
		sums[i2] = sums[i2].Add(n)
	}

	for i := range m.Vertices {
		n := sums[i].Normalize()
		if n == (math.Vec3{}) {
			n = math.Vec3{Y: 1}
		}
		m.Vertices[i].Normal = n.Array()
	}
}

// RecalculateBounds recomputes the bounding box from vertex positions.
func (m *Mesh) RecalculateBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		b.Extend(v.Position)
	}
	m.Bounds = b
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Translate returns the box shifted by offset.
func (b Bounds) Translate(offset math.Vec3) Bounds {
	o := offset.Array()
	for i := range 3 {
		b.Min[i] += o[i]
		b.Max[i] += o[i]
	}
	return b
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return math.Vec3{
		X: (b.Min[0] + b.Max[0]) / 2,
		Y: (b.Min[1] + b.Max[1]) / 2,
		Z: (b.Min[2] + b.Max[2]) / 2,
	}
}

// Positions returns the vertex positions as vectors.
func (m *Mesh) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = vec(v.Position)
	}
	return out
}

func vec(p [3]float32) math.Vec3 {
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// FloatsPerVertex is the stride of Interleaved in float32 units.
const FloatsPerVertex = 8

// Interleaved packs vertices as position, normal, texcoord for a single VBO.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.TexCoord[:]...)
	}
	return out
}
